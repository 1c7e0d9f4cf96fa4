package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jfuentes/recipebox/internal/middleware"
	"github.com/jfuentes/recipebox/internal/models"
	"github.com/jfuentes/recipebox/internal/service"
)

// AttributeHandler serves both the tag and ingredient collections; the
// two share a contract and differ only in backing service.
type AttributeHandler struct {
	attrs *service.AttributeService
}

func NewAttributeHandler(attrs *service.AttributeService) *AttributeHandler {
	return &AttributeHandler{attrs: attrs}
}

func (h *AttributeHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *AttributeHandler) list(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	attrs, err := h.attrs.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if attrs == nil {
		attrs = []*models.Attribute{}
	}
	respondJSON(w, http.StatusOK, attrs)
}

func (h *AttributeHandler) create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	attr, err := h.attrs.Create(r.Context(), userID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, attr)
}
