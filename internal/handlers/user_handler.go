package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jfuentes/recipebox/internal/middleware"
	usermodel "github.com/jfuentes/recipebox/internal/models/user"
	"github.com/jfuentes/recipebox/internal/service"
)

type UserHandler struct {
	users  *service.UserService
	tokens *service.TokenService
}

func NewUserHandler(users *service.UserService, tokens *service.TokenService) *UserHandler {
	return &UserHandler{
		users:  users,
		tokens: tokens,
	}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req usermodel.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	token, err := h.tokens.Issue(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me serves the authenticated user's profile: GET returns it, PATCH
// applies a partial update. Other verbs get a 405 with the allowed set.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getProfile(w, r)
	case http.MethodPatch:
		h.updateProfile(w, r)
	default:
		w.Header().Set("Allow", "GET, PATCH")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req usermodel.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
