package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jfuentes/recipebox/internal/models"
	"github.com/jfuentes/recipebox/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic body so internals never
// leak to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrEmailInvalid),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
