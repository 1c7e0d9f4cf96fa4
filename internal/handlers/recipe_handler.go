package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jfuentes/recipebox/internal/middleware"
	"github.com/jfuentes/recipebox/internal/models"
	"github.com/jfuentes/recipebox/internal/service"
)

type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) Collection(w http.ResponseWriter, r *http.Request) {
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

// Item serves a single recipe addressed as /recipes/recipes/{id}/.
func (h *RecipeHandler) Item(w http.ResponseWriter, r *http.Request) {
	recipeID := itemID(r.URL.Path, "/recipes/recipes/")
	if recipeID == "" {
		respondError(w, http.StatusNotFound, "recipe not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, recipeID)
	case http.MethodPut:
		h.update(w, r, recipeID)
	case http.MethodPatch:
		h.patch(w, r, recipeID)
	case http.MethodDelete:
		h.delete(w, r, recipeID)
	default:
		w.Header().Set("Allow", "GET, PUT, PATCH, DELETE")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RecipeHandler) list(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	recipes, err := h.recipes.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if recipes == nil {
		recipes = []*models.Recipe{}
	}
	respondJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	recipe, err := h.recipes.Create(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) get(w http.ResponseWriter, r *http.Request, recipeID string) {
	userID := middleware.GetUserID(r.Context())

	recipe, err := h.recipes.Get(r.Context(), userID, recipeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) update(w http.ResponseWriter, r *http.Request, recipeID string) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	recipe, err := h.recipes.Update(r.Context(), userID, recipeID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) patch(w http.ResponseWriter, r *http.Request, recipeID string) {
	userID := middleware.GetUserID(r.Context())

	var req models.UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	recipe, err := h.recipes.Patch(r.Context(), userID, recipeID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) delete(w http.ResponseWriter, r *http.Request, recipeID string) {
	userID := middleware.GetUserID(r.Context())

	if err := h.recipes.Delete(r.Context(), userID, recipeID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemID extracts the id segment from paths like /recipes/recipes/{id}/,
// tolerating a missing trailing slash.
func itemID(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
