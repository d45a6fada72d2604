package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

type RecipeHandler struct {
	recipeService service.RecipeService
	validate      *validator.Validate
}

func NewRecipeHandler(recipeService service.RecipeService, v *validator.Validate) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, validate: v}
}

// RegisterRoutes mounts v1 recipe routes
func (h *RecipeHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/recipes/generate", authMw(http.HandlerFunc(h.generateRecipes)))
	mux.Handle("/recipes", authMw(http.HandlerFunc(h.listRecipes)))
	mux.Handle("/recipes/", authMw(http.HandlerFunc(h.handleRecipeByID)))
}

// generateRecipes godoc
// @Summary Generate recipes from a list of ingredients
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body dto.RecipeGenerateRequest true "Ingredients and restrictions"
// @Success 201 {array} dto.RecipeResponseDTO
// @Failure 402 {object} map[string]string
// @Router /recipes/generate [post]
func (h *RecipeHandler) generateRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.RecipeGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	recipes, err := h.recipeService.Generate(r.Context(), userID, req.Ingredients, req.DietaryRestrictions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuotaExceeded):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(map[string]string{"error": "quota_exceeded"})
		case errors.Is(err, service.ErrNoIngredients):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "Failed to generate recipes: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	resp := make([]dto.RecipeResponseDTO, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, dto.FromRecipe(&recipes[i]))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// listRecipes godoc
// @Summary List the user's recipes in creation order
// @Tags recipes
// @Produce json
// @Success 200 {array} dto.RecipeResponseDTO
// @Router /recipes [get]
func (h *RecipeHandler) listRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	recipes, err := h.recipeService.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list recipes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]dto.RecipeResponseDTO, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, dto.FromRecipe(&recipes[i]))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *RecipeHandler) handleRecipeByID(w http.ResponseWriter, r *http.Request) {
	recipeID := strings.TrimPrefix(r.URL.Path, "/recipes/")
	if recipeID == "" || strings.Contains(recipeID, "/") {
		http.Error(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getRecipe(w, r, recipeID, userID)
	case http.MethodPatch:
		h.updateRecipe(w, r, recipeID, userID)
	case http.MethodDelete:
		h.deleteRecipe(w, r, recipeID, userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *RecipeHandler) getRecipe(w http.ResponseWriter, r *http.Request, recipeID, userID string) {
	recipe, err := h.recipeService.Get(r.Context(), recipeID, userID)
	if err != nil {
		writeRecipeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.FromRecipe(recipe))
}

func (h *RecipeHandler) updateRecipe(w http.ResponseWriter, r *http.Request, recipeID, userID string) {
	var req dto.RecipeUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	recipe, err := h.recipeService.UpdateSavedAndRating(r.Context(), recipeID, userID, req.IsSaved, req.Rating)
	if err != nil {
		writeRecipeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.FromRecipe(recipe))
}

func (h *RecipeHandler) deleteRecipe(w http.ResponseWriter, r *http.Request, recipeID, userID string) {
	if err := h.recipeService.Delete(r.Context(), recipeID, userID); err != nil {
		writeRecipeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeRecipeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
