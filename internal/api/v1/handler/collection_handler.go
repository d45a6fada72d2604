package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

type CollectionHandler struct {
	collectionService service.CollectionService
	validate          *validator.Validate
}

func NewCollectionHandler(collectionService service.CollectionService, v *validator.Validate) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService, validate: v}
}

// RegisterRoutes mounts v1 collection routes
func (h *CollectionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/collections", authMw(http.HandlerFunc(h.handleCollections)))
	mux.Handle("/collections/", authMw(http.HandlerFunc(h.handleCollectionByID)))
}

func (h *CollectionHandler) handleCollections(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.createCollection(w, r, userID)
	case http.MethodGet:
		h.listCollections(w, r, userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CollectionHandler) createCollection(w http.ResponseWriter, r *http.Request, userID string) {
	var req dto.CollectionCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	col, err := h.collectionService.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		http.Error(w, "Failed to create collection: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(collectionToDTO(col, nil))
}

func (h *CollectionHandler) listCollections(w http.ResponseWriter, r *http.Request, userID string) {
	cols, err := h.collectionService.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list collections: "+err.Error(), http.StatusInternalServerError)
		return
	}
	resp := make([]dto.CollectionResponseDTO, 0, len(cols))
	for i := range cols {
		resp = append(resp, collectionToDTO(&cols[i], nil))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleCollectionByID routes /collections/{id} and
// /collections/{id}/recipes[/{recipeID}].
func (h *CollectionHandler) handleCollectionByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/collections/")
	parts := strings.Split(path, "/")
	collectionID := parts[0]
	if collectionID == "" {
		http.Error(w, "Invalid collection ID", http.StatusBadRequest)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getCollection(w, r, collectionID, userID)
	case len(parts) == 1 && r.Method == http.MethodPut:
		h.updateCollection(w, r, collectionID, userID)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.deleteCollection(w, r, collectionID, userID)
	case len(parts) == 2 && parts[1] == "recipes" && r.Method == http.MethodPost:
		h.addRecipe(w, r, collectionID, userID)
	case len(parts) == 3 && parts[1] == "recipes" && r.Method == http.MethodDelete:
		h.removeRecipe(w, r, collectionID, parts[2], userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CollectionHandler) getCollection(w http.ResponseWriter, r *http.Request, collectionID, userID string) {
	col, recipeIDs, err := h.collectionService.Get(r.Context(), collectionID, userID)
	if err != nil {
		writeCollectionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(collectionToDTO(col, recipeIDs))
}

func (h *CollectionHandler) updateCollection(w http.ResponseWriter, r *http.Request, collectionID, userID string) {
	var req dto.CollectionCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	col, err := h.collectionService.Update(r.Context(), collectionID, userID, req.Name, req.Description)
	if err != nil {
		writeCollectionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(collectionToDTO(col, nil))
}

func (h *CollectionHandler) deleteCollection(w http.ResponseWriter, r *http.Request, collectionID, userID string) {
	if err := h.collectionService.Delete(r.Context(), collectionID, userID); err != nil {
		writeCollectionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CollectionHandler) addRecipe(w http.ResponseWriter, r *http.Request, collectionID, userID string) {
	var req dto.CollectionRecipeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.collectionService.AddRecipe(r.Context(), collectionID, req.RecipeID, userID); err != nil {
		writeCollectionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CollectionHandler) removeRecipe(w http.ResponseWriter, r *http.Request, collectionID, recipeID, userID string) {
	if err := h.collectionService.RemoveRecipe(r.Context(), collectionID, recipeID, userID); err != nil {
		writeCollectionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func collectionToDTO(col *model.Collection, recipeIDs []string) dto.CollectionResponseDTO {
	return dto.CollectionResponseDTO{
		ID:          col.ID,
		Name:        col.Name,
		Description: col.Description,
		RecipeIDs:   recipeIDs,
		CreatedAt:   col.CreatedAt,
		UpdatedAt:   col.UpdatedAt,
	}
}

func writeCollectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound), errors.Is(err, service.ErrRecipeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
