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

type PantryHandler struct {
	pantryService service.PantryService
	validate      *validator.Validate
}

func NewPantryHandler(pantryService service.PantryService, v *validator.Validate) *PantryHandler {
	return &PantryHandler{pantryService: pantryService, validate: v}
}

// RegisterRoutes mounts v1 pantry routes
func (h *PantryHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/pantry", authMw(http.HandlerFunc(h.handlePantry)))
	mux.Handle("/pantry/", authMw(http.HandlerFunc(h.handlePantryByID)))
}

func (h *PantryHandler) handlePantry(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.createItem(w, r, userID)
	case http.MethodGet:
		h.listItems(w, r, userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PantryHandler) createItem(w http.ResponseWriter, r *http.Request, userID string) {
	var req dto.PantryItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	item := &model.PantryItem{
		UserID:    userID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		ExpiresAt: req.ExpiresAt,
	}
	created, err := h.pantryService.Create(r.Context(), item)
	if err != nil {
		http.Error(w, "Failed to create pantry item: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(pantryItemToDTO(created))
}

func (h *PantryHandler) listItems(w http.ResponseWriter, r *http.Request, userID string) {
	items, err := h.pantryService.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list pantry items: "+err.Error(), http.StatusInternalServerError)
		return
	}
	resp := make([]dto.PantryItemResponseDTO, 0, len(items))
	for i := range items {
		resp = append(resp, pantryItemToDTO(&items[i]))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *PantryHandler) handlePantryByID(w http.ResponseWriter, r *http.Request) {
	itemID := strings.TrimPrefix(r.URL.Path, "/pantry/")
	if itemID == "" || strings.Contains(itemID, "/") {
		http.Error(w, "Invalid pantry item ID", http.StatusBadRequest)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateItem(w, r, itemID, userID)
	case http.MethodDelete:
		h.deleteItem(w, r, itemID, userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PantryHandler) updateItem(w http.ResponseWriter, r *http.Request, itemID, userID string) {
	var req dto.PantryItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	item := &model.PantryItem{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		ExpiresAt: req.ExpiresAt,
	}
	updated, err := h.pantryService.Update(r.Context(), itemID, userID, item)
	if err != nil {
		writePantryError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pantryItemToDTO(updated))
}

func (h *PantryHandler) deleteItem(w http.ResponseWriter, r *http.Request, itemID, userID string) {
	if err := h.pantryService.Delete(r.Context(), itemID, userID); err != nil {
		writePantryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pantryItemToDTO(item *model.PantryItem) dto.PantryItemResponseDTO {
	return dto.PantryItemResponseDTO{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		ExpiresAt: item.ExpiresAt,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func writePantryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPantryItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
