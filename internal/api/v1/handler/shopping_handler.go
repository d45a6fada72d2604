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

type ShoppingHandler struct {
	shoppingService service.ShoppingService
	validate        *validator.Validate
}

func NewShoppingHandler(shoppingService service.ShoppingService, v *validator.Validate) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: shoppingService, validate: v}
}

// RegisterRoutes mounts v1 shopping list routes
func (h *ShoppingHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/shopping-lists/generate", authMw(http.HandlerFunc(h.generateList)))
	mux.Handle("/shopping-lists", authMw(http.HandlerFunc(h.handleLists)))
	mux.Handle("/shopping-lists/", authMw(http.HandlerFunc(h.handleListByID)))
}

// generateList godoc
// @Summary Build a shopping list from recipe ingredients
// @Tags shopping-lists
// @Accept json
// @Produce json
// @Param request body dto.ShoppingListGenerateRequest true "List name and recipe IDs"
// @Success 201 {object} dto.ShoppingListResponseDTO
// @Router /shopping-lists/generate [post]
func (h *ShoppingHandler) generateList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.ShoppingListGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.shoppingService.GenerateFromRecipes(r.Context(), userID, req.Name, req.RecipeIDs)
	if err != nil {
		http.Error(w, "Failed to generate shopping list: "+err.Error(), http.StatusInternalServerError)
		return
	}

	_, items, err := h.shoppingService.Get(r.Context(), list.ID, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.FromShoppingList(list, items))
}

func (h *ShoppingHandler) handleLists(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createList(w, r)
	case http.MethodGet:
		h.listLists(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ShoppingHandler) createList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.ShoppingListCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.shoppingService.CreateList(r.Context(), userID, req.Name)
	if err != nil {
		http.Error(w, "Failed to create shopping list: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.FromShoppingList(list, nil))
}

func (h *ShoppingHandler) listLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	lists, err := h.shoppingService.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list shopping lists: "+err.Error(), http.StatusInternalServerError)
		return
	}
	resp := make([]dto.ShoppingListResponseDTO, 0, len(lists))
	for i := range lists {
		resp = append(resp, dto.FromShoppingList(&lists[i], nil))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleListByID routes /shopping-lists/{id}, /shopping-lists/{id}/items and
// /shopping-lists/{id}/items/{itemID}.
func (h *ShoppingHandler) handleListByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/shopping-lists/")
	parts := strings.Split(path, "/")
	listID := parts[0]
	if listID == "" {
		http.Error(w, "Invalid shopping list ID", http.StatusBadRequest)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getList(w, r, listID, userID)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.deleteList(w, r, listID, userID)
	case len(parts) == 2 && parts[1] == "items" && r.Method == http.MethodPost:
		h.addItem(w, r, listID, userID)
	case len(parts) == 3 && parts[1] == "items" && r.Method == http.MethodPatch:
		h.updateItem(w, r, listID, parts[2], userID)
	case len(parts) == 3 && parts[1] == "items" && r.Method == http.MethodDelete:
		h.deleteItem(w, r, listID, parts[2], userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ShoppingHandler) getList(w http.ResponseWriter, r *http.Request, listID, userID string) {
	list, items, err := h.shoppingService.Get(r.Context(), listID, userID)
	if err != nil {
		writeListError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.FromShoppingList(list, items))
}

func (h *ShoppingHandler) deleteList(w http.ResponseWriter, r *http.Request, listID, userID string) {
	if err := h.shoppingService.Delete(r.Context(), listID, userID); err != nil {
		writeListError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShoppingHandler) addItem(w http.ResponseWriter, r *http.Request, listID, userID string) {
	var req dto.ShoppingListItemCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	item := &model.ShoppingListItem{
		Name:   req.Name,
		Amount: req.Amount,
		Unit:   req.Unit,
	}
	if err := h.shoppingService.AddItem(r.Context(), listID, userID, item); err != nil {
		writeListError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *ShoppingHandler) updateItem(w http.ResponseWriter, r *http.Request, listID, itemID, userID string) {
	var req dto.ShoppingListItemUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.shoppingService.SetItemChecked(r.Context(), listID, itemID, userID, req.IsChecked); err != nil {
		writeListError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShoppingHandler) deleteItem(w http.ResponseWriter, r *http.Request, listID, itemID, userID string) {
	if err := h.shoppingService.DeleteItem(r.Context(), listID, itemID, userID); err != nil {
		writeListError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeListError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrListNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
