package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

type HistoryHandler struct {
	historyService service.HistoryService
	validate       *validator.Validate
}

func NewHistoryHandler(historyService service.HistoryService, v *validator.Validate) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, validate: v}
}

// RegisterRoutes mounts v1 cooking history routes
func (h *HistoryHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/history", authMw(http.HandlerFunc(h.handleHistory)))
	mux.Handle("/history/", authMw(http.HandlerFunc(h.deleteEntry)))
}

func (h *HistoryHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.recordEntry(w, r, userID)
	case http.MethodGet:
		h.listEntries(w, r, userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *HistoryHandler) recordEntry(w http.ResponseWriter, r *http.Request, userID string) {
	var req dto.CookingHistoryCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	cookedAt := time.Now().UTC()
	if req.CookedAt != nil {
		cookedAt = *req.CookedAt
	}
	entry, err := h.historyService.Record(r.Context(), userID, req.RecipeID, cookedAt, req.Rating, req.Notes)
	if err != nil {
		writeHistoryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.CookingHistoryResponseDTO{
		ID:       entry.ID,
		RecipeID: entry.RecipeID,
		CookedAt: entry.CookedAt,
		Rating:   entry.Rating,
		Notes:    entry.Notes,
	})
}

func (h *HistoryHandler) listEntries(w http.ResponseWriter, r *http.Request, userID string) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	entries, err := h.historyService.List(r.Context(), userID, limit, offset)
	if err != nil {
		http.Error(w, "Failed to list cooking history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]dto.CookingHistoryResponseDTO, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.CookingHistoryResponseDTO{
			ID:       e.ID,
			RecipeID: e.RecipeID,
			CookedAt: e.CookedAt,
			Rating:   e.Rating,
			Notes:    e.Notes,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *HistoryHandler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	entryID := strings.TrimPrefix(r.URL.Path, "/history/")
	if entryID == "" || strings.Contains(entryID, "/") {
		http.Error(w, "Invalid history entry ID", http.StatusBadRequest)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.historyService.Delete(r.Context(), entryID, userID); err != nil {
		writeHistoryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeHistoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrHistoryNotFound), errors.Is(err, service.ErrRecipeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
