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

type MealPlanHandler struct {
	planService service.MealPlanService
	validate    *validator.Validate
}

func NewMealPlanHandler(planService service.MealPlanService, v *validator.Validate) *MealPlanHandler {
	return &MealPlanHandler{planService: planService, validate: v}
}

// RegisterRoutes mounts v1 meal plan routes
func (h *MealPlanHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/meal-plans/generate", authMw(http.HandlerFunc(h.generatePlan)))
	mux.Handle("/meal-plans", authMw(http.HandlerFunc(h.listPlans)))
	mux.Handle("/meal-plans/", authMw(http.HandlerFunc(h.handlePlanByID)))
}

// generatePlan godoc
// @Summary Generate a weekly meal plan within a budget
// @Tags meal-plans
// @Accept json
// @Produce json
// @Param request body dto.MealPlanGenerateRequest true "Plan name and weekly budget"
// @Success 201 {object} dto.MealPlanGenerateResponseDTO
// @Router /meal-plans/generate [post]
func (h *MealPlanHandler) generatePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.MealPlanGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.planService.Generate(r.Context(), userID, req.Name, req.WeeklyBudget, req.DietaryRestrictions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBudget):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to generate meal plan: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	resp := dto.MealPlanGenerateResponseDTO{
		MealPlanResponseDTO: dto.FromMealPlan(&result.Plan, result.Meals),
		TotalCost:           result.TotalCost,
		Savings:             result.Savings,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// listPlans godoc
// @Summary List the user's meal plans
// @Tags meal-plans
// @Produce json
// @Success 200 {array} dto.MealPlanResponseDTO
// @Router /meal-plans [get]
func (h *MealPlanHandler) listPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	plans, err := h.planService.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list meal plans: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]dto.MealPlanResponseDTO, 0, len(plans))
	for i := range plans {
		resp = append(resp, dto.FromMealPlan(&plans[i], nil))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *MealPlanHandler) handlePlanByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/meal-plans/")
	planID, action, _ := strings.Cut(path, "/")
	if planID == "" {
		http.Error(w, "Invalid meal plan ID", http.StatusBadRequest)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	switch {
	case action == "optimize" && r.Method == http.MethodPost:
		h.optimizePlan(w, r, planID, userID)
	case action == "" && r.Method == http.MethodGet:
		h.getPlan(w, r, planID, userID)
	case action == "" && r.Method == http.MethodDelete:
		h.deletePlan(w, r, planID, userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// optimizePlan godoc
// @Summary Apply ingredient substitutions to reduce a plan's cost
// @Tags meal-plans
// @Produce json
// @Success 200 {object} dto.MealPlanOptimizeResponseDTO
// @Router /meal-plans/{id}/optimize [post]
func (h *MealPlanHandler) optimizePlan(w http.ResponseWriter, r *http.Request, planID, userID string) {
	result, err := h.planService.Optimize(r.Context(), planID, userID)
	if err != nil {
		writePlanError(w, err)
		return
	}
	resp := dto.MealPlanOptimizeResponseDTO{
		Meals:         result.Meals,
		TotalSaved:    result.TotalSaved,
		Substitutions: result.Substitutions,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *MealPlanHandler) getPlan(w http.ResponseWriter, r *http.Request, planID, userID string) {
	plan, meals, err := h.planService.Get(r.Context(), planID, userID)
	if err != nil {
		writePlanError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.FromMealPlan(plan, meals))
}

func (h *MealPlanHandler) deletePlan(w http.ResponseWriter, r *http.Request, planID, userID string) {
	if err := h.planService.Delete(r.Context(), planID, userID); err != nil {
		writePlanError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writePlanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
