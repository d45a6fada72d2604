package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

// mockRecipeService returns canned results for handler tests.
type mockRecipeService struct {
	generateErr error
	recipes     []model.Recipe
}

func (m *mockRecipeService) Generate(_ context.Context, _ string, _, _ []string) ([]model.Recipe, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.recipes, nil
}

func (m *mockRecipeService) List(_ context.Context, _ string) ([]model.Recipe, error) {
	return m.recipes, nil
}

func (m *mockRecipeService) Get(_ context.Context, _, _ string) (*model.Recipe, error) {
	return nil, service.ErrRecipeNotFound
}

func (m *mockRecipeService) UpdateSavedAndRating(_ context.Context, _, _ string, _ bool, _ float64) (*model.Recipe, error) {
	return nil, service.ErrRecipeNotFound
}

func (m *mockRecipeService) Delete(_ context.Context, _, _ string) error {
	return service.ErrRecipeNotFound
}

func newAuthedRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, "u1")
	return req.WithContext(ctx)
}

func TestGenerateRecipesHandler(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	t.Run("QuotaExceededIsPaymentRequired", func(t *testing.T) {
		h := NewRecipeHandler(&mockRecipeService{generateErr: service.ErrQuotaExceeded}, validate)
		req := newAuthedRequest(http.MethodPost, "/recipes/generate", `{"ingredients":["tomato"]}`)
		rr := httptest.NewRecorder()

		h.generateRecipes(rr, req)
		if rr.Code != http.StatusPaymentRequired {
			t.Fatalf("Expected 402, got %d", rr.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatalf("Expected JSON body, got %v", err)
		}
		if body["error"] != "quota_exceeded" {
			t.Errorf("Expected machine-readable quota_exceeded error, got %q", body["error"])
		}
	})

	t.Run("EmptyIngredientsRejected", func(t *testing.T) {
		h := NewRecipeHandler(&mockRecipeService{}, validate)
		req := newAuthedRequest(http.MethodPost, "/recipes/generate", `{"ingredients":[]}`)
		rr := httptest.NewRecorder()

		h.generateRecipes(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rr.Code)
		}
	})

	t.Run("MalformedJSONRejected", func(t *testing.T) {
		h := NewRecipeHandler(&mockRecipeService{}, validate)
		req := newAuthedRequest(http.MethodPost, "/recipes/generate", `{"ingredients":`)
		rr := httptest.NewRecorder()

		h.generateRecipes(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rr.Code)
		}
	})

	t.Run("Success", func(t *testing.T) {
		svc := &mockRecipeService{recipes: []model.Recipe{{ID: "r1", UserID: "u1", Title: "Tomato Rice"}}}
		h := NewRecipeHandler(svc, validate)
		req := newAuthedRequest(http.MethodPost, "/recipes/generate", `{"ingredients":["tomato","rice"]}`)
		rr := httptest.NewRecorder()

		h.generateRecipes(rr, req)
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", rr.Code)
		}

		var body []map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatalf("Expected JSON array body, got %v", err)
		}
		if len(body) != 1 || body[0]["title"] != "Tomato Rice" {
			t.Errorf("Unexpected response body: %+v", body)
		}
	})

	t.Run("NoContextUser", func(t *testing.T) {
		h := NewRecipeHandler(&mockRecipeService{}, validate)
		req := httptest.NewRequest(http.MethodPost, "/recipes/generate", strings.NewReader(`{"ingredients":["tomato"]}`))
		rr := httptest.NewRecorder()

		h.generateRecipes(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rr.Code)
		}
	})
}
