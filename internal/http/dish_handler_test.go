package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"meal-guide/internal/domain"
	"meal-guide/internal/service"
)

type memDishRepo struct {
	dishes []domain.Dish
}

func (m *memDishRepo) Create(_ context.Context, dish domain.Dish) error {
	m.dishes = append(m.dishes, dish)
	return nil
}

func (m *memDishRepo) GetByID(_ context.Context, id string) (domain.Dish, error) {
	for _, d := range m.dishes {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Dish{}, pgx.ErrNoRows
}

func (m *memDishRepo) ListByFamily(_ context.Context, familyID string) ([]domain.Dish, error) {
	dishes := []domain.Dish{}
	for _, d := range m.dishes {
		if d.FamilyID == familyID {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}

func newDishRouter(t *testing.T, repo *memDishRepo) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := newTestTokenService(t, "secret")
	handler := NewDishHandler(zap.NewNop(), service.NewDishService(zap.NewNop(), repo))

	r := gin.New()
	dishes := r.Group("/dishes", AppTokenMiddleware(tokens))
	dishes.GET("", handler.ListDishes)
	dishes.POST("", handler.CreateDish)
	return r, tokens
}

func TestDishHandler_CreateScopesToPrimaryFamily(t *testing.T) {
	repo := &memDishRepo{}
	r, tokens := newDishRouter(t, repo)

	token, err := tokens.Issue(domain.User{ID: "u1", Email: "user@example.com"}, []string{"f1", "f2"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"name": "Tacos", "description": "tuesday"})
	req := httptest.NewRequest(http.MethodPost, "/dishes", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.dishes) != 1 {
		t.Fatalf("expected one dish, got %d", len(repo.dishes))
	}
	// Las escrituras van siempre a la primera familia del token.
	if repo.dishes[0].FamilyID != "f1" {
		t.Fatalf("expected dish scoped to f1, got %q", repo.dishes[0].FamilyID)
	}
	if repo.dishes[0].CreatedBy != "u1" {
		t.Fatalf("expected created_by u1, got %q", repo.dishes[0].CreatedBy)
	}
}

func TestDishHandler_CreateWithoutFamily(t *testing.T) {
	r, tokens := newDishRouter(t, &memDishRepo{})

	token, err := tokens.Issue(domain.User{ID: "u1", Email: "user@example.com"}, []string{})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"name": "Tacos"})
	req := httptest.NewRequest(http.MethodPost, "/dishes", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for user without family, got %d", rec.Code)
	}
}

func TestDishHandler_ListFiltersOtherFamilies(t *testing.T) {
	repo := &memDishRepo{dishes: []domain.Dish{
		{ID: "d1", Name: "Tacos", FamilyID: "f1"},
		{ID: "d2", Name: "Sopa", FamilyID: "f2"},
	}}
	r, tokens := newDishRouter(t, repo)

	token, err := tokens.Issue(domain.User{ID: "u1", Email: "user@example.com"}, []string{"f1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dishes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Dishes []domain.Dish `json:"dishes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Dishes) != 1 || resp.Dishes[0].ID != "d1" {
		t.Fatalf("unexpected dishes: %+v", resp.Dishes)
	}
}

func TestDishHandler_RequiresToken(t *testing.T) {
	r, _ := newDishRouter(t, &memDishRepo{})

	req := httptest.NewRequest(http.MethodGet, "/dishes", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
