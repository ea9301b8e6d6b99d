package service

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"

	"meal-guide/internal/auth0"
	"meal-guide/internal/domain"
)

type stubVerifier struct {
	claims jwt.MapClaims
	err    error
}

func (s stubVerifier) Verify(_ string) (jwt.MapClaims, error) {
	return s.claims, s.err
}

type stubUserInfo struct {
	profile auth0.Profile
	err     error
}

func (s stubUserInfo) UserInfo(_ context.Context, _ string) (auth0.Profile, error) {
	return s.profile, s.err
}

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	createErr    error
	createCalls  int
	onCreate     func()
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.createCalls++
	if m.onCreate != nil {
		m.onCreate()
	}
	if m.createErr != nil {
		return m.createErr
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.usersByID[id], nil
}

type mockFamilyRepo struct {
	idsByUser  map[string][]string
	families   map[string]domain.Family
	addedPairs [][2]string
	addErr     error
}

func newMockFamilyRepo() *mockFamilyRepo {
	return &mockFamilyRepo{
		idsByUser: make(map[string][]string),
		families:  make(map[string]domain.Family),
	}
}

func (m *mockFamilyRepo) CreateWithHead(_ context.Context, family domain.Family) (domain.Family, error) {
	m.families[family.ID] = family
	m.idsByUser[family.HeadOfFamily] = append(m.idsByUser[family.HeadOfFamily], family.ID)
	return family, nil
}

func (m *mockFamilyRepo) GetByID(_ context.Context, id string) (domain.Family, error) {
	family, ok := m.families[id]
	if !ok {
		return domain.Family{}, pgx.ErrNoRows
	}
	return family, nil
}

func (m *mockFamilyRepo) AddMember(_ context.Context, familyID, userID string) (domain.FamilyMember, error) {
	if m.addErr != nil {
		return domain.FamilyMember{}, m.addErr
	}
	m.addedPairs = append(m.addedPairs, [2]string{familyID, userID})
	m.idsByUser[userID] = append(m.idsByUser[userID], familyID)
	return domain.FamilyMember{FamilyID: familyID, UserID: userID}, nil
}

func (m *mockFamilyRepo) ListIDsByUser(_ context.Context, userID string) ([]string, error) {
	ids := m.idsByUser[userID]
	if ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

type mockDishRepo struct {
	dishes    []domain.Dish
	createErr error
}

func (m *mockDishRepo) Create(_ context.Context, dish domain.Dish) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.dishes = append(m.dishes, dish)
	return nil
}

func (m *mockDishRepo) GetByID(_ context.Context, id string) (domain.Dish, error) {
	for _, d := range m.dishes {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Dish{}, pgx.ErrNoRows
}

func (m *mockDishRepo) ListByFamily(_ context.Context, familyID string) ([]domain.Dish, error) {
	dishes := []domain.Dish{}
	for _, d := range m.dishes {
		if d.FamilyID == familyID {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}

type mockMealRepo struct {
	meals     []domain.Meal
	createErr error
}

func (m *mockMealRepo) Create(_ context.Context, meal domain.Meal) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.meals = append(m.meals, meal)
	return nil
}

func (m *mockMealRepo) GetByID(_ context.Context, id string) (domain.Meal, error) {
	for _, meal := range m.meals {
		if meal.ID == id {
			return meal, nil
		}
	}
	return domain.Meal{}, pgx.ErrNoRows
}

func (m *mockMealRepo) ListByFamily(_ context.Context, familyID string) ([]domain.Meal, error) {
	meals := []domain.Meal{}
	for _, meal := range m.meals {
		if meal.FamilyID == familyID {
			meals = append(meals, meal)
		}
	}
	return meals, nil
}

type mockPlanRepo struct {
	plans     []domain.MealPlan
	createErr error
}

func (m *mockPlanRepo) Create(_ context.Context, plan domain.MealPlan) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.plans = append(m.plans, plan)
	return nil
}

func (m *mockPlanRepo) ListByFamily(_ context.Context, familyID string) ([]domain.MealPlan, error) {
	plans := []domain.MealPlan{}
	for _, p := range m.plans {
		if p.FamilyID == familyID {
			plans = append(plans, p)
		}
	}
	return plans, nil
}

type mockEmailSender struct {
	lastTo string
	calls  int
	err    error
}

func (m *mockEmailSender) SendWelcome(_ context.Context, toEmail string) error {
	m.calls++
	m.lastTo = toEmail
	return m.err
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(_ string) bool { return true }

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(_ string) bool { return false }
