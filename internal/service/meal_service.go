package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-guide/internal/domain"
	"meal-guide/internal/repository"
)

var ErrMealNameRequired = errors.New("meal name required")

// MealService coordina reglas de negocio para comidas.
type MealService struct {
	logger *zap.Logger
	meals  repository.MealRepository
}

func NewMealService(logger *zap.Logger, meals repository.MealRepository) *MealService {
	return &MealService{logger: logger, meals: meals}
}

type CreateMealInput struct {
	Name      string
	MealTime  []string
	DishIDs   []string
	FamilyID  string
	CreatedBy string
}

func (s *MealService) CreateMeal(ctx context.Context, input CreateMealInput) (domain.Meal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Meal{}, ErrMealNameRequired
	}
	if strings.TrimSpace(input.FamilyID) == "" {
		return domain.Meal{}, ErrNoFamily
	}

	mealTime := input.MealTime
	if mealTime == nil {
		mealTime = []string{}
	}

	now := time.Now().UTC()
	meal := domain.Meal{
		ID:        uuid.NewString(),
		Name:      name,
		MealTime:  mealTime,
		FamilyID:  input.FamilyID,
		CreatedBy: input.CreatedBy,
		DishIDs:   input.DishIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.meals.Create(ctx, meal); err != nil {
		return domain.Meal{}, err
	}
	return meal, nil
}

func (s *MealService) ListMeals(ctx context.Context, familyID string) ([]domain.Meal, error) {
	if strings.TrimSpace(familyID) == "" {
		return nil, ErrNoFamily
	}
	return s.meals.ListByFamily(ctx, familyID)
}
