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

var (
	ErrDishNameRequired = errors.New("dish name required")
	ErrDishExists       = errors.New("dish already exists in family")
	ErrNoFamily         = errors.New("user has no family")
)

// DishService coordina reglas de negocio para platos.
type DishService struct {
	logger *zap.Logger
	dishes repository.DishRepository
}

func NewDishService(logger *zap.Logger, dishes repository.DishRepository) *DishService {
	return &DishService{logger: logger, dishes: dishes}
}

type CreateDishInput struct {
	Name        string
	Description string
	FamilyID    string
	CreatedBy   string
}

// CreateDish inserta un plato en la familia indicada. El nombre es único por
// familia sin distinguir mayúsculas.
func (s *DishService) CreateDish(ctx context.Context, input CreateDishInput) (domain.Dish, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Dish{}, ErrDishNameRequired
	}
	if strings.TrimSpace(input.FamilyID) == "" {
		return domain.Dish{}, ErrNoFamily
	}

	now := time.Now().UTC()
	dish := domain.Dish{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		FamilyID:    input.FamilyID,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.dishes.Create(ctx, dish); err != nil {
		if repository.IsUniqueViolation(err) {
			return domain.Dish{}, ErrDishExists
		}
		return domain.Dish{}, err
	}
	return dish, nil
}

// ListDishes devuelve los platos de la familia.
func (s *DishService) ListDishes(ctx context.Context, familyID string) ([]domain.Dish, error) {
	if strings.TrimSpace(familyID) == "" {
		return nil, ErrNoFamily
	}
	return s.dishes.ListByFamily(ctx, familyID)
}
