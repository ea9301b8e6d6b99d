package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-guide/internal/domain"
	"meal-guide/internal/repository"
)

var (
	ErrPlanDatesRequired = errors.New("plan start and end dates required")
	ErrPlanDetailInvalid = errors.New("plan detail invalid")
)

// MealPlanService coordina reglas de negocio para planes semanales.
type MealPlanService struct {
	logger *zap.Logger
	plans  repository.MealPlanRepository
}

func NewMealPlanService(logger *zap.Logger, plans repository.MealPlanRepository) *MealPlanService {
	return &MealPlanService{logger: logger, plans: plans}
}

type CreatePlanInput struct {
	FamilyID  string
	StartDate string
	EndDate   string
	Details   []CreatePlanDetailInput
}

type CreatePlanDetailInput struct {
	MealID   string
	MealTime string
	Weekday  string
}

func (s *MealPlanService) CreatePlan(ctx context.Context, input CreatePlanInput) (domain.MealPlan, error) {
	if strings.TrimSpace(input.FamilyID) == "" {
		return domain.MealPlan{}, ErrNoFamily
	}
	if strings.TrimSpace(input.StartDate) == "" || strings.TrimSpace(input.EndDate) == "" {
		return domain.MealPlan{}, ErrPlanDatesRequired
	}

	now := time.Now().UTC()
	plan := domain.MealPlan{
		ID:        uuid.NewString(),
		FamilyID:  input.FamilyID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, detail := range input.Details {
		if strings.TrimSpace(detail.MealID) == "" ||
			!slices.Contains(domain.MealTimes, detail.MealTime) ||
			!slices.Contains(domain.Weekdays, detail.Weekday) {
			return domain.MealPlan{}, ErrPlanDetailInvalid
		}
		plan.Details = append(plan.Details, domain.MealPlanDetail{
			ID:         uuid.NewString(),
			MealPlanID: plan.ID,
			MealID:     detail.MealID,
			MealTime:   detail.MealTime,
			Weekday:    detail.Weekday,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return domain.MealPlan{}, err
	}
	return plan, nil
}

func (s *MealPlanService) ListPlans(ctx context.Context, familyID string) ([]domain.MealPlan, error) {
	if strings.TrimSpace(familyID) == "" {
		return nil, ErrNoFamily
	}
	return s.plans.ListByFamily(ctx, familyID)
}
