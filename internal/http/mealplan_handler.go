package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-guide/internal/service"
)

// MealPlanHandler mantiene dependencias para endpoints de planes semanales.
type MealPlanHandler struct {
	logger  *zap.Logger
	planSvc *service.MealPlanService
}

func NewMealPlanHandler(logger *zap.Logger, planSvc *service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{logger: logger, planSvc: planSvc}
}

// ListPlans maneja GET /meal-plans.
func (h *MealPlanHandler) ListPlans(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plans, err := h.planSvc.ListPlans(c.Request.Context(), claims.PrimaryFamily())
	if err != nil {
		if errors.Is(err, service.ErrNoFamily) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user has no family"})
			return
		}
		h.logger.Error("list meal plans failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list meal plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

// CreatePlan maneja POST /meal-plans.
func (h *MealPlanHandler) CreatePlan(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
		Details   []struct {
			MealID   string `json:"meal_id" binding:"required"`
			MealTime string `json:"meal_time" binding:"required"`
			Weekday  string `json:"weekday" binding:"required"`
		} `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create meal plan request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	input := service.CreatePlanInput{
		FamilyID:  claims.PrimaryFamily(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	for _, detail := range req.Details {
		input.Details = append(input.Details, service.CreatePlanDetailInput{
			MealID:   detail.MealID,
			MealTime: detail.MealTime,
			Weekday:  detail.Weekday,
		})
	}

	plan, err := h.planSvc.CreatePlan(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFamily):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user has no family"})
		case errors.Is(err, service.ErrPlanDatesRequired), errors.Is(err, service.ErrPlanDetailInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("create meal plan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create meal plan"})
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}
