package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-guide/internal/service"
)

// MealHandler mantiene dependencias para endpoints de comidas.
type MealHandler struct {
	logger  *zap.Logger
	mealSvc *service.MealService
}

func NewMealHandler(logger *zap.Logger, mealSvc *service.MealService) *MealHandler {
	return &MealHandler{logger: logger, mealSvc: mealSvc}
}

// ListMeals maneja GET /meals.
func (h *MealHandler) ListMeals(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	meals, err := h.mealSvc.ListMeals(c.Request.Context(), claims.PrimaryFamily())
	if err != nil {
		if errors.Is(err, service.ErrNoFamily) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user has no family"})
			return
		}
		h.logger.Error("list meals failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// CreateMeal maneja POST /meals.
func (h *MealHandler) CreateMeal(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Name     string   `json:"name" binding:"required"`
		MealTime []string `json:"meal_time"`
		DishIDs  []string `json:"dish_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create meal request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	meal, err := h.mealSvc.CreateMeal(c.Request.Context(), service.CreateMealInput{
		Name:      req.Name,
		MealTime:  req.MealTime,
		DishIDs:   req.DishIDs,
		FamilyID:  claims.PrimaryFamily(),
		CreatedBy: claims.Subject,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMealNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "meal name is required"})
		case errors.Is(err, service.ErrNoFamily):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user has no family"})
		default:
			h.logger.Error("create meal failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create meal"})
		}
		return
	}

	c.JSON(http.StatusCreated, meal)
}
