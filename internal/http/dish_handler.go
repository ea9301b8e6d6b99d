package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-guide/internal/service"
)

// DishHandler mantiene dependencias para endpoints de platos. Todas las
// operaciones se limitan a la familia primaria del token.
type DishHandler struct {
	logger  *zap.Logger
	dishSvc *service.DishService
}

func NewDishHandler(logger *zap.Logger, dishSvc *service.DishService) *DishHandler {
	return &DishHandler{logger: logger, dishSvc: dishSvc}
}

// ListDishes maneja GET /dishes.
func (h *DishHandler) ListDishes(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dishes, err := h.dishSvc.ListDishes(c.Request.Context(), claims.PrimaryFamily())
	if err != nil {
		if errors.Is(err, service.ErrNoFamily) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user has no family"})
			return
		}
		h.logger.Error("list dishes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list dishes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dishes": dishes})
}

// CreateDish maneja POST /dishes.
func (h *DishHandler) CreateDish(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create dish request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	dish, err := h.dishSvc.CreateDish(c.Request.Context(), service.CreateDishInput{
		Name:        req.Name,
		Description: req.Description,
		FamilyID:    claims.PrimaryFamily(),
		CreatedBy:   claims.Subject,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDishNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "dish name is required"})
		case errors.Is(err, service.ErrNoFamily):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user has no family"})
		case errors.Is(err, service.ErrDishExists):
			c.JSON(http.StatusConflict, gin.H{"error": "dish already exists"})
		default:
			h.logger.Error("create dish failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create dish"})
		}
		return
	}

	c.JSON(http.StatusCreated, dish)
}
