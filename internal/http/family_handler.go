package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-guide/internal/service"
)

// FamilyHandler mantiene dependencias para endpoints de familias.
type FamilyHandler struct {
	logger    *zap.Logger
	familySvc *service.FamilyService
}

func NewFamilyHandler(logger *zap.Logger, familySvc *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{logger: logger, familySvc: familySvc}
}

// CreateFamily maneja POST /families. El usuario autenticado queda como head
// y miembro de la familia nueva.
func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Name    string   `json:"name" binding:"required"`
		Members []string `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create family request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	family, err := h.familySvc.CreateFamily(c.Request.Context(), req.Name, claims.Subject, req.Members)
	if err != nil {
		if errors.Is(err, service.ErrFamilyNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "family name is required"})
			return
		}
		h.logger.Error("create family failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create family"})
		return
	}

	c.JSON(http.StatusCreated, family)
}

// ListFamilies maneja GET /families: ids de familia del usuario autenticado.
func (h *FamilyHandler) ListFamilies(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ids, err := h.familySvc.FamilyIDs(c.Request.Context(), claims.Subject)
	if err != nil {
		h.logger.Error("list families failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list families"})
		return
	}

	families := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		families = append(families, gin.H{"family_id": id})
	}
	c.JSON(http.StatusOK, gin.H{"families": families})
}
