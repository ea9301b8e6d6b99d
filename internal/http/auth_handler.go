package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-guide/internal/auth0"
	"meal-guide/internal/service"
)

// AuthHandler mantiene dependencias para el intercambio y validación de
// tokens.
type AuthHandler struct {
	logger   *zap.Logger
	loginSvc *service.LoginService
}

func NewAuthHandler(logger *zap.Logger, loginSvc *service.LoginService) *AuthHandler {
	return &AuthHandler{logger: logger, loginSvc: loginSvc}
}

// Login maneja POST /auth/login: intercambia un access token del proveedor
// de identidad por un app token.
func (h *AuthHandler) Login(c *gin.Context) {
	externalToken, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity token is required"})
		return
	}

	result, err := h.loginSvc.Login(c.Request.Context(), externalToken)
	if err != nil {
		switch {
		case errors.Is(err, auth0.ErrTokenInvalid):
			// El detalle queda en logs; al cliente sólo un mensaje genérico.
			h.logger.Debug("identity token rejected", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity token"})
		case errors.Is(err, auth0.ErrUpstream):
			h.logger.Error("identity provider unavailable", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "identity provider unavailable"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		}
		return
	}

	families := make([]gin.H, 0, len(result.FamilyIDs))
	for _, id := range result.FamilyIDs {
		families = append(families, gin.H{"family_id": id})
	}

	c.JSON(http.StatusOK, gin.H{
		"is_new": result.IsNew,
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
		},
		"access_token": result.AccessToken,
		"families":     families,
	})
}

// Validate maneja POST /auth/validate: decodifica un app token y devuelve
// sus claims.
func (h *AuthHandler) Validate(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "app token is required"})
		return
	}

	claims, err := h.loginSvc.Validate(token)
	if err != nil {
		h.logger.Debug("app token rejected", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid app token"})
		return
	}

	families := claims.Families
	if families == nil {
		families = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    claims.Subject,
			"email": claims.Email,
		},
		"families": families,
	})
}
