package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meal-guide/internal/service"
)

const authClaimsKey = "auth_claims"

// bearerToken extrae el token del header Authorization.
func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	if token == "" {
		return "", false
	}
	return token, true
}

// AppTokenMiddleware valida app tokens y guarda claims en el contexto. Es la
// única puerta de autorización; toda ruta no envuelta por él es pública.
func AppTokenMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token service not configured"})
			c.Abort()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "app access token is required"})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene los claims del app token desde el contexto.
func GetAuthClaims(c *gin.Context) (service.AppClaims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.AppClaims{}, false
	}
	claims, ok := val.(service.AppClaims)
	return claims, ok
}
