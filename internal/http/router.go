package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-guide/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas. Las rutas de
// auth y health son públicas; el resto pasa por AppTokenMiddleware.
func NewRouter(
	logger *zap.Logger,
	tokens *service.TokenService,
	authH *AuthHandler,
	familyH *FamilyHandler,
	dishH *DishHandler,
	mealH *MealHandler,
	planH *MealPlanHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthH.Health)

	auth := r.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/validate", authH.Validate)

	protected := r.Group("", AppTokenMiddleware(tokens))

	families := protected.Group("/families")
	families.POST("", familyH.CreateFamily)
	families.GET("", familyH.ListFamilies)

	dishes := protected.Group("/dishes")
	dishes.GET("", dishH.ListDishes)
	dishes.POST("", dishH.CreateDish)

	meals := protected.Group("/meals")
	meals.GET("", mealH.ListMeals)
	meals.POST("", mealH.CreateMeal)

	plans := protected.Group("/meal-plans")
	plans.GET("", planH.ListPlans)
	plans.POST("", planH.CreatePlan)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
