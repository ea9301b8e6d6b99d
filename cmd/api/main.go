package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"meal-guide/internal/auth0"
	"meal-guide/internal/config"
	"meal-guide/internal/db"
	"meal-guide/internal/email"
	apihttp "meal-guide/internal/http"
	"meal-guide/internal/repository"
	"meal-guide/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	secret, err := cfg.SigningSecret()
	if err != nil {
		logger.Fatal("signing secret", zap.Error(err))
	}
	tokenSvc, err := service.NewTokenService(secret, cfg.Auth0Audience)
	if err != nil {
		logger.Fatal("token service", zap.Error(err))
	}

	verifier, err := auth0.NewVerifier(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		logger.Fatal("auth0 verifier", zap.Error(err))
	}
	defer verifier.Close()
	userinfoClient := auth0.NewClient(auth0.BaseURL(cfg.Auth0Domain))

	userRepo := repository.NewPgUserRepository(pool)
	familyRepo := repository.NewPgFamilyRepository(pool)
	dishRepo := repository.NewPgDishRepository(pool)
	mealRepo := repository.NewPgMealRepository(pool)
	planRepo := repository.NewPgMealPlanRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var loginLimiter service.LoginRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, time.Minute, 10)
		}
		cancel()
	}

	loginSvc := service.NewLoginService(logger, verifier, userinfoClient, userRepo, familyRepo, tokenSvc, emailSender, loginLimiter)
	familySvc := service.NewFamilyService(logger, familyRepo)
	dishSvc := service.NewDishService(logger, dishRepo)
	mealSvc := service.NewMealService(logger, mealRepo)
	planSvc := service.NewMealPlanService(logger, planRepo)

	authHandler := apihttp.NewAuthHandler(logger, loginSvc)
	familyHandler := apihttp.NewFamilyHandler(logger, familySvc)
	dishHandler := apihttp.NewDishHandler(logger, dishSvc)
	mealHandler := apihttp.NewMealHandler(logger, mealSvc)
	planHandler := apihttp.NewMealPlanHandler(logger, planSvc)
	healthHandler := apihttp.NewHealthHandler(logger, pool)

	router := apihttp.NewRouter(logger, tokenSvc, authHandler, familyHandler, dishHandler, mealHandler, planHandler, healthHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
