package main

import (
	"context"
	"fmt"
	"log"
	"mySmartShop/app/echo-server/router"
	"mySmartShop/business/category"
	"mySmartShop/business/interaction"
	"mySmartShop/business/product"
	"mySmartShop/business/recommender"
	userService "mySmartShop/business/user"
	"mySmartShop/internal/middleware"
	"mySmartShop/internal/repository/gemini"
	"mySmartShop/internal/repository/notification"
	psqlRepo "mySmartShop/internal/repository/postgres"
	redisRepo "mySmartShop/internal/repository/redis"
	"mySmartShop/internal/rest"
	"mySmartShop/pkg/config"
	"mySmartShop/pkg/database"
	redisdb "mySmartShop/pkg/database/redis"
	"mySmartShop/pkg/logger"
	"mySmartShop/pkg/metrics"
	"mySmartShop/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MySmartShop", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis backs sessions and the recommendation cache; both degrade to
	// the database when it is unavailable
	var (
		tokenRepo *redisRepo.TokenRepository
		recoCache *redisRepo.RecommendationCache
	)
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, sessions and caching disabled", "error", err)
	} else {
		tokenRepo = redisRepo.NewTokenRepository(redisClient)
		recoCache = redisRepo.NewRecommendationCache(redisClient, 15*time.Minute)
	}

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	geminiRepo := gemini.NewGeminiRepository(
		gemini.GeminiConfig{
			APIKey:      cfg.Gemini.APIKey,
			BaseUrl:     cfg.Gemini.BaseUrl,
			Model:       cfg.Gemini.Model,
			Temperature: cfg.Gemini.Temperature,
			MaxTokens:   cfg.Gemini.MaxTokens,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	recommendationRepo := psqlRepo.NewRecommendationRepository(db)

	// Init service
	engineCfg := recommender.DefaultConfig()
	engineCfg.CollabWeight = cfg.Recommender.CollabWeight
	engineCfg.ContentWeight = cfg.Recommender.ContentWeight
	engineCfg.NeighborCount = cfg.Recommender.NeighborCount
	engineCfg.DiversityCap = cfg.Recommender.DiversityCap
	engineCfg.RecencyWindowDays = cfg.Recommender.RecencyWindowDays

	var sessionRepo userService.SessionRepository
	var recoServiceCache recommender.RecommendationCache
	var cacheInvalidator interaction.RecommendationCacheInvalidator
	if tokenRepo != nil {
		sessionRepo = tokenRepo
	}
	if recoCache != nil {
		recoServiceCache = recoCache
		cacheInvalidator = recoCache
	}

	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, sessionRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	productService := product.NewProductService(productsRepo)
	categoryService := category.NewCategoryService(productsRepo)
	interactionService := interaction.NewInteractionService(interactionRepo, productsRepo, userRepo, cacheInvalidator)
	recommenderService := recommender.NewService(
		productsRepo,
		interactionRepo,
		userRepo,
		recommendationRepo,
		geminiRepo,
		recoServiceCache,
		engineCfg,
		time.Duration(cfg.Gemini.TimeoutMS)*time.Millisecond,
	)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	interactionHandler := rest.NewInteractionHandler(interactionService)
	recommendationHandler := rest.NewRecommendationHandler(recommenderService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	if tokenRepo != nil {
		authRequired = middleware.AuthMiddlewareWithRedis(tokenRepo)
	}
	adminOnly := middleware.AdminOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired)
	router.SetupInteractionRoutes(api, interactionHandler, authRequired, selfOrAdmin)
	router.SetupRecommendationRoutes(api, recommendationHandler, authRequired, selfOrAdmin)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Redis shutdown error", "error", err)
		}
	}

	logger.Info("Server stopped")
}
