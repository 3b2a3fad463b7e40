package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"sublet_backend/database"
	"sublet_backend/internal/algorithms"
	"sublet_backend/internal/auth"
	"sublet_backend/internal/cache"
	"sublet_backend/internal/config"
	"sublet_backend/internal/geocoding"
	"sublet_backend/internal/handlers"
	"sublet_backend/internal/logger"
	"sublet_backend/internal/middleware"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/routes"
	"sublet_backend/internal/services"
	"sublet_backend/internal/validator"
	"sublet_backend/internal/workers"
	"sublet_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env == "development")

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		if err := database.Seed(gormDB); err != nil {
			logger.Fatal("Failed to seed reference data", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recsCache := newRecommendationCache(cfg)

	expiry := workers.NewListingExpiryWorker(gormDB, repositories.NewListingRepository(), recsCache, cfg.Workers.ListingExpiryInterval)
	expiry.Start(ctx)

	ginRouter, err := SetupRouter(cfg, gormDB, recsCache)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает сервисы, хэндлеры и маршруты поверх готового подключения к БД
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, recsCache cache.RecommendationCache) (*gin.Engine, error) {
	jwtManager, err := auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)
	if err != nil {
		return nil, err
	}

	serviceContainer := initializeServices(cfg, jwtManager, recsCache)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers, jwtManager)
	return ginRouter, nil
}

func initializeServices(cfg *config.Config, tokens *auth.JWTManager, recsCache cache.RecommendationCache) *services.ServiceContainer {
	geocoder := geocoding.NewClient(geocoding.Config{
		APIKey:           cfg.Geocoder.APIKey,
		BaseURL:          cfg.Geocoder.BaseURL,
		Timeout:          cfg.Geocoder.Timeout,
		RatePerSecond:    cfg.Geocoder.RatePerSecond,
		Burst:            cfg.Geocoder.Burst,
		FailureThreshold: cfg.Geocoder.FailureThreshold,
		OpenTimeout:      cfg.Geocoder.OpenTimeout,
		CountryFilter:    cfg.Geocoder.CountryFilter,
	})
	if cfg.Geocoder.APIKey == "" {
		logger.Warn("Geocoder API key is empty, address resolution will fail")
	}

	return services.NewServiceContainer(services.Dependencies{
		Tokens:    tokens,
		Geocoder:  geocoder,
		Suggester: geocoder,
		RecsCache: recsCache,
		Scoring: algorithms.ScoringParams{
			BaseScore:            cfg.Scoring.BaseScore,
			DistanceFactorBase:   cfg.Scoring.DistanceFactorBase,
			PriceFactorBase:      cfg.Scoring.PriceFactorBase,
			BathroomFactorBase:   cfg.Scoring.BathroomFactorBase,
			UtilitiesAdjustment:  cfg.Scoring.UtilitiesAdjustment,
			BuildingTypeFactor:   cfg.Scoring.BuildingTypeFactor,
			GenderFactor:         cfg.Scoring.GenderFactor,
			LegacyDistanceGrowth: cfg.Scoring.LegacyDistanceGrowth,
		},
		Selection:      algorithms.SelectionPolicy{DateSlackDays: cfg.Matching.DateSlackDays},
		CandidateLimit: cfg.Matching.CandidateLimit,
		TopN:           cfg.Recommendation.TopN,
		ScanLimit:      cfg.Recommendation.ScanLimit,
	})
}

// newRecommendationCache общий для сервисов и воркера истечения листингов
func newRecommendationCache(cfg *config.Config) cache.RecommendationCache {
	if !cfg.Redis.Enabled {
		logger.Warn("Redis disabled, recommendations are computed on every request")
		return cache.NoopRecommendationCache{}
	}
	client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	logger.Info("Recommendation cache enabled", "addr", cfg.Redis.Addr)
	return cache.NewRedisRecommendationCache(client, cfg.Recommendation.CacheTTL)
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:      handlers.NewUserHandler(baseHandler, services.UserService),
		ListingHandler:   handlers.NewListingHandler(baseHandler, services.ListingService),
		RenterHandler:    handlers.NewRenterHandler(baseHandler, services.RenterService),
		MatchingHandler:  handlers.NewMatchingHandler(baseHandler, services.MatchingService, services.SwipeService, services.RecommendationService),
		ReferenceHandler: handlers.NewReferenceHandler(baseHandler, services.ReferenceService, services.LocationService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
