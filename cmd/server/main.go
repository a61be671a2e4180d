package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fantasyops/leaguedesk/internal/analytics"
	"github.com/fantasyops/leaguedesk/internal/api/handlers"
	"github.com/fantasyops/leaguedesk/internal/config"
	"github.com/fantasyops/leaguedesk/internal/providers"
	"github.com/fantasyops/leaguedesk/internal/services"
	"github.com/fantasyops/leaguedesk/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithService("leaguedesk").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting league data service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Postgres; fall back to in-memory registry storage when
	// no database is reachable so the service still works for ad-hoc use.
	var db *gorm.DB
	var registryStorage services.RegistryStorage
	var credentialStorage services.CredentialStorage

	db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.WithService("leaguedesk").WithError(err).
			Warn("Database unavailable, using in-memory registration storage")
		db = nil
		registryStorage = services.NewMemoryRegistryStorage()
		credentialStorage = services.NewMemoryCredentialStorage()
	} else {
		gormRegistry, err := services.NewGormRegistryStorage(db)
		if err != nil {
			logger.WithService("leaguedesk").Fatalf("Failed to migrate registry schema: %v", err)
		}
		gormCredentials, err := services.NewGormCredentialStorage(db)
		if err != nil {
			logger.WithService("leaguedesk").Fatalf("Failed to migrate credential schema: %v", err)
		}
		registryStorage = gormRegistry
		credentialStorage = gormCredentials
	}

	// Connect to Redis; fall back to the in-process cache on failure.
	var redisClient *redis.Client
	var cacheStore services.CacheStore

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("leaguedesk").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient = redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.WithService("leaguedesk").WithError(err).
			Warn("Redis unavailable, using in-memory cache")
		redisClient = nil
		cacheStore = services.NewMemoryCacheStore()
	} else {
		defer redisClient.Close()
		cacheStore = services.NewRedisCacheStore(redisClient)
	}

	// Wire services
	espnClient := providers.NewESPNClient(providers.ESPNClientOptions{
		BaseURL:          cfg.ProviderBaseURL,
		Timeout:          cfg.ProviderTimeout,
		RetryAttempts:    cfg.ProviderRetryAttempts,
		BackoffBase:      cfg.ProviderBackoffBase,
		OverallDeadline:  cfg.ProviderOverallDeadline,
		BreakerThreshold: cfg.CircuitBreakerThreshold,
	}, structuredLogger)

	cacheService := services.NewCacheService(cacheStore, structuredLogger)
	credentialStore := services.NewCredentialStore(credentialStorage, structuredLogger)
	registry := services.NewLeagueRegistry(registryStorage, structuredLogger)
	dataService := services.NewLeagueDataService(espnClient, cacheService, credentialStore, services.CacheTTLs{
		LiveWeek: cfg.LiveWeekTTL,
		Settled:  cfg.SettledTTL,
		Settings: cfg.SettingsTTL,
	}, structuredLogger)

	engine := analytics.NewEngine(analytics.Options{
		RecencyWeight:           cfg.RecencyWeight,
		RecentWindow:            cfg.RecentWindowWeeks,
		TradeBalancedBand:       cfg.TradeBalancedBand,
		SleeperTrendThreshold:   cfg.SleeperTrendThreshold,
		SleeperOwnershipCeiling: cfg.SleeperOwnershipCeiling,
		WaiverTopN:              cfg.WaiverTopN,
	})

	var refresher *services.CacheRefresher
	if cfg.EnableRefresh {
		refresher = services.NewCacheRefresher(dataService, cfg.RefreshSpec, structuredLogger)
		if err := refresher.Start(); err != nil {
			logger.WithService("leaguedesk").Fatalf("Failed to start cache refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	leagueHandler := handlers.NewLeagueHandler(registry, credentialStore, dataService, structuredLogger)
	dataHandler := handlers.NewDataHandler(registry, dataService, structuredLogger)
	analyticsHandler := handlers.NewAnalyticsHandler(registry, dataService, engine, structuredLogger)
	healthHandler := handlers.NewHealthHandler(db, redisClient, refresher, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		// League registration and discovery
		apiV1.POST("/leagues", leagueHandler.RegisterLeague)
		apiV1.GET("/leagues", leagueHandler.ListLeagues)
		apiV1.PUT("/leagues/default", leagueHandler.SetDefaultLeague)
		apiV1.DELETE("/leagues/:id", leagueHandler.RemoveLeague)
		apiV1.GET("/community/leagues", leagueHandler.ListCommunityLeagues)

		// League data
		apiV1.GET("/league", dataHandler.GetLeague)
		apiV1.GET("/standings", dataHandler.GetStandings)
		apiV1.GET("/rosters", dataHandler.GetRosters)
		apiV1.GET("/matchups", dataHandler.GetMatchups)
		apiV1.GET("/players", dataHandler.GetPlayers)

		// Analytics
		apiV1.GET("/analytics/compare", analyticsHandler.CompareTeams)
		apiV1.POST("/analytics/trade", analyticsHandler.EvaluateTrade)
		apiV1.GET("/analytics/waiver", analyticsHandler.GetWaiverTargets)
		apiV1.GET("/analytics/sleepers", analyticsHandler.GetSleepers)
		apiV1.GET("/analytics/matchup", analyticsHandler.AnalyzeMatchup)
	}

	// Health check endpoints (support both GET and HEAD)
	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.HEAD("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("leaguedesk").WithField("port", cfg.Port).Info("League data service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("leaguedesk").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("leaguedesk").Info("Shutting down league data service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("leaguedesk").Fatalf("League data service forced to shutdown: %v", err)
	}

	logger.WithService("leaguedesk").Info("League data service exited")
}
