package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"weatherlookup/internal/config"
	"weatherlookup/internal/forecast"
	"weatherlookup/internal/geocoding"
	"weatherlookup/internal/handler"
	"weatherlookup/internal/logger"
	"weatherlookup/internal/repository"
	"weatherlookup/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New("production").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	log.Info("weather lookup server",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = repo.Migrate(migrateCtx)
	cancel()
	if err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL database")

	// Initialize upstream clients
	geo, err := geocoding.NewClient(geocoding.Options{
		BaseURL:  cfg.Geocoding.BaseURL,
		Language: cfg.Geocoding.Language,
		Timeout:  cfg.Geocoding.Timeout,
		RPS:      cfg.Geocoding.RPS,
		Logger:   log,
	})
	if err != nil {
		log.Error("failed to create geocoding client", "error", err)
		os.Exit(1)
	}
	weather := forecast.NewClient(cfg.Forecast.BaseURL, cfg.Forecast.Hourly, cfg.Forecast.Timeout, log)

	// Initialize services
	suggestService := service.NewSuggestService(geo, cfg.Geocoding.SuggestCount, cfg.Geocoding.MinQueryLength)
	historyService := service.NewHistoryService(repo, log)
	weatherService := service.NewWeatherService(geo, weather, repo, log)

	log.Info("services initialized")

	// Initialize handlers
	sessions := handler.Sessions{
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.Session.MaxAge,
		Secure:     cfg.Session.Secure,
	}
	handlers := handler.Handlers{
		Suggest:     handler.NewSuggestHandler(suggestService, log),
		Weather:     handler.NewWeatherHandler(weatherService, historyService, sessions, log),
		History:     handler.NewHistoryHandler(historyService, sessions),
		RateLimiter: handler.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst, log),
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestID())
	router.Use(handler.RequestLogger(log))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if err := repo.Ping(c.Request.Context()); err != nil {
			log.WithContext(c.Request.Context()).DatabaseError("ping", err)
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":     status,
			"service":    "weather-lookup",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Templates and static assets are provided by embed.go or static_dev.go
	setupAssets(router, log)

	handler.RegisterRoutes(router, handlers)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", "addr", srv.Addr, "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	log.Info("server stopped")
}
