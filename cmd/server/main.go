package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	rentalapp "github.com/rentora/backend/internal/application/rental"
	reportapp "github.com/rentora/backend/internal/application/report"
	"github.com/rentora/backend/internal/domain/revenue"
	"github.com/rentora/backend/internal/infrastructure/cache"
	"github.com/rentora/backend/internal/infrastructure/config"
	"github.com/rentora/backend/internal/infrastructure/logger"
	"github.com/rentora/backend/internal/infrastructure/persistence"
	"github.com/rentora/backend/internal/interfaces/http/handler"
	"github.com/rentora/backend/internal/interfaces/http/middleware"
	"github.com/rentora/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	// Report cache: Redis when enabled, in-memory fallback otherwise
	var reportCache revenue.ReportCache
	if cfg.Revenue.ReportCacheEnabled {
		redisCache, err := cache.NewRedisReportCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, using in-memory report cache", zap.Error(err))
			reportCache = cache.NewInMemoryReportCache()
		} else {
			log.Info("Redis report cache connected",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
			reportCache = redisCache
		}
	} else {
		reportCache = cache.NewInMemoryReportCache()
	}
	defer reportCache.Close()

	// Revenue engine with the configured business-day timezone
	dayLocation, err := cfg.Revenue.DayLocation()
	if err != nil {
		log.Fatal("Invalid day timezone", zap.Error(err))
	}
	engine := revenue.NewEngine(revenue.WithDayPolicy(revenue.NewDayPolicy(dayLocation)))

	// Repositories and services
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	orderService := rentalapp.NewOrderService(orderRepo,
		rentalapp.WithReportCache(reportCache),
		rentalapp.WithLogger(log),
	)
	reportService := reportapp.NewReportService(orderRepo, engine,
		reportapp.WithReportCache(reportCache, cfg.Revenue.ReportCacheTTL),
		reportapp.WithLogger(log),
	)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	ginEngine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	ginEngine.Use(middleware.RequestID())
	ginEngine.Use(middleware.Recovery(log))
	ginEngine.Use(middleware.RequestLogger(log))
	ginEngine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r := router.NewRouter(ginEngine)
	r.Register(handler.NewOrderHandler(orderService))
	r.Register(handler.NewReportHandler(reportService))
	r.Register(handler.NewSystemHandler(cfg.App.Name, version, db))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
