package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"tattoo-studio-server/internal/config"
	"tattoo-studio-server/internal/logging"
	"tattoo-studio-server/internal/metrics"
	"tattoo-studio-server/internal/middleware"
	"tattoo-studio-server/internal/models"
	"tattoo-studio-server/internal/routes"
	"tattoo-studio-server/internal/storage"
	"tattoo-studio-server/internal/store"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	if envErr != nil {
		logger.Info("no .env file loaded, using process environment", "err", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage unavailable", "driver", cfg.Storage.Driver, "err", err)
		os.Exit(1)
	}
	defer closeKV()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(registry)

	catalog := models.Catalog{TimeSlots: cfg.Studio.TimeSlots, Services: cfg.Studio.Services}
	loc := cfg.Studio.Location
	appointments := store.New(kv, catalog,
		store.WithLogger(logger),
		store.WithMetrics(bookingMetrics),
		store.WithClock(func() time.Time { return time.Now().In(loc) }),
		store.WithKey(cfg.Storage.Key),
		store.WithWeekStart(cfg.Studio.WeekStart),
	)
	if err := appointments.Restore(ctx); err != nil {
		logger.Warn("starting with an empty appointment list", "err", err)
	}

	admin, err := models.NewAdmin(cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		logger.Error("could not prepare admin credentials", "err", err)
		os.Exit(1)
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger, bookingMetrics))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Dependencies{
		Cfg:      cfg,
		Store:    appointments,
		KV:       kv,
		Admin:    admin,
		Logger:   logger,
		Gatherer: registry,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server running", "port", cfg.Port, "storage", cfg.Storage.Driver, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}

// openStorage connects the configured key-value backend. The returned func
// releases its connections.
func openStorage(ctx context.Context, cfg *config.Config, logger *logging.Logger) (storage.KeyValue, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
		if err != nil {
			return nil, nil, fmt.Errorf("connect mysql: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logger.Info("using mysql storage", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return storage.NewSQLStore(db), closeFn, nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("using redis storage", "addr", cfg.Redis.Addr)
		return storage.NewRedisStore(rdb, cfg.Redis.KeyPrefix), func() { _ = rdb.Close() }, nil

	default:
		logger.Warn("using in-memory storage, appointments are lost on restart")
		return storage.NewMemoryStore(), func() {}, nil
	}
}
