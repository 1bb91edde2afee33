package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/cycle-count-api/api/swagger"
	"github.com/noah-isme/cycle-count-api/internal/handler"
	"github.com/noah-isme/cycle-count-api/internal/middleware"
	"github.com/noah-isme/cycle-count-api/internal/repository"
	"github.com/noah-isme/cycle-count-api/internal/service"
	"github.com/noah-isme/cycle-count-api/pkg/cache"
	"github.com/noah-isme/cycle-count-api/pkg/config"
	"github.com/noah-isme/cycle-count-api/pkg/database"
	"github.com/noah-isme/cycle-count-api/pkg/events"
	"github.com/noah-isme/cycle-count-api/pkg/jobs"
	"github.com/noah-isme/cycle-count-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/cycle-count-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/cycle-count-api/pkg/middleware/requestid"
)

// @title Cycle Count API
// @version 1.0.0
// @description Hourly production output for the cycle count dashboard
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres unavailable", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	readiness := map[string]handler.ReadinessCheck{"postgres": db.PingContext}

	var cacheRepo service.CacheRepository
	if cfg.Production.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, hourly cache disabled", "error", err)
		} else {
			redisRepo := repository.NewCacheRepository(client, logr)
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
			readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Production.CacheTTL, logr, cacheRepo != nil)

	productionParams := service.ProductionServiceParams{
		Counters:   repository.NewCounterRepository(db),
		Attendance: repository.NewShiftAttendanceRepository(db),
		Cache:      cacheSvc,
		Validator:  validator.New(),
		Metrics:    metrics,
		Logger:     logr,
	}
	if cfg.Events.Enabled {
		queue, closePublisher, err := startEventQueue(cfg.Events, logr)
		if err != nil {
			logr.Sugar().Fatalw("event publisher unavailable", "error", err)
		}
		defer closePublisher()
		if err := metrics.RegisterQueue("production-events", queue.Stats); err != nil {
			logr.Warn("queue metrics unavailable", zap.Error(err))
		}
		productionParams.Events = queue
	}

	hourlySvc := service.NewHourlyOutputService(service.HourlyOutputServiceParams{
		Counters:   repository.NewCounterRepository(db),
		Attendance: repository.NewShiftAttendanceRepository(db),
		Cache:      cacheSvc,
		Metrics:    metrics,
		Logger:     logr,
		Config: service.HourlyOutputServiceConfig{
			CacheTTL:     cfg.Production.CacheTTL,
			Location:     cfg.Production.Location(),
			DefaultShift: cfg.Production.DefaultShift,
		},
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Hourly:     handler.NewHourlyOutputHandler(hourlySvc),
		Production: handler.NewProductionHandler(service.NewProductionService(productionParams)),
		Metrics:    handler.NewMetricsHandler(metrics, readiness),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}

// startEventQueue wires the Kafka publisher behind a worker queue. Workers run
// until the returned func stops them, after the HTTP server has drained.
func startEventQueue(cfg config.EventsConfig, logr *zap.Logger) (*jobs.Queue, func(), error) {
	publisher, err := events.NewKafkaPublisher(events.Config{Brokers: cfg.Brokers, Topic: cfg.Topic}, logr)
	if err != nil {
		return nil, nil, err
	}
	queue := jobs.NewQueue("production-events", publisher.Handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logr,
	})
	queue.Start(context.Background())
	return queue, func() {
		queue.Stop()
		if err := publisher.Close(); err != nil {
			logr.Warn("close event publisher", zap.Error(err))
		}
	}, nil
}
