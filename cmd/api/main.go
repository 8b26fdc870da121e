package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medtrack/clinic-api/internal/config"
	"github.com/medtrack/clinic-api/internal/email"
	"github.com/medtrack/clinic-api/internal/handler"
	authHandler "github.com/medtrack/clinic-api/internal/handler/auth"
	dashboardHandler "github.com/medtrack/clinic-api/internal/handler/dashboard"
	doctorHandler "github.com/medtrack/clinic-api/internal/handler/doctor"
	medicationHandler "github.com/medtrack/clinic-api/internal/handler/medication"
	patientHandler "github.com/medtrack/clinic-api/internal/handler/patient"
	visitHandler "github.com/medtrack/clinic-api/internal/handler/visit"
	"github.com/medtrack/clinic-api/internal/middleware"
	"github.com/medtrack/clinic-api/internal/repository/postgres"
	"github.com/medtrack/clinic-api/internal/router"
	authService "github.com/medtrack/clinic-api/internal/service/auth"
	dashboardService "github.com/medtrack/clinic-api/internal/service/dashboard"
	doctorService "github.com/medtrack/clinic-api/internal/service/doctor"
	medicationService "github.com/medtrack/clinic-api/internal/service/medication"
	patientService "github.com/medtrack/clinic-api/internal/service/patient"
	visitService "github.com/medtrack/clinic-api/internal/service/visit"
	"github.com/medtrack/clinic-api/pkg/auth"
	"github.com/medtrack/clinic-api/pkg/cache"
	"github.com/medtrack/clinic-api/pkg/logger"
	"github.com/medtrack/clinic-api/pkg/metrics"
	"github.com/medtrack/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || cfg.Logging.Level == "" {
		level = zerolog.InfoLevel
	}
	logger.SetGlobal(logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Logging.Pretty,
	}))

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	visitRepo := postgres.NewVisitRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)

	// Dashboard stats are cached in Redis when it is configured.
	var statsCache cache.Cache
	if cfg.Redis.URL != "" {
		statsCache, err = cache.NewRedisCache(cache.Config{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer statsCache.Close()
	}

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	m := metrics.NewMetrics("clinic_api")

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher, emailSvc)
	patientSvc := patientService.NewService(patientRepo)
	visitSvc := visitService.NewService(visitRepo, patientRepo, userRepo, m)
	doctorSvc := doctorService.NewService(userRepo)
	medicationSvc := medicationService.NewService(medicationRepo)
	dashboardSvc := dashboardService.NewService(patientRepo, visitRepo, statsCache)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	h := handler.NewHandler(db)

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(patientSvc, visitSvc),
		visitHandler.NewHandler(visitSvc),
		doctorHandler.NewHandler(doctorSvc),
		medicationHandler.NewHandler(medicationSvc),
		dashboardHandler.NewHandler(dashboardSvc),
		h,
		router.RouterConfig{
			RateLimit: middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			},
			CORSConfig:     middleware.DefaultCORSConfig(),
			TimeoutSeconds: cfg.Server.TimeoutSeconds,
			Metrics:        m,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
