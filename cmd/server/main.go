package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adilbekov/timetrack/config"
	"github.com/adilbekov/timetrack/internal/email"
	"github.com/adilbekov/timetrack/internal/health"
	"github.com/adilbekov/timetrack/internal/infrastructure/postgres"
	"github.com/adilbekov/timetrack/internal/janitor"
	ctxlog "github.com/adilbekov/timetrack/internal/log"
	"github.com/adilbekov/timetrack/internal/metrics"
	"github.com/adilbekov/timetrack/internal/token"
	httptransport "github.com/adilbekov/timetrack/internal/transport/http"
	"github.com/adilbekov/timetrack/internal/transport/http/handler"
	"github.com/adilbekov/timetrack/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	tokens := token.NewService([]byte(cfg.JWTSecret))
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	authUsecase := usecase.NewAuthUsecase(userRepo, tokens, emailSender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Jobs & projects
	jobRepo := postgres.NewJobRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	jobUsecase := usecase.NewJobUsecase(jobRepo, projectRepo)
	jobHandler := handler.NewJobHandler(jobUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	// Background cleanup of accounts that never verified
	jan := janitor.New(userRepo, logger)
	if err := jan.Start(); err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, tokens, authHandler, jobHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	jan.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
