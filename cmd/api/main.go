package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Natili254/Eveflow/internal/access"
	"github.com/Natili254/Eveflow/internal/app"
	"github.com/Natili254/Eveflow/internal/clock"
	"github.com/Natili254/Eveflow/internal/config"
	"github.com/Natili254/Eveflow/internal/logging"
	"github.com/Natili254/Eveflow/internal/storage/postgres"
	transporthttp "github.com/Natili254/Eveflow/internal/transport/http"
	"github.com/Natili254/Eveflow/migrations"
)

const startupTimeout = 5 * time.Second

func main() {
	bootstrap := logrus.New()

	cfg, err := config.Load(bootstrap)
	if err != nil {
		bootstrap.WithError(err).Fatal("load config")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		bootstrap.WithError(err).Fatal("configure logging")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.WithError(err).Fatal("db ping")
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.WithError(err).Fatal("apply migrations")
	}

	policy, err := loadPolicy(cfg.AccessPolicyFile)
	if err != nil {
		logger.WithError(err).Fatal("load access policy")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Fatal("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			logger.WithError(err).Fatal("redis ping")
		}
		logger.Info("rate limits shared through redis")
	}
	limiter, err := transporthttp.NewLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.WithError(err).Fatal("build rate limiter")
	}

	statsDB := stdlib.OpenDBFromPool(pool)
	defer statsDB.Close()

	clk := clock.NewSystem()
	applicationSvc := app.NewApplicationService(postgres.NewApplicationRepository(pool), policy, clk)
	paymentSvc := app.NewPaymentService(postgres.NewPaymentRepository(pool), policy, clk,
		app.WithPaymentLogger(logger.WithField("component", "payments")))
	statsSvc := app.NewStatsService(postgres.NewStatsRepository(statsDB), policy, clk)

	handler := transporthttp.NewRouter(transporthttp.RouterConfig{
		Events:       applicationSvc,
		Applications: applicationSvc,
		Payments:     paymentSvc,
		Dashboard:    statsSvc,
		Auth:         transporthttp.NewAuthenticator(cfg.JWTSecret),
		Limiter:      limiter,
		Logger:       logger,
		Clock:        clk,
		CORSOrigins:  cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.WithField("port", cfg.Port).Info("api listening")

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server error")
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("server shutdown error")
	}
	logger.Info("server stopped")
}

func loadPolicy(path string) (*access.Policy, error) {
	if path == "" {
		return access.NewPolicy()
	}
	return access.NewPolicyFromFile(path)
}
