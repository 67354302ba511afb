// Command api serves the job marketplace over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/99minutos/job-marketplace/internal/api"
	"github.com/99minutos/job-marketplace/internal/api/handler"
	"github.com/99minutos/job-marketplace/internal/core/ports"
	"github.com/99minutos/job-marketplace/internal/core/service"
	"github.com/99minutos/job-marketplace/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/job-marketplace/internal/infrastructure/db/mongo"
	pgstore "github.com/99minutos/job-marketplace/internal/infrastructure/db/postgres"
	redisstore "github.com/99minutos/job-marketplace/internal/infrastructure/db/redis"
	"github.com/99minutos/job-marketplace/internal/pkg/config"
	"github.com/99minutos/job-marketplace/pkg/logger"
)

const serviceName = "job-marketplace"

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// backends holds the repositories and revoker selected by configuration,
// plus their readiness checks and shutdown hooks.
type backends struct {
	users   ports.UserRepository
	jobs    ports.JobRepository
	apps    ports.ApplicationRepository
	revoker ports.SessionRevoker
	checks  []handler.DependencyCheck
	closers []func(context.Context) error
}

func (b *backends) close(ctx context.Context, log zerolog.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("failed to close backend")
		}
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	b := &backends{}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		b.close(shutdownCtx, log)
	}()

	if err := openStore(ctx, cfg, b, log); err != nil {
		return err
	}
	if err := openRevoker(ctx, cfg, b, log); err != nil {
		return err
	}

	svc := service.NewMarketplaceService(
		service.NewAuthService(b.users, cfg.Auth.BcryptCost, log),
		service.NewJobService(b.jobs, b.users, log),
		service.NewApplicationService(b.apps, b.jobs, b.users, log),
		service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
		b.revoker,
		log,
	)
	e := api.NewRouter(svc, log, b.checks...)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("store", cfg.Store.Driver).
			Str("revoker", cfg.Auth.Revoker).
			Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, b *backends, log zerolog.Logger) error {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		b.closers = append(b.closers, client.Disconnect)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		store := mongostore.NewStore(db)
		b.users, b.jobs, b.apps = store.Users, store.Jobs, store.Applications
		b.checks = append(b.checks, handler.DependencyCheck{
			Name: "mongodb",
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		})
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	case config.DriverPostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func(context.Context) error { pool.Close(); return nil })
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		store := pgstore.NewStore(pool)
		b.users, b.jobs, b.apps = store.Users, store.Jobs, store.Applications
		b.checks = append(b.checks, handler.DependencyCheck{Name: "postgres", Ping: pool.Ping})
		log.Info().Msg("connected to PostgreSQL")

	default:
		store := memory.NewStore()
		b.users, b.jobs, b.apps = store.Users, store.Jobs, store.Applications
		log.Warn().Msg("using in-memory store; data is lost on restart")
	}
	return nil
}

func openRevoker(ctx context.Context, cfg *config.Config, b *backends, log zerolog.Logger) error {
	if cfg.Auth.Revoker != config.DriverRedis {
		b.revoker = memory.NewSessionRevoker()
		return nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	b.closers = append(b.closers, func(context.Context) error { return client.Close() })
	b.revoker = redisstore.NewSessionRevoker(client)
	b.checks = append(b.checks, handler.DependencyCheck{
		Name: "redis",
		Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	})
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	return nil
}
