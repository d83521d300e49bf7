// README: Entry point; loads config, wires stores and services, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ojoto/internal/config"
	httptransport "ojoto/internal/http"
	"ojoto/internal/infra"
	"ojoto/internal/logging"
	"ojoto/internal/modules/contact"
	"ojoto/internal/modules/pricing"
	"ojoto/internal/modules/trip"
	"ojoto/internal/modules/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").WithError(err).Error("load config")
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logging.Logger) error {
	gin.SetMode(gin.ReleaseMode)

	if cfg.DB.Migrate {
		if err := infra.Migrate(cfg.DB.DSN); err != nil {
			return err
		}
		log.Info("schema up to date")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return err
	}
	tripOpts := trip.Options{RequireCoordinates: cfg.Trip.RequireCoordinates}
	if redisClient != nil {
		defer redisClient.Close()
		tripOpts.Cache = trip.NewRedisCache(redisClient, cfg.Redis.TripTTL)
		log.Info("trip cache enabled", "redis_addr", cfg.Redis.Addr, "ttl", cfg.Redis.TripTTL.String())
	}

	calc, err := pricing.NewCalculator(pricing.Rates{
		BaseFare:  cfg.Fare.BaseFare,
		RatePerKm: cfg.Fare.RatePerKm,
	})
	if err != nil {
		return err
	}

	deps := httptransport.ServerDeps{
		Trips:       trip.NewService(trip.NewStore(dbPool), calc, tripOpts),
		Pricing:     calc,
		Contact:     contact.NewService(contact.NewStore(dbPool)),
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Health:      healthCheck(dbPool, redisClient),
	}

	switch cfg.Auth.Provider {
	case config.AuthProviderFirebase:
		deps.Verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
	default:
		jwtm, err := infra.NewJWTManager(infra.JWTConfig{
			Secret: cfg.Auth.JWTSecret,
			Issuer: cfg.Auth.Issuer,
			TTL:    cfg.Auth.JWTTTL,
		})
		if err != nil {
			return err
		}
		deps.Verifier = jwtm
		deps.Users = user.NewService(user.NewStore(dbPool), jwtm)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewServer(deps).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rates := calc.Rates()
		log.Info("listening", "addr", cfg.HTTP.Addr, "auth_provider", cfg.Auth.Provider,
			"base_fare", rates.BaseFare, "rate_per_km", rates.RatePerKm)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func healthCheck(db *pgxpool.Pool, rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		if rdb != nil {
			return rdb.Ping(ctx).Err()
		}
		return nil
	}
}
