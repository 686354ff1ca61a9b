package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/qaza-tracker/internal/adapter/gateway/memgw"
	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres"
	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres/audit"
	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres/ledgerstore"
	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres/prayerlog"
	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres/profile"
	"github.com/heartmarshall/qaza-tracker/internal/config"
	"github.com/heartmarshall/qaza-tracker/internal/gateway"
	"github.com/heartmarshall/qaza-tracker/internal/transport/middleware"
	"github.com/heartmarshall/qaza-tracker/internal/transport/rest"
)

// Run starts ledgerd and blocks until ctx is cancelled, then shuts the HTTP
// server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting ledgerd",
		slog.String("version", BuildVersion()),
		slog.String("storage", cfg.Server.Storage),
		slog.String("log_level", cfg.Log.Level),
	)

	ledger, components, closeLedger, err := openLedger(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLedger()

	metrics := middleware.NewMetrics()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(logger, cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
	}

	router := rest.NewRouter(rest.RouterDeps{
		Logger:  logger,
		Gateway: rest.NewGatewayHandler(logger, ledger, metrics),
		Health:  rest.NewHealthHandler(BuildVersion(), components),
		Metrics: metrics,
		Limiter: limiter,
		CORS:    cfg.CORS,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// openLedger builds the storage behind the gateway and the components the
// health probes ping.
func openLedger(ctx context.Context, cfg *config.Config, logger *slog.Logger) (gateway.Gateway, map[string]rest.Pinger, func(), error) {
	if cfg.Server.Storage == config.StorageMemory {
		logger.Warn("memory storage: data is lost on restart")
		mem := memgw.New()
		return mem, map[string]rest.Pinger{"memory": mem}, func() {}, nil
	}

	if cfg.Server.AutoMigrate {
		applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database: %w", err)
	}

	store := ledgerstore.New(logger,
		profile.New(pool),
		prayerlog.New(pool),
		audit.New(pool),
		postgres.NewTxManager(pool),
	)
	return store, map[string]rest.Pinger{"database": pool}, pool.Close, nil
}

func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}
