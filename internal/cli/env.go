package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/qaza-tracker/internal/adapter/cache/file"
	"github.com/heartmarshall/qaza-tracker/internal/adapter/cache/redis"
	"github.com/heartmarshall/qaza-tracker/internal/adapter/gateway/httpgw"
	"github.com/heartmarshall/qaza-tracker/internal/app"
	"github.com/heartmarshall/qaza-tracker/internal/config"
	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/service/identity"
	"github.com/heartmarshall/qaza-tracker/internal/service/ledger"
	"github.com/heartmarshall/qaza-tracker/internal/service/qaza"
	"github.com/heartmarshall/qaza-tracker/internal/service/stats"
	"github.com/heartmarshall/qaza-tracker/internal/session"
)

// env is the wired core for one command invocation.
type env struct {
	log      *slog.Logger
	jsonOut  bool
	session  *session.Store
	identity *identity.Service
	ledger   *ledger.Service
	stats    *stats.Service
	qaza     *qaza.Service
	closers  []func() error
}

func newEnv(ctx context.Context, cfg *config.Config, flags *globalFlags, errOut io.Writer) (*env, error) {
	logger := app.NewLoggerTo(errOut, config.LogConfig{Level: flags.logLevel, Format: "text"})

	e := &env{log: logger, jsonOut: flags.jsonOut}

	cache, err := e.openCache(ctx, cfg.Session)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Gateway.Location()
	if err != nil {
		return nil, fmt.Errorf("gateway timezone: %w", err)
	}
	gw := httpgw.New(cfg.Gateway.URL, cfg.Gateway.Timeout, logger).WithLocation(loc)

	e.session = session.NewStore(logger, cache, cfg.Session.Key)
	e.session.Restore(ctx)

	e.identity = identity.NewService(logger, gw, e.session, cfg.Identity.RequiredDomain)
	e.ledger = ledger.NewService(logger, gw)
	e.stats = stats.NewService(logger, gw, e.ledger)
	e.qaza = qaza.NewService(logger, gw)
	return e, nil
}

func (e *env) openCache(ctx context.Context, cfg config.SessionConfig) (session.Cache, error) {
	switch cfg.Backend {
	case config.SessionBackendRedis:
		c, err := redis.New(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("session cache: %w", err)
		}
		e.closers = append(e.closers, c.Close)
		return c, nil
	default:
		c, err := file.New(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("session cache: %w", err)
		}
		return c, nil
	}
}

// profile returns the signed-in profile or domain.ErrNoSession.
func (e *env) profile() (*domain.Profile, error) {
	p, err := e.session.Require()
	if err != nil {
		return nil, fmt.Errorf("%w: run `qaza login <email>` first", err)
	}
	return p, nil
}

func (e *env) close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
