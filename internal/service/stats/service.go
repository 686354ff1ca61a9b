// Package stats reads the remote ledger's aggregate counts and composes the
// dashboard view.
package stats

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// statsGateway is the part of the remote ledger this service needs.
type statsGateway interface {
	GetStats(ctx context.Context, identifier string) (domain.StatsSnapshot, error)
}

// recentLister returns the head of a user's ledger.
type recentLister interface {
	Recent(ctx context.Context, identifier string, n int) []domain.PrayerLogEntry
}

// Service is the statistics aggregator. It never derives counts from the
// ledger itself.
type Service struct {
	log    *slog.Logger
	gw     statsGateway
	ledger recentLister
}

// NewService creates a stats service.
func NewService(logger *slog.Logger, gw statsGateway, ledger recentLister) *Service {
	return &Service{
		log:    logger.With("service", "stats"),
		gw:     gw,
		ledger: ledger,
	}
}

// ComputeStats returns the remote aggregate for identifier, or a zero
// snapshot when the remote fails.
func (s *Service) ComputeStats(ctx context.Context, identifier string) domain.StatsSnapshot {
	id := domain.NormalizeIdentifier(identifier)

	snap, err := s.gw.GetStats(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "compute stats failed",
			slog.String("identifier", id),
			slog.String("error", err.Error()),
		)
		return domain.StatsSnapshot{}
	}
	return snap
}

// Dashboard fetches stats and the most recent entries concurrently.
// Each half degrades on its own.
func (s *Service) Dashboard(ctx context.Context, profile domain.Profile) domain.Dashboard {
	d := domain.Dashboard{Profile: profile}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Stats = s.ComputeStats(gctx, profile.Identifier)
		return nil
	})
	g.Go(func() error {
		d.Recent = s.ledger.Recent(gctx, profile.Identifier, domain.DashboardRecentLimit)
		return nil
	})
	_ = g.Wait()

	return d
}
