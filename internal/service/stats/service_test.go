package stats

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

func newTestService(gw statsGateway, ledger recentLister) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, gw, ledger)
}

var profile = domain.Profile{Identifier: "a@gmail.com", DisplayName: "Aisha", Age: 25, Gender: domain.GenderFemale}

func TestService_ComputeStats(t *testing.T) {
	t.Parallel()

	want := domain.StatsSnapshot{TotalMissed: 12, Completed: 4, PeriodDays: 5}
	gw := &statsGatewayMock{
		GetStatsFunc: func(ctx context.Context, identifier string) (domain.StatsSnapshot, error) {
			assert.Equal(t, "a@gmail.com", identifier)
			return want, nil
		},
	}

	got := newTestService(gw, nil).ComputeStats(context.Background(), " A@gmail.com")
	assert.Equal(t, want, got)
	assert.Len(t, gw.GetStatsCalls(), 1)
}

func TestService_ComputeStats_RemoteFailureIsZero(t *testing.T) {
	t.Parallel()

	gw := &statsGatewayMock{
		GetStatsFunc: func(ctx context.Context, identifier string) (domain.StatsSnapshot, error) {
			return domain.StatsSnapshot{TotalMissed: 99}, domain.ErrRemoteUnavailable
		},
	}

	got := newTestService(gw, nil).ComputeStats(context.Background(), "a@gmail.com")
	assert.True(t, got.IsZero())
}

func TestService_Dashboard(t *testing.T) {
	t.Parallel()

	recent := []domain.PrayerLogEntry{
		{Owner: "a@gmail.com", Prayer: domain.PrayerFajr, Status: domain.LogStatusMissed},
	}
	gw := &statsGatewayMock{
		GetStatsFunc: func(ctx context.Context, identifier string) (domain.StatsSnapshot, error) {
			return domain.StatsSnapshot{TotalMissed: 1}, nil
		},
	}
	ledger := &recentListerMock{
		RecentFunc: func(ctx context.Context, identifier string, n int) []domain.PrayerLogEntry {
			return recent
		},
	}

	d := newTestService(gw, ledger).Dashboard(context.Background(), profile)
	assert.Equal(t, profile, d.Profile)
	assert.Equal(t, 1, d.Stats.TotalMissed)
	assert.Equal(t, recent, d.Recent)

	require.Len(t, ledger.RecentCalls(), 1)
	assert.Equal(t, domain.DashboardRecentLimit, ledger.RecentCalls()[0].N)
	assert.Equal(t, "a@gmail.com", ledger.RecentCalls()[0].Identifier)
}

func TestService_Dashboard_RunsConcurrently(t *testing.T) {
	t.Parallel()

	// Each half waits for the other to start; sequential execution would deadlock.
	statsStarted := make(chan struct{})
	recentStarted := make(chan struct{})

	gw := &statsGatewayMock{
		GetStatsFunc: func(ctx context.Context, identifier string) (domain.StatsSnapshot, error) {
			close(statsStarted)
			select {
			case <-recentStarted:
			case <-time.After(2 * time.Second):
				t.Error("recent request did not start concurrently")
			}
			return domain.StatsSnapshot{Completed: 2}, nil
		},
	}
	ledger := &recentListerMock{
		RecentFunc: func(ctx context.Context, identifier string, n int) []domain.PrayerLogEntry {
			close(recentStarted)
			select {
			case <-statsStarted:
			case <-time.After(2 * time.Second):
				t.Error("stats request did not start concurrently")
			}
			return []domain.PrayerLogEntry{}
		},
	}

	d := newTestService(gw, ledger).Dashboard(context.Background(), profile)
	assert.Equal(t, 2, d.Stats.Completed)
}

func TestService_Dashboard_HalvesDegradeIndependently(t *testing.T) {
	t.Parallel()

	recent := []domain.PrayerLogEntry{{Owner: "a@gmail.com", Prayer: domain.PrayerAsr}}
	gw := &statsGatewayMock{
		GetStatsFunc: func(ctx context.Context, identifier string) (domain.StatsSnapshot, error) {
			return domain.StatsSnapshot{}, domain.ErrRemoteUnavailable
		},
	}
	ledger := &recentListerMock{
		RecentFunc: func(ctx context.Context, identifier string, n int) []domain.PrayerLogEntry {
			return recent
		},
	}

	d := newTestService(gw, ledger).Dashboard(context.Background(), profile)
	assert.True(t, d.Stats.IsZero())
	assert.Equal(t, recent, d.Recent)
}
