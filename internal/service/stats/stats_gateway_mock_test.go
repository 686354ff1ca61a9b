package stats

import (
	"context"
	"sync"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

var _ statsGateway = &statsGatewayMock{}

type statsGatewayMock struct {
	GetStatsFunc func(ctx context.Context, identifier string) (domain.StatsSnapshot, error)

	calls struct {
		GetStats []struct {
			Ctx        context.Context
			Identifier string
		}
	}
	lockGetStats sync.RWMutex
}

func (mock *statsGatewayMock) GetStats(ctx context.Context, identifier string) (domain.StatsSnapshot, error) {
	if mock.GetStatsFunc == nil {
		panic("statsGatewayMock.GetStatsFunc: method is nil but statsGateway.GetStats was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Identifier string
	}{Ctx: ctx, Identifier: identifier}
	mock.lockGetStats.Lock()
	mock.calls.GetStats = append(mock.calls.GetStats, callInfo)
	mock.lockGetStats.Unlock()
	return mock.GetStatsFunc(ctx, identifier)
}

func (mock *statsGatewayMock) GetStatsCalls() []struct {
	Ctx        context.Context
	Identifier string
} {
	mock.lockGetStats.RLock()
	calls := mock.calls.GetStats
	mock.lockGetStats.RUnlock()
	return calls
}

var _ recentLister = &recentListerMock{}

type recentListerMock struct {
	RecentFunc func(ctx context.Context, identifier string, n int) []domain.PrayerLogEntry

	calls struct {
		Recent []struct {
			Ctx        context.Context
			Identifier string
			N          int
		}
	}
	lockRecent sync.RWMutex
}

func (mock *recentListerMock) Recent(ctx context.Context, identifier string, n int) []domain.PrayerLogEntry {
	if mock.RecentFunc == nil {
		panic("recentListerMock.RecentFunc: method is nil but recentLister.Recent was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Identifier string
		N          int
	}{Ctx: ctx, Identifier: identifier, N: n}
	mock.lockRecent.Lock()
	mock.calls.Recent = append(mock.calls.Recent, callInfo)
	mock.lockRecent.Unlock()
	return mock.RecentFunc(ctx, identifier, n)
}

func (mock *recentListerMock) RecentCalls() []struct {
	Ctx        context.Context
	Identifier string
	N          int
} {
	mock.lockRecent.RLock()
	calls := mock.calls.Recent
	mock.lockRecent.RUnlock()
	return calls
}
