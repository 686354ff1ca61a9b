package ledger

import (
	"context"
	"sync"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

var _ ledgerGateway = &ledgerGatewayMock{}

type ledgerGatewayMock struct {
	AppendLogEntryFunc func(ctx context.Context, e domain.PrayerLogEntry) error
	GetLogEntriesFunc  func(ctx context.Context, identifier string) ([]domain.PrayerLogEntry, error)

	calls struct {
		AppendLogEntry []struct {
			Ctx context.Context
			E   domain.PrayerLogEntry
		}
		GetLogEntries []struct {
			Ctx        context.Context
			Identifier string
		}
	}
	lockAppendLogEntry sync.RWMutex
	lockGetLogEntries  sync.RWMutex
}

func (mock *ledgerGatewayMock) AppendLogEntry(ctx context.Context, e domain.PrayerLogEntry) error {
	if mock.AppendLogEntryFunc == nil {
		panic("ledgerGatewayMock.AppendLogEntryFunc: method is nil but ledgerGateway.AppendLogEntry was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.PrayerLogEntry
	}{Ctx: ctx, E: e}
	mock.lockAppendLogEntry.Lock()
	mock.calls.AppendLogEntry = append(mock.calls.AppendLogEntry, callInfo)
	mock.lockAppendLogEntry.Unlock()
	return mock.AppendLogEntryFunc(ctx, e)
}

func (mock *ledgerGatewayMock) AppendLogEntryCalls() []struct {
	Ctx context.Context
	E   domain.PrayerLogEntry
} {
	mock.lockAppendLogEntry.RLock()
	calls := mock.calls.AppendLogEntry
	mock.lockAppendLogEntry.RUnlock()
	return calls
}

func (mock *ledgerGatewayMock) GetLogEntries(ctx context.Context, identifier string) ([]domain.PrayerLogEntry, error) {
	if mock.GetLogEntriesFunc == nil {
		panic("ledgerGatewayMock.GetLogEntriesFunc: method is nil but ledgerGateway.GetLogEntries was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Identifier string
	}{Ctx: ctx, Identifier: identifier}
	mock.lockGetLogEntries.Lock()
	mock.calls.GetLogEntries = append(mock.calls.GetLogEntries, callInfo)
	mock.lockGetLogEntries.Unlock()
	return mock.GetLogEntriesFunc(ctx, identifier)
}

func (mock *ledgerGatewayMock) GetLogEntriesCalls() []struct {
	Ctx        context.Context
	Identifier string
} {
	mock.lockGetLogEntries.RLock()
	calls := mock.calls.GetLogEntries
	mock.lockGetLogEntries.RUnlock()
	return calls
}
