package identity

import (
	"context"
	"sync"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

var _ sessionStore = &sessionStoreMock{}

type sessionStoreMock struct {
	CommitFunc func(ctx context.Context, p domain.Profile) error
	ClearFunc  func(ctx context.Context) error

	calls struct {
		Commit []struct {
			Ctx context.Context
			P   domain.Profile
		}
		Clear []struct {
			Ctx context.Context
		}
	}
	lockCommit sync.RWMutex
	lockClear  sync.RWMutex
}

func (mock *sessionStoreMock) Commit(ctx context.Context, p domain.Profile) error {
	if mock.CommitFunc == nil {
		panic("sessionStoreMock.CommitFunc: method is nil but sessionStore.Commit was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Profile
	}{Ctx: ctx, P: p}
	mock.lockCommit.Lock()
	mock.calls.Commit = append(mock.calls.Commit, callInfo)
	mock.lockCommit.Unlock()
	return mock.CommitFunc(ctx, p)
}

func (mock *sessionStoreMock) CommitCalls() []struct {
	Ctx context.Context
	P   domain.Profile
} {
	mock.lockCommit.RLock()
	calls := mock.calls.Commit
	mock.lockCommit.RUnlock()
	return calls
}

func (mock *sessionStoreMock) Clear(ctx context.Context) error {
	if mock.ClearFunc == nil {
		panic("sessionStoreMock.ClearFunc: method is nil but sessionStore.Clear was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockClear.Lock()
	mock.calls.Clear = append(mock.calls.Clear, callInfo)
	mock.lockClear.Unlock()
	return mock.ClearFunc(ctx)
}

func (mock *sessionStoreMock) ClearCalls() []struct {
	Ctx context.Context
} {
	mock.lockClear.RLock()
	calls := mock.calls.Clear
	mock.lockClear.RUnlock()
	return calls
}
