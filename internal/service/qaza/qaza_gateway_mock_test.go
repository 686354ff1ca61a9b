package qaza

import (
	"context"
	"sync"
)

var _ qazaGateway = &qazaGatewayMock{}

type qazaGatewayMock struct {
	SetLifetimeQazaCountFunc func(ctx context.Context, identifier string, count int) error

	calls struct {
		SetLifetimeQazaCount []struct {
			Ctx        context.Context
			Identifier string
			Count      int
		}
	}
	lockSetLifetimeQazaCount sync.RWMutex
}

func (mock *qazaGatewayMock) SetLifetimeQazaCount(ctx context.Context, identifier string, count int) error {
	if mock.SetLifetimeQazaCountFunc == nil {
		panic("qazaGatewayMock.SetLifetimeQazaCountFunc: method is nil but qazaGateway.SetLifetimeQazaCount was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Identifier string
		Count      int
	}{Ctx: ctx, Identifier: identifier, Count: count}
	mock.lockSetLifetimeQazaCount.Lock()
	mock.calls.SetLifetimeQazaCount = append(mock.calls.SetLifetimeQazaCount, callInfo)
	mock.lockSetLifetimeQazaCount.Unlock()
	return mock.SetLifetimeQazaCountFunc(ctx, identifier, count)
}

func (mock *qazaGatewayMock) SetLifetimeQazaCountCalls() []struct {
	Ctx        context.Context
	Identifier string
	Count      int
} {
	mock.lockSetLifetimeQazaCount.RLock()
	calls := mock.calls.SetLifetimeQazaCount
	mock.lockSetLifetimeQazaCount.RUnlock()
	return calls
}
