package identity

import (
	"context"
	"sync"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

var _ profileGateway = &profileGatewayMock{}

type profileGatewayMock struct {
	GetProfileFunc    func(ctx context.Context, identifier string) (*domain.Profile, error)
	CreateProfileFunc func(ctx context.Context, p domain.Profile) error

	calls struct {
		GetProfile []struct {
			Ctx        context.Context
			Identifier string
		}
		CreateProfile []struct {
			Ctx context.Context
			P   domain.Profile
		}
	}
	lockGetProfile    sync.RWMutex
	lockCreateProfile sync.RWMutex
}

func (mock *profileGatewayMock) GetProfile(ctx context.Context, identifier string) (*domain.Profile, error) {
	if mock.GetProfileFunc == nil {
		panic("profileGatewayMock.GetProfileFunc: method is nil but profileGateway.GetProfile was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Identifier string
	}{Ctx: ctx, Identifier: identifier}
	mock.lockGetProfile.Lock()
	mock.calls.GetProfile = append(mock.calls.GetProfile, callInfo)
	mock.lockGetProfile.Unlock()
	return mock.GetProfileFunc(ctx, identifier)
}

func (mock *profileGatewayMock) GetProfileCalls() []struct {
	Ctx        context.Context
	Identifier string
} {
	mock.lockGetProfile.RLock()
	calls := mock.calls.GetProfile
	mock.lockGetProfile.RUnlock()
	return calls
}

func (mock *profileGatewayMock) CreateProfile(ctx context.Context, p domain.Profile) error {
	if mock.CreateProfileFunc == nil {
		panic("profileGatewayMock.CreateProfileFunc: method is nil but profileGateway.CreateProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Profile
	}{Ctx: ctx, P: p}
	mock.lockCreateProfile.Lock()
	mock.calls.CreateProfile = append(mock.calls.CreateProfile, callInfo)
	mock.lockCreateProfile.Unlock()
	return mock.CreateProfileFunc(ctx, p)
}

func (mock *profileGatewayMock) CreateProfileCalls() []struct {
	Ctx context.Context
	P   domain.Profile
} {
	mock.lockCreateProfile.RLock()
	calls := mock.calls.CreateProfile
	mock.lockCreateProfile.RUnlock()
	return calls
}
