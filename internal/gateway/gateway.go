// Package gateway defines the remote ledger contract shared by every
// backend the client can talk to, and its JSON wire representation.
package gateway

import (
	"context"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// Gateway is request/response access to profile, ledger and statistics data.
//
// Calls are best-effort and non-transactional; there is no consistency
// guarantee between calls. The identifier is the only credential.
//
// Error contract:
//   - GetProfile returns domain.ErrNotFound for an unknown identifier.
//   - CreateProfile returns domain.ErrDuplicateIdentity when the record exists.
//   - Any transport or storage failure wraps domain.ErrRemoteUnavailable.
type Gateway interface {
	GetProfile(ctx context.Context, identifier string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, p domain.Profile) error
	AppendLogEntry(ctx context.Context, e domain.PrayerLogEntry) error
	GetLogEntries(ctx context.Context, identifier string) ([]domain.PrayerLogEntry, error)
	GetStats(ctx context.Context, identifier string) (domain.StatsSnapshot, error)
	SetLifetimeQazaCount(ctx context.Context, identifier string, count int) error
}
