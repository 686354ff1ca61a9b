// Package ledgerstore is the PostgreSQL implementation of the ledger
// gateway served by ledgerd.
package ledgerstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres/audit"
	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/gateway"
)

type profileRepo interface {
	Get(ctx context.Context, identifier string) (*domain.Profile, error)
	GetForUpdate(ctx context.Context, identifier string) (*domain.Profile, error)
	Create(ctx context.Context, p domain.Profile) error
	SetQazaCount(ctx context.Context, identifier string, count int, now time.Time) error
}

type logRepo interface {
	Append(ctx context.Context, e domain.PrayerLogEntry) (bool, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.PrayerLogEntry, error)
	Stats(ctx context.Context, owner string) (domain.StatsSnapshot, error)
}

type auditRepo interface {
	Log(ctx context.Context, c audit.QazaChange) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store implements gateway.Gateway on top of the repositories.
type Store struct {
	log      *slog.Logger
	profiles profileRepo
	logs     logRepo
	audit    auditRepo
	tx       txManager
	now      func() time.Time
}

var _ gateway.Gateway = (*Store)(nil)

// New creates a Store.
func New(logger *slog.Logger, profiles profileRepo, logs logRepo, audit auditRepo, tx txManager) *Store {
	return &Store{
		log:      logger.With("adapter", "ledgerstore"),
		profiles: profiles,
		logs:     logs,
		audit:    audit,
		tx:       tx,
		now:      time.Now,
	}
}

func (s *Store) GetProfile(ctx context.Context, identifier string) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx, identifier)
	if err != nil {
		return nil, storeError("ledgerstore.GetProfile", err)
	}
	return p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p domain.Profile) error {
	if err := s.profiles.Create(ctx, p); err != nil {
		return storeError("ledgerstore.CreateProfile", err)
	}
	s.log.InfoContext(ctx, "profile created", slog.String("identifier", p.Identifier))
	return nil
}

func (s *Store) AppendLogEntry(ctx context.Context, e domain.PrayerLogEntry) error {
	inserted, err := s.logs.Append(ctx, e)
	if err != nil {
		return storeError("ledgerstore.AppendLogEntry", err)
	}
	if !inserted && e.DedupKey != nil {
		s.log.DebugContext(ctx, "duplicate log entry ignored",
			slog.String("identifier", e.Owner),
			slog.String("dedup_key", *e.DedupKey),
		)
	}
	return nil
}

func (s *Store) GetLogEntries(ctx context.Context, identifier string) ([]domain.PrayerLogEntry, error) {
	entries, err := s.logs.ListByOwner(ctx, identifier)
	if err != nil {
		return nil, storeError("ledgerstore.GetLogEntries", err)
	}
	return entries, nil
}

func (s *Store) GetStats(ctx context.Context, identifier string) (domain.StatsSnapshot, error) {
	snap, err := s.logs.Stats(ctx, identifier)
	if err != nil {
		return domain.StatsSnapshot{}, storeError("ledgerstore.GetStats", err)
	}
	return snap, nil
}

// SetLifetimeQazaCount overwrites the count and records the change in one
// transaction.
func (s *Store) SetLifetimeQazaCount(ctx context.Context, identifier string, count int) error {
	now := s.now().UTC()

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.profiles.GetForUpdate(ctx, identifier)
		if err != nil {
			return err
		}
		if err := s.profiles.SetQazaCount(ctx, identifier, count, now); err != nil {
			return err
		}
		return s.audit.Log(ctx, audit.QazaChange{
			Owner:     identifier,
			Previous:  current.LifetimeQazaCount,
			Current:   count,
			ChangedAt: now,
		})
	})
	if err != nil {
		return storeError("ledgerstore.SetLifetimeQazaCount", err)
	}

	s.log.InfoContext(ctx, "lifetime qaza count set",
		slog.String("identifier", identifier),
		slog.Int("count", count),
	)
	return nil
}

// storeError keeps domain outcomes as they are and marks every other
// storage failure as domain.ErrRemoteUnavailable.
func storeError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicateIdentity) ||
		errors.Is(err, domain.ErrValidation) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrRemoteUnavailable, err)
}
