// Package ledger appends and lists prayer-log entries on the remote ledger.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// ledgerGateway is the part of the remote ledger this service needs.
type ledgerGateway interface {
	AppendLogEntry(ctx context.Context, e domain.PrayerLogEntry) error
	GetLogEntries(ctx context.Context, identifier string) ([]domain.PrayerLogEntry, error)
}

// Service is the prayer ledger client.
type Service struct {
	log *slog.Logger
	gw  ledgerGateway
	now func() time.Time
}

// NewService creates a ledger service.
func NewService(logger *slog.Logger, gw ledgerGateway) *Service {
	return &Service{
		log: logger.With("service", "ledger"),
		gw:  gw,
		now: time.Now,
	}
}

// Append records one entry. It reports false when the remote could not
// store it. Appends are not idempotent unless input carries a DedupKey
// the remote honours.
func (s *Service) Append(ctx context.Context, input AppendInput) (bool, error) {
	now := s.now()
	if err := input.Validate(now); err != nil {
		return false, err
	}

	e := input.entry(now)
	if err := s.gw.AppendLogEntry(ctx, e); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return false, err
		}
		s.log.ErrorContext(ctx, "append log entry failed",
			slog.String("identifier", e.Owner),
			slog.String("date", e.DateString()),
			slog.String("prayer", e.Prayer.String()),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	s.log.DebugContext(ctx, "log entry appended",
		slog.String("identifier", e.Owner),
		slog.String("date", e.DateString()),
		slog.String("prayer", e.Prayer.String()),
		slog.Bool("period_day", e.IsPeriodDay),
	)
	return true, nil
}

// List returns the user's entries in the order the remote stored them.
// A remote failure yields an empty list.
func (s *Service) List(ctx context.Context, identifier string) []domain.PrayerLogEntry {
	id := domain.NormalizeIdentifier(identifier)

	entries, err := s.gw.GetLogEntries(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "list log entries failed",
			slog.String("identifier", id),
			slog.String("error", err.Error()),
		)
		return []domain.PrayerLogEntry{}
	}
	if entries == nil {
		return []domain.PrayerLogEntry{}
	}
	return entries
}

// Recent returns the first n entries of List.
func (s *Service) Recent(ctx context.Context, identifier string, n int) []domain.PrayerLogEntry {
	entries := s.List(ctx, identifier)
	if n < 0 {
		n = 0
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
