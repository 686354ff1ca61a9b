package ledgerstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres/audit"
	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// failingRepos returns err from every repository call.
type failingRepos struct{ err error }

func (f failingRepos) Get(context.Context, string) (*domain.Profile, error) { return nil, f.err }
func (f failingRepos) GetForUpdate(context.Context, string) (*domain.Profile, error) {
	return nil, f.err
}
func (f failingRepos) Create(context.Context, domain.Profile) error { return f.err }
func (f failingRepos) SetQazaCount(context.Context, string, int, time.Time) error {
	return f.err
}
func (f failingRepos) Append(context.Context, domain.PrayerLogEntry) (bool, error) {
	return false, f.err
}
func (f failingRepos) ListByOwner(context.Context, string) ([]domain.PrayerLogEntry, error) {
	return nil, f.err
}
func (f failingRepos) Stats(context.Context, string) (domain.StatsSnapshot, error) {
	return domain.StatsSnapshot{}, f.err
}
func (f failingRepos) Log(context.Context, audit.QazaChange) error { return f.err }

type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newFailingStore(err error) *Store {
	r := failingRepos{err: err}
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), r, r, r, directTx{})
}

func callAll(s *Store) map[string]error {
	ctx := context.Background()
	_, getErr := s.GetProfile(ctx, "a@gmail.com")
	_, listErr := s.GetLogEntries(ctx, "a@gmail.com")
	_, statsErr := s.GetStats(ctx, "a@gmail.com")
	return map[string]error{
		"GetProfile":           getErr,
		"CreateProfile":        s.CreateProfile(ctx, domain.Profile{Identifier: "a@gmail.com"}),
		"AppendLogEntry":       s.AppendLogEntry(ctx, domain.PrayerLogEntry{Owner: "a@gmail.com"}),
		"GetLogEntries":        listErr,
		"GetStats":             statsErr,
		"SetLifetimeQazaCount": s.SetLifetimeQazaCount(ctx, "a@gmail.com", 10),
	}
}

func TestStore_StorageFailuresAreRemoteUnavailable(t *testing.T) {
	t.Parallel()

	for _, cause := range []error{errors.New("conn refused"), context.DeadlineExceeded} {
		for op, err := range callAll(newFailingStore(cause)) {
			assert.ErrorIs(t, err, domain.ErrRemoteUnavailable, op)
			assert.ErrorIs(t, err, cause, op)
		}
	}
}

func TestStore_DomainOutcomesPassThrough(t *testing.T) {
	t.Parallel()

	for _, sentinel := range []error{domain.ErrNotFound, domain.ErrDuplicateIdentity, domain.ErrValidation} {
		for op, err := range callAll(newFailingStore(sentinel)) {
			assert.ErrorIs(t, err, sentinel, op)
			assert.NotErrorIs(t, err, domain.ErrRemoteUnavailable, op)
		}
	}
}
