// Package session holds the single active profile of a running client and
// mirrors it to a durable local cache.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// DefaultKey is the well-known key the profile is cached under.
const DefaultKey = "namazUser"

// Cache stores one opaque record per key.
// Load must return domain.ErrNotFound when the key is absent.
type Cache interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is the process-wide session slot. Commit and Clear are the only
// mutation points; reads may run concurrently.
//
// writeMu serializes whole mutations (slot plus cache) so the slot and the
// cached copy never disagree after concurrent Commit and Clear calls.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	active  *domain.Profile

	cache Cache
	key   string
	log   *slog.Logger
}

// NewStore creates a Store backed by cache. An empty key selects DefaultKey.
func NewStore(logger *slog.Logger, cache Cache, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		cache: cache,
		key:   key,
		log:   logger.With("component", "session"),
	}
}

// Restore loads the cached profile into the slot. It reports false when
// there is no usable session; a corrupt record is deleted.
func (s *Store) Restore(ctx context.Context) (*domain.Profile, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := s.cache.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "session cache unreadable",
				slog.String("key", s.key),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}

	profile, err := decodeProfile(data)
	if err != nil {
		s.log.WarnContext(ctx, "discarding corrupt session record",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		if delErr := s.cache.Delete(ctx, s.key); delErr != nil {
			s.log.WarnContext(ctx, "failed to delete corrupt session record",
				slog.String("key", s.key),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, false
	}

	s.mu.Lock()
	s.active = profile
	s.mu.Unlock()

	return cloneProfile(profile), true
}

// Commit makes p the active profile and writes it to the cache.
// The slot is updated even when the cache write fails.
func (s *Store) Commit(ctx context.Context, p domain.Profile) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("session.Commit: %w", err)
	}

	s.mu.Lock()
	s.active = cloneProfile(&p)
	s.mu.Unlock()

	if err := s.cache.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("session.Commit: %w", err)
	}
	return nil
}

// Clear drops the active profile and its cached copy.
func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()

	if err := s.cache.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}

// Active returns a copy of the active profile.
func (s *Store) Active() (*domain.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active == nil {
		return nil, false
	}
	return cloneProfile(s.active), true
}

// Require is Active for callers that need a signed-in profile.
func (s *Store) Require() (*domain.Profile, error) {
	p, ok := s.Active()
	if !ok {
		return nil, domain.ErrNoSession
	}
	return p, nil
}

func decodeProfile(data []byte) (*domain.Profile, error) {
	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptLocalState, err)
	}
	if p.Identifier == "" {
		return nil, fmt.Errorf("%w: missing identifier", domain.ErrCorruptLocalState)
	}
	if !p.Gender.IsValid() {
		return nil, fmt.Errorf("%w: invalid gender %q", domain.ErrCorruptLocalState, p.Gender)
	}
	if p.Age < domain.MinAge || p.Age > domain.MaxAge {
		return nil, fmt.Errorf("%w: age %d out of range", domain.ErrCorruptLocalState, p.Age)
	}
	return &p, nil
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	cp := *p
	if p.LifetimeQazaCount != nil {
		n := *p.LifetimeQazaCount
		cp.LifetimeQazaCount = &n
	}
	return &cp
}
