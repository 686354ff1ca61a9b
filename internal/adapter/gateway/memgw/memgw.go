// Package memgw is an in-process gateway.Gateway. ledgerd serves it when
// started with memory storage, and tests use it as a real ledger.
package memgw

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/gateway"
)

// Gateway keeps every record in memory. Safe for concurrent use.
type Gateway struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
	logs     map[string][]domain.PrayerLogEntry
	dedup    map[string]map[string]struct{}
}

var _ gateway.Gateway = (*Gateway)(nil)

// New creates an empty Gateway.
func New() *Gateway {
	return &Gateway{
		profiles: make(map[string]domain.Profile),
		logs:     make(map[string][]domain.PrayerLogEntry),
		dedup:    make(map[string]map[string]struct{}),
	}
}

func (g *Gateway) GetProfile(_ context.Context, identifier string) (*domain.Profile, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.profiles[identifier]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", identifier, domain.ErrNotFound)
	}
	return cloneProfile(p), nil
}

func (g *Gateway) CreateProfile(_ context.Context, p domain.Profile) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.profiles[p.Identifier]; ok {
		return fmt.Errorf("profile %s: %w", p.Identifier, domain.ErrDuplicateIdentity)
	}
	g.profiles[p.Identifier] = *cloneProfile(p)
	return nil
}

// AppendLogEntry stores e. An entry whose dedup key the owner already used
// is dropped without error.
func (g *Gateway) AppendLogEntry(_ context.Context, e domain.PrayerLogEntry) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.profiles[e.Owner]; !ok {
		return fmt.Errorf("profile %s: %w", e.Owner, domain.ErrNotFound)
	}
	if e.DedupKey != nil {
		keys := g.dedup[e.Owner]
		if keys == nil {
			keys = make(map[string]struct{})
			g.dedup[e.Owner] = keys
		}
		if _, seen := keys[*e.DedupKey]; seen {
			return nil
		}
		keys[*e.DedupKey] = struct{}{}
	}
	g.logs[e.Owner] = append(g.logs[e.Owner], e)
	return nil
}

func (g *Gateway) GetLogEntries(_ context.Context, identifier string) ([]domain.PrayerLogEntry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.PrayerLogEntry, len(g.logs[identifier]))
	copy(out, g.logs[identifier])
	return out, nil
}

// GetStats counts non-period rows by status and distinct period dates.
func (g *Gateway) GetStats(_ context.Context, identifier string) (domain.StatsSnapshot, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var snap domain.StatsSnapshot
	periodDates := make(map[string]struct{})
	for _, e := range g.logs[identifier] {
		if e.IsExempt() {
			periodDates[e.DateString()] = struct{}{}
			continue
		}
		switch e.Status {
		case domain.LogStatusMissed:
			snap.TotalMissed++
		case domain.LogStatusCompleted:
			snap.Completed++
		}
	}
	snap.PeriodDays = len(periodDates)
	return snap, nil
}

func (g *Gateway) SetLifetimeQazaCount(_ context.Context, identifier string, count int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.profiles[identifier]
	if !ok {
		return fmt.Errorf("profile %s: %w", identifier, domain.ErrNotFound)
	}
	p.LifetimeQazaCount = &count
	g.profiles[identifier] = p
	return nil
}

// Ping always succeeds; it lets the health probes treat memory storage like
// any other component.
func (g *Gateway) Ping(context.Context) error { return nil }

func cloneProfile(p domain.Profile) *domain.Profile {
	out := p
	if p.LifetimeQazaCount != nil {
		n := *p.LifetimeQazaCount
		out.LifetimeQazaCount = &n
	}
	return &out
}
