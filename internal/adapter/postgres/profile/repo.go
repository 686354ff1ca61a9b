// Package profile implements profile persistence for the ledger server.
package profile

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/qaza-tracker/internal/adapter/postgres"
	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

const table = "profiles"

var columns = []string{"identifier", "display_name", "age", "gender", "qaza_count"}

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the profile or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, identifier string) (*domain.Profile, error) {
	return r.get(ctx, identifier, false)
}

// GetForUpdate is Get with a row lock; use inside RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, identifier string) (*domain.Profile, error) {
	return r.get(ctx, identifier, true)
}

func (r *Repo) get(ctx context.Context, identifier string, lock bool) (*domain.Profile, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"identifier": identifier})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "profile", identifier)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	p, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "profile", identifier)
	}
	return p, nil
}

// Create inserts a new profile. An existing identifier yields
// domain.ErrDuplicateIdentity.
func (r *Repo) Create(ctx context.Context, p domain.Profile) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("identifier", "display_name", "age", "gender").
		Values(p.Identifier, p.DisplayName, p.Age, p.Gender.String()).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "profile", p.Identifier)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "profile", p.Identifier)
	}
	return nil
}

// SetQazaCount overwrites the lifetime count.
func (r *Repo) SetQazaCount(ctx context.Context, identifier string, count int, now time.Time) error {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("qaza_count", count).
		Set("updated_at", now).
		Where(sq.Eq{"identifier": identifier}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "profile", identifier)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "profile", identifier)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "profile", identifier)
	}
	return nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p      domain.Profile
		gender string
		count  *int32
	)
	if err := row.Scan(&p.Identifier, &p.DisplayName, &p.Age, &gender, &count); err != nil {
		return nil, err
	}
	p.Gender = domain.Gender(gender)
	if count != nil {
		n := int(*count)
		p.LifetimeQazaCount = &n
	}
	return &p, nil
}
