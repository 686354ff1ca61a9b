// Package audit records every overwrite of a profile's lifetime Qaza count.
// It is append-only.
package audit

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/qaza-tracker/internal/adapter/postgres"
)

const table = "qaza_audit"

// QazaChange is one overwrite of a lifetime count.
type QazaChange struct {
	Owner     string
	Previous  *int
	Current   int
	ChangedAt time.Time
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Log appends a change record.
func (r *Repo) Log(ctx context.Context, c QazaChange) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("owner", "previous", "current", "changed_at").
		Values(c.Owner, c.Previous, c.Current, c.ChangedAt).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "qaza_audit", c.Owner)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "qaza_audit", c.Owner)
	}
	return nil
}

// ListByOwner returns the owner's changes, newest first, at most limit.
func (r *Repo) ListByOwner(ctx context.Context, owner string, limit int) ([]QazaChange, error) {
	sql, args, err := postgres.Builder().
		Select("owner", "previous", "current", "changed_at").
		From(table).
		Where(sq.Eq{"owner": owner}).
		OrderBy("changed_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "qaza_audit", owner)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "qaza_audit", owner)
	}
	defer rows.Close()

	var changes []QazaChange
	for rows.Next() {
		var (
			c        QazaChange
			previous *int32
			current  int32
		)
		if err := rows.Scan(&c.Owner, &previous, &current, &c.ChangedAt); err != nil {
			return nil, postgres.MapError(err, "qaza_audit", owner)
		}
		if previous != nil {
			p := int(*previous)
			c.Previous = &p
		}
		c.Current = int(current)
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "qaza_audit", owner)
	}
	return changes, nil
}
