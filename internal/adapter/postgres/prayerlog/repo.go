// Package prayerlog implements the append-only prayer ledger for the
// ledger server, including its SQL-side statistics.
package prayerlog

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/qaza-tracker/internal/adapter/postgres"
	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

const table = "prayer_logs"

// Repo provides ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new prayer log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Append inserts one row. With a DedupKey already used by the same owner
// nothing is inserted and inserted is false.
func (r *Repo) Append(ctx context.Context, e domain.PrayerLogEntry) (inserted bool, err error) {
	query := postgres.Builder().
		Insert(table).
		Columns("owner", "log_date", "prayer", "status", "reason", "period_day", "recorded_at", "dedup_key").
		Values(e.Owner, e.Date, e.Prayer.String(), e.Status.String(), e.Reason, e.IsPeriodDay, e.RecordedAt, e.DedupKey)
	if e.DedupKey != nil {
		query = query.Suffix("ON CONFLICT (owner, dedup_key) WHERE dedup_key IS NOT NULL DO NOTHING")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, postgres.MapError(err, "prayer_log", e.Owner)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "prayer_log", e.Owner)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByOwner returns the owner's rows in insertion order.
func (r *Repo) ListByOwner(ctx context.Context, owner string) ([]domain.PrayerLogEntry, error) {
	sql, args, err := postgres.Builder().
		Select("owner", "log_date", "prayer", "status", "reason", "period_day", "recorded_at", "dedup_key").
		From(table).
		Where(sq.Eq{"owner": owner}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "prayer_log", owner)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "prayer_log", owner)
	}
	defer rows.Close()

	entries := []domain.PrayerLogEntry{}
	for rows.Next() {
		var (
			e              domain.PrayerLogEntry
			prayer, status string
			date           time.Time
		)
		if err := rows.Scan(&e.Owner, &date, &prayer, &status, &e.Reason, &e.IsPeriodDay, &e.RecordedAt, &e.DedupKey); err != nil {
			return nil, postgres.MapError(err, "prayer_log", owner)
		}
		e.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		e.Prayer = domain.PrayerName(prayer)
		e.Status = domain.LogStatus(status)
		e.RecordedAt = e.RecordedAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "prayer_log", owner)
	}
	return entries, nil
}

// Stats aggregates the owner's ledger. Period-day rows count only toward
// PeriodDays, once per distinct date.
func (r *Repo) Stats(ctx context.Context, owner string) (domain.StatsSnapshot, error) {
	sql, args, err := postgres.Builder().
		Select(
			"COUNT(*) FILTER (WHERE NOT period_day AND status = 'missed')",
			"COUNT(*) FILTER (WHERE NOT period_day AND status = 'completed')",
			"COUNT(DISTINCT log_date) FILTER (WHERE period_day)",
		).
		From(table).
		Where(sq.Eq{"owner": owner}).
		ToSql()
	if err != nil {
		return domain.StatsSnapshot{}, postgres.MapError(err, "prayer_log", owner)
	}

	var missed, completed, periodDays int64
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&missed, &completed, &periodDays)
	if err != nil {
		return domain.StatsSnapshot{}, postgres.MapError(err, "prayer_log", owner)
	}

	return domain.StatsSnapshot{
		TotalMissed: int(missed),
		Completed:   int(completed),
		PeriodDays:  int(periodDays),
	}, nil
}
