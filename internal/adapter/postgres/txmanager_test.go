package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres"
	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres/testhelper"
)

const insertProfile = `INSERT INTO profiles (identifier, display_name, age, gender)
	VALUES ($1, 'Tx Test', 30, 'male')`

// profileExists checks whether a profile row with the given identifier exists.
func profileExists(t *testing.T, pool *pgxpool.Pool, id string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE identifier = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("profileExists query: %v", err)
	}
	return exists
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := testhelper.UniqueIdentifier()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertProfile, id)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !profileExists(t, pool, id) {
		t.Fatal("expected profile to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := testhelper.UniqueIdentifier()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertProfile, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	if profileExists(t, pool, id) {
		t.Fatal("expected profile NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := testhelper.UniqueIdentifier()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if profileExists(t, pool, id) {
			t.Fatal("expected profile NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertProfile, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := testhelper.UniqueIdentifier()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, insertProfile, id); err != nil {
			return err
		}

		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE identifier = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected profile to be visible within the transaction")
		}
		if profileExists(t, pool, id) {
			t.Fatal("expected profile NOT to be visible outside the transaction before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !profileExists(t, pool, id) {
		t.Fatal("expected profile to exist after committed transaction")
	}
}
