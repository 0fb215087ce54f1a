// Package testutil holds helpers for the Postgres integration tests. They
// skip when TEST_DATABASE_URL is not set, so the unit suite never needs a
// running database.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"go-gin-catalog/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var migrateOnce sync.Once

// NewPool opens a migrated pool on TEST_DATABASE_URL, closed on cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	pool, err := database.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	t.Cleanup(pool.Close)

	var migrateErr error
	migrateOnce.Do(func() { migrateErr = database.Migrate(ctx, pool) })
	if migrateErr != nil {
		t.Fatalf("testutil.NewPool: %v", migrateErr)
	}
	return pool
}

// NewTx begins a transaction that is rolled back when the test ends, so each
// test sees an empty schema and leaves nothing behind.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	pool := NewPool(t)
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	if _, err := tx.Exec(ctx, "TRUNCATE events, venues RESTART IDENTITY CASCADE"); err != nil {
		_ = tx.Rollback(ctx)
		t.Fatalf("testutil.NewTx: truncate: %v", err)
	}
	t.Cleanup(func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			t.Logf("testutil.NewTx: rollback: %v", err)
		}
	})
	return tx
}

// NewRedis connects to TEST_REDIS_ADDR and flushes the selected DB on cleanup.
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping redis integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("testutil.NewRedis: ping: %v", err)
	}
	t.Cleanup(func() {
		_ = rdb.FlushDB(ctx).Err()
		_ = rdb.Close()
	})
	return rdb
}
