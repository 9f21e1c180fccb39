package main

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"listingsetl/internal/storage"
)

func tableCount(t *testing.T, dsn string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	var n int
	q := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('hosts', 'locations', 'room_types', 'listings')`
	if err := db.QueryRow(q).Scan(&n); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	return n
}

func TestRun_SQLiteCreatesAndResets(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "listings.db")
	ctx := context.Background()

	if err := run(ctx, "sqlite", dsn, true); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if n := tableCount(t, dsn); n != 4 {
		t.Fatalf("tables = %d, want 4", n)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO "hosts" ("host_id", "host_name") VALUES (1, 'Ana')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	// keep: existing rows survive.
	if err := run(ctx, "sqlite", dsn, false); err != nil {
		t.Fatalf("keep run: %v", err)
	}
	if got := hostRows(t, dsn); got != 1 {
		t.Fatalf("hosts after keep = %d, want 1", got)
	}

	// drop: tables are recreated empty.
	if err := run(ctx, "sqlite", dsn, true); err != nil {
		t.Fatalf("reset run: %v", err)
	}
	if got := hostRows(t, dsn); got != 0 {
		t.Fatalf("hosts after reset = %d, want 0", got)
	}
}

func hostRows(t *testing.T, dsn string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM "hosts"`).Scan(&n); err != nil {
		t.Fatalf("count hosts: %v", err)
	}
	return n
}

func TestRun_UnknownKind(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), "oracle", "x", true)
	if err == nil || !strings.Contains(err.Error(), "open oracle") {
		t.Fatalf("err = %v, want open oracle failure", err)
	}
}

// Not parallel: swaps newRepositoryFn.
func TestRun_OpenErrorWrapped(t *testing.T) {
	orig := newRepositoryFn
	t.Cleanup(func() { newRepositoryFn = orig })

	boom := errors.New("connection refused")
	newRepositoryFn = func(context.Context, storage.Config) (storage.Repository, error) { return nil, boom }

	if err := run(context.Background(), "postgres", "postgres://x", true); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
