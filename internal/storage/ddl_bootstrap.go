package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"listingsetl/internal/ddl"
)

var (
	ddlMu    sync.RWMutex
	dialects = map[string]ddl.Dialect{}
)

// RegisterDDL registers (or replaces) the DDL dialect for a storage kind. It
// is typically called from backend packages' init() functions.
func RegisterDDL(kind string, d ddl.Dialect) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	dialects[kind] = d
}

// DialectFor returns the dialect registered for kind.
func DialectFor(kind string) (ddl.Dialect, error) {
	ddlMu.RLock()
	d, ok := dialects[kind]
	ddlMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no DDL dialect registered for storage.kind=%q", kind)
	}
	return d, nil
}

// EnsureSchema creates the warehouse tables for kind through repo. With
// drop set, existing tables are dropped first.
func EnsureSchema(ctx context.Context, kind string, repo Repository, drop bool) error {
	d, err := DialectFor(kind)
	if err != nil {
		return err
	}
	if drop {
		return ddl.Reset(ctx, repo, d, ddl.Listings())
	}
	return ddl.Ensure(ctx, repo, d, ddl.Listings())
}

// Counter is implemented by repositories that can count table rows.
type Counter interface {
	Count(ctx context.Context, table string) (int64, error)
}

// ErrTablesNotEmpty is returned by CheckEmpty when a warehouse table already
// holds rows. Location and room type ids restart at 1 on every load, so a
// second load into the same tables would collide.
var ErrTablesNotEmpty = errors.New("warehouse tables already hold rows; set storage.db.reset_schema to replace them")

// CheckEmpty fails with ErrTablesNotEmpty when any warehouse table has rows.
// Repositories that do not implement Counter are not checked.
func CheckEmpty(ctx context.Context, repo Repository) error {
	c, ok := repo.(Counter)
	if !ok {
		return nil
	}
	for _, t := range ddl.Listings() {
		n, err := c.Count(ctx, t.FQN)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%s has %d rows: %w", t.FQN, n, ErrTablesNotEmpty)
		}
	}
	return nil
}
