package ddl

import (
	"context"
	"fmt"
	"log"
)

// Dialect renders backend-specific DDL.
type Dialect interface {
	CreateTableSQL(t TableDef) (string, error)
	DropTableSQL(fqn string) string
}

// Execer runs a single SQL statement. storage.Repository satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string) error
}

// Ensure creates every table in tables, in order. Dialects render idempotent
// statements, so Ensure is safe to repeat.
func Ensure(ctx context.Context, ex Execer, d Dialect, tables []TableDef) error {
	for _, t := range tables {
		stmt, err := d.CreateTableSQL(t)
		if err != nil {
			return fmt.Errorf("render create %s: %w", t.FQN, err)
		}
		if err := ex.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create %s: %w", t.FQN, err)
		}
	}
	return nil
}

// Reset drops tables in DropOrder and recreates them in order.
func Reset(ctx context.Context, ex Execer, d Dialect, tables []TableDef) error {
	for _, t := range DropOrder(tables) {
		if err := ex.Exec(ctx, d.DropTableSQL(t.FQN)); err != nil {
			return fmt.Errorf("drop %s: %w", t.FQN, err)
		}
	}
	log.Printf("ddl: dropped %d tables", len(tables))

	if err := Ensure(ctx, ex, d, tables); err != nil {
		return err
	}
	log.Printf("ddl: created %d tables", len(tables))
	return nil
}
