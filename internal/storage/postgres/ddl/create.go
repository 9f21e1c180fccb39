package ddl

import (
	"strings"

	gddl "listingsetl/internal/ddl"
)

// Style renders Postgres DDL: double-quoted identifiers and
// CREATE TABLE IF NOT EXISTS.
var Style = gddl.Style{
	Name:        "postgres ddl",
	Quote:       quoteIdent,
	Type:        MapType,
	IfNotExists: true,
}

// Dialect implements ddl.Dialect for Postgres.
type Dialect struct{}

// CreateTableSQL renders a CREATE TABLE IF NOT EXISTS statement for t.
func (Dialect) CreateTableSQL(t gddl.TableDef) (string, error) {
	return Style.CreateTable(t)
}

// DropTableSQL drops fqn along with dependent constraints.
func (Dialect) DropTableSQL(fqn string) string {
	return "DROP TABLE IF EXISTS " + Style.QuoteFQN(fqn) + " CASCADE;"
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
