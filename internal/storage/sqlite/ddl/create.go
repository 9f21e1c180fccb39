package ddl

import (
	"strings"

	gddl "listingsetl/internal/ddl"
)

// Style renders SQLite DDL: double-quoted identifiers and
// CREATE TABLE IF NOT EXISTS. A single INTEGER primary key becomes the rowid
// alias, which is how SQLite spells a serial column.
var Style = gddl.Style{
	Name:        "sqlite ddl",
	Quote:       quoteIdent,
	Type:        MapType,
	IfNotExists: true,
}

// Dialect implements ddl.Dialect for SQLite.
type Dialect struct{}

// CreateTableSQL renders a CREATE TABLE IF NOT EXISTS statement for t.
func (Dialect) CreateTableSQL(t gddl.TableDef) (string, error) {
	return Style.CreateTable(t)
}

// DropTableSQL drops fqn if present. SQLite has no CASCADE.
func (Dialect) DropTableSQL(fqn string) string {
	return "DROP TABLE IF EXISTS " + Style.QuoteFQN(fqn) + ";"
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
