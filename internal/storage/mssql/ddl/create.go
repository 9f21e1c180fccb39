// Package ddl provides MSSQL-specific helpers for generating DDL from the
// generic ddl.TableDef model.
//
// T-SQL has no CREATE TABLE IF NOT EXISTS, so statements are wrapped in an
// IF OBJECT_ID(...) guard. Identifiers use bracket quoting.
package ddl

import (
	"fmt"
	"strings"

	gddl "listingsetl/internal/ddl"
)

// Style renders the inner CREATE TABLE statement.
var Style = gddl.Style{
	Name:  "mssql ddl",
	Quote: quoteIdent,
	Type:  MapType,
}

// Dialect implements ddl.Dialect for SQL Server.
type Dialect struct{}

// CreateTableSQL returns a guarded T-SQL script:
//
//	IF OBJECT_ID(N'[table]', N'U') IS NULL
//	BEGIN
//	CREATE TABLE [table] (...);
//	END;
func (Dialect) CreateTableSQL(t gddl.TableDef) (string, error) {
	stmt, err := Style.CreateTable(t)
	if err != nil {
		return "", err
	}
	fqn := Style.QuoteFQN(strings.TrimSpace(t.FQN))
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n%s\nEND;", fqn, stmt), nil
}

// DropTableSQL drops fqn when it exists.
func (Dialect) DropTableSQL(fqn string) string {
	q := Style.QuoteFQN(fqn)
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NOT NULL DROP TABLE %s;", q, q)
}

// quoteIdent quotes a single identifier segment using bracket syntax.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}
