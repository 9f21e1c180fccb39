// Package ddl contains SQLite-specific helpers for generating DDL.
//
// SQLite uses type affinities rather than strict types, so the mapping
// collapses the portable names onto the canonical affinities. Dates are stored
// as ISO-8601 TEXT.
package ddl

import (
	"strings"

	gddl "listingsetl/internal/ddl"
)

// MapType returns the SQLite affinity for c.
func MapType(c gddl.ColumnDef) string {
	switch strings.ToUpper(strings.TrimSpace(c.SQLType)) {
	case gddl.TypeInt, gddl.TypeBigInt, "INTEGER":
		return "INTEGER"
	case gddl.TypeDouble, "FLOAT", "REAL":
		return "REAL"
	case gddl.TypeNumeric, "DECIMAL":
		return "NUMERIC"
	case gddl.TypeDate, "TIMESTAMP", "DATETIME":
		return "TEXT"
	default:
		return "TEXT"
	}
}
