// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import (
	"strings"

	gddl "listingsetl/internal/ddl"
)

// MapType returns the Postgres type for c.
//
//	Serial INT / BIGINT -> SERIAL / BIGSERIAL
//	everything else     -> SQLType verbatim (the portable names are valid Postgres)
func MapType(c gddl.ColumnDef) string {
	typ := strings.ToUpper(strings.TrimSpace(c.SQLType))
	if c.Serial {
		switch typ {
		case gddl.TypeBigInt:
			return "BIGSERIAL"
		case gddl.TypeInt, "INTEGER":
			return "SERIAL"
		}
	}
	return typ
}
