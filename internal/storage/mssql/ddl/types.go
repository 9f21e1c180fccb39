// Package ddl contains MSSQL-specific helpers for generating DDL.
package ddl

import (
	"strings"

	gddl "listingsetl/internal/ddl"
)

// MapType returns the SQL Server type for c.
//
// UNIQUE text columns get NVARCHAR(450) because SQL Server cannot index
// NVARCHAR(MAX). Serial keys stay plain integers: the loader assigns them and
// bulk copy cannot write into IDENTITY columns.
func MapType(c gddl.ColumnDef) string {
	typ := strings.ToUpper(strings.TrimSpace(c.SQLType))
	switch typ {
	case gddl.TypeInt, "INTEGER":
		return "INT"
	case gddl.TypeBigInt:
		return "BIGINT"
	case gddl.TypeDouble, "FLOAT", "REAL":
		return "FLOAT"
	case gddl.TypeNumeric, "DECIMAL":
		return "DECIMAL(18, 4)"
	case gddl.TypeDate:
		return "DATE"
	default:
		if c.Unique || c.PrimaryKey {
			return "NVARCHAR(450)"
		}
		return "NVARCHAR(MAX)"
	}
}
