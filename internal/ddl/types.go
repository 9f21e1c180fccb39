package ddl

// Portable column types. Dialects map them to their native spelling.
const (
	TypeBigInt  = "BIGINT"
	TypeInt     = "INT"
	TypeText    = "TEXT"
	TypeNumeric = "NUMERIC"
	TypeDouble  = "DOUBLE PRECISION"
	TypeDate    = "DATE"
)

// ColumnDef describes a single column in a table definition.
//
// Fields:
//   - Name: column name (unquoted; quoting happens at render time)
//   - SQLType: one of the Type* constants, or a raw dialect type
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - Serial: the column is a generated integer key (SERIAL, IDENTITY)
//   - Unique: add a UNIQUE constraint
//   - References: "table(column)" for a foreign key
//   - Default: raw default expression
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Serial     bool
	Unique     bool
	References string
	Default    string
}

// TableDef holds the table name and an ordered list of columns. The FQN may be
// dotted ("schema.table"); renderers quote each segment.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// ColumnNames returns the column names of t in declaration order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// dependsOnOthers reports whether any column of t is a foreign key.
func (t TableDef) dependsOnOthers() bool {
	for _, c := range t.Columns {
		if c.References != "" {
			return true
		}
	}
	return false
}
