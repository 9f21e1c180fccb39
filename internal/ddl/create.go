// Package ddl defines a small, backend-agnostic model for SQL DDL, the
// relational layout of the listings warehouse, and helpers to render and apply
// it.
//
// Backend packages (internal/storage/<backend>/ddl) supply a Style with their
// identifier quoting and type mapping and wrap the rendered statement where
// the dialect needs it (for example the T-SQL OBJECT_ID guard).
package ddl

import (
	"fmt"
	"strings"
)

// Style captures the dialect-specific parts of a CREATE TABLE statement.
type Style struct {
	// Name prefixes error messages, e.g. "postgres ddl".
	Name string

	// Quote quotes a single identifier segment. Nil leaves names as-is.
	Quote func(string) string

	// Type returns the native column type. Nil emits SQLType verbatim.
	Type func(ColumnDef) string

	// IfNotExists emits CREATE TABLE IF NOT EXISTS.
	IfNotExists bool
}

// Generic renders names unquoted and types verbatim.
var Generic = Style{Name: "ddl"}

// BuildCreateTableSQL renders a CREATE TABLE statement with the Generic style.
func BuildCreateTableSQL(t TableDef) (string, error) {
	return Generic.CreateTable(t)
}

// CreateTable renders t as:
//
//	CREATE TABLE [IF NOT EXISTS] <fqn> (
//	  <col> <type> [NOT NULL] [UNIQUE] [DEFAULT <expr>],
//	  ...,
//	  [PRIMARY KEY (<pk-cols>)],
//	  [FOREIGN KEY (<col>) REFERENCES <table>(<col>)]
//	);
//
// Primary-key columns are always NOT NULL.
func (s Style) CreateTable(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s: table FQN must not be empty", s.Name)
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s: at least one column is required", s.Name)
	}

	cols := make([]string, 0, len(t.Columns)+2)
	pks := make([]string, 0, 1)
	var fks []string

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("%s: column with empty name in table %s", s.Name, fqn)
		}
		c.Name = name
		if strings.TrimSpace(c.SQLType) == "" {
			return "", fmt.Errorf("%s: column %s missing SQLType", s.Name, name)
		}

		var sb strings.Builder
		sb.WriteString(s.quote(name))
		sb.WriteByte(' ')
		sb.WriteString(s.typeOf(c))
		if !c.Nullable || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		if c.Unique {
			sb.WriteString(" UNIQUE")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}
		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, s.quote(name))
		}
		if c.References != "" {
			ref, err := s.reference(c.References)
			if err != nil {
				return "", fmt.Errorf("%s: column %s: %w", s.Name, name, err)
			}
			fks = append(fks, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s", s.quote(name), ref))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	cols = append(cols, fks...)

	head := "CREATE TABLE "
	if s.IfNotExists {
		head += "IF NOT EXISTS "
	}
	return fmt.Sprintf("%s%s (\n  %s\n);", head, s.QuoteFQN(fqn), strings.Join(cols, ",\n  ")), nil
}

// QuoteFQN quotes each dotted segment of fqn.
func (s Style) QuoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, s.quote(p))
	}
	return strings.Join(out, ".")
}

func (s Style) quote(id string) string {
	if s.Quote == nil {
		return id
	}
	return s.Quote(id)
}

func (s Style) typeOf(c ColumnDef) string {
	if s.Type == nil {
		return strings.TrimSpace(c.SQLType)
	}
	return s.Type(c)
}

// reference renders "table(col)" with quoting applied to both parts.
func (s Style) reference(ref string) (string, error) {
	open := strings.IndexByte(ref, '(')
	if open <= 0 || !strings.HasSuffix(ref, ")") {
		return "", fmt.Errorf("malformed reference %q, want table(column)", ref)
	}
	table := strings.TrimSpace(ref[:open])
	col := strings.TrimSpace(ref[open+1 : len(ref)-1])
	if col == "" {
		return "", fmt.Errorf("malformed reference %q, want table(column)", ref)
	}
	return fmt.Sprintf("%s(%s)", s.QuoteFQN(table), s.quote(col)), nil
}
