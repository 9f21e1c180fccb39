// Package schema holds the column specification of a listings export: the
// required column names, the semantic type each one is normalized to, and
// the placeholder used for missing text.
//
// The specification is data. The rules that implement each Kind live in
// internal/transformer/builtin; the schema validator and the normalization
// orchestrator both read the same Contract.
package schema

// Kind is the semantic target type of a column.
type Kind string

const (
	KindID         Kind = "id"         // integer identifier
	KindText       Kind = "text"       // trimmed string, null -> placeholder
	KindCoordinate Kind = "coordinate" // float, no range validation
	KindCurrency   Kind = "currency"   // money string -> float
	KindCount      Kind = "count"      // integer count; fractional values load as missing
	KindRate       Kind = "rate"       // fractional rate
	KindDate       Kind = "date"       // calendar date
)

// Field describes one required column.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	// Placeholder replaces null values of text columns. Ignored for other
	// kinds, which use a typed missing marker instead.
	Placeholder string `json:"placeholder,omitempty"`
}

// Contract is an ordered set of required fields.
type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Names returns the field names in contract order.
func (c Contract) Names() []string {
	out := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		out[i] = f.Name
	}
	return out
}

// Field returns the field called name.
func (c Contract) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Missing returns the contract fields absent from columns, in contract order.
func (c Contract) Missing(columns []string) []string {
	have := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		have[col] = struct{}{}
	}
	var missing []string
	for _, f := range c.Fields {
		if _, ok := have[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
