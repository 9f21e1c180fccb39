// Package records defines the row and batch types that flow through the ETL.
//
// A Record maps column name to value. Values start out as raw cells from the
// reader (string or nil) and are replaced in place by typed values during
// normalization. A Batch couples the rows with the header order so that an
// empty batch still knows its column set.
package records

// Record is a single row keyed by column name.
type Record map[string]any

// Clone returns a shallow copy of r. Values are not deep-copied; the typed
// values used by the pipeline are all immutable value types.
func (r Record) Clone() Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Batch is an ordered set of rows that share Columns.
type Batch struct {
	// Columns lists the column names in source (header) order.
	Columns []string

	// Rows holds the records in source order.
	Rows []Record
}

// Len returns the number of rows in the batch.
func (b Batch) Len() int { return len(b.Rows) }

// HasColumn reports whether name is one of the batch columns.
func (b Batch) HasColumn(name string) bool {
	for _, c := range b.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithColumn returns a copy of the column list with name appended, unless it
// is already present.
func (b Batch) WithColumn(name string) []string {
	out := make([]string, 0, len(b.Columns)+1)
	out = append(out, b.Columns...)
	if !b.HasColumn(name) {
		out = append(out, name)
	}
	return out
}
