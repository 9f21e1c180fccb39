package builtin

import (
	"listingsetl/internal/schema"
	"listingsetl/pkg/records"
)

// RequireColumns is the schema gate in front of normalization: it checks that
// a batch exposes every contract column.
type RequireColumns struct {
	Contract schema.Contract
}

// Check returns a *schema.SchemaError naming every missing column, or nil.
// It does not inspect or modify rows.
func (r RequireColumns) Check(b records.Batch) error {
	if missing := r.Contract.Missing(b.Columns); len(missing) > 0 {
		return &schema.SchemaError{Missing: missing}
	}
	return nil
}
