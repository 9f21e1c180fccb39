package builtin

import (
	"golang.org/x/sync/errgroup"

	"listingsetl/internal/schema"
	"listingsetl/pkg/records"
)

// NormalizeColumns replaces every contract column with its normalized form.
// Columns outside the contract are left untouched.
//
// Each column is computed into its own slice by an independent goroutine that
// only reads the records; results are written back sequentially afterwards.
// The output is therefore identical to a sequential run regardless of
// Workers.
type NormalizeColumns struct {
	Contract schema.Contract

	// Workers bounds the number of columns normalized concurrently.
	// Zero or negative means one goroutine per column.
	Workers int
}

// Apply normalizes in place and returns in.
func (n NormalizeColumns) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(n.Contract.Fields) == 0 {
		return in
	}

	fields := n.Contract.Fields
	cols := make([][]any, len(fields))

	var g errgroup.Group
	if n.Workers > 0 {
		g.SetLimit(n.Workers)
	}
	for i, f := range fields {
		i, f := i, f
		fn := NormalizerFor(f)
		g.Go(func() error {
			out := make([]any, len(in))
			for r, rec := range in {
				out[r] = fn(rec[f.Name])
			}
			cols[i] = out
			return nil
		})
	}
	_ = g.Wait() // normalizers never fail

	for i, f := range fields {
		for r, rec := range in {
			rec[f.Name] = cols[i][r]
		}
	}
	return in
}
