// Package transformer defines the row-level transformation contract used by
// the pipeline and a Chain to compose transformations.
package transformer

import "listingsetl/pkg/records"

// Transformer rewrites a slice of records. Implementations may mutate the
// records in place and return the same slice.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}

// Func adapts an ordinary function to Transformer.
type Func func([]records.Record) []records.Record

func (f Func) Apply(in []records.Record) []records.Record { return f(in) }
