// Package etl runs the listings pipeline: the in-memory core that validates,
// normalizes and partitions one batch, and the Runner that wires the core to
// the reader, the writers and the optional relational load.
package etl

import (
	"time"

	"listingsetl/internal/metrics"
	"listingsetl/internal/schema"
	"listingsetl/internal/transformer"
	"listingsetl/internal/transformer/builtin"
	"listingsetl/pkg/records"
)

// Result is the outcome of Pipeline.Process. Accepted and Rejected are
// disjoint and together hold every input row in input order. Their rows are
// copies; changing them does not touch the input batch.
type Result struct {
	Accepted records.Batch
	Rejected records.Batch
}

// Pipeline is the synchronous core. The zero value is not usable; start from
// DefaultPipeline.
type Pipeline struct {
	Contract schema.Contract

	// Workers bounds concurrent column normalization. Zero means one
	// goroutine per column.
	Workers int

	// Rules is the admission policy. Nil means builtin.DefaultRules.
	Rules []builtin.AdmissionRule

	// OnReject, when set, is called for every rejected row.
	OnReject func(builtin.RejectedRow)

	// Observe, when set, receives the outcome and duration of each stage.
	Observe func(step string, err error, d time.Duration)
}

// DefaultPipeline returns the core configured for the listings export.
func DefaultPipeline() Pipeline {
	return Pipeline{Contract: schema.Listings, Rules: builtin.DefaultRules}
}

// Process validates b against the contract, normalizes every contract column
// and splits the rows by the admission rules. A *schema.SchemaError is
// returned before any value is touched.
func (p Pipeline) Process(b records.Batch) (Result, error) {
	start := time.Now()
	err := builtin.RequireColumns{Contract: p.Contract}.Check(b)
	p.observe(metrics.StepValidate, err, start)
	if err != nil {
		return Result{}, err
	}

	start = time.Now()
	chain := transformer.Chain{builtin.NormalizeColumns{Contract: p.Contract, Workers: p.Workers}}
	normalized := records.Batch{Columns: b.Columns, Rows: chain.Apply(b.Rows)}
	p.observe(metrics.StepNormalize, nil, start)

	start = time.Now()
	accepted, rejected := builtin.Admit{Rules: p.Rules, OnReject: p.OnReject}.Partition(normalized)
	p.observe(metrics.StepAdmit, nil, start)

	return Result{Accepted: accepted, Rejected: rejected}, nil
}

func (p Pipeline) observe(step string, err error, start time.Time) {
	if p.Observe != nil {
		p.Observe(step, err, time.Since(start))
	}
}
