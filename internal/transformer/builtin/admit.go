package builtin

import (
	"listingsetl/internal/schema"
	"listingsetl/pkg/records"
)

// ReasonInvalidPrice is attached to rows whose price could not be parsed.
const ReasonInvalidPrice = "Invalid price"

// AdmissionRule is one rejection criterion. Rejects must not modify the row.
type AdmissionRule struct {
	Reason  string
	Rejects func(records.Record) bool
}

// InvalidPrice rejects rows whose price is the missing-float marker.
var InvalidPrice = AdmissionRule{
	Reason: ReasonInvalidPrice,
	Rejects: func(r records.Record) bool {
		return isNull(r[schema.ColPrice])
	},
}

// DefaultRules is the admission policy of the listings pipeline. Price is the
// only hard gate; a missing id or an odd coordinate is still admitted.
var DefaultRules = []AdmissionRule{InvalidPrice}

// RejectedRow describes a row that failed admission.
type RejectedRow struct {
	Index  int // 0-based position in the input batch
	Row    records.Record
	Reason string
}

// Admit splits a normalized batch into accepted and rejected rows.
type Admit struct {
	// Rules are evaluated in order; the first rule that rejects a row names
	// its reason. Nil means DefaultRules.
	Rules []AdmissionRule

	// OnReject is an optional sink called once per rejected row.
	OnReject func(RejectedRow)
}

// Partition places every row of b in exactly one of the two returned batches,
// preserving relative order. Both outputs hold copies of the input records;
// rejected copies also carry schema.ColRejectReason.
func (a Admit) Partition(b records.Batch) (accepted, rejected records.Batch) {
	rules := a.Rules
	if rules == nil {
		rules = DefaultRules
	}

	accepted = records.Batch{
		Columns: append([]string(nil), b.Columns...),
		Rows:    make([]records.Record, 0, len(b.Rows)),
	}
	rejected = records.Batch{
		Columns: b.WithColumn(schema.ColRejectReason),
		Rows:    []records.Record{},
	}

	for i, row := range b.Rows {
		reason, bad := firstRejection(rules, row)
		if !bad {
			accepted.Rows = append(accepted.Rows, row.Clone())
			continue
		}
		cp := row.Clone()
		cp[schema.ColRejectReason] = reason
		rejected.Rows = append(rejected.Rows, cp)
		if a.OnReject != nil {
			a.OnReject(RejectedRow{Index: i, Row: cp, Reason: reason})
		}
	}
	return accepted, rejected
}

func firstRejection(rules []AdmissionRule, row records.Record) (string, bool) {
	for _, rule := range rules {
		if rule.Rejects != nil && rule.Rejects(row) {
			return rule.Reason, true
		}
	}
	return "", false
}
