package builtin

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"

	"listingsetl/internal/schema"
	"listingsetl/pkg/records"
)

func normalizedBatch(prices ...string) records.Batch {
	b := records.Batch{Columns: schema.Listings.Names()}
	for i, p := range prices {
		b.Rows = append(b.Rows, rawRow(string(rune('1'+i)), "n", p))
	}
	NormalizeColumns{Contract: schema.Listings}.Apply(b.Rows)
	return b
}

func TestAdmit_PriceScenario(t *testing.T) {
	t.Parallel()

	b := normalizedBatch("100", "abc")
	acc, rej := Admit{}.Partition(b)

	if acc.Len() != 1 || rej.Len() != 1 {
		t.Fatalf("accepted=%d rejected=%d, want 1/1", acc.Len(), rej.Len())
	}
	if acc.Rows[0][schema.ColPrice] != (pgtype.Float8{Float64: 100, Valid: true}) {
		t.Errorf("accepted price = %#v", acc.Rows[0][schema.ColPrice])
	}
	if _, ok := acc.Rows[0][schema.ColRejectReason]; ok {
		t.Errorf("accepted row carries reject_reason")
	}
	if got := rej.Rows[0][schema.ColRejectReason]; got != ReasonInvalidPrice {
		t.Errorf("reject_reason = %#v, want %q", got, ReasonInvalidPrice)
	}
	if rej.Columns[len(rej.Columns)-1] != schema.ColRejectReason {
		t.Errorf("rejected columns = %v", rej.Columns)
	}
	// Rejected rows keep all original columns.
	for _, c := range schema.Listings.Names() {
		if _, ok := rej.Rows[0][c]; !ok {
			t.Errorf("rejected row lost column %s", c)
		}
	}
}

func TestAdmit_MissingIDStillAdmitted(t *testing.T) {
	t.Parallel()

	b := records.Batch{Columns: schema.Listings.Names(), Rows: []records.Record{rawRow("abc", "n", "100")}}
	NormalizeColumns{Contract: schema.Listings}.Apply(b.Rows)

	if b.Rows[0][schema.ColID] != MissingInt {
		t.Fatalf("id = %#v, want missing", b.Rows[0][schema.ColID])
	}
	acc, rej := Admit{}.Partition(b)
	if acc.Len() != 1 || rej.Len() != 0 {
		t.Fatalf("accepted=%d rejected=%d, want 1/0", acc.Len(), rej.Len())
	}
}

func TestAdmit_ConservesAndPreservesOrder(t *testing.T) {
	t.Parallel()

	prices := []string{"1", "x", "2", "", "3", "$", "4"}
	b := normalizedBatch(prices...)
	acc, rej := Admit{}.Partition(b)

	if acc.Len()+rej.Len() != b.Len() {
		t.Fatalf("accepted %d + rejected %d != input %d", acc.Len(), rej.Len(), b.Len())
	}
	var prev float64
	for _, r := range acc.Rows {
		p := r[schema.ColPrice].(pgtype.Float8).Float64
		if p <= prev {
			t.Fatalf("accepted order broken: %v after %v", p, prev)
		}
		prev = p
	}

	// No row in both outputs; identify rows by id.
	seen := map[int64]int{}
	for _, r := range acc.Rows {
		seen[r[schema.ColID].(pgtype.Int8).Int64]++
	}
	for _, r := range rej.Rows {
		seen[r[schema.ColID].(pgtype.Int8).Int64]++
	}
	if len(seen) != len(prices) {
		t.Fatalf("distinct ids = %d, want %d", len(seen), len(prices))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("id %d appears %d times", id, n)
		}
	}
}

func TestAdmit_RejectedRowsAreCopies(t *testing.T) {
	t.Parallel()

	b := normalizedBatch("abc")
	_, rej := Admit{}.Partition(b)
	if _, ok := b.Rows[0][schema.ColRejectReason]; ok {
		t.Fatalf("input row was mutated")
	}
	rej.Rows[0][schema.ColName] = "changed"
	if b.Rows[0][schema.ColName] == "changed" {
		t.Fatalf("rejected row shares storage with input")
	}
}

func TestAdmit_AcceptedRowsAreCopies(t *testing.T) {
	t.Parallel()

	b := normalizedBatch("100")
	acc, _ := Admit{}.Partition(b)
	if acc.Len() != 1 {
		t.Fatalf("accepted = %d, want 1", acc.Len())
	}
	acc.Rows[0][schema.ColName] = "changed"
	if b.Rows[0][schema.ColName] == "changed" {
		t.Fatalf("accepted row shares storage with input")
	}
}

func TestAdmit_FirstMatchingRuleWinsAndSinkCalled(t *testing.T) {
	t.Parallel()

	missingID := AdmissionRule{
		Reason:  "Invalid id",
		Rejects: func(r records.Record) bool { return isNull(r[schema.ColID]) },
	}
	b := records.Batch{Columns: schema.Listings.Names(), Rows: []records.Record{
		rawRow("abc", "n", "abc"), // both rules fire; price is first
		rawRow("abc", "n", "10"),  // only id
		rawRow("5", "n", "10"),    // none
	}}
	NormalizeColumns{Contract: schema.Listings}.Apply(b.Rows)

	var sunk []RejectedRow
	acc, rej := Admit{
		Rules:    []AdmissionRule{InvalidPrice, missingID},
		OnReject: func(r RejectedRow) { sunk = append(sunk, r) },
	}.Partition(b)

	if acc.Len() != 1 || rej.Len() != 2 {
		t.Fatalf("accepted=%d rejected=%d, want 1/2", acc.Len(), rej.Len())
	}
	if rej.Rows[0][schema.ColRejectReason] != ReasonInvalidPrice || rej.Rows[1][schema.ColRejectReason] != "Invalid id" {
		t.Fatalf("reasons = %v, %v", rej.Rows[0][schema.ColRejectReason], rej.Rows[1][schema.ColRejectReason])
	}
	if len(sunk) != 2 || sunk[0].Index != 0 || sunk[1].Index != 1 {
		t.Fatalf("sink calls = %+v", sunk)
	}
}

func TestAdmit_EmptyBatch(t *testing.T) {
	t.Parallel()

	acc, rej := Admit{}.Partition(records.Batch{Columns: []string{"price"}})
	if acc.Len() != 0 || rej.Len() != 0 {
		t.Fatalf("accepted=%d rejected=%d", acc.Len(), rej.Len())
	}
	if len(rej.Columns) != 2 {
		t.Fatalf("rejected columns = %v", rej.Columns)
	}
}
