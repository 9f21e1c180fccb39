// Package builtin contains the transformers used by the listings pipeline:
// per-column normalizers, the column orchestrator, the required-column gate,
// and the row admission filter.
package builtin

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"listingsetl/internal/schema"
)

// NormalizeFunc converts one raw cell into its typed form. Implementations are
// total: malformed input yields the type's missing marker, never a panic.
type NormalizeFunc func(v any) any

// Missing-value markers. They are distinct from the empty string and encode
// as NULL for every storage backend.
var (
	MissingInt   = pgtype.Int8{}
	MissingFloat = pgtype.Float8{}
	MissingDate  = pgtype.Date{}
)

// NormalizerFor returns the rule for f's kind. Unknown kinds pass values
// through unchanged.
func NormalizerFor(f schema.Field) NormalizeFunc {
	switch f.Kind {
	case schema.KindID, schema.KindCount:
		return ToInt
	case schema.KindText:
		return ToText(f.Placeholder)
	case schema.KindCoordinate, schema.KindRate:
		return ToFloat
	case schema.KindCurrency:
		return ToPrice
	case schema.KindDate:
		return ToDate
	default:
		return func(v any) any { return v }
	}
}

// NormalizeValues applies f's rule to every value of a column. The result has
// the same length and order as in.
func NormalizeValues(f schema.Field, in []any) []any {
	fn := NormalizerFor(f)
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// ToText returns a text rule: null becomes placeholder, anything else is
// rendered as a string and trimmed. A whitespace-only value trims to "" and is
// kept; only nulls are substituted.
func ToText(placeholder string) NormalizeFunc {
	return func(v any) any {
		if isNull(v) {
			return placeholder
		}
		return strings.TrimSpace(asString(v))
	}
}

// ToInt parses an integer identifier or count. Integral floats ("10.0") are
// accepted; everything else becomes MissingInt. That includes fractional
// numbers: a count of "1.5" is numeric but not a count, and is recorded as
// missing rather than truncated or rounded.
func ToInt(v any) any {
	switch t := v.(type) {
	case pgtype.Int8:
		return t
	case int:
		return pgtype.Int8{Int64: int64(t), Valid: true}
	case int32:
		return pgtype.Int8{Int64: int64(t), Valid: true}
	case int64:
		return pgtype.Int8{Int64: t, Valid: true}
	case float64:
		return intFromFloat(t)
	case pgtype.Float8:
		if !t.Valid {
			return MissingInt
		}
		return intFromFloat(t.Float64)
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return pgtype.Int8{Int64: i, Valid: true}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return intFromFloat(f)
		}
	}
	return MissingInt
}

// ToFloat parses a coordinate or rate. No range validation is applied.
func ToFloat(v any) any {
	switch t := v.(type) {
	case pgtype.Float8:
		return t
	case float64:
		return floatOrMissing(t)
	case int:
		return pgtype.Float8{Float64: float64(t), Valid: true}
	case int64:
		return pgtype.Float8{Float64: float64(t), Valid: true}
	case pgtype.Int8:
		if !t.Valid {
			return MissingFloat
		}
		return pgtype.Float8{Float64: float64(t.Int64), Valid: true}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return floatOrMissing(f)
		}
	}
	return MissingFloat
}

// priceSymbols are removed first; priceJunk then drops anything that is not a
// digit, a decimal point, or a minus sign.
var (
	priceSymbols = strings.NewReplacer("$", "", ",", "")
	priceJunk    = regexp.MustCompile(`[^0-9.\-]`)
)

// ToPrice parses a currency amount such as "$1,200.50". An empty or
// unparseable residue becomes MissingFloat.
func ToPrice(v any) any {
	switch t := v.(type) {
	case string:
		s := priceJunk.ReplaceAllString(priceSymbols.Replace(t), "")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatOrMissing(f)
		}
		return MissingFloat
	default:
		return ToFloat(v)
	}
}

// dateLayouts are tried in order. ISO first; month-first before day-first for
// slash dates, matching the export's US origin.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// ToDate parses a calendar date; the time of day is dropped.
func ToDate(v any) any {
	switch t := v.(type) {
	case pgtype.Date:
		return t
	case time.Time:
		if t.IsZero() {
			return MissingDate
		}
		return dateOf(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return MissingDate
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return dateOf(d)
			}
		}
	}
	return MissingDate
}

func dateOf(t time.Time) pgtype.Date {
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func floatOrMissing(f float64) pgtype.Float8 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return MissingFloat
	}
	return pgtype.Float8{Float64: f, Valid: true}
}

func intFromFloat(f float64) pgtype.Int8 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return MissingInt
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return MissingInt
	}
	return pgtype.Int8{Int64: int64(f), Valid: true}
}

// isNull reports whether v is an absent value: nil, NaN, or an invalid
// typed marker.
func isNull(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(t)
	case pgtype.Int8:
		return !t.Valid
	case pgtype.Float8:
		return !t.Valid
	case pgtype.Date:
		return !t.Valid
	}
	return false
}

// asString converts common types to string without going through fmt.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case pgtype.Int8:
		return strconv.FormatInt(t.Int64, 10)
	case pgtype.Float8:
		return strconv.FormatFloat(t.Float64, 'f', -1, 64)
	case pgtype.Date:
		return t.Time.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}
