package storage

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// SQLValue converts a normalized cell into a plain driver value. Missing
// markers become nil; valid markers unwrap to int64, float64 or time.Time.
// Other values pass through.
func SQLValue(v any) any {
	switch t := v.(type) {
	case pgtype.Int8:
		if !t.Valid {
			return nil
		}
		return t.Int64
	case pgtype.Float8:
		if !t.Valid {
			return nil
		}
		return t.Float64
	case pgtype.Date:
		if !t.Valid {
			return nil
		}
		return t.Time
	default:
		return v
	}
}

// DateString renders time values as ISO-8601 dates for backends without a
// native DATE type. Other values pass through.
func DateString(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}
