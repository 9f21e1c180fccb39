package sink

import (
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const dateLayout = "2006-01-02"

// Cell renders v for a text format. ok is false for nulls and missing
// markers.
func Cell(v any) (s string, ok bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case pgtype.Int8:
		if !t.Valid {
			return "", false
		}
		return strconv.FormatInt(t.Int64, 10), true
	case pgtype.Float8:
		if !t.Valid {
			return "", false
		}
		return strconv.FormatFloat(t.Float64, 'f', -1, 64), true
	case pgtype.Date:
		if !t.Valid {
			return "", false
		}
		return t.Time.Format(dateLayout), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return fmt.Sprint(t), true
	}
}

// JSONValue converts v to a value encoding/json renders naturally: numbers
// stay numbers, dates become "YYYY-MM-DD" and missing markers become nil.
func JSONValue(v any) any {
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
		return t.Time.Format(dateLayout)
	default:
		return v
	}
}
