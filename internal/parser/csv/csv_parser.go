// Package csv reads a delimited listings export into a records.Batch.
//
// Cells are kept as raw strings. Tokens that the upstream tooling treats as
// "not available" (empty cell, NA, NULL, NaN, ...) are turned into nil so the
// normalizers see a real null rather than a sentinel string.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"listingsetl/pkg/records"
)

// DefaultNullValues are the cell values read as null. The list matches the
// NA vocabulary of the analytics tooling that produces the exports. Matching
// is exact; " NA " is a string.
var DefaultNullValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// ErrFieldCount is wrapped by Parse when a row has more cells than the header.
var ErrFieldCount = errors.New("too many fields")

// Options configures the parser. The zero value reads comma-separated input
// with DefaultNullValues.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// NullValues replaces DefaultNullValues when non-nil. An empty, non-nil
	// slice disables null detection.
	NullValues []string

	// HeaderMap renames source headers (after trimming) to canonical names.
	HeaderMap map[string]string

	// SkipMalformed drops rows that cannot be read instead of failing the
	// whole parse. Dropped rows are logged (up to a limit) and counted.
	SkipMalformed bool
}

// Parser reads CSV input according to Options. It is safe to reuse across
// inputs but not for concurrent use.
type Parser struct {
	opt   Options
	nulls map[string]struct{}
}

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	vals := opt.NullValues
	if vals == nil {
		vals = DefaultNullValues
	}
	nulls := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		nulls[v] = struct{}{}
	}
	return &Parser{opt: opt, nulls: nulls}
}

// skipLogLimit caps the per-parse log lines for skipped rows.
const skipLogLimit = 100

// Parse reads the header and every body row of r. Short rows are padded with
// nulls; rows with more cells than the header fail the parse with the line
// number, or are skipped when SkipMalformed is set. It returns the batch and
// the number of skipped rows.
func (p *Parser) Parse(r io.Reader) (records.Batch, int, error) {
	cr := csv.NewReader(StripBOM(r))
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err == io.EOF {
		return records.Batch{}, 0, fmt.Errorf("read csv header: empty input")
	}
	if err != nil {
		return records.Batch{}, 0, fmt.Errorf("read csv header: %w", err)
	}
	headers := normalizeHeaders(h, p.opt.HeaderMap)

	b := records.Batch{Columns: headers, Rows: []records.Record{}}
	skipped := 0
	skip := func(line int, err error) error {
		if !p.opt.SkipMalformed {
			return fmt.Errorf("csv line %d: %w", line, err)
		}
		if skipped < skipLogLimit {
			log.Printf("csv: skipping line %d: %v", line, err)
		}
		skipped++
		return nil
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.StartLine
			}
			if ferr := skip(line, err); ferr != nil {
				return records.Batch{}, skipped, ferr
			}
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(row) > len(headers) {
			ferr := skip(line, fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, len(headers), len(row)))
			if ferr != nil {
				return records.Batch{}, skipped, ferr
			}
			continue
		}

		rec := make(records.Record, len(headers))
		for i, key := range headers {
			if i >= len(row) {
				rec[key] = nil
				continue
			}
			rec[key] = p.cell(row[i])
		}
		b.Rows = append(b.Rows, rec)
	}
	return b, skipped, nil
}

func (p *Parser) cell(s string) any {
	if _, ok := p.nulls[s]; ok {
		return nil
	}
	return s
}

// normalizeHeaders trims each header and applies headerMap. Names are not
// case-folded; the listings columns are matched exactly.
func normalizeHeaders(h []string, headerMap map[string]string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if m, ok := headerMap[c]; ok {
			c = m
		}
		res[i] = c
	}
	return res
}
