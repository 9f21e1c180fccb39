package probe

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// candidateDelimiters are tried by detectDelimiter, in tie-break order.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// maxSampleRows caps the rows kept from a sample.
const maxSampleRows = 10000

// readCSVSample parses data using delim and returns headers and the data rows
// whose width matches the header. Malformed and misaligned lines are skipped;
// a sample is usually cut mid-file.
func readCSVSample(data []byte, delim rune) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var headers []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return []string{}, [][]string{}, nil
		}
		if err != nil || len(rec) == 0 {
			continue
		}
		headers = stripUTF8BOM(rec)
		break
	}

	rows := make([][]string, 0, 64)
	want := len(headers)
	for len(rows) < maxSampleRows {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) != want {
			continue
		}
		rows = append(rows, rec)
	}
	return headers, rows, nil
}

// detectDelimiter picks the candidate that splits the header into the most
// fields while keeping at least as many aligned data rows as any rival.
// It falls back to ',' when nothing splits the header.
func detectDelimiter(sample []byte) rune {
	best, bestFields, bestRows := ',', 1, -1
	for _, d := range candidateDelimiters {
		headers, rows, err := readCSVSample(sample, d)
		if err != nil || len(headers) < 2 {
			continue
		}
		switch {
		case len(rows) > bestRows,
			len(rows) == bestRows && len(headers) > bestFields:
			best, bestFields, bestRows = d, len(headers), len(rows)
		}
	}
	return best
}

// stripUTF8BOM removes a UTF-8 BOM from the first header field if present.
func stripUTF8BOM(headers []string) []string {
	if len(headers) == 0 {
		return headers
	}
	headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	return headers
}

// normalizeFieldName canonicalizes a header for matching:
//  1. trim and lowercase
//  2. strip accents (NFD, remove Mn, NFC)
//  3. keep [a-z0-9_]; space, dash and dot become one underscore
func normalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
