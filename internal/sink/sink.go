// Package sink writes cleaned and rejected batches to files.
//
// Three formats are supported: csv (the default, same layout as the input
// export), jsonl (one object per row, keys in column order) and parquet.
// Missing-value markers are written as an empty CSV cell, JSON null or a
// Parquet null.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"listingsetl/pkg/records"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSONL   Format = "jsonl"
	FormatParquet Format = "parquet"
)

type writeFunc func(ctx context.Context, path string, b records.Batch) error

var writers = map[Format]writeFunc{
	FormatCSV:     writeCSV,
	FormatJSONL:   writeJSONL,
	FormatParquet: writeParquet,
}

// FormatFor resolves the output format. An explicit name wins; otherwise the
// path extension decides and anything unrecognized falls back to csv.
func FormatFor(path, explicit string) (Format, error) {
	if explicit != "" {
		f := Format(strings.ToLower(explicit))
		if _, ok := writers[f]; !ok {
			return "", fmt.Errorf("sink: unknown format %q", explicit)
		}
		return f, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return FormatCSV, nil
	}
}

// WriteFile writes b to path in format f, creating parent directories as
// needed. An existing file is replaced.
func WriteFile(ctx context.Context, path string, f Format, b records.Batch) error {
	w, ok := writers[f]
	if !ok {
		return fmt.Errorf("sink: unknown format %q", f)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sink: create %s: %w", dir, err)
		}
	}
	if err := w(ctx, path, b); err != nil {
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	return nil
}

// checkEvery is how many rows are written between context checks.
const checkEvery = 4096

func canceled(ctx context.Context, i int) error {
	if i%checkEvery != 0 {
		return nil
	}
	return ctx.Err()
}
