package sink

import (
	"context"
	"encoding/csv"
	"os"

	"listingsetl/pkg/records"
)

func writeCSV(ctx context.Context, path string, b records.Batch) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	w := csv.NewWriter(out)
	if err := w.Write(b.Columns); err != nil {
		return err
	}
	row := make([]string, len(b.Columns))
	for i, rec := range b.Rows {
		if err := canceled(ctx, i); err != nil {
			return err
		}
		for c, name := range b.Columns {
			row[c], _ = Cell(rec[name])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return out.Close()
}
