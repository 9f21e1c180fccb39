package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"os"

	"listingsetl/pkg/records"
)

func writeJSONL(ctx context.Context, path string, b records.Batch) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	w := bufio.NewWriter(out)
	for i, rec := range b.Rows {
		if err := canceled(ctx, i); err != nil {
			return err
		}
		line, err := encodeObject(b.Columns, rec)
		if err != nil {
			return err
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return out.Close()
}

// encodeObject renders rec as a JSON object with keys in column order.
func encodeObject(columns []string, rec records.Record) ([]byte, error) {
	buf := []byte{'{'}
	for i, name := range columns {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(JSONValue(rec[name]))
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}
