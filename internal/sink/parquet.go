package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"listingsetl/pkg/records"
)

// parquetSchema builds the JSON schema parquet-go's JSONWriter expects.
// Column types come from the first value found in each column: integer and
// float markers map to INT64 and DOUBLE, everything else (dates included) is
// written as UTF8 text. Every column is OPTIONAL so markers can be null.
func parquetSchema(b records.Batch) (string, error) {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=listings, repetitiontype=REQUIRED"}
	for _, name := range b.Columns {
		tag := "name=" + name + ", repetitiontype=OPTIONAL, "
		switch columnType(b, name) {
		case "INT64":
			tag += "type=INT64"
		case "DOUBLE":
			tag += "type=DOUBLE"
		default:
			tag += "type=BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	out, err := json.Marshal(sc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func columnType(b records.Batch, name string) string {
	for _, rec := range b.Rows {
		switch rec[name].(type) {
		case pgtype.Int8, int64, int:
			return "INT64"
		case pgtype.Float8, float64:
			return "DOUBLE"
		case nil:
			continue
		default:
			return "UTF8"
		}
	}
	return "UTF8"
}

// parquetValue coerces v to the column's physical type; text columns are
// always strings.
func parquetValue(kind string, v any) any {
	jv := JSONValue(v)
	if jv == nil {
		return nil
	}
	if kind == "UTF8" {
		s, _ := Cell(v)
		return s
	}
	return jv
}

func writeParquet(ctx context.Context, path string, b records.Batch) error {
	sc, err := parquetSchema(b)
	if err != nil {
		return err
	}
	kinds := make([]string, len(b.Columns))
	for i, name := range b.Columns {
		kinds[i] = columnType(b, name)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	w, err := pw.NewJSONWriter(sc, fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}

	for i, rec := range b.Rows {
		if err := canceled(ctx, i); err != nil {
			_ = fw.Close()
			return err
		}
		row := make(map[string]any, len(b.Columns))
		for c, name := range b.Columns {
			row[name] = parquetValue(kinds[c], rec[name])
		}
		line, err := json.Marshal(row)
		if err != nil {
			_ = fw.Close()
			return err
		}
		if err := w.Write(string(line)); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet write row %d: %w", i, err)
		}
	}
	if err := w.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet finalize: %w", err)
	}
	return fw.Close()
}
