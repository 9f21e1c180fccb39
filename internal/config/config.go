// Package config defines the configuration model of a listings run.
//
// A run is described by a Pipeline, loaded from a JSON, YAML or TOML file
// (see Load) on top of Default(), and then adjusted from the environment
// (see ApplyEnv). Example (JSON):
//
//	{
//	  "job":     "listings",
//	  "source":  { "kind": "file", "file": { "path": "data/listings.csv" } },
//	  "parser":  { "kind": "csv", "options": { "comma": "," } },
//	  "output":  { "clean": "data/listings_clean.csv", "rejects": "data/listings_rejects.csv" },
//	  "storage": { "kind": "postgres", "db": { "dsn": "postgres://..." } },
//	  "runtime": { "transform_workers": 4, "batch_size": 5000 }
//	}
package config

import (
	"encoding/json"
	"strings"
)

// Pipeline is the top-level run configuration.
type Pipeline struct {
	// Job names the run in logs and metrics.
	Job string `json:"job" yaml:"job" toml:"job"`

	Source  Source        `json:"source" yaml:"source" toml:"source"`
	Parser  Parser        `json:"parser" yaml:"parser" toml:"parser"`
	Output  Output        `json:"output" yaml:"output" toml:"output"`
	Storage Storage       `json:"storage" yaml:"storage" toml:"storage"`
	Runtime RuntimeConfig `json:"runtime" yaml:"runtime" toml:"runtime"`
}

// Source identifies the input export: "file" or "http".
type Source struct {
	Kind string     `json:"kind" yaml:"kind" toml:"kind"`
	File SourceFile `json:"file" yaml:"file" toml:"file"`
	HTTP SourceHTTP `json:"http" yaml:"http" toml:"http"`
}

// Location returns the path or URL the source reads from.
func (s Source) Location() string {
	if s.Kind == "http" {
		return s.HTTP.URL
	}
	return s.File.Path
}

// SourceFile holds the "file" source options.
type SourceFile struct {
	Path string `json:"path" yaml:"path" toml:"path"`
}

// SourceHTTP holds the "http" source options.
type SourceHTTP struct {
	URL string `json:"url" yaml:"url" toml:"url"`

	// TimeoutSeconds bounds each request. Zero uses the client default.
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`

	// MaxRetries is the number of retries on transport errors, 429 and 5xx.
	MaxRetries int `json:"max_retries" yaml:"max_retries" toml:"max_retries"`

	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify" toml:"insecure_skip_verify"`
}

// Parser selects the input format. Only "csv" is implemented. Recognized
// options: comma (string), null_values (list of strings), header_map
// (object), skip_malformed (bool).
type Parser struct {
	Kind    string  `json:"kind" yaml:"kind" toml:"kind"`
	Options Options `json:"options" yaml:"options" toml:"options"`
}

// Output names the files written for accepted and rejected rows.
type Output struct {
	Clean   string `json:"clean" yaml:"clean" toml:"clean"`
	Rejects string `json:"rejects" yaml:"rejects" toml:"rejects"`

	// Format is csv, jsonl or parquet. Empty picks by file extension.
	Format string `json:"format" yaml:"format" toml:"format"`
}

// Storage configures the optional relational load. An empty Kind disables it.
type Storage struct {
	// Kind selects the backend: postgres, sqlite or mssql.
	Kind string   `json:"kind" yaml:"kind" toml:"kind"`
	DB   DBConfig `json:"db" yaml:"db" toml:"db"`
}

// DBConfig configures the database connection and schema handling.
type DBConfig struct {
	// DSN is the backend connection string. LISTINGS_DB_DSN overrides it.
	DSN string `json:"dsn" yaml:"dsn" toml:"dsn"`

	// ResetSchema drops and recreates hosts, locations, room_types and
	// listings before loading.
	ResetSchema bool `json:"reset_schema" yaml:"reset_schema" toml:"reset_schema"`
}

// Enabled reports whether a load is configured.
func (s Storage) Enabled() bool { return strings.TrimSpace(s.Kind) != "" }

// RuntimeConfig controls concurrency and batching.
type RuntimeConfig struct {
	// TransformWorkers bounds concurrent column normalization. Zero means one
	// goroutine per column.
	TransformWorkers int `json:"transform_workers" yaml:"transform_workers" toml:"transform_workers"`

	// BatchSize is the number of rows per database copy.
	BatchSize int `json:"batch_size" yaml:"batch_size" toml:"batch_size"`
}

// Default returns the configuration of a plain run over data/listings.csv.
func Default() Pipeline {
	return Pipeline{
		Job:    "listings",
		Source: Source{Kind: "file", File: SourceFile{Path: "data/listings.csv"}},
		Parser: Parser{Kind: "csv", Options: Options{}},
		Output: Output{
			Clean:   "data/listings_clean.csv",
			Rejects: "data/listings_rejects.csv",
		},
		Runtime: RuntimeConfig{BatchSize: 5000},
	}
}

// Options fetches typed values from a free-form options map. Missing keys or
// unexpected types yield the provided default.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if s, ok := o[key].(string); ok {
		return s
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// Int returns the integer value for key or def. JSON decodes numbers as
// float64, YAML as int and TOML as int64; all three are accepted.
func (o Options) Int(key string, def int) int {
	switch n := o[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return def
}

// Rune returns the first rune of a string value for key, or def.
func (o Options) Rune(key string, def rune) rune {
	if s, ok := o[key].(string); ok && s != "" {
		return []rune(s)[0]
	}
	return def
}

// StringMap returns the string-valued entries of an object value. It returns
// an empty map when key is missing.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if m, ok := o[key].(map[string]any); ok {
		for k, v := range m {
			if s, ok := v.(string); ok {
				res[k] = s
			}
		}
	}
	return res
}

// StringSlice returns the string elements of an array value, or nil when key
// is missing or not an array.
func (o Options) StringSlice(key string) []string {
	switch vv := o[key].(type) {
	case []any:
		out := make([]string, 0, len(vv))
		for _, x := range vv {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return vv
	}
	return nil
}

// Has reports whether key is set.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// UnmarshalJSON decodes a missing or null options object to an empty map.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
