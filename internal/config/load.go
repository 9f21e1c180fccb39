package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvDSN            = "LISTINGS_DB_DSN"
	EnvStorageKind    = "LISTINGS_DB_KIND"
	EnvInput          = "LISTINGS_INPUT"
	EnvWorkers        = "LISTINGS_TRANSFORM_WORKERS"
	EnvMetricsBackend = "METRICS_BACKEND"
	EnvPushgatewayURL = "PUSHGATEWAY_URL"
	EnvDatadogAddr    = "DD_AGENT_ADDR"
)

// Load reads the file at path on top of Default(). The decoder is chosen by
// extension: .json, .yaml/.yml or .toml. Unknown JSON fields are rejected so
// typos surface early.
func Load(path string) (Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("read config: %w", err)
	}
	p := Default()
	if err := Decode(data, filepath.Ext(path), &p); err != nil {
		return Pipeline{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return p, nil
}

// Decode decodes data in the format named by ext into p. Fields absent from
// data keep their current values.
func Decode(data []byte, ext string, p *Pipeline) error {
	switch strings.ToLower(ext) {
	case ".json", "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(p)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml":
		return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(p)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// ApplyEnv overrides p from the environment using getenv (os.Getenv in
// production). Unset or empty variables leave p unchanged.
func ApplyEnv(p *Pipeline, getenv func(string) string) error {
	if v := getenv(EnvDSN); v != "" {
		p.Storage.DB.DSN = v
	}
	if v := getenv(EnvStorageKind); v != "" {
		p.Storage.Kind = v
	}
	if v := getenv(EnvInput); v != "" {
		SetInput(&p.Source, v)
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: not an integer", EnvWorkers, v)
		}
		p.Runtime.TransformWorkers = n
	}
	return nil
}

// SetInput points src at v: an http(s) URL selects the "http" source,
// anything else is a file path.
func SetInput(src *Source, v string) {
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		src.Kind = "http"
		src.HTTP.URL = v
		return
	}
	src.Kind = "file"
	src.File.Path = v
}
