package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks the run.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is reported but does not block the run.
	SeverityWarning IssueSeverity = "warning"
)

// Issue is a single lint finding. Path is a dotted path into the config, e.g.
// "storage.db.dsn".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline lints p without modifying it.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels logs and metrics",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateOutput(p.Output)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateRuntime(p.Runtime)...)
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue
	switch strings.TrimSpace(s.Kind) {
	case "":
		return append(issues, Issue{SeverityError, "source.kind", "source.kind must not be empty"})
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{SeverityError, "source.file.path", "file source requires a non-empty path"})
		}
	case "http":
		u := strings.TrimSpace(s.HTTP.URL)
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			issues = append(issues, Issue{SeverityError, "source.http.url", fmt.Sprintf("http source requires an http(s) URL, got %q", s.HTTP.URL)})
		}
		if s.HTTP.MaxRetries < 0 || s.HTTP.TimeoutSeconds < 0 {
			issues = append(issues, Issue{SeverityError, "source.http", "max_retries and timeout_seconds must not be negative"})
		}
		if s.HTTP.InsecureSkipVerify {
			issues = append(issues, Issue{SeverityWarning, "source.http.insecure_skip_verify", "TLS certificate verification is disabled"})
		}
	default:
		issues = append(issues, Issue{SeverityError, "source.kind", fmt.Sprintf("unsupported source kind %q", s.Kind)})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue
	switch strings.TrimSpace(p.Kind) {
	case "":
		return append(issues, Issue{SeverityError, "parser.kind", "parser.kind must not be empty"})
	case "csv":
	default:
		return append(issues, Issue{SeverityError, "parser.kind", fmt.Sprintf("unsupported parser kind %q", p.Kind)})
	}

	if p.Options.Has("comma") {
		c := p.Options.String("comma", "")
		if utf8.RuneCountInString(c) != 1 {
			issues = append(issues, Issue{SeverityError, "parser.options.comma", fmt.Sprintf("comma must be a single character, got %q", c)})
		} else if c == "\"" || c == "\r" || c == "\n" {
			issues = append(issues, Issue{SeverityError, "parser.options.comma", fmt.Sprintf("comma %q is not a valid delimiter", c)})
		}
	}
	if p.Options.Bool("skip_malformed", false) {
		issues = append(issues, Issue{SeverityWarning, "parser.options.skip_malformed", "malformed rows will be dropped without appearing in the rejects file"})
	}
	return issues
}

var knownFormats = map[string]struct{}{"csv": {}, "jsonl": {}, "parquet": {}}

func validateOutput(o Output) []Issue {
	var issues []Issue
	if strings.TrimSpace(o.Clean) == "" {
		issues = append(issues, Issue{SeverityError, "output.clean", "output.clean must not be empty"})
	}
	if strings.TrimSpace(o.Rejects) == "" {
		issues = append(issues, Issue{SeverityError, "output.rejects", "output.rejects must not be empty"})
	}
	if o.Clean != "" && filepath.Clean(o.Clean) == filepath.Clean(o.Rejects) {
		issues = append(issues, Issue{SeverityError, "output.rejects", "output.rejects must differ from output.clean"})
	}
	if o.Format != "" {
		if _, ok := knownFormats[strings.ToLower(o.Format)]; !ok {
			issues = append(issues, Issue{SeverityError, "output.format", fmt.Sprintf("unknown output format %q", o.Format)})
		}
	}
	return issues
}

var knownStorage = map[string]struct{}{"postgres": {}, "sqlite": {}, "mssql": {}}

func validateStorage(s Storage) []Issue {
	if !s.Enabled() {
		return nil
	}
	var issues []Issue
	if _, ok := knownStorage[s.Kind]; !ok {
		issues = append(issues, Issue{SeverityError, "storage.kind", fmt.Sprintf("unknown storage kind %q; expected postgres, sqlite or mssql", s.Kind)})
	}
	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "storage.db.dsn", "storage.db.dsn must not be empty (or set " + EnvDSN + ")"})
	}
	return issues
}

func validateRuntime(r RuntimeConfig) []Issue {
	var issues []Issue
	if r.TransformWorkers < 0 {
		issues = append(issues, Issue{SeverityError, "runtime.transform_workers", "transform_workers must not be negative"})
	}
	if r.BatchSize <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "runtime.batch_size",
			Message:  fmt.Sprintf("batch_size=%d; the loader will fall back to its default", r.BatchSize),
		})
	}
	return issues
}
