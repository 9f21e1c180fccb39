package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path and a Message containing msgSubstr.
func hasIssue(issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

func TestValidatePipeline_ValidWithStorage(t *testing.T) {
	t.Parallel()

	p := Default()
	p.Storage = Storage{Kind: "sqlite", DB: DBConfig{DSN: "file:listings.db"}}
	if issues := ValidatePipeline(p); len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestValidatePipeline_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Pipeline)
		sev    IssueSeverity
		path   string
		msg    string
	}{
		{"empty job", func(p *Pipeline) { p.Job = " " }, SeverityError, "job", "must not be empty"},
		{"empty source kind", func(p *Pipeline) { p.Source.Kind = "" }, SeverityError, "source.kind", "must not be empty"},
		{"ftp source", func(p *Pipeline) { p.Source.Kind = "ftp" }, SeverityError, "source.kind", "unsupported"},
		{"http source without url", func(p *Pipeline) { p.Source.Kind = "http" }, SeverityError, "source.http.url", "http(s) URL"},
		{"http insecure", func(p *Pipeline) {
			p.Source = Source{Kind: "http", HTTP: SourceHTTP{URL: "https://x/listings.csv", InsecureSkipVerify: true}}
		}, SeverityWarning, "source.http.insecure_skip_verify", "disabled"},
		{"empty path", func(p *Pipeline) { p.Source.File.Path = "" }, SeverityError, "source.file.path", "non-empty path"},
		{"xml parser", func(p *Pipeline) { p.Parser.Kind = "xml" }, SeverityError, "parser.kind", "unsupported"},
		{"long comma", func(p *Pipeline) { p.Parser.Options = Options{"comma": ";;"} }, SeverityError, "parser.options.comma", "single character"},
		{"quote comma", func(p *Pipeline) { p.Parser.Options = Options{"comma": "\""} }, SeverityError, "parser.options.comma", "not a valid"},
		{"skip malformed", func(p *Pipeline) { p.Parser.Options = Options{"skip_malformed": true} }, SeverityWarning, "parser.options.skip_malformed", "dropped"},
		{"no clean path", func(p *Pipeline) { p.Output.Clean = "" }, SeverityError, "output.clean", "must not be empty"},
		{"no rejects path", func(p *Pipeline) { p.Output.Rejects = "" }, SeverityError, "output.rejects", "must not be empty"},
		{"same paths", func(p *Pipeline) { p.Output.Rejects = "./" + p.Output.Clean }, SeverityError, "output.rejects", "must differ"},
		{"bad format", func(p *Pipeline) { p.Output.Format = "xlsx" }, SeverityError, "output.format", "unknown"},
		{"bad storage", func(p *Pipeline) { p.Storage = Storage{Kind: "oracle", DB: DBConfig{DSN: "x"}} }, SeverityError, "storage.kind", "unknown storage"},
		{"no dsn", func(p *Pipeline) { p.Storage.Kind = "postgres" }, SeverityError, "storage.db.dsn", EnvDSN},
		{"negative workers", func(p *Pipeline) { p.Runtime.TransformWorkers = -1 }, SeverityError, "runtime.transform_workers", "negative"},
		{"zero batch", func(p *Pipeline) { p.Runtime.BatchSize = 0 }, SeverityWarning, "runtime.batch_size", "batch_size=0"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := Default()
			tc.mutate(&p)
			issues := ValidatePipeline(p)
			if !hasIssue(issues, tc.sev, tc.path, tc.msg) {
				t.Fatalf("want %s at %s containing %q; got %+v", tc.sev, tc.path, tc.msg, issues)
			}
			if tc.sev == SeverityError && !HasErrors(issues) {
				t.Fatalf("HasErrors = false for %+v", issues)
			}
		})
	}
}

func TestIssueError(t *testing.T) {
	t.Parallel()

	iss := Issue{Severity: SeverityError, Path: "job", Message: "empty"}
	if got := iss.Error(); got != "error at job: empty" {
		t.Fatalf("Error() = %q", got)
	}
}
