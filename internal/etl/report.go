package etl

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Report summarizes one run.
type Report struct {
	RunID       string
	Input       string
	InputBytes  int64
	Fingerprint string // xxh3 of the input bytes

	Raw       int // rows read, after malformed rows were dropped
	Malformed int // rows the reader skipped
	Accepted  int
	Rejected  int

	Loaded  int64 // listings rows written to storage
	Skipped int64 // accepted rows not loaded (no unique listing id)
	LoadRun bool

	CleanPath  string
	RejectPath string
	Elapsed    time.Duration
}

// WriteTo prints the report block to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&sb, "%-24s%s\n", label+":", value)
	}

	sb.WriteString("\n========== LISTINGS INGESTION REPORT ==========\n")
	row("Run", r.RunID)
	row("Input", fmt.Sprintf("%s (%s, xxh3 %s)", r.Input, humanize.Bytes(uint64(max(r.InputBytes, 0))), r.Fingerprint))
	row("Raw rows", humanize.Comma(int64(r.Raw)))
	if r.Malformed > 0 {
		row("Malformed rows skipped", humanize.Comma(int64(r.Malformed)))
	}
	row("Rows after cleaning", humanize.Comma(int64(r.Accepted)))
	row("Rows rejected", humanize.Comma(int64(r.Rejected)))
	row("Output saved to", r.CleanPath)
	row("Rejects saved to", r.RejectPath)
	if r.LoadRun {
		row("Rows loaded", humanize.Comma(r.Loaded))
		row("Rows not loaded", humanize.Comma(r.Skipped))
	}
	row("Time taken", fmt.Sprintf("%.2f seconds", r.Elapsed.Seconds()))
	sb.WriteString("===============================================\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// String returns the report block.
func (r Report) String() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}

// Log writes the report through the standard logger, one line per entry.
func (r Report) Log() {
	for _, line := range strings.Split(strings.TrimSpace(r.String()), "\n") {
		log.Print(line)
	}
}
