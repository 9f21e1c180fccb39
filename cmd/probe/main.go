package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"listingsetl/internal/probe"
)

// main samples a listings export, reports how its header lines up with the
// listings columns, and prints a starter pipeline config for cmd/ingest.
func main() {
	var (
		flagInput = flag.String(
			"input",
			"data/listings.csv",
			"Path of the export to sample",
		)
		flagBytes = flag.Int(
			"bytes",
			probe.DefaultMaxBytes,
			"Number of bytes to sample from the start of the file",
		)
		flagDelimiter = flag.String(
			"delimiter",
			"",
			`Field delimiter; empty auto-detects, "\t" or "tab" for tabs`,
		)
		flagJob = flag.String(
			"job",
			"",
			"Job name written to the generated config",
		)
		flagBackend = flag.String(
			"backend",
			"",
			"Storage backend to target in the generated config: postgres|mssql|sqlite (empty disables load)",
		)
		flagFormat = flag.String(
			"format",
			"yaml",
			"Config output format: yaml or json",
		)
		flagStrict = flag.Bool(
			"strict",
			false,
			"Exit 1 when required columns are missing",
		)
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := probe.Probe(ctx, probe.Options{
		Path:      *flagInput,
		MaxBytes:  *flagBytes,
		Delimiter: probe.DecodeDelimiter(*flagDelimiter),
		Backend:   *flagBackend,
		Job:       *flagJob,
	})
	if err != nil {
		log.Fatalf("probe: %v", err)
	}
	fmt.Fprint(os.Stderr, res.Summary())

	switch *flagFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(res.Config)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		err = enc.Encode(res.Config)
		if err == nil {
			err = enc.Close()
		}
	default:
		log.Fatalf("unknown -format %q", *flagFormat)
	}
	if err != nil {
		log.Fatalf("encode config: %v", err)
	}

	if *flagStrict && len(res.Missing) > 0 {
		os.Exit(1)
	}
}
