// Package parser declares the contract shared by input format readers.
package parser

import (
	"io"

	"listingsetl/pkg/records"
)

// Parser turns a raw stream into a batch and reports how many rows it had to
// skip.
type Parser interface {
	Parse(r io.Reader) (records.Batch, int, error)
}
