// Package datasource abstracts where raw listing exports are read from.
package datasource

import (
	"context"
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
)

// Source opens the raw input stream. Callers close the returned reader.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Tap counts and fingerprints the bytes read through it. The fingerprint
// identifies an input export in run reports, so two runs over the same file
// can be matched up.
type Tap struct {
	r io.Reader
	h *xxh3.Hasher
	n int64
}

// NewTap wraps r.
func NewTap(r io.Reader) *Tap { return &Tap{r: r, h: xxh3.New()} }

func (t *Tap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		_, _ = t.h.Write(p[:n])
		t.n += int64(n)
	}
	return n, err
}

// Bytes returns the number of bytes read so far.
func (t *Tap) Bytes() int64 { return t.n }

// Fingerprint returns the xxh3 digest of the bytes read so far as 16 hex
// digits.
func (t *Tap) Fingerprint() string { return fmt.Sprintf("%016x", t.h.Sum64()) }
