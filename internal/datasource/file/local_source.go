// Package file implements the local filesystem data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens a listings export from the local disk.
type Local struct{ path string }

// NewLocal returns a Local bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the configured path.
func (l *Local) Path() string { return l.path }

// Open returns the file for reading. A canceled context short-circuits before
// touching the filesystem. Filesystem errors are wrapped with the path and
// still satisfy errors.Is(err, os.ErrNotExist) for a missing input.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", l.path, err)
	}
	return f, nil
}

// Size returns the size of the input in bytes, or -1 if it cannot be
// determined.
func (l *Local) Size() int64 {
	fi, err := os.Stat(l.path)
	if err != nil {
		return -1
	}
	return fi.Size()
}
