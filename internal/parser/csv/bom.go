package csv

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StripBOM returns a reader that drops a leading byte order mark. UTF-16
// inputs marked with a BOM are transcoded to UTF-8; unmarked input passes
// through unchanged.
func StripBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}
