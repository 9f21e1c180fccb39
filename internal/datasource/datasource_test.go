package datasource

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/zeebo/xxh3"
)

func TestTap_CountsAndFingerprints(t *testing.T) {
	t.Parallel()

	const payload = "id,name\n1,Loft\n"
	tap := NewTap(strings.NewReader(payload))
	got, err := io.ReadAll(tap)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("passthrough mismatch: %q", got)
	}
	if tap.Bytes() != int64(len(payload)) {
		t.Fatalf("Bytes = %d, want %d", tap.Bytes(), len(payload))
	}
	if want := xxh3.HashString(payload); tap.Fingerprint() != fmt.Sprintf("%016x", want) {
		t.Fatalf("Fingerprint = %s, want %016x", tap.Fingerprint(), want)
	}
}

func TestTap_DifferentInputsDiffer(t *testing.T) {
	t.Parallel()

	a := NewTap(strings.NewReader("a"))
	b := NewTap(strings.NewReader("b"))
	_, _ = io.ReadAll(a)
	_, _ = io.ReadAll(b)
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("fingerprints collide: %s", a.Fingerprint())
	}
}

