package httpds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Source reads one export URL. It implements datasource.Source.
type Source struct {
	URL    string
	Client *Client
}

// NewSource returns a Source for url using a client built from cfg.
func NewSource(url string, cfg Config) *Source {
	return &Source{URL: url, Client: NewClient(cfg)}
}

// Open starts the download. The caller closes the returned body.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.Client.Get(ctx, s.URL, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// FetchFirstBytes returns at most n bytes from the start of url. It sends a
// Range header but also caps the read, so servers that ignore Range still
// work.
func (c *Client) FetchFirstBytes(ctx context.Context, url string, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("httpds: n must be > 0")
	}
	h := http.Header{}
	h.Set("Range", fmt.Sprintf("bytes=0-%d", n-1))

	resp, err := c.Get(ctx, url, h)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, int64(n))); err != nil {
		return nil, fmt.Errorf("httpds: read %s: %w", url, err)
	}
	return buf.Bytes(), nil
}
