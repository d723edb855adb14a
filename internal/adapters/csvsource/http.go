package csvsource

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/ports"
)

var (
	_ ports.DatasetSource = (*HTTPSource)(nil)
	_ ports.Releaser      = (*HTTPSource)(nil)
)

// ErrBodyTooLarge is returned when a download exceeds maxBody.
var ErrBodyTooLarge = errors.New("csvsource: dataset body too large")

// maxBody caps a downloaded dataset.
const maxBody = 512 << 20

// HTTPSource fetches the dataset with a single GET. There is no retry; a
// failed fetch is reported to the caller.
type HTTPSource struct {
	httpClient *http.Client
	url        string
	limit      int64

	mu   sync.Mutex
	body []byte
}

// NewHTTPSource constructs a source for url.
func NewHTTPSource(httpClient *http.Client, url string) *HTTPSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSource{httpClient: httpClient, url: url, limit: maxBody}
}

// ReadRows parses the fetched body. A body already fetched by Fingerprint is
// reused once.
func (s *HTTPSource) ReadRows(ctx context.Context) ([]domain.RawRow, error) {
	s.mu.Lock()
	body := s.body
	s.body = nil
	s.mu.Unlock()

	if body == nil {
		var err error
		if body, err = s.fetch(ctx); err != nil {
			return nil, err
		}
	}
	return Parse(bytes.NewReader(body))
}

// Fingerprint hashes the fetched body.
func (s *HTTPSource) Fingerprint(ctx context.Context) (string, error) {
	body, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.body = body
	s.mu.Unlock()
	sum := sha256.Sum256(body)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}

// Release drops a body fetched by Fingerprint that ReadRows has not used.
func (s *HTTPSource) Release() {
	s.mu.Lock()
	s.body = nil
	s.mu.Unlock()
}

// Describe returns the URL.
func (s *HTTPSource) Describe() string { return s.url }

func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("csvsource: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("csvsource: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("csvsource: fetch %s: status %d", s.url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.limit+1))
	if err != nil {
		return nil, fmt.Errorf("csvsource: read body: %w", err)
	}
	if int64(len(body)) > s.limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, s.url, s.limit)
	}
	return body, nil
}

// New returns an HTTP source when url is set and a file source otherwise.
func New(path, url string, httpClient *http.Client) (ports.DatasetSource, error) {
	switch {
	case url != "":
		return NewHTTPSource(httpClient, url), nil
	case path != "":
		return NewFileSource(path), nil
	default:
		return nil, fmt.Errorf("csvsource: no dataset path or url configured")
	}
}
