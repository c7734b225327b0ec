package recon

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vulnverified/scout/internal/engine"
)

// headerSchemes is the fixed protocol preference order. The first scheme
// that answers wins; the other's headers are never captured.
var headerSchemes = []string{"https", "http"}

// Doer issues a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HeaderFetcher implements engine.HeaderFetcher.
type HeaderFetcher struct {
	UserAgent string
	// Client overrides the HTTP client; tests inject recording doubles.
	Client Doer
}

// Fetch tries https then http against the target. Any transport failure
// is swallowed and means "try next protocol"; when both fail the result
// is nil, nil.
func (f *HeaderFetcher) Fetch(ctx context.Context, target string, timeout time.Duration) (*engine.HeaderSet, error) {
	client := f.Client
	if client == nil {
		client = newHeaderClient(timeout)
	}

	for _, scheme := range headerSchemes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		url := fmt.Sprintf("%s://%s", scheme, target)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			continue
		}
		if f.UserAgent != "" {
			req.Header.Set("User-Agent", f.UserAgent)
		}

		resp, err := client.Do(req)
		if err != nil {
			continue
		}

		headers := make(map[string]string, len(resp.Header))
		for name, vals := range resp.Header {
			headers[name] = strings.Join(vals, ", ")
		}
		resp.Body.Close()

		return &engine.HeaderSet{Scheme: scheme, Headers: headers}, nil
	}

	return nil, nil
}

func newHeaderClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}
