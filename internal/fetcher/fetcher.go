package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is the fully-read result of a fetch.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Success reports whether the status code is 2xx.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher issues GET requests against a single source URL
type Fetcher struct {
	client *http.Client
	url    string
}

// New creates a Fetcher for url. A zero timeout means no client timeout.
func New(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			// One connection per run, torn down afterwards.
			Transport: &http.Transport{
				Proxy:             http.ProxyFromEnvironment,
				DisableKeepAlives: true,
			},
		},
		url: url,
	}
}

// URL returns the source URL
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch sends one GET request and returns the complete response body.
func (f *Fetcher) Fetch(ctx context.Context) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
