package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Getter retrieves the body of a URL.
type Getter interface {
	GetBytes(ctx context.Context, url string) ([]byte, error)
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s, status code: %d", e.URL, e.StatusCode)
}

type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher returns a Fetcher whose requests give up after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: "wpzola/1.0",
	}
}

// GetBytes fetches url and returns the body of a 200 response.
func (f *Fetcher) GetBytes(ctx context.Context, url string) ([]byte, error) {
	return f.get(ctx, url, "")
}

// GetJSON fetches url asking for a JSON representation.
func (f *Fetcher) GetJSON(ctx context.Context, url string) ([]byte, error) {
	return f.get(ctx, url, "application/json")
}

func (f *Fetcher) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}
