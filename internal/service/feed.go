package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jjenkins/legislators/internal/model"
)

const (
	maxRetries     = 3
	initialBackoff = 2 * time.Second
)

// FeedSource supplies the raw delimited legislator dataset to the ingester.
type FeedSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPFeed fetches the legislator CSV from a remote URL.
type HTTPFeed struct {
	url    string
	client *http.Client
}

// NewHTTPFeed creates a feed source for the given URL. The timeout bounds
// each request; a run never hangs on the feed.
func NewHTTPFeed(url string, timeout time.Duration) *HTTPFeed {
	return &HTTPFeed{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads the feed, retrying transient failures with exponential
// backoff. Any terminal failure is reported as ErrFeedUnavailable.
func (f *HTTPFeed) Fetch(ctx context.Context) ([]byte, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch cancelled: %v: %w", ctx.Err(), model.ErrFeedUnavailable)
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %v: %w", err, model.ErrFeedUnavailable)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}

		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %v: %w", maxRetries, lastErr, model.ErrFeedUnavailable)
}

// FileFeed reads the legislator CSV from a local path.
type FileFeed struct {
	path string
}

// NewFileFeed creates a feed source backed by a local CSV file.
func NewFileFeed(path string) *FileFeed {
	return &FileFeed{path: path}
}

// Fetch reads the file. A missing or unreadable file is reported as
// ErrFeedUnavailable, same as a failed download.
func (f *FileFeed) Fetch(_ context.Context) ([]byte, error) {
	body, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v: %w", f.path, err, model.ErrFeedUnavailable)
	}
	return body, nil
}
