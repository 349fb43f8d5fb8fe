package engine

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

// fetchLimiter spaces outgoing requests; the feed and caption endpoints
// throttle aggressive clients.
var fetchLimiter = rate.NewLimiter(rate.Every(200*time.Millisecond), 3)

// maxFetchBody bounds response reads. Watch pages run to a few MB; caption
// payloads are far smaller.
const maxFetchBody = 6 * 1024 * 1024

// FetchText performs a GET and returns the decoded body as text.
// Transient failures (429/5xx, connection errors) retry with exponential
// backoff; other non-200 statuses fail permanently.
func FetchText(ctx context.Context, fetchURL string, timeout time.Duration) (string, error) {
	IncrFetch()
	if timeout <= 0 {
		timeout = cfg.FetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := fetchLimiter.Wait(ctx); err != nil {
		return "", err
	}

	operation := func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
		if err != nil {
			return "", backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", RandomUserAgent())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip")

		resp, err := cfg.HTTPClient.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if IsRetryableStatus(resp.StatusCode) {
			return "", fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return "", backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		body, err := readResponseBody(resp)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	text, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(3))
	if err != nil {
		IncrFetchError()
		return "", fmt.Errorf("fetch %s: %w", fetchURL, err)
	}
	return text, nil
}

// readResponseBody reads a bounded response body, transparently
// decompressing gzip.
func readResponseBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, maxFetchBody))
}
