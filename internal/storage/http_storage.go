package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const fetchAttempts = 3

// HTTPImageFetcher loads chart images over http(s) with retries
type HTTPImageFetcher struct {
	client  *http.Client
	backoff time.Duration
}

// NewHTTPImageFetcher creates an HTTP image fetcher bounded by timeout
func NewHTTPImageFetcher(timeout time.Duration) ImageLoader {
	transport := &http.Transport{
		// A run fetches a single chart
		MaxIdleConns:        2,
		MaxIdleConnsPerHost: 1,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:    10 * time.Second,
		ResponseHeaderTimeout:  10 * time.Second,
		ExpectContinueTimeout:  1 * time.Second,
		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,

			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		backoff: time.Second,
	}
}

func (h *HTTPImageFetcher) Load(ctx context.Context, imageURL string) (*Chart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req.Header.Set("Accept", "image/png, image/jpeg, image/webp, image/gif, image/bmp, image/tiff, */*")
	req.Header.Set("User-Agent", "Go-Bar-Digitizer/1.0")

	// Only transient failures (transport errors, 5xx) are retried
	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * h.backoff):
			}
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			chart, err := decodeChart(imageURL, resp.Body)
			resp.Body.Close()
			return chart, err
		}
		resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("failed to fetch image: client error: status code %d", resp.StatusCode)
		}
		lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("failed to fetch image after %d attempts: %w", fetchAttempts, lastErr)
}
