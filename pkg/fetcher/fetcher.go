// Package fetcher downloads source pages for ingestion.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dtnitsch/worksheet-kit/pkg/caching"
)

const (
	// MaxPageBytes caps a downloaded page.
	MaxPageBytes = 8 << 20
	userAgent    = "worksheet-kit/1.0 (+https://github.com/dtnitsch/worksheet-kit)"
)

type Fetcher struct {
	client *http.Client
	cache  *caching.Cache // optional
	logger *slog.Logger
}

// NewFetcher builds a Fetcher. cache and logger may be nil.
func NewFetcher(cache *caching.Cache, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  cache,
		logger: logger,
	}
}

// GetHTML returns the page body, from the cache when it is fresh.
func (f *Fetcher) GetHTML(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(url); ok {
			f.logger.Debug("Page found in cache", "url", url)
			return data, nil
		}
	}

	body, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set(url, body); err != nil {
			f.logger.Warn("Failed to cache page", "url", url, "error", err)
		}
	}
	return body, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil && !strings.Contains(mediaType, "html") {
			return nil, fmt.Errorf("unsupported content type %q", mediaType)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxPageBytes {
		return nil, fmt.Errorf("page exceeds %d bytes", MaxPageBytes)
	}
	return body, nil
}
