// Package media downloads video payloads and buffers them for upload.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
)

// FetcherConfig configures the media fetcher.
type FetcherConfig struct {
	UserAgent string
	// MaxBytes caps the buffered payload; zero or less uses MaxAssetBytes.
	MaxBytes int64
}

// Fetcher downloads a media payload fully into memory.
type Fetcher struct {
	client    *http.Client
	userAgent string
	limit     Limit
	logger    *slog.Logger
}

// NewFetcher creates a media fetcher.
func NewFetcher(log *slog.Logger, client *http.Client, cfg FetcherConfig) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	if client == nil {
		client = &http.Client{}
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = MaxAssetBytes
	}
	return &Fetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		limit:     Limit(maxBytes),
		logger:    log.With(slog.String("service", "media")),
	}
}

// Fetch issues one GET against url and returns the whole body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "video/mp4,video/*;q=0.9,*/*;q=0.8")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}
	if err := f.limit.CheckDeclared(resp.ContentLength); err != nil {
		return nil, err
	}

	data, err := f.limit.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	f.logger.Debug("media fetched",
		slog.String("size", humanize.Bytes(uint64(len(data)))),
		slog.String("content_type", resp.Header.Get("Content-Type")),
	)
	return data, nil
}
