package tiktok

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// maxRedirectBodyDrain caps how much of a redirect response body is read before
// the connection is released.
const maxRedirectBodyDrain = 64 << 10

// NewRedirectClient returns an HTTP client that stops at the first redirect hop.
func NewRedirectClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:       timeout,
		CheckRedirect: stopAtFirstHop,
	}
}

func stopAtFirstHop(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// Resolver turns short links into the link they redirect to.
type Resolver struct {
	client    *http.Client
	userAgent string
}

// NewResolver creates a resolver. The redirect policy of client is replaced so
// redirects are never followed, whatever the caller configured.
func NewResolver(client *http.Client, userAgent string) *Resolver {
	if client == nil {
		client = &http.Client{}
	}
	c := *client
	c.CheckRedirect = stopAtFirstHop
	return &Resolver{client: &c, userAgent: userAgent}
}

// Resolve issues one GET against shortURL and returns its Location header.
func (r *Resolver) Resolve(ctx context.Context, shortURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shortURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrRedirectFailed, err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRedirectFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxRedirectBodyDrain))

	location := strings.TrimSpace(resp.Header.Get("Location"))
	if location == "" {
		return "", fmt.Errorf("%w: no location header (status %d)", ErrRedirectFailed, resp.StatusCode)
	}
	if !utf8.ValidString(location) {
		return "", fmt.Errorf("%w: location header is not valid utf-8", ErrRedirectFailed)
	}

	target, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("%w: invalid location %q: %w", ErrRedirectFailed, location, err)
	}
	if target.IsAbs() {
		return location, nil
	}
	return req.URL.ResolveReference(target).String(), nil
}
