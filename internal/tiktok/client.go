package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultFeedURL is the feed endpoint used when none is configured.
	DefaultFeedURL = "https://api2.musical.ly/aweme/v1/feed/"
	// DefaultAvatarURLTemplate builds avatar links; {uri} is replaced by the avatar URI.
	DefaultAvatarURLTemplate = "https://p16-amd-va.tiktokcdn.com/origin/{uri}.jpeg"

	avatarURIPlaceholder = "{uri}"
)

// ClientConfig configures the feed API client.
type ClientConfig struct {
	FeedURL           string
	AvatarURLTemplate string
	UserAgent         string
}

// Client reads video metadata from the feed API.
type Client struct {
	http   *http.Client
	cfg    ClientConfig
	logger *slog.Logger
}

// NewClient creates a feed API client. Empty config values fall back to defaults.
func NewClient(log *slog.Logger, httpClient *http.Client, cfg ClientConfig) *Client {
	if log == nil {
		log = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if strings.TrimSpace(cfg.FeedURL) == "" {
		cfg.FeedURL = DefaultFeedURL
	}
	if strings.TrimSpace(cfg.AvatarURLTemplate) == "" {
		cfg.AvatarURLTemplate = DefaultAvatarURLTemplate
	}
	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: log.With(slog.String("client", "tiktok_feed")),
	}
}

// Video fetches the metadata of one video. Only the first feed entry is
// considered and it must carry the requested id.
func (c *Client) Video(ctx context.Context, id VideoReference) (Video, error) {
	endpoint, err := c.feedURL(id)
	if err != nil {
		return Video{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Video{}, fmt.Errorf("%w: build request: %w", ErrMetadataFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Video{}, fmt.Errorf("%w: %w", ErrMetadataFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Video{}, fmt.Errorf("%w: unexpected status %d", ErrMetadataFailed, resp.StatusCode)
	}

	var payload feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Video{}, fmt.Errorf("%w: decode response: %w", ErrMetadataFailed, err)
	}
	if len(payload.AwemeList) == 0 {
		return Video{}, fmt.Errorf("%w: empty aweme list for %s", ErrVideoNotFound, id)
	}

	entry := payload.AwemeList[0]
	if entry.AwemeID != string(id) {
		c.logger.Debug("feed returned a different video",
			slog.String("requested_id", string(id)),
			slog.String("returned_id", entry.AwemeID),
		)
		return Video{}, fmt.Errorf("%w: requested %s, got %q", ErrVideoNotFound, id, entry.AwemeID)
	}
	if len(entry.Video.PlayAddr.URLList) == 0 || strings.TrimSpace(entry.Video.PlayAddr.URLList[0]) == "" {
		return Video{}, fmt.Errorf("%w: video %s", ErrNoPlayableURL, id)
	}

	author := entry.Author
	author.avatarTemplate = c.cfg.AvatarURLTemplate
	return Video{
		ID:          id,
		Description: entry.Desc,
		VideoURL:    entry.Video.PlayAddr.URLList[0],
		Author:      author,
		Statistics:  entry.Statistics,
	}, nil
}

func (c *Client) feedURL(id VideoReference) (string, error) {
	u, err := url.Parse(c.cfg.FeedURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid feed url: %w", ErrMetadataFailed, err)
	}
	q := u.Query()
	q.Set("aweme_id", string(id))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
