package tiktok

import (
	"errors"
	"fmt"
)

var (
	// ErrRedirectFailed indicates a short link could not be resolved to a video link.
	ErrRedirectFailed = errors.New("resolve short link failed")
	// ErrMetadataFailed indicates the feed API did not yield usable video metadata.
	ErrMetadataFailed = errors.New("fetch video metadata failed")
	// ErrVideoNotFound indicates the feed API returned no entry for the requested id.
	ErrVideoNotFound = fmt.Errorf("%w: video not found", ErrMetadataFailed)
	// ErrNoPlayableURL indicates the returned entry carries no media URL.
	ErrNoPlayableURL = fmt.Errorf("%w: no playable url", ErrMetadataFailed)
)
