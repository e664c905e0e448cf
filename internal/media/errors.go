package media

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed indicates the media payload could not be downloaded.
	ErrFetchFailed = errors.New("fetch media failed")
	// ErrAssetTooLarge indicates the payload exceeds the configured max asset size.
	ErrAssetTooLarge = fmt.Errorf("%w: media asset too large", ErrFetchFailed)
)
