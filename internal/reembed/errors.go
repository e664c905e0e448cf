package reembed

import (
	"errors"
	"fmt"

	"github.com/memohai/tokembed/internal/tiktok"
)

// ErrReplyFailed reports that suppressing the native embed or sending the reply failed.
var ErrReplyFailed = errors.New("reply failed")

// Stage names the pipeline step that produced an error.
type Stage string

const (
	StageRedirect Stage = "redirect"
	StageMetadata Stage = "metadata"
	StageMedia    Stage = "media"
	StageReply    Stage = "reply"
)

// Error is a pipeline failure tagged with the stage it happened in and the
// link that triggered it. VideoID is empty when the id was never identified.
type Error struct {
	Stage   Stage
	Link    tiktok.Link
	VideoID tiktok.VideoReference
	Err     error
}

func (e *Error) Error() string {
	if e.VideoID == "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Link.URL, e.Err)
	}
	return fmt.Sprintf("%s video %s: %v", e.Stage, e.VideoID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
