package media

import (
	"fmt"
	"io"
)

// MaxAssetBytes is the default cap on a buffered media payload.
const MaxAssetBytes int64 = 200 * 1024 * 1024

// Limit bounds how many bytes of a payload are buffered in memory.
type Limit int64

// CheckDeclared rejects a payload early when its advertised length already
// exceeds the limit. Unknown lengths (negative) pass.
func (l Limit) CheckDeclared(contentLength int64) error {
	if l > 0 && contentLength > int64(l) {
		return fmt.Errorf("%w: declared %d bytes, max %d", ErrAssetTooLarge, contentLength, int64(l))
	}
	return nil
}

// ReadAll buffers reader fully and fails once more than the limit was read.
func (l Limit) ReadAll(reader io.Reader) ([]byte, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if l <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	data, err := io.ReadAll(&io.LimitedReader{R: reader, N: int64(l) + 1})
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > int64(l) {
		return nil, fmt.Errorf("%w: max %d bytes", ErrAssetTooLarge, int64(l))
	}
	return data, nil
}
