package markdown

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-blog/internal/apperrors"
)

var (
	// ErrRenderFailed is the generic render failure every *RenderError unwraps to.
	ErrRenderFailed = errors.New("failed to render markdown")
	// ErrUnexpectedCacheValue reports a cache entry that does not hold a *Tree.
	ErrUnexpectedCacheValue = errors.New("markdown: unexpected render cache value")
)

// RenderError reports a parse, sanitise or timeout failure. No partial tree
// accompanies it.
type RenderError struct {
	Fingerprint string
	Cause       error
}

func (e *RenderError) Error() string {
	return ErrRenderFailed.Error()
}

func (e *RenderError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrRenderFailed}
	}
	return []error{ErrRenderFailed, e.Cause}
}

// ErrorCode reports the normalised error code.
func (e *RenderError) ErrorCode() string {
	return apperrors.CodeRenderFailed
}

// CacheError wraps a failure of the render cache. It is logged and the
// render falls back to the uncached path.
type CacheError struct {
	Op    string
	Key   string
	Cause error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("markdown: render cache %s %s: %v", e.Op, e.Key, e.Cause)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ErrorCode reports the normalised error code.
func (e *CacheError) ErrorCode() string {
	return apperrors.CodeCacheFailed
}
