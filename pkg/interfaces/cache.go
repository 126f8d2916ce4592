package interfaces

import (
	"context"
	"time"
)

// RenderCache memoizes rendered markdown keyed by a content fingerprint.
// Get reports a miss with ok=false; a non-nil error means the cache itself
// failed and callers should fall back to rendering without it.
type RenderCache interface {
	Get(ctx context.Context, key string) (value any, ok bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
