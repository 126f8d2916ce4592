package rendercache

import (
	"context"
	"time"
)

// DefaultMonitorInterval is how often Monitor reports cache occupancy.
const DefaultMonitorInterval = 30 * time.Second

// Monitor logs cache stats every interval until ctx is cancelled. It blocks,
// so callers run it on its own goroutine.
func (c *Cache) Monitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := c.Stats()
			c.logger.Info("render.cache.stats",
				"size", stats.Size,
				"max_size", stats.MaxSize,
				"hits", stats.Hits,
				"misses", stats.Misses,
				"evictions", stats.Evictions,
			)
		}
	}
}
