package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	previewPrefix = "preview:"

	// DefaultPreviewTTL bounds how stale a cached preview can get even
	// if an invalidation is missed.
	DefaultPreviewTTL = 5 * time.Minute
)

// PreviewCache stores rendered newsletter and eblast HTML in Valkey.
// Entries are keyed by document kind, id, and render variant, and are
// invalidated whenever a section of the document changes. Cache
// failures are logged and treated as misses so rendering always works
// without Valkey entries.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreviewCache creates a preview cache with the default TTL.
func NewPreviewCache(client *redis.Client) *PreviewCache {
	return &PreviewCache{client: client, ttl: DefaultPreviewTTL}
}

func previewKey(kind string, id int64, variant string) string {
	return fmt.Sprintf("%s%s:%d:%s", previewPrefix, kind, id, variant)
}

// Get returns the cached HTML for a document variant, or "" on a miss.
func (c *PreviewCache) Get(ctx context.Context, kind string, id int64, variant string) (string, bool) {
	html, err := c.client.Get(ctx, previewKey(kind, id, variant)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("preview cache get failed", "kind", kind, "id", id, "error", err)
		return "", false
	}
	return html, true
}

// Set stores rendered HTML for a document variant.
func (c *PreviewCache) Set(ctx context.Context, kind string, id int64, variant, html string) {
	if err := c.client.Set(ctx, previewKey(kind, id, variant), html, c.ttl).Err(); err != nil {
		slog.Warn("preview cache set failed", "kind", kind, "id", id, "error", err)
	}
}

// Invalidate removes all cached variants of one document. Called after
// any section edit or toggle so the next preview re-renders.
func (c *PreviewCache) Invalidate(ctx context.Context, kind string, id int64) {
	pattern := fmt.Sprintf("%s%s:%d:*", previewPrefix, kind, id)
	c.deleteMatching(ctx, pattern)
}

// InvalidateAll clears every cached preview.
func (c *PreviewCache) InvalidateAll(ctx context.Context) {
	c.deleteMatching(ctx, previewPrefix+"*")
}

func (c *PreviewCache) deleteMatching(ctx context.Context, pattern string) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("preview cache scan failed", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("preview cache delete failed", "error", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
