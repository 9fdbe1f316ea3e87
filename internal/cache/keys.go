package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix = "post:%d"
	FeedKeyPrefix = "feed:%d:first"
)

const (
	PostTTL = 5 * time.Minute
	// FeedTTL is short: the first feed page is the hottest read and must not
	// lag far behind pin/unpin operations even if an invalidation is missed.
	FeedTTL = time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// FeedKey caches only the unfiltered first page per tenant.
func FeedKey(tenantID uint) string {
	return fmt.Sprintf(FeedKeyPrefix, tenantID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateFeed(ctx context.Context, tenantID uint) {
	Invalidate(ctx, FeedKey(tenantID))
}
