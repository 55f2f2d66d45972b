package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix     = "post:%d"
	CategoryKeyPrefix = "category:%s"
	FeedKey           = "feed:list"
)

const (
	PostTTL     = 30 * time.Minute
	CategoryTTL = 10 * time.Minute
	FeedTTL     = 2 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func CategoryKey(slug string) string {
	return fmt.Sprintf(CategoryKeyPrefix, slug)
}

// InvalidatePost drops a single post entry and the feed that embeds it.
func (c *Cache) InvalidatePost(ctx context.Context, postID uint) {
	c.Invalidate(ctx, PostKey(postID))
	c.Invalidate(ctx, FeedKey)
}

// InvalidateCategory drops a category entry and the feed.
func (c *Cache) InvalidateCategory(ctx context.Context, slug string) {
	c.Invalidate(ctx, CategoryKey(slug))
	c.Invalidate(ctx, FeedKey)
}
