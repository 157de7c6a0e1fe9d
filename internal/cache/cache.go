// Package cache provides a Redis read-through layer in front of a
// store.BookmarkService.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/store"
)

const (
	keyPrefixBookmark = "bookmarks:bookmark:"
	keyAllBookmarks   = "bookmarks:all"
)

func bookmarkKey(id string) string { return keyPrefixBookmark + id }

// BookmarkCache caches GetByID and List results and drops them on every
// write, both before and after the write reaches the wrapped service so a
// read racing the write cannot leave the old row cached. Redis failures are logged and the request falls through to the
// wrapped service, so the cache never turns a readable store into an error.
type BookmarkCache struct {
	next   store.BookmarkService
	client redis.UniversalClient
	ttl    time.Duration
	log    logger.Logger
}

var _ store.BookmarkService = (*BookmarkCache)(nil)

func NewBookmarkCache(next store.BookmarkService, client redis.UniversalClient, ttl time.Duration, log logger.Logger) *BookmarkCache {
	return &BookmarkCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *BookmarkCache) List(ctx context.Context) ([]*store.Bookmark, error) {
	var cached []*store.Bookmark
	if c.get(ctx, keyAllBookmarks, &cached) {
		return cached, nil
	}

	bookmarks, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, keyAllBookmarks, bookmarks)
	return bookmarks, nil
}

func (c *BookmarkCache) GetByID(ctx context.Context, id string) (*store.Bookmark, error) {
	var cached store.Bookmark
	if c.get(ctx, bookmarkKey(id), &cached) {
		return &cached, nil
	}

	b, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, bookmarkKey(id), b)
	return b, nil
}

func (c *BookmarkCache) Insert(ctx context.Context, nb store.NewBookmark) (*store.Bookmark, error) {
	c.invalidate(ctx, keyAllBookmarks)
	b, err := c.next.Insert(ctx, nb)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, keyAllBookmarks)
	return b, nil
}

func (c *BookmarkCache) Update(ctx context.Context, id string, p store.BookmarkPatch) error {
	c.invalidate(ctx, bookmarkKey(id), keyAllBookmarks)
	if err := c.next.Update(ctx, id, p); err != nil {
		return err
	}
	c.invalidate(ctx, bookmarkKey(id), keyAllBookmarks)
	return nil
}

func (c *BookmarkCache) Delete(ctx context.Context, id string) error {
	c.invalidate(ctx, bookmarkKey(id), keyAllBookmarks)
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, bookmarkKey(id), keyAllBookmarks)
	return nil
}

// get reports whether key was found and decoded into v.
func (c *BookmarkCache) get(ctx context.Context, key string, v any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CacheResultsTotal.WithLabelValues("miss").Inc()
		return false
	case err != nil:
		metrics.CacheResultsTotal.WithLabelValues("error").Inc()
		c.log.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		metrics.CacheResultsTotal.WithLabelValues("error").Inc()
		c.log.Warn("cache entry corrupt", logger.String("key", key), logger.Error(err))
		c.invalidate(ctx, key)
		return false
	}
	metrics.CacheResultsTotal.WithLabelValues("hit").Inc()
	return true
}

func (c *BookmarkCache) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache encode failed", logger.String("key", key), logger.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", logger.String("key", key), logger.Error(err))
	}
}

func (c *BookmarkCache) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Error("cache invalidation failed", logger.String("keys", strings.Join(keys, ",")), logger.Error(err))
	}
}

