package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/bookmarks-api/internal/cache"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
)

// countingStore records how many reads reach the wrapped service.
type countingStore struct {
	*store.MemoryStore
	gets  int
	lists int
}

func (s *countingStore) GetByID(ctx context.Context, id string) (*store.Bookmark, error) {
	s.gets++
	return s.MemoryStore.GetByID(ctx, id)
}

func (s *countingStore) List(ctx context.Context) ([]*store.Bookmark, error) {
	s.lists++
	return s.MemoryStore.List(ctx)
}

func newCache(t *testing.T) (*cache.BookmarkCache, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backing := &countingStore{MemoryStore: store.NewMemoryStore()}
	return cache.NewBookmarkCache(backing, client, time.Minute, logger.Nop()), backing, mr
}

func insert(t *testing.T, c *cache.BookmarkCache, title string) *store.Bookmark {
	t.Helper()
	b, err := c.Insert(context.Background(), store.NewBookmark{Title: title, URL: "https://example.com", Rating: 3})
	require.NoError(t, err)
	return b
}

func TestBookmarkCache_GetByIDReadsThrough(t *testing.T) {
	c, backing, mr := newCache(t)
	ctx := context.Background()
	b := insert(t, c, "cached")

	first, err := c.GetByID(ctx, b.ID)
	require.NoError(t, err)
	second, err := c.GetByID(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, backing.gets)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Rating, second.Rating)
	assert.True(t, mr.Exists("bookmarks:bookmark:"+b.ID))

	ttl := mr.TTL("bookmarks:bookmark:" + b.ID)
	assert.Equal(t, time.Minute, ttl)
}

func TestBookmarkCache_NotFoundIsNotCached(t *testing.T) {
	c, backing, _ := newCache(t)
	ctx := context.Background()

	_, err := c.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = c.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 2, backing.gets)
}

func TestBookmarkCache_ListInvalidatedByWrites(t *testing.T) {
	c, backing, _ := newCache(t)
	ctx := context.Background()

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	b := insert(t, c, "one")
	list, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, backing.lists)

	title := "renamed"
	require.NoError(t, c.Update(ctx, b.ID, store.BookmarkPatch{Title: &title}))
	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "renamed", list[0].Title)

	require.NoError(t, c.Delete(ctx, b.ID))
	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookmarkCache_UpdateDropsEntry(t *testing.T) {
	c, _, mr := newCache(t)
	ctx := context.Background()
	b := insert(t, c, "before")

	_, err := c.GetByID(ctx, b.ID)
	require.NoError(t, err)

	rating := 0
	require.NoError(t, c.Update(ctx, b.ID, store.BookmarkPatch{Rating: &rating}))
	assert.False(t, mr.Exists("bookmarks:bookmark:"+b.ID))

	got, err := c.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Rating)
	assert.Equal(t, "before", got.Title)
}

func TestBookmarkCache_WriteErrorsPassThrough(t *testing.T) {
	c, _, _ := newCache(t)
	ctx := context.Background()

	title := "x"
	assert.ErrorIs(t, c.Update(ctx, "missing", store.BookmarkPatch{Title: &title}), store.ErrNotFound)
	assert.ErrorIs(t, c.Delete(ctx, "missing"), store.ErrNotFound)
}

func TestBookmarkCache_RedisDownFallsBack(t *testing.T) {
	c, backing, mr := newCache(t)
	ctx := context.Background()
	b := insert(t, c, "survives")

	mr.Close()

	got, err := c.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "survives", got.Title)

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, backing.gets)
}

func TestBookmarkCache_CorruptEntryIgnored(t *testing.T) {
	c, backing, mr := newCache(t)
	ctx := context.Background()
	b := insert(t, c, "real")

	require.NoError(t, mr.Set("bookmarks:bookmark:"+b.ID, "{not json"))

	got, err := c.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "real", got.Title)
	assert.Equal(t, 1, backing.gets)
}

// racingStore reads through the cache while the write is in flight, the way
// a concurrent GET would.
type racingStore struct {
	*store.MemoryStore
	cache         *cache.BookmarkCache
	mr            *miniredis.Miniredis
	cachedAtWrite bool
}

func (s *racingStore) Update(ctx context.Context, id string, p store.BookmarkPatch) error {
	s.cachedAtWrite = s.mr.Exists("bookmarks:bookmark:" + id)
	if _, err := s.cache.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.cache.List(ctx); err != nil {
		return err
	}
	return s.MemoryStore.Update(ctx, id, p)
}

func TestBookmarkCache_ReadDuringWriteNotLeftStale(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backing := &racingStore{MemoryStore: store.NewMemoryStore(), mr: mr}
	c := cache.NewBookmarkCache(backing, client, time.Minute, logger.Nop())
	backing.cache = c
	ctx := context.Background()

	b := insert(t, c, "old")
	_, err := c.GetByID(ctx, b.ID)
	require.NoError(t, err)

	title := "new"
	require.NoError(t, c.Update(ctx, b.ID, store.BookmarkPatch{Title: &title}))
	assert.False(t, backing.cachedAtWrite, "entry must be dropped before the write")

	got, err := c.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Title)
}
