package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ BookmarkService = (*MemoryStore)(nil)

// MemoryStore is an in-process BookmarkService. It has no durability and is
// meant for tests and local experiments.
type MemoryStore struct {
	mu        sync.RWMutex
	bookmarks map[string]Bookmark
	order     []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookmarks: make(map[string]Bookmark)}
}

func (m *MemoryStore) List(ctx context.Context) ([]*Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Bookmark, 0, len(m.order))
	for _, id := range m.order {
		b := m.bookmarks[id]
		out = append(out, &b)
	}
	return out, nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookmarks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *MemoryStore) Insert(ctx context.Context, nb NewBookmark) (*Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	b := Bookmark{
		ID:          uuid.New().String(),
		Title:       nb.Title,
		URL:         nb.URL,
		Description: nb.Description,
		Rating:      nb.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.bookmarks[b.ID] = b
	m.order = append(m.order, b.ID)
	return &b, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, p BookmarkPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookmarks[id]
	if !ok {
		return ErrNotFound
	}
	b = p.Apply(b)
	b.UpdatedAt = time.Now().UTC()
	m.bookmarks[id] = b
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bookmarks[id]; !ok {
		return ErrNotFound
	}
	delete(m.bookmarks, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
