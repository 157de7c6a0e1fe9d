package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var _ BookmarkService = (*BookmarkStore)(nil)

// BookmarkStore is the sqlx-backed implementation of BookmarkService. Every
// method issues exactly one statement.
type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

func (s *BookmarkStore) q(query string) string { return s.db.Rebind(query) }

// List returns all bookmarks in creation order.
func (s *BookmarkStore) List(ctx context.Context) ([]*Bookmark, error) {
	bookmarks := []*Bookmark{}
	err := s.db.SelectContext(ctx, &bookmarks, `SELECT * FROM bookmarks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, storageErr("list bookmarks", err)
	}
	return bookmarks, nil
}

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM bookmarks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get bookmark", err)
	}
	return &b, nil
}

// Insert assigns a fresh id and persists the bookmark.
func (s *BookmarkStore) Insert(ctx context.Context, nb NewBookmark) (*Bookmark, error) {
	now := time.Now().UTC()
	b := &Bookmark{
		ID:          uuid.New().String(),
		Title:       nb.Title,
		URL:         nb.URL,
		Description: nb.Description,
		Rating:      nb.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO bookmarks (id, title, url, description, rating, created_at, updated_at)
		VALUES (:id, :title, :url, :description, :rating, :created_at, :updated_at)
	`, b)
	if err != nil {
		return nil, storageErr("insert bookmark", err)
	}
	return b, nil
}

// Update writes only the columns set in p. A missing id is reported through
// the affected row count, so existence and mutation are one statement.
func (s *BookmarkStore) Update(ctx context.Context, id string, p BookmarkPatch) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *p.URL)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *p.Rating)
	}
	args = append(args, id)

	query := `UPDATE bookmarks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		return storageErr("update bookmark", err)
	}
	return checkRowsAffected(res, "update bookmark")
}

// Delete removes the bookmark with the given id, or returns ErrNotFound.
func (s *BookmarkStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM bookmarks WHERE id = ?`), id)
	if err != nil {
		return storageErr("delete bookmark", err)
	}
	return checkRowsAffected(res, "delete bookmark")
}

// Count returns the number of stored bookmarks.
func (s *BookmarkStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookmarks`); err != nil {
		return 0, storageErr("count bookmarks", err)
	}
	return n, nil
}

func checkRowsAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
