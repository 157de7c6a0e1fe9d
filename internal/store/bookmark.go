package store

import "time"

const (
	MinRating = 0
	MaxRating = 5
)

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	Description string    `db:"description"`
	Rating      int       `db:"rating"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NewBookmark carries the fields of a bookmark about to be inserted.
type NewBookmark struct {
	Title       string
	URL         string
	Description string
	Rating      int
}

// BookmarkPatch is a sparse update. Nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Description *string
	Rating      *int
}

// IsEmpty reports whether the patch sets no field at all.
func (p BookmarkPatch) IsEmpty() bool {
	return p.Title == nil && p.URL == nil && p.Description == nil && p.Rating == nil
}

// Apply returns a copy of b with the patch merged in.
func (p BookmarkPatch) Apply(b Bookmark) Bookmark {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	return b
}
