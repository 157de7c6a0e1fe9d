package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested bookmark does not exist. It marks an
// absent record, not a failure, and is never wrapped in a StorageError.
var ErrNotFound = errors.New("not found")

// StorageError reports a persistence failure: an unreachable database, a
// rejected statement or a constraint violation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// BookmarkService exposes all bookmark data operations. It performs no
// validation; callers hand it data that already satisfies the bookmark rules.
type BookmarkService interface {
	List(ctx context.Context) ([]*Bookmark, error)
	GetByID(ctx context.Context, id string) (*Bookmark, error)
	Insert(ctx context.Context, b NewBookmark) (*Bookmark, error)
	// Update merges the non-nil fields of p into the bookmark. It returns
	// ErrNotFound when no bookmark has the given id.
	Update(ctx context.Context, id string, p BookmarkPatch) error
	// Delete removes the bookmark, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
