package api

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/joestump/bookmarks-api/internal/store"
)

const (
	msgInvalidRating = "'rating' must be a number between 0 and 5"
	msgEmptyPatch    = "Request body must contain either 'title', 'url', 'description' or 'rating'"
	msgInvalidJSON   = "Request body must be valid JSON"
)

// ValidationError is caller-supplied data that breaks a bookmark rule. Message
// is safe to return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// createFields is the normalized create body. Blank strings are empty, so
// "required" rejects absent, null and whitespace-only values alike. Field
// order is the order in which missing fields are reported.
type createFields struct {
	Title              string `json:"title" validate:"required"`
	URL                string `json:"url" validate:"required"`
	Description        string `json:"description" validate:"required_if=RequireDescription true"`
	Rating             string `json:"rating" validate:"required"`
	RequireDescription bool   `json:"-"`
}

// validateCreate checks req and returns the bookmark to insert. When
// requireDescription is false a missing description is stored as "".
func validateCreate(req CreateBookmarkRequest, requireDescription bool) (store.NewBookmark, error) {
	in := createFields{
		Title:              present(req.Title),
		URL:                present(req.URL),
		Description:        present(req.Description),
		Rating:             req.Rating.Raw(),
		RequireDescription: requireDescription,
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return store.NewBookmark{}, invalid(fmt.Sprintf("Missing '%s' in request body", verrs[0].Field()))
		}
		return store.NewBookmark{}, err
	}

	rating, err := parseRating(in.Rating)
	if err != nil {
		return store.NewBookmark{}, err
	}

	nb := store.NewBookmark{
		Title:  *req.Title,
		URL:    *req.URL,
		Rating: rating,
	}
	if req.Description != nil {
		nb.Description = *req.Description
	}
	return nb, nil
}

// validatePatch turns req into a sparse patch. Absent, null and blank values
// are treated as not supplied; at least one field must remain.
func validatePatch(req PatchBookmarkRequest) (store.BookmarkPatch, error) {
	var p store.BookmarkPatch
	if present(req.Title) != "" {
		p.Title = req.Title
	}
	if present(req.URL) != "" {
		p.URL = req.URL
	}
	if present(req.Description) != "" {
		p.Description = req.Description
	}
	if req.Rating.Supplied() {
		rating, err := parseRating(req.Rating.Raw())
		if err != nil {
			return store.BookmarkPatch{}, err
		}
		p.Rating = &rating
	}

	if p.IsEmpty() {
		return store.BookmarkPatch{}, invalid(msgEmptyPatch)
	}
	return p, nil
}

// parseRating accepts any numeric literal that denotes an integer in range,
// so "4", "4.0" and 4 are equivalent.
func parseRating(raw string) (int, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, invalid(msgInvalidRating)
	}
	n := int(f)
	if err := validate.Var(n, fmt.Sprintf("gte=%d,lte=%d", store.MinRating, store.MaxRating)); err != nil {
		return 0, invalid(msgInvalidRating)
	}
	return n, nil
}

// present returns the value of s with surrounding whitespace removed, or ""
// when s is nil.
func present(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
