package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CreateBookmarkRequest is the request body for POST /bookmarks. Fields are
// pointers so an absent key can be told apart from a zero value.
type CreateBookmarkRequest struct {
	Title       *string     `json:"title"`
	URL         *string     `json:"url"`
	Description *string     `json:"description"`
	Rating      RatingValue `json:"rating"`
}

// PatchBookmarkRequest is the request body for PATCH /bookmarks/{id}. Every
// field is optional; unknown keys are ignored.
type PatchBookmarkRequest struct {
	Title       *string     `json:"title"`
	URL         *string     `json:"url"`
	Description *string     `json:"description"`
	Rating      RatingValue `json:"rating"`
}

// RatingValue holds the rating exactly as the client sent it. Clients send
// either a JSON number (3) or a numeric string ("3"); both are accepted and
// parsed during validation.
type RatingValue struct {
	raw string
	set bool
}

func (v *RatingValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = RatingValue{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RatingValue{raw: strings.TrimSpace(s), set: true}
		return nil
	}
	*v = RatingValue{raw: string(data), set: true}
	return nil
}

// Raw returns the trimmed textual rating, or "" when none was supplied.
func (v RatingValue) Raw() string {
	if !v.set {
		return ""
	}
	return v.raw
}

// Supplied reports whether the client sent a non-empty rating. A rating of 0
// counts as supplied.
func (v RatingValue) Supplied() bool { return v.Raw() != "" }

// BookmarkResponse is the JSON representation of a single bookmark. Title and
// description have already been sanitized.
type BookmarkResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// ErrorResponse is the body of every 4xx and 5xx response produced by the
// bookmark routes.
type ErrorResponse struct {
	Error ErrorMessage `json:"error"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}
