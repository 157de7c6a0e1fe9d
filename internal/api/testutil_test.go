package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joestump/bookmarks-api/internal/api"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
	"github.com/joestump/bookmarks-api/internal/testutil"
)

const testToken = "test-api-token"

// testEnv holds the router and the store behind it.
type testEnv struct {
	Router http.Handler
	Store  store.BookmarkService
}

type envOption func(*api.Deps)

func withRequiredDescription() envOption {
	return func(d *api.Deps) { d.RequireDescription = true }
}

func withStore(s store.BookmarkService) envOption {
	return func(d *api.Deps) { d.Bookmarks = s }
}

// newTestEnv creates an in-memory SQLite database, runs migrations and wires
// the full router with the real store.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	deps := api.Deps{
		Bookmarks:          store.NewBookmarkStore(testutil.NewTestDB(t)),
		Logger:             logger.Nop(),
		APIToken:           testToken,
		APIRoot:            "/api",
		CORSAllowedOrigins: []string{"*"},
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &testEnv{Router: api.NewRouter(deps), Store: deps.Bookmarks}
}

// do sends an authenticated request and returns the recorded response.
func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

// seedBookmark inserts a bookmark directly through the store.
func (e *testEnv) seedBookmark(t *testing.T, title, url, description string, rating int) *store.Bookmark {
	t.Helper()
	b, err := e.Store.Insert(context.Background(), store.NewBookmark{
		Title:       title,
		URL:         url,
		Description: description,
		Rating:      rating,
	})
	require.NoError(t, err)
	return b
}

func decodeBookmark(t *testing.T, rec *httptest.ResponseRecorder) api.BookmarkResponse {
	t.Helper()
	var resp api.BookmarkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp), "body: %s", rec.Body.String())
	return resp
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp), "body: %s", rec.Body.String())
	return resp.Error.Message
}
