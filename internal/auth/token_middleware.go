// Package auth gates the API behind a single shared bearer token.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
)

// BearerTokenMiddleware authenticates requests against a server-held token.
type BearerTokenMiddleware struct {
	token []byte
	log   logger.Logger
}

// NewBearerTokenMiddleware creates a middleware that accepts only token.
func NewBearerTokenMiddleware(token string, log logger.Logger) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{token: []byte(token), log: log}
}

// Authenticate rejects any request whose Authorization header is not
// "Bearer <token>" with 401 {"error": "Unauthorized request"}.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.valid(r.Header.Get("Authorization")) {
			metrics.UnauthorizedTotal.Inc()
			m.log.Error("unauthorized request", logger.String("path", r.URL.Path))
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *BearerTokenMiddleware) valid(header string) bool {
	scheme, presented, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || presented == "" || len(m.token) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), m.token) == 1
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized request"})
}
