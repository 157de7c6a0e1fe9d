package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/joestump/bookmarks-api/docs/swagger"
	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Bookmarks          store.BookmarkService
	Logger             logger.Logger
	APIToken           string
	APIRoot            string // e.g. "/api"; empty mounts the routes at the root
	RequireDescription bool
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// NewRouter assembles the chi router. Health, metrics and docs endpoints are
// open; everything else requires the bearer token.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(corsHandler(deps.CORSAllowedOrigins))
	r.Use(rateLimit(deps.RateLimitRPS, deps.RateLimitBurst, deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// API docs are served without auth.
	r.Get(deps.APIRoot+"/docs/*", httpSwagger.WrapHandler)

	bearer := auth.NewBearerTokenMiddleware(deps.APIToken, deps.Logger)
	h := &bookmarksAPIHandler{
		bookmarks:          deps.Bookmarks,
		log:                deps.Logger,
		apiRoot:            deps.APIRoot,
		requireDescription: deps.RequireDescription,
	}

	r.Group(func(r chi.Router) {
		r.Use(bearer.Authenticate)
		r.Use(instrument)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = io.WriteString(w, "Hello, world!")
		})

		if deps.APIRoot == "" {
			registerBookmarkRoutes(r, h)
		} else {
			r.Route(deps.APIRoot, func(r chi.Router) {
				registerBookmarkRoutes(r, h)
			})
		}

		// Registered last so the auth chain also guards unknown paths,
		// including those under the API root.
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "Not found")
		})
	})

	return r
}
