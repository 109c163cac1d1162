// Package handlers contains the HTTP handlers for the BrandPress builder.
// Handlers are grouped by concern (auth, pages, newsletters, eblasts, AI)
// and receive their dependencies through the App struct.
package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"brandpress/internal/ai"
	"brandpress/internal/cache"
	"brandpress/internal/config"
	"brandpress/internal/engine"
	"brandpress/internal/render"
	"brandpress/internal/scrape"
	"brandpress/internal/session"
	"brandpress/internal/storage"
	"brandpress/internal/store"
)

// App groups all HTTP handlers and their dependencies.
// storageClient may be nil when S3 is not configured; previews may be
// nil in tests that run without Valkey.
type App struct {
	cfg         *config.Config
	db          *sql.DB
	renderer    *render.Renderer
	sessions    *session.Store
	previews    *cache.PreviewCache
	brands      *store.BrandStore
	newsletters *store.NewsletterStore
	sections    *store.SectionStore
	eblasts     *store.EblastStore
	images      *store.ImageStore
	fallback    *store.FallbackStore
	engine      *engine.Engine
	drafter     *ai.Drafter
	scraper     *scrape.Scraper
	storage     *storage.Client

	passwordHash []byte
}

// Deps carries everything NewApp needs. Keeps the constructor call
// readable as the dependency list grows.
type Deps struct {
	Config      *config.Config
	DB          *sql.DB
	Renderer    *render.Renderer
	Sessions    *session.Store
	Previews    *cache.PreviewCache
	Brands      *store.BrandStore
	Newsletters *store.NewsletterStore
	Sections    *store.SectionStore
	Eblasts     *store.EblastStore
	Images      *store.ImageStore
	Fallback    *store.FallbackStore
	Engine      *engine.Engine
	Drafter     *ai.Drafter
	Scraper     *scrape.Scraper
	Storage     *storage.Client
}

// NewApp creates the handler group and pre-hashes the admin password so
// login compares against a bcrypt hash rather than the raw env value.
func NewApp(d Deps) (*App, error) {
	hash, err := hashPassword(d.Config.AppPassword)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:          d.Config,
		db:           d.DB,
		renderer:     d.Renderer,
		sessions:     d.Sessions,
		previews:     d.Previews,
		brands:       d.Brands,
		newsletters:  d.Newsletters,
		sections:     d.Sections,
		eblasts:      d.Eblasts,
		images:       d.Images,
		fallback:     d.Fallback,
		engine:       d.Engine,
		drafter:      d.Drafter,
		scraper:      d.Scraper,
		storage:      d.Storage,
		passwordHash: hash,
	}, nil
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// isJSONRequest reports whether the client sent a JSON body rather
// than a form post.
func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// decodeJSONBody decodes the request body into dst.
func decodeJSONBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
