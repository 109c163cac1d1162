// Package router tests verify the route tree, the auth gating, and
// static asset serving.
package router

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"brandpress/internal/ai"
	"brandpress/internal/config"
	"brandpress/internal/database"
	"brandpress/internal/engine"
	"brandpress/internal/handlers"
	"brandpress/internal/render"
	"brandpress/internal/scrape"
	"brandpress/internal/session"
	"brandpress/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	eng, err := engine.New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	cfg := &config.Config{
		Env:         "testing",
		DBPath:      filepath.Join(dir, "test.db"),
		UploadsDir:  filepath.Join(dir, "uploads"),
		OutputsDir:  filepath.Join(dir, "outputs"),
		AppPassword: "admin",
	}

	scraper := scrape.New()
	app, err := handlers.NewApp(handlers.Deps{
		Config:      cfg,
		DB:          db,
		Renderer:    renderer,
		Sessions:    session.NewStore(nil, "test-secret"),
		Brands:      store.NewBrandStore(db),
		Newsletters: store.NewNewsletterStore(db),
		Sections:    store.NewSectionStore(db),
		Eblasts:     store.NewEblastStore(db),
		Images:      store.NewImageStore(db),
		Fallback:    store.NewFallbackStore(cfg.OutputsDir),
		Engine:      eng,
		Drafter:     ai.NewDrafter(ai.NewClaude(ai.ProviderConfig{}), scraper),
		Scraper:     scraper,
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	// A nil Valkey client is safe here: requests without a session
	// cookie never reach it.
	return New(session.NewStore(nil, "test-secret"), app, cfg.UploadsDir)
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status"`) {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestPagesRequireLogin(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/", "/newsletter/1", "/eblast/1", "/preview/1"} {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

			if rr.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rr.Code)
			}
			if loc := rr.Header().Get("Location"); loc != "/login" {
				t.Errorf("redirect = %q, want /login", loc)
			}
		})
	}
}

func TestAPIRequiresLoginWithJSONError(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/brands/1/config", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}

func TestLoginPageIsPublic(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Password") {
		t.Error("login page should render the password form")
	}
}

func TestStaticAssetsServed(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "body") {
		t.Error("app.css should be served from the embedded assets")
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
