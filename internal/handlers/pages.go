package handlers

import (
	"log/slog"
	"net/http"
	"os"

	"brandpress/internal/database"
	"brandpress/internal/engine"
	"brandpress/internal/render"
)

// Home lists newsletters, eblasts, and brands. Store failures degrade to
// empty lists with a visible banner rather than a 500; the brand list
// falls back to the built-in profiles so the create form stays usable.
// Any fallback snapshots written while the database was down are listed
// too.
func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	var flashes []render.Flash

	brands, err := a.brands.List()
	if err != nil {
		slog.Error("brand list failed", "error", err)
		flashes = append(flashes, render.Flash{Type: "error", Message: "Database unavailable: brand list could not be loaded."})
		brands = database.DefaultBrands()
	}

	newsletters, err := a.newsletters.List()
	if err != nil {
		slog.Error("newsletter list failed", "error", err)
		flashes = append(flashes, render.Flash{Type: "error", Message: "Database unavailable: newsletters could not be loaded."})
	}

	eblasts, err := a.eblasts.List()
	if err != nil {
		slog.Error("eblast list failed", "error", err)
		flashes = append(flashes, render.Flash{Type: "error", Message: "Database unavailable: eblasts could not be loaded."})
	}

	snapshots, err := a.fallback.List()
	if err != nil {
		slog.Warn("fallback snapshot list failed", "error", err)
	}

	a.renderer.Page(w, r, "home", &render.PageData{
		Title:   "Home",
		Flashes: flashes,
		Data: map[string]any{
			"Brands":      brands,
			"Newsletters": newsletters,
			"Eblasts":     eblasts,
			"Snapshots":   snapshots,
		},
	})
}

// NewsletterEditor renders the section editor for one newsletter.
func (a *App) NewsletterEditor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	n, err := a.newsletters.FindByID(id)
	if err != nil {
		slog.Error("newsletter lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if n == nil {
		http.NotFound(w, r)
		return
	}

	sections, err := a.sections.ListByNewsletter(id)
	if err != nil {
		slog.Error("section list failed", "newsletter_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "editor", &render.PageData{
		Title: n.Title,
		Data: map[string]any{
			"Newsletter": n,
			"Sections":   sections,
		},
	})
}

// EblastEditor renders the section editor for one eblast.
func (a *App) EblastEditor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	eb, err := a.eblasts.FindByID(id)
	if err != nil {
		slog.Error("eblast lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if eb == nil {
		http.NotFound(w, r)
		return
	}

	sections, err := a.eblasts.ListSections(id)
	if err != nil {
		slog.Error("eblast section list failed", "eblast_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "eblast_editor", &render.PageData{
		Title: eb.Title,
		Data: map[string]any{
			"Eblast":   eb,
			"Sections": sections,
		},
	})
}

// PreviewNewsletter renders a newsletter preview. ?version=website gives
// the footer-less web variant; anything else is the email variant.
// Rendered HTML is cached per (newsletter, variant) until a section changes.
func (a *App) PreviewNewsletter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	variant := engine.VariantEmail
	if r.URL.Query().Get("version") == "website" {
		variant = engine.VariantWebsite
	}

	if a.previews != nil {
		if html, ok := a.previews.Get(r.Context(), "newsletter", id, string(variant)); ok {
			writeHTML(w, html)
			return
		}
	}

	html, status, err := a.renderNewsletter(id, variant)
	if err != nil {
		slog.Error("newsletter preview failed", "id", id, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	if a.previews != nil {
		a.previews.Set(r.Context(), "newsletter", id, string(variant), html)
	}
	writeHTML(w, html)
}

// PreviewEblast renders an eblast preview.
func (a *App) PreviewEblast(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if a.previews != nil {
		if html, ok := a.previews.Get(r.Context(), "eblast", id, "email"); ok {
			writeHTML(w, html)
			return
		}
	}

	html, status, err := a.renderEblast(id)
	if err != nil {
		slog.Error("eblast preview failed", "id", id, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	if a.previews != nil {
		a.previews.Set(r.Context(), "eblast", id, "email", html)
	}
	writeHTML(w, html)
}

// Health is the liveness endpoint used by the hosting platform.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "brandpress",
	})
}

// DebugDB reports record counts and database file info. A quick
// diagnostic for "why is my list empty" reports from the team.
func (a *App) DebugDB(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int64{}
	for _, table := range []string{"brands", "newsletters", "sections", "eblasts", "images"} {
		var n int64
		if err := a.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"status": "error", "error": err.Error()})
			return
		}
		counts[table] = n
	}

	var size int64
	exists := false
	if info, err := os.Stat(a.cfg.DBPath); err == nil {
		exists = true
		size = info.Size()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"database": map[string]any{
			"path":         a.cfg.DBPath,
			"exists":       exists,
			"size_bytes":   size,
			"table_counts": counts,
		},
	})
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
