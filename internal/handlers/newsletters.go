package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"brandpress/internal/engine"
	"brandpress/internal/slug"
)

var errNotFound = errors.New("record not found")

// renderNewsletter loads a newsletter with its brand and enabled
// sections and renders the requested variant. The int is the HTTP
// status to use when err is non-nil.
func (a *App) renderNewsletter(id int64, variant engine.Variant) (string, int, error) {
	n, err := a.newsletters.FindByID(id)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	if n == nil {
		return "", http.StatusNotFound, errNotFound
	}

	brand, err := a.brands.FindByID(n.BrandID)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	if brand == nil {
		return "", http.StatusNotFound, errNotFound
	}

	sections, err := a.sections.EnabledByNewsletter(id)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}

	html, err := a.engine.RenderNewsletter(n, sections, brand.Config, variant)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	return html, http.StatusOK, nil
}

// newsletterFilename builds the export filename:
// {brand_slug}_{month}_{year}_{sanitized_title}_{variant}.html
func newsletterFilename(brandSlug, title, month string, year int, variant engine.Variant) string {
	return fmt.Sprintf("%s_%s_%d_%s_%s.html", brandSlug, month, year, slug.SafeFilename(title), variant)
}

type createNewsletterRequest struct {
	BrandID int64  `json:"brand_id"`
	Title   string `json:"title"`
	Month   string `json:"month"`
	Year    int    `json:"year"`
}

// CreateNewsletterAPI creates a newsletter with the full default section
// set. If the database is unavailable, the draft is written to a JSON
// snapshot on disk instead and the response carries a warning.
func (a *App) CreateNewsletterAPI(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCreateNewsletter(r)
	if !ok {
		writeJSONError(w, "brand_id and title are required", http.StatusBadRequest)
		return
	}

	id, err := a.newsletters.Create(req.BrandID, req.Title, req.Month, req.Year)
	if err != nil {
		slog.Error("newsletter create failed, using file fallback", "error", err)
		snapID, snapErr := a.fallback.WriteSnapshot(req.BrandID, req.Title, req.Month, req.Year)
		if snapErr != nil {
			slog.Error("fallback snapshot failed", "error", snapErr)
			writeJSONError(w, "could not save newsletter", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"newsletter_id": snapID,
			"warning":       "Saved to file (database unavailable)",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"newsletter_id": id,
	})
}

// CreateNewsletterForm handles the home-page form post and redirects to
// the editor for the new newsletter.
func (a *App) CreateNewsletterForm(w http.ResponseWriter, r *http.Request) {
	brandID, _ := strconv.ParseInt(r.FormValue("brand_id"), 10, 64)
	title := r.FormValue("title")
	month := r.FormValue("month")
	year, _ := strconv.Atoi(r.FormValue("year"))

	if brandID == 0 || title == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id, err := a.newsletters.Create(brandID, title, month, year)
	if err != nil {
		slog.Error("newsletter create failed", "error", err)
		http.Redirect(w, r, "/?error=create", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/newsletter/%d", id), http.StatusSeeOther)
}

// DeleteNewsletter removes a newsletter along with its sections and
// image records, then drops any cached previews.
func (a *App) DeleteNewsletter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := a.newsletters.Delete(id); err != nil {
		slog.Error("newsletter delete failed", "id", id, "error", err)
		writeJSONError(w, "delete failed", http.StatusInternalServerError)
		return
	}

	if a.previews != nil {
		a.previews.Invalidate(r.Context(), "newsletter", id)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ExportNewsletter handles POST export requests. For a single variant
// the rendered document comes back as an attachment; for "both" the
// response points the client at the two per-variant download URLs.
func (a *App) ExportNewsletter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, "invalid id", http.StatusBadRequest)
		return
	}

	version := r.FormValue("version")
	if version == "" {
		version = r.URL.Query().Get("version")
	}

	switch version {
	case "email", "website":
		a.serveExport(w, r, id, engine.Variant(version))
	default: // "both"
		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"message":     "both_versions_requested",
			"email_url":   fmt.Sprintf("/api/newsletters/%d/export/email", id),
			"website_url": fmt.Sprintf("/api/newsletters/%d/export/website", id),
		})
	}
}

// DownloadExport serves GET /api/newsletters/{id}/export/{variant} as an
// attachment download.
func (a *App) DownloadExport(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	variant := engine.Variant(chi.URLParam(r, "variant"))
	if variant != engine.VariantEmail && variant != engine.VariantWebsite {
		http.NotFound(w, r)
		return
	}

	a.serveExport(w, r, id, variant)
}

func (a *App) serveExport(w http.ResponseWriter, r *http.Request, id int64, variant engine.Variant) {
	n, err := a.newsletters.FindByID(id)
	if err != nil || n == nil {
		if err != nil {
			slog.Error("newsletter lookup failed", "id", id, "error", err)
		}
		http.NotFound(w, r)
		return
	}

	html, status, err := a.renderNewsletter(id, variant)
	if err != nil {
		slog.Error("newsletter export failed", "id", id, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	filename := newsletterFilename(n.BrandSlug, n.Title, n.Month, n.Year, variant)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(html))
}

func decodeCreateNewsletter(r *http.Request) (createNewsletterRequest, bool) {
	var req createNewsletterRequest

	if isJSONRequest(r) {
		if err := decodeJSONBody(r, &req); err != nil {
			return req, false
		}
	} else {
		req.BrandID, _ = strconv.ParseInt(r.FormValue("brand_id"), 10, 64)
		req.Title = r.FormValue("title")
		req.Month = r.FormValue("month")
		req.Year, _ = strconv.Atoi(r.FormValue("year"))
	}

	return req, req.BrandID != 0 && req.Title != ""
}
