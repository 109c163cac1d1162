package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"brandpress/internal/models"
	"brandpress/internal/slug"
)

// renderEblast loads an eblast with its brand and enabled sections and
// renders it. The int is the HTTP status to use when err is non-nil.
func (a *App) renderEblast(id int64) (string, int, error) {
	eb, err := a.eblasts.FindByID(id)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	if eb == nil {
		return "", http.StatusNotFound, errNotFound
	}

	brand, err := a.brands.FindByID(eb.BrandID)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	if brand == nil {
		return "", http.StatusNotFound, errNotFound
	}

	sections, err := a.eblasts.EnabledSections(id)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}

	html, err := a.engine.RenderEblast(eb, sections, brand.Config)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	return html, http.StatusOK, nil
}

type createEblastRequest struct {
	BrandID     int64  `json:"brand_id"`
	Title       string `json:"title"`
	SubjectLine string `json:"subject_line"`
}

// CreateEblastAPI creates an eblast with its default section set.
func (a *App) CreateEblastAPI(w http.ResponseWriter, r *http.Request) {
	var req createEblastRequest
	if isJSONRequest(r) {
		if err := decodeJSONBody(r, &req); err != nil {
			writeJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	} else {
		req.BrandID, _ = strconv.ParseInt(r.FormValue("brand_id"), 10, 64)
		req.Title = r.FormValue("title")
		req.SubjectLine = r.FormValue("subject_line")
	}

	if req.BrandID == 0 || req.Title == "" {
		writeJSONError(w, "brand_id and title are required", http.StatusBadRequest)
		return
	}

	id, err := a.eblasts.Create(req.BrandID, req.Title, req.SubjectLine)
	if err != nil {
		slog.Error("eblast create failed", "error", err)
		writeJSONError(w, "could not save eblast", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "eblast_id": id})
}

// CreateEblastForm handles the home-page form post and redirects to the
// eblast editor.
func (a *App) CreateEblastForm(w http.ResponseWriter, r *http.Request) {
	brandID, _ := strconv.ParseInt(r.FormValue("brand_id"), 10, 64)
	title := r.FormValue("title")
	subjectLine := r.FormValue("subject_line")

	if brandID == 0 || title == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id, err := a.eblasts.Create(brandID, title, subjectLine)
	if err != nil {
		slog.Error("eblast create failed", "error", err)
		http.Redirect(w, r, "/?error=create", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/eblast/%d", id), http.StatusSeeOther)
}

// UpdateEblastSection saves edited eblast section content and
// invalidates the eblast's cached preview.
func (a *App) UpdateEblastSection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, "invalid id", http.StatusBadRequest)
		return
	}

	sec, err := a.eblasts.FindSection(id)
	if err != nil {
		slog.Error("eblast section lookup failed", "id", id, "error", err)
		writeJSONError(w, "lookup failed", http.StatusInternalServerError)
		return
	}
	if sec == nil {
		writeJSONError(w, "section not found", http.StatusNotFound)
		return
	}

	var req updateSectionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Content) == 0 {
		writeJSONError(w, "content is required", http.StatusBadRequest)
		return
	}

	if _, err := models.DecodeContent(sec.Type, req.Content); err != nil {
		writeJSONError(w, "content does not match the section type", http.StatusBadRequest)
		return
	}

	enabled := sec.Enabled
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	if err := a.eblasts.UpdateSection(id, req.Content, enabled); err != nil {
		slog.Error("eblast section update failed", "id", id, "error", err)
		writeJSONError(w, "update failed", http.StatusInternalServerError)
		return
	}

	if a.previews != nil {
		a.previews.Invalidate(r.Context(), "eblast", sec.EblastID)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ExportEblast serves the rendered eblast as an attachment download
// named eblast_{brand_slug}_{sanitized_title}.html.
func (a *App) ExportEblast(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	eb, err := a.eblasts.FindByID(id)
	if err != nil || eb == nil {
		if err != nil {
			slog.Error("eblast lookup failed", "id", id, "error", err)
		}
		http.NotFound(w, r)
		return
	}

	html, status, err := a.renderEblast(id)
	if err != nil {
		slog.Error("eblast export failed", "id", id, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	filename := fmt.Sprintf("eblast_%s_%s.html", eb.BrandSlug, slug.SafeFilename(eb.Title))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(html))
}

// DeleteEblast removes an eblast and its sections.
func (a *App) DeleteEblast(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := a.eblasts.Delete(id); err != nil {
		slog.Error("eblast delete failed", "id", id, "error", err)
		writeJSONError(w, "delete failed", http.StatusInternalServerError)
		return
	}

	if a.previews != nil {
		a.previews.Invalidate(r.Context(), "eblast", id)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
