package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"brandpress/internal/models"
)

type updateSectionRequest struct {
	Content json.RawMessage `json:"content"`
	Enabled *bool           `json:"enabled"`
}

// UpdateSection saves edited section content (and optionally the enabled
// flag) and invalidates the owning newsletter's cached previews.
func (a *App) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, "invalid id", http.StatusBadRequest)
		return
	}

	sec, err := a.sections.FindByID(id)
	if err != nil {
		slog.Error("section lookup failed", "id", id, "error", err)
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

	// Validate the content decodes for this section type before saving,
	// so the editor can't persist a blob the renderer will choke on.
	if _, err := models.DecodeContent(sec.Type, req.Content); err != nil {
		writeJSONError(w, "content does not match the section type", http.StatusBadRequest)
		return
	}

	enabled := sec.Enabled
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	if err := a.sections.Update(id, req.Content, enabled); err != nil {
		slog.Error("section update failed", "id", id, "error", err)
		writeJSONError(w, "update failed", http.StatusInternalServerError)
		return
	}

	if a.previews != nil {
		a.previews.Invalidate(r.Context(), "newsletter", sec.NewsletterID)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ToggleSection flips a section's enabled flag and reports the new state.
func (a *App) ToggleSection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, "invalid id", http.StatusBadRequest)
		return
	}

	sec, err := a.sections.FindByID(id)
	if err != nil {
		slog.Error("section lookup failed", "id", id, "error", err)
		writeJSONError(w, "lookup failed", http.StatusInternalServerError)
		return
	}
	if sec == nil {
		writeJSONError(w, "section not found", http.StatusNotFound)
		return
	}

	enabled, err := a.sections.Toggle(id)
	if err != nil {
		slog.Error("section toggle failed", "id", id, "error", err)
		writeJSONError(w, "toggle failed", http.StatusInternalServerError)
		return
	}

	if a.previews != nil {
		a.previews.Invalidate(r.Context(), "newsletter", sec.NewsletterID)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "enabled": enabled})
}
