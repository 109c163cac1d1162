package handlers

import (
	"log/slog"
	"net/http"

	"brandpress/internal/ai"
	"brandpress/internal/models"
)

type generateRequest struct {
	SectionType     models.SectionType `json:"section_type"`
	PromptType      string             `json:"prompt_type"`
	InputContent    string             `json:"input_content"`
	Guidance        string             `json:"guidance"`
	SupplementalURL string             `json:"supplemental_url"`
	BrandID         int64              `json:"brand_id"`
}

// GenerateDraft runs one AI drafting request for a section. Provider
// failures come back inside the draft as marked error strings, so the
// handler only fails outright on bad input or a primary scrape error.
func (a *App) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SectionType == "" {
		writeJSONError(w, "section_type is required", http.StatusBadRequest)
		return
	}

	brand, err := a.brands.FindByID(req.BrandID)
	if err != nil {
		slog.Error("brand lookup failed", "id", req.BrandID, "error", err)
		writeJSONError(w, "brand lookup failed", http.StatusInternalServerError)
		return
	}
	if brand == nil {
		writeJSONError(w, "brand not found", http.StatusNotFound)
		return
	}

	resp, err := a.drafter.Generate(r.Context(), ai.Request{
		SectionType:     req.SectionType,
		PromptType:      req.PromptType,
		InputContent:    req.InputContent,
		Guidance:        req.Guidance,
		SupplementalURL: req.SupplementalURL,
		Brand:           brand.Config,
	})
	if err != nil {
		// Primary URL scrape failed; the editor shows this to the user.
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"draft":   resp,
	})
}

type scrapeRequest struct {
	URL string `json:"url"`
}

// ScrapePage fetches and extracts a product page on demand, without
// running a draft. Used by the editor's image picker.
func (a *App) ScrapePage(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := decodeJSONBody(r, &req); err != nil || req.URL == "" {
		writeJSONError(w, "url is required", http.StatusBadRequest)
		return
	}

	result, err := a.scraper.Fetch(r.Context(), req.URL)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}

// BrandConfig returns one brand's design tokens for the editor.
func (a *App) BrandConfig(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, "invalid id", http.StatusBadRequest)
		return
	}

	brand, err := a.brands.FindByID(id)
	if err != nil {
		slog.Error("brand lookup failed", "id", id, "error", err)
		writeJSONError(w, "brand lookup failed", http.StatusInternalServerError)
		return
	}
	if brand == nil {
		writeJSONError(w, "brand not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":           brand.ID,
		"name":         brand.Name,
		"display_name": brand.DisplayName,
		"config":       brand.Config,
	})
}
