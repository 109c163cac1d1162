package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brandpress/internal/models"
)

func TestNewParsesAllTemplates(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, name := range []string{"login", "home", "editor", "eblast_editor"} {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestPageRendersHome(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	rn.Page(rr, req, "home", &PageData{
		Title: "Home",
		Data: map[string]any{
			"Brands": []models.Brand{{ID: 1, DisplayName: "PROJECT7 Armor"}},
			"Newsletters": []models.Newsletter{
				{ID: 3, Title: "March Issue", Month: "March", Year: 2026, Status: "draft", BrandName: "PROJECT7 Armor"},
			},
		},
		Flashes: []Flash{{Type: "error", Message: "Database unavailable"}},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"<title>Home | BrandPress</title>",
		"PROJECT7 Armor",
		`href="/newsletter/3"`,
		"March Issue",
		"Database unavailable",
		"No eblasts yet.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestPageRendersLoginStandalone(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rr := httptest.NewRecorder()
	rn.Page(rr, req, "login", &PageData{Title: "Log in", Data: map[string]any{"Error": true}})

	body := rr.Body.String()
	if !strings.Contains(body, "Incorrect password") {
		t.Error("login page should show the error banner when Error is set")
	}
	if strings.Contains(body, "topbar") {
		t.Error("login page should not use the base layout")
	}
}

func TestPageUnknownTemplate(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	rn.Page(rr, req, "nope", &PageData{})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}
