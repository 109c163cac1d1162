package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchProductPage(t *testing.T) {
	srv := serve(t, `<!DOCTYPE html>
<html>
<head>
	<title>Fallback Title</title>
	<meta name="description" content="A rugged plate carrier for daily patrol.">
	<meta property="og:title" content="OG Title">
	<script>console.log("should never appear");</script>
</head>
<body>
	<nav>Home | Products | About</nav>
	<h1>Patrol Plate Carrier</h1>
	<div class="product-description">
		<p>Built for 12-hour shifts.</p>
		<p>Laser-cut MOLLE throughout.</p>
	</div>
	<ul>
		<li>short</li>
		<li>Quick-release buckles rated for duty use</li>
		<li>Drag handle with reinforced stitching</li>
	</ul>
	<table>
		<tr><td>Weight</td><td>2.1 lbs</td></tr>
		<tr><td>Material</td><td>500D Cordura</td></tr>
		<tr><td>OnlyOneCell</td></tr>
	</table>
	<img class="product-hero" src="/images/carrier-front.jpg" alt="Front view">
	<img class="product-alt" src="//cdn.example.com/carrier-back.jpg" alt="Back view">
	<img src="/images/logo.png" alt="Logo">
	<footer>footer text</footer>
</body>
</html>`)

	result, err := New().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if result.Title != "Patrol Plate Carrier" {
		t.Errorf("Title = %q, want h1 text", result.Title)
	}
	if result.Description != "A rugged plate carrier for daily patrol." {
		t.Errorf("Description = %q", result.Description)
	}
	if !strings.Contains(result.MainContent, "Laser-cut MOLLE") {
		t.Errorf("MainContent missing product copy: %q", result.MainContent)
	}
	if strings.Contains(result.MainContent, "should never appear") {
		t.Error("script content leaked into MainContent")
	}

	// "short" is under the 10-char floor.
	if len(result.Features) != 2 {
		t.Fatalf("Features = %v, want 2 entries", result.Features)
	}
	if result.Features[0] != "Quick-release buckles rated for duty use" {
		t.Errorf("Features[0] = %q", result.Features[0])
	}

	if len(result.Specs) != 2 {
		t.Fatalf("Specs = %v, want 2 entries", result.Specs)
	}
	if result.Specs[0] != "Weight: 2.1 lbs" {
		t.Errorf("Specs[0] = %q", result.Specs[0])
	}

	if len(result.Images) != 2 {
		t.Fatalf("Images = %v, want 2 (logo skipped)", result.Images)
	}
	if !strings.HasPrefix(result.Images[0].URL, srv.URL) {
		t.Errorf("Images[0].URL = %q, want absolute under test server", result.Images[0].URL)
	}
	if result.Images[1].URL != "https://cdn.example.com/carrier-back.jpg" {
		t.Errorf("Images[1].URL = %q, want https scheme added", result.Images[1].URL)
	}
	for _, img := range result.Images {
		if strings.Contains(strings.ToLower(img.URL), "logo") {
			t.Errorf("logo image should be skipped: %q", img.URL)
		}
	}
}

func TestFetchTitleFallbacks(t *testing.T) {
	srv := serve(t, `<html><head>
		<meta property="og:title" content="OG Product Name">
		<title>Page Title</title>
	</head><body><p>no h1 here</p></body></html>`)

	result, err := New().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.Title != "OG Product Name" {
		t.Errorf("Title = %q, want og:title fallback", result.Title)
	}
}

func TestFetchEmptyPage(t *testing.T) {
	srv := serve(t, `<html><head><title>Bare</title></head><body></body></html>`)

	result, err := New().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.Title != "Bare" {
		t.Errorf("Title = %q", result.Title)
	}
	if result.Description != "" || result.MainContent != "" {
		t.Errorf("empty page should yield empty description/content")
	}
	if len(result.Features) != 0 || len(result.Specs) != 0 || len(result.Images) != 0 {
		t.Error("empty page should yield no features, specs, or images")
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	if _, err := New().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch() on 404 should return an error")
	}
}

func TestFetchTruncation(t *testing.T) {
	long := strings.Repeat("x", 6000)
	srv := serve(t, `<html><body><h1>`+strings.Repeat("t", 300)+`</h1><main>`+long+`</main></body></html>`)

	result, err := New().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(result.Title) != maxTitleLen {
		t.Errorf("Title length = %d, want %d", len(result.Title), maxTitleLen)
	}
	if len(result.MainContent) != maxContentLen {
		t.Errorf("MainContent length = %d, want %d", len(result.MainContent), maxContentLen)
	}
}
