// Package scrape extracts product information from public product pages.
// The output feeds the AI drafter as source material, so everything is
// truncated to sane lengths and best-effort: a page with no matching
// content still yields a usable (mostly empty) result.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxTitleLen       = 200
	maxDescriptionLen = 1000
	maxContentLen     = 5000
	maxFeatures       = 15
	maxSpecs          = 20
	maxImages         = 8
	enoughImages      = 5
)

// contentSelectors are tried in order; the longest extracted text wins.
var contentSelectors = []string{
	`div[class*="product-description"]`,
	`div[class*="product-content"]`,
	`div[class*="description"]`,
	`div[class*="product-info"]`,
	"article",
	"main",
	`div[class*="content"]`,
}

// imageSelectors are tried in order until enough candidates are found.
var imageSelectors = []string{
	`img[class*="product"]`,
	`img[class*="gallery"]`,
	`div[class*="product"] img`,
	`div[class*="gallery"] img`,
	`img[src*="product"]`,
	"picture img",
	"img",
}

// skipImageKeywords mark chrome and tracking images, not product shots.
var skipImageKeywords = []string{"icon", "logo", "pixel", "1x1", "spacer", "blank", "placeholder"}

// Result holds everything extracted from one product page.
type Result struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MainContent string   `json:"main_content"`
	Features    []string `json:"features"`
	Specs       []string `json:"specs"`
	Images      []Image  `json:"images"`
}

// Image is one candidate product image with its alt text.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Scraper fetches and parses product pages.
type Scraper struct {
	client *http.Client
}

// New creates a Scraper with a 30 second request timeout.
func New() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads and extracts a product page. Network and HTTP-status
// failures are returned as errors; a parseable page never fails.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("scrape request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return extract(doc, pageURL), nil
}

func extract(doc *goquery.Document, pageURL string) *Result {
	// Drop page chrome before any text extraction.
	doc.Find("script, style, nav, footer, header").Remove()

	r := &Result{
		URL:         pageURL,
		Title:       truncate(extractTitle(doc), maxTitleLen),
		Description: truncate(extractDescription(doc), maxDescriptionLen),
		MainContent: truncate(extractMainContent(doc), maxContentLen),
		Features:    extractFeatures(doc),
		Specs:       extractSpecs(doc),
		Images:      extractImages(doc, pageURL),
	}
	return r
}

// extractTitle prefers the first h1, then og:title, then <title>.
func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractDescription(doc *goquery.Document) string {
	if d, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(d) != "" {
		return strings.TrimSpace(d)
	}
	if d, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		return strings.TrimSpace(d)
	}
	return ""
}

// extractMainContent tries each selector and keeps the longest text found.
func extractMainContent(doc *goquery.Document) string {
	var best string
	for _, sel := range contentSelectors {
		doc.Find(sel).Each(func(_ int, el *goquery.Selection) {
			text := cleanText(el)
			if len(text) > len(best) {
				best = text
			}
		})
	}
	return best
}

// extractFeatures collects list items of plausible bullet length.
func extractFeatures(doc *goquery.Document) []string {
	var features []string
	doc.Find("ul li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := strings.TrimSpace(li.Text())
		if len(text) > 10 && len(text) < 500 {
			features = append(features, text)
		}
		return len(features) < maxFeatures
	})
	return features
}

// extractSpecs reads two-column table rows as "label: value" pairs.
func extractSpecs(doc *goquery.Document) []string {
	var specs []string
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td, th")
		if cells.Length() >= 2 {
			label := strings.TrimSpace(cells.Eq(0).Text())
			value := strings.TrimSpace(cells.Eq(1).Text())
			if label != "" && value != "" {
				specs = append(specs, label+": "+value)
			}
		}
		return len(specs) < maxSpecs
	})
	return specs
}

// extractImages walks the prioritized selectors, absolutizing and
// deduplicating srcs and skipping obvious chrome/tracking images. Once a
// selector pass has produced enough candidates the remaining selectors
// are not tried.
func extractImages(doc *goquery.Document, pageURL string) []Image {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var images []Image

	for _, sel := range imageSelectors {
		doc.Find(sel).EachWithBreak(func(i int, img *goquery.Selection) bool {
			if i >= 10 {
				return false
			}
			src := firstAttr(img, "src", "data-src", "data-lazy-src")
			if src == "" {
				return true
			}
			abs := absoluteURL(base, src)
			if abs == "" || seen[abs] || skipImage(abs) {
				return true
			}
			seen[abs] = true
			alt, _ := img.Attr("alt")
			images = append(images, Image{URL: abs, Alt: alt})
			return len(images) < maxImages
		})
		if len(images) >= enoughImages {
			break
		}
	}

	if len(images) > maxImages {
		images = images[:maxImages]
	}
	return images
}

func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}

func absoluteURL(base *url.URL, src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func skipImage(src string) bool {
	lower := strings.ToLower(src)
	for _, kw := range skipImageKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// cleanText returns the selection's text with runs of whitespace inside
// lines collapsed and blank lines dropped.
func cleanText(sel *goquery.Selection) string {
	var lines []string
	for _, line := range strings.Split(sel.Text(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
