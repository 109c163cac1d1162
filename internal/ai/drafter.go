package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"brandpress/internal/markdown"
	"brandpress/internal/models"
	"brandpress/internal/scrape"
)

// PromptType selects the drafting mode requested by the editor.
const (
	PromptFromURL     = "from_url"
	PromptFromText    = "from_text"
	PromptPolishDraft = "polish_draft"
)

// Drafter turns editor requests into section copy. Source material comes
// either from a scraped product page or pasted text; the model is asked
// for a JSON blob matching the section's field set, and drafts that come
// back unparseable are passed through as raw text instead of failing.
type Drafter struct {
	provider Provider
	scraper  *scrape.Scraper
}

// NewDrafter creates a Drafter over the given provider and scraper.
func NewDrafter(provider Provider, scraper *scrape.Scraper) *Drafter {
	return &Drafter{provider: provider, scraper: scraper}
}

// Request is one drafting request from the editor.
type Request struct {
	SectionType     models.SectionType `json:"section_type"`
	PromptType      string             `json:"prompt_type"`
	InputContent    string             `json:"input_content"`
	Guidance        string             `json:"guidance"`
	SupplementalURL string             `json:"supplemental_url"`
	Brand           models.BrandConfig `json:"brand_config"`
}

// Response carries the draft back to the editor. Structured is false when
// the model's output was not valid JSON; Content then holds a raw_text
// field and RawHTML its markdown rendering.
type Response struct {
	SectionType models.SectionType `json:"section_type"`
	Structured  bool               `json:"structured"`
	Content     json.RawMessage    `json:"content"`
	RawHTML     string             `json:"raw_html,omitempty"`
	Images      []scrape.Image     `json:"images"`
	Scraped     *ScrapeSummary     `json:"scraped_data,omitempty"`
}

// ScrapeSummary is the small slice of scrape metadata echoed to the editor.
type ScrapeSummary struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	ImageCount int    `json:"image_count"`
}

// Generate runs one drafting request. Scrape failures on the primary URL
// are returned as errors; supplemental-URL failures are ignored. Model
// failures never error: the marked error string becomes the draft text so
// the editor always has something to show.
func (d *Drafter) Generate(ctx context.Context, req Request) (*Response, error) {
	var scraped, supplemental *scrape.Result

	if req.PromptType == PromptFromURL && strings.HasPrefix(req.InputContent, "http") {
		var err error
		scraped, err = d.scraper.Fetch(ctx, req.InputContent)
		if err != nil {
			return nil, err
		}
		if url := strings.TrimSpace(req.SupplementalURL); url != "" {
			if sup, err := d.scraper.Fetch(ctx, url); err == nil {
				supplemental = sup
			}
		}
	}

	system := systemPrompt(req.Brand)
	prompt := sectionPrompt(req.SectionType, scraped, supplemental, req.Guidance, req.InputContent)

	text, err := d.provider.Generate(ctx, system, prompt)
	if err != nil {
		text = markedError(err)
	}

	resp := &Response{
		SectionType: req.SectionType,
		Images:      []scrape.Image{},
	}
	if scraped != nil {
		resp.Images = scraped.Images
		resp.Scraped = &ScrapeSummary{
			Title:      scraped.Title,
			URL:        scraped.URL,
			ImageCount: len(scraped.Images),
		}
	}

	if structured, ok := parseStructured(text); ok {
		resp.Structured = true
		resp.Content = structured
		return resp, nil
	}

	raw, merr := json.Marshal(map[string]string{"raw_text": text})
	if merr != nil {
		return nil, fmt.Errorf("drafter: marshal raw draft: %w", merr)
	}
	resp.Content = raw
	if html, herr := markdown.Render(text); herr == nil {
		resp.RawHTML = html
	}
	return resp, nil
}

var codeFenceOpen = regexp.MustCompile("^```(?:json)?\\s*")
var codeFenceClose = regexp.MustCompile("\\s*```$")

// parseStructured strips an optional markdown code fence and checks the
// remainder is a JSON object.
func parseStructured(text string) (json.RawMessage, bool) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = codeFenceOpen.ReplaceAllString(cleaned, "")
		cleaned = codeFenceClose.ReplaceAllString(cleaned, "")
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, false
	}
	return json.RawMessage(cleaned), true
}

// markedError converts a provider failure into the bracketed text the
// editor displays inline instead of a draft.
func markedError(err error) string {
	if errors.Is(err, ErrNoAPIKey) {
		return "[ERROR: ANTHROPIC_API_KEY not set. Set it as an environment variable.]"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("[API Error: %d - %s]", apiErr.Status, apiErr.Body)
	}
	return fmt.Sprintf("[Error calling Claude API: %v]", err)
}

// systemPrompt sets the brand-voice writing rules applied to every draft.
func systemPrompt(brand models.BrandConfig) string {
	name := brand.NewsletterName
	if name == "" {
		name = "Newsletter"
	}
	return fmt.Sprintf(`You are a skilled copywriter for tactical equipment newsletters. You write for %s.

Your audience is tactical operators, law enforcement, and military professionals. They are experienced, skeptical of marketing fluff, and want practical information.

Writing style guidelines:
- Be MEASURED over absolute. Use qualifiers like "may," "can," "typically" rather than absolutist claims
- Be CONCISE over comprehensive. Every sentence must earn its place
- Be ACTIONABLE over academic. Focus on what practitioners can do, not just what they should know
- Be RESPECTFUL of operational complexity. Never second-guess operators who face difficult situations
- NO em dashes. Use semicolons, colons, or commas instead
- NO marketing buzzwords or hype language
- Lead with the PROBLEM operators face, then the solution
- Include specific measurements and specs when available
- Write conversationally, like talking to a fellow operator
- Keep it professional but not stiff`, name)
}

// sectionPrompt builds the per-section JSON-schema instruction plus the
// source-material context block.
func sectionPrompt(t models.SectionType, scraped, supplemental *scrape.Result, guidance, inputContent string) string {
	var guidanceText string
	if strings.TrimSpace(guidance) != "" {
		guidanceText = fmt.Sprintf("\n\nEDITOR'S GUIDANCE: %s\nUse this to shape your writing.", guidance)
	}

	context := buildContext(scraped, supplemental, inputContent)

	switch t {
	case models.SectionFeature, models.SectionNewProduct:
		return context + guidanceText + `

Write content for a PRODUCT SECTION. Return a JSON object with this exact structure (no markdown, just valid JSON):

{
    "tagline": "Product Name: One compelling benefit statement",
    "problem": "2-3 sentences describing the challenge operators face. Make it relatable and specific.",
    "solution": "2-3 sentences explaining how this product addresses that problem.",
    "features": [
        {"name": "Feature Name", "description": "Why this matters to operators"},
        {"name": "Feature Name", "description": "Why this matters to operators"},
        {"name": "Feature Name", "description": "Why this matters to operators"}
    ],
    "why_it_matters": "A strong closing statement about operational impact.",
    "specs": "Brief technical specifications in one line."
}

Remember: Lead with problems, be specific, no marketing fluff. Return ONLY the JSON object.`

	case models.SectionOpening:
		return context + guidanceText + `

Write content for the OPENING SECTION of the newsletter. This introduces what's in this issue and hooks the reader.

Return a JSON object with this exact structure (no markdown, just valid JSON):

{
    "hook": "A bold, attention-grabbing first line that starts with a problem or compelling statement. 1-2 sentences max.",
    "overview": "Brief preview of what's covered in this issue. 2-3 sentences that create anticipation without giving everything away."
}

Make the hook punchy and problem-focused. The overview should tease value. Return ONLY the JSON object.`

	case models.SectionDetails:
		return context + guidanceText + `

Write content for a "DETAILS MATTER" section. This is a technical deep-dive on a specific topic, feature, or design decision.

Return a JSON object with this exact structure (no markdown, just valid JSON):

{
    "title": "Short topic title (e.g., 'Radio Channel Routing', 'Thread Count', 'Buckle Design')",
    "subtitle": "A hook that explains why this detail matters (1 sentence)",
    "content": "The main explanation. 2-3 paragraphs explaining the technical detail, why it was designed this way, and what difference it makes operationally. Be specific with numbers and comparisons.",
    "closing": "A memorable closing line in italics style. Format: 'Small detail. Big difference when...' or similar."
}

Focus on ONE specific detail. Make it educational but practical. Return ONLY the JSON object.`

	case models.SectionHowTo:
		return context + guidanceText + `

Write content for a "HOW-TO" section. This provides practical, actionable guidance operators can use.

Return a JSON object with this exact structure (no markdown, just valid JSON):

{
    "title": "Action-oriented title (e.g., 'Properly Size Your Plate Carrier', 'Break In New Boots')",
    "intro": "1-2 sentences setting up why this matters and what they'll learn.",
    "subsections": [
        {
            "heading": "Step or category heading",
            "items": ["Specific actionable item 1", "Specific actionable item 2", "Specific actionable item 3"]
        },
        {
            "heading": "Another step or category",
            "items": ["Item 1", "Item 2"]
        }
    ],
    "key_principle": "A memorable takeaway principle or tip that ties it together."
}

Keep items specific and actionable, not vague. Return ONLY the JSON object.`

	case models.SectionEvent:
		return context + guidanceText + `

Write content for an EVENT ANNOUNCEMENT section.

Return a JSON object with this exact structure (no markdown, just valid JSON):

{
    "headline": "Section headline (e.g., 'See Us', 'On the Road', 'Meet the Team')",
    "event_name": "Name of the event or trade show",
    "dates": "Event dates (e.g., 'January 20-23, 2025')",
    "location": "City, State or venue name",
    "description": "1-2 sentences about what attendees can expect. Mention booth number if known, demos, new products to see.",
    "closing": "Call to action or invitation (e.g., 'Stop by booth 2847. First responders: coffee's on us.')"
}

Keep it informative but inviting. Return ONLY the JSON object.`

	case models.SectionWrapup:
		return context + guidanceText + `

Write content for the CLOSING/WRAP-UP section of the newsletter.

Return a JSON object with this exact structure (no markdown, just valid JSON):

{
    "title": "Closing section title (e.g., 'What's Next', 'Coming Up', 'Until Next Time')",
    "next_month_preview": "1-2 sentences teasing what's coming in the next issue. Create anticipation.",
    "cta_text": "A friendly call-to-action inviting engagement (e.g., 'Questions about anything we covered? Hit reply. We read every message.')"
}

Keep it brief and forward-looking. Return ONLY the JSON object.`
	}

	return context + guidanceText + `

Write compelling newsletter content based on the above information.

Return a JSON object with relevant fields for the content. Return ONLY valid JSON.`
}

func buildContext(scraped, supplemental *scrape.Result, inputContent string) string {
	if scraped == nil {
		if inputContent != "" {
			return "\nINPUT CONTENT:\n" + inputContent + "\n"
		}
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nSOURCE CONTENT (from %s):\n\n", scraped.URL)
	fmt.Fprintf(&b, "Title: %s\n", scraped.Title)
	fmt.Fprintf(&b, "Description: %s\n\n", scraped.Description)
	fmt.Fprintf(&b, "Main Content:\n%s\n\n", head(scraped.MainContent, 2500))
	b.WriteString("Features/Bullets:\n")
	for _, f := range limit(scraped.Features, 10) {
		b.WriteString("- " + f + "\n")
	}
	b.WriteString("\nSpecs:\n")
	for _, s := range limit(scraped.Specs, 10) {
		b.WriteString("- " + s + "\n")
	}

	if supplemental != nil {
		fmt.Fprintf(&b, "\nADDITIONAL REFERENCE (from %s):\n", supplemental.URL)
		b.WriteString(head(supplemental.MainContent, 1500) + "\n")
		b.WriteString("Features:\n")
		for _, f := range limit(supplemental.Features, 8) {
			b.WriteString("- " + f + "\n")
		}
	}

	return b.String()
}

func head(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func limit[T any](items []T, max int) []T {
	if len(items) <= max {
		return items
	}
	return items[:max]
}
