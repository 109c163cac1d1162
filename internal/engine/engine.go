// Package engine renders newsletters and eblasts to standalone,
// email-client-safe HTML. The markup is table-layout with inline styles
// only, built from embedded per-section template fragments compiled once
// at startup. Sections with no usable content render to nothing rather
// than emitting empty scaffolding.
package engine

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"brandpress/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Variant selects the export flavor. The website variant drops the
// footer section (the hosting page carries its own).
type Variant string

const (
	VariantEmail   Variant = "email"
	VariantWebsite Variant = "website"
)

// Placeholder URLs stamped into the footer for the ESP to replace.
const (
	placeholderPreferences = "YOUR_PREFERENCES_URL"
	placeholderUnsubscribe = "YOUR_UNSUBSCRIBE_URL"
)

// Engine holds the compiled section templates.
type Engine struct {
	tmpl *template.Template
}

// New parses the embedded templates. Call once at boot.
func New() (*Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("engine: parse templates: %w", err)
	}
	return &Engine{tmpl: tmpl}, nil
}

// RenderNewsletter produces the complete HTML document for a newsletter.
// Sections must already be filtered to enabled ones, in display order.
func (e *Engine) RenderNewsletter(n *models.Newsletter, sections []models.Section, brand models.BrandConfig, variant Variant) (string, error) {
	var parts []template.HTML
	for _, sec := range sections {
		if variant == VariantWebsite && sec.Type == models.SectionFooter {
			continue
		}
		content, err := models.DecodeContent(sec.Type, sec.Content)
		if err != nil {
			return "", fmt.Errorf("engine: section %d: %w", sec.ID, err)
		}
		html, err := e.renderSection(sec.Type, content, n, brand)
		if err != nil {
			return "", fmt.Errorf("engine: section %d: %w", sec.ID, err)
		}
		if html != "" {
			parts = append(parts, template.HTML(html))
		}
	}

	name := brand.NewsletterName
	if name == "" {
		name = "Newsletter"
	}
	title := fmt.Sprintf("%s - %s %d", name, n.Month, n.Year)
	return e.renderDocument(title, brand, parts)
}

// RenderEblast produces the complete HTML document for an eblast.
func (e *Engine) RenderEblast(eb *models.Eblast, sections []models.EblastSection, brand models.BrandConfig) (string, error) {
	var parts []template.HTML
	for _, sec := range sections {
		content, err := models.DecodeContent(sec.Type, sec.Content)
		if err != nil {
			return "", fmt.Errorf("engine: eblast section %d: %w", sec.ID, err)
		}
		html, err := e.renderSection(sec.Type, content, nil, brand)
		if err != nil {
			return "", fmt.Errorf("engine: eblast section %d: %w", sec.ID, err)
		}
		if html != "" {
			parts = append(parts, template.HTML(html))
		}
	}
	return e.renderDocument(eb.Title, brand, parts)
}

func (e *Engine) renderDocument(title string, brand models.BrandConfig, sections []template.HTML) (string, error) {
	family := brand.Fonts.Family
	if family == "" {
		family = "Arial, Helvetica, sans-serif"
	}
	// Conditional comments would be stripped by the template parser, so
	// the Outlook font override is assembled here.
	mso := template.HTML(fmt.Sprintf(
		"<!--[if mso]>\n    <style type=\"text/css\">\n        body, table, td {font-family: %s !important;}\n    </style>\n    <![endif]-->", family))

	data := struct {
		Title      string
		FontFamily template.CSS
		MSOStyle   template.HTML
		Sections   []template.HTML
	}{title, template.CSS(family), mso, sections}

	var b strings.Builder
	if err := e.tmpl.ExecuteTemplate(&b, "document.tmpl", data); err != nil {
		return "", fmt.Errorf("engine: render document: %w", err)
	}
	return b.String(), nil
}

// renderSection dispatches on the decoded content type. It returns ""
// when the section suppresses itself (missing required fields).
func (e *Engine) renderSection(t models.SectionType, content models.SectionContent, n *models.Newsletter, brand models.BrandConfig) (string, error) {
	switch c := content.(type) {
	case models.HeaderContent:
		return e.exec("header.tmpl", headerData(c, brand))
	case models.TitleContent:
		return e.exec("title.tmpl", titleData(c, n, brand))
	case models.OpeningContent:
		if c.Hook == "" && c.Overview == "" {
			return "", nil
		}
		return e.exec("opening.tmpl", openingData(c, brand))
	case models.ProductContent:
		if c.Title == "" && c.Tagline == "" {
			return "", nil
		}
		return e.exec("product.tmpl", productData(t, c, brand))
	case models.DetailsContent:
		if c.Title == "" {
			return "", nil
		}
		return e.exec("details.tmpl", detailsData(c, brand))
	case models.HowToContent:
		if c.Title == "" {
			return "", nil
		}
		return e.exec("howto.tmpl", howtoData(c, brand))
	case models.EventContent:
		events := namedEvents(c.Events)
		if len(events) == 0 {
			return "", nil
		}
		return e.exec("event.tmpl", eventData(c, events, brand))
	case models.WrapupContent:
		return e.exec("wrapup.tmpl", wrapupData(c, brand))
	case models.FooterContent:
		return e.exec("footer.tmpl", footerData(c, brand))
	case models.HeroContent:
		return e.exec("hero.tmpl", heroData(c, brand))
	case models.BodyContent:
		return e.exec("body.tmpl", bodyData(c, brand))
	}
	return "", fmt.Errorf("engine: no template for section type %q", t)
}

func (e *Engine) exec(name string, data any) (string, error) {
	var b strings.Builder
	if err := e.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func namedEvents(events []models.Event) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if strings.TrimSpace(ev.EventName) != "" {
			out = append(out, ev)
		}
	}
	return out
}
