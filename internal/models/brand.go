// Package models defines the data model: brands, newsletters, eblasts,
// their content sections, and uploaded images. Section content is a closed
// set of typed variants, one per section kind; the stored JSON is decoded
// through DecodeContent which also upgrades legacy field shapes.
package models

import "time"

// Brand identifies one of the seeded brand profiles. The config blob is
// immutable after seeding; everything downstream treats it as read-only.
type Brand struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"` // slug, e.g. "project7"
	DisplayName string      `json:"display_name"`
	Config      BrandConfig `json:"config"`
	CreatedAt   time.Time   `json:"created_at"`
}

// BrandConfig holds a brand's design tokens: colors, fonts, logo and link
// URLs, and the copy strings stamped into every rendered document.
type BrandConfig struct {
	Colors         map[string]string `json:"colors"`
	Fonts          FontConfig        `json:"fonts"`
	LogoURL        string            `json:"logo_url"`
	IconURL        string            `json:"icon_url,omitempty"`
	IconDarkURL    string            `json:"icon_dark_url,omitempty"`
	UseIconHeader  bool              `json:"use_icon_header,omitempty"`
	WebsiteURL     string            `json:"website_url"`
	ContactURL     string            `json:"contact_url"`
	NewsletterName string            `json:"newsletter_name"`
	Tagline        string            `json:"tagline"`
	Signature      string            `json:"signature"`
}

// FontConfig carries the email-safe font stack and the size scale.
type FontConfig struct {
	Family        string   `json:"family"`
	BrandFonts    []string `json:"brand_fonts,omitempty"`
	BrandFont     string   `json:"brand_font,omitempty"`
	BodySize      string   `json:"body_size"`
	HeaderSize    string   `json:"header_size"`
	SubheaderSize string   `json:"subheader_size"`
	SmallSize     string   `json:"small_size"`
}

// Color returns the named color, or fallback if the palette doesn't
// define it. The renderer leans on this for optional palette entries.
func (c BrandConfig) Color(name, fallback string) string {
	if v, ok := c.Colors[name]; ok && v != "" {
		return v
	}
	return fallback
}

// HeaderLogo returns the logo URL and pixel width for the header section,
// honoring the use_icon_header flag (icon brands render a smaller mark).
func (c BrandConfig) HeaderLogo() (url string, width int) {
	if c.UseIconHeader && c.IconURL != "" {
		return c.IconURL, 120
	}
	return c.LogoURL, 240
}
