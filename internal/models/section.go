package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SectionType enumerates the newsletter content blocks. The set is closed:
// every newsletter is created with exactly one section per type, in the
// order listed by SectionTypes.
type SectionType string

const (
	SectionHeader     SectionType = "header"
	SectionTitle      SectionType = "title"
	SectionOpening    SectionType = "opening"
	SectionFeature    SectionType = "feature"
	SectionNewProduct SectionType = "new_product"
	SectionDetails    SectionType = "details"
	SectionHowTo      SectionType = "howto"
	SectionEvent      SectionType = "event"
	SectionWrapup     SectionType = "wrapup"
	SectionFooter     SectionType = "footer"
)

// SectionTypeInfo describes one entry in the section library shown in the
// editor sidebar. Required sections start enabled and cannot be removed.
type SectionTypeInfo struct {
	Type        SectionType `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
}

// SectionTypes lists the newsletter section library in render order.
var SectionTypes = []SectionTypeInfo{
	{SectionHeader, "Header", "Logo and branding header", true},
	{SectionTitle, "Title Bar", "Newsletter name and date", true},
	{SectionOpening, "Opening Hook", "Introduction and overview", false},
	{SectionFeature, "Featured Product", "Main product spotlight", false},
	{SectionNewProduct, "New Product", "Secondary product highlight", false},
	{SectionDetails, "Details Matter", "Technical deep-dive", false},
	{SectionHowTo, "How-To", "Practical guidance section", false},
	{SectionEvent, "See Us / Events", "Event announcements", false},
	{SectionWrapup, "Wrap Up", "Closing and next month preview", false},
	{SectionFooter, "Footer", "Links and unsubscribe", true},
}

// EblastSectionTypes lists the simpler eblast section library.
var EblastSectionTypes = []SectionTypeInfo{
	{SectionHeader, "Header", "Logo and branding header", true},
	{EblastHero, "Hero Section", "Main image and headline", true},
	{EblastBody, "Body Content", "Main message and call-to-action", true},
	{SectionFooter, "Footer", "Links and unsubscribe", true},
}

// Eblast-only section types.
const (
	EblastHero SectionType = "hero"
	EblastBody SectionType = "body"
)

// Section is one content block within a newsletter. Order indices are
// unique per newsletter and assigned at creation; Content holds the stored
// JSON blob for the section's type.
type Section struct {
	ID           int64           `json:"id"`
	NewsletterID int64           `json:"newsletter_id"`
	Type         SectionType     `json:"section_type"`
	Order        int             `json:"section_order"`
	Enabled      bool            `json:"enabled"`
	Content      json.RawMessage `json:"content"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// EblastSection mirrors Section for eblasts.
type EblastSection struct {
	ID        int64           `json:"id"`
	EblastID  int64           `json:"eblast_id"`
	Type      SectionType     `json:"section_type"`
	Order     int             `json:"section_order"`
	Enabled   bool            `json:"enabled"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SectionContent is the closed set of per-type content shapes. The
// renderer switches exhaustively over the concrete types.
type SectionContent interface {
	isSectionContent()
}

// Overrides carries fields shared by every section content shape.
type Overrides struct {
	BgColorOverride string `json:"bg_color_override,omitempty"`
}

// CTA is one call-to-action button on a product section.
type CTA struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ProductFeature is one named bullet in a product section's feature column.
type ProductFeature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Event is one entry in an event section.
type Event struct {
	EventName   string `json:"event_name"`
	Dates       string `json:"dates"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// HowToSubsection is one heading-plus-items block in a how-to section.
type HowToSubsection struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// HeaderContent is the logo banner. An empty LogoURL falls back to the brand's.
type HeaderContent struct {
	Overrides
	LogoURL string `json:"logo_url"`
}

// TitleContent is the "Newsletter Name &ndash; Month Year" bar. Empty
// fields fall
// back to the brand config and the owning newsletter's month/year.
type TitleContent struct {
	Overrides
	NewsletterName string `json:"newsletter_name"`
	Month          string `json:"month"`
	Year           string `json:"year"`
}

// OpeningContent holds the issue's hook and overview paragraphs.
type OpeningContent struct {
	Overrides
	Hook     string `json:"hook"`
	Overview string `json:"overview"`
	ImageURL string `json:"image_url"`
	ImageAlt string `json:"image_alt"`
}

// ProductContent backs both the feature and new_product sections. Legacy
// single-CTA blobs (cta_text/cta_url) are upgraded into CTAs by
// DecodeContent; the renderer never sees the legacy fields.
type ProductContent struct {
	Overrides
	Title          string           `json:"title"`
	Tagline        string           `json:"tagline"`
	ImageURL       string           `json:"image_url"`
	ImageAlt       string           `json:"image_alt"`
	Problem        string           `json:"problem"`
	Solution       string           `json:"solution"`
	Features       []ProductFeature `json:"features"`
	ViewportDetail string           `json:"viewport_detail,omitempty"`
	WhyItMatters   string           `json:"why_it_matters"`
	Specs          string           `json:"specs"`
	CTACount       int              `json:"cta_count"`
	CTAs           []CTA            `json:"ctas"`

	// Legacy single-CTA shape, kept only for decoding older blobs.
	LegacyCTAText string `json:"cta_text,omitempty"`
	LegacyCTAURL  string `json:"cta_url,omitempty"`
}

// DetailsContent is the "Details Matter" technical deep-dive.
type DetailsContent struct {
	Overrides
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	ImageAlt string `json:"image_alt"`
	Content  string `json:"content"`
	Closing  string `json:"closing"`
}

// HowToContent is practical guidance with subsectioned bullet lists.
type HowToContent struct {
	Overrides
	Title        string            `json:"title"`
	ImageURL     string            `json:"image_url"`
	ImageAlt     string            `json:"image_alt"`
	Intro        string            `json:"intro"`
	Subsections  []HowToSubsection `json:"subsections"`
	KeyPrinciple string            `json:"key_principle"`
}

// EventContent is one or more event announcements. Legacy single-event
// blobs (top-level event_name/dates/location/description) are upgraded
// into Events by DecodeContent.
type EventContent struct {
	Overrides
	Headline   string  `json:"headline"`
	ImageURL   string  `json:"image_url"`
	ImageAlt   string  `json:"image_alt"`
	EventCount int     `json:"event_count"`
	Events     []Event `json:"events"`
	Closing    string  `json:"closing"`

	// Legacy single-event shape.
	LegacyEventName   string `json:"event_name,omitempty"`
	LegacyDates       string `json:"dates,omitempty"`
	LegacyLocation    string `json:"location,omitempty"`
	LegacyDescription string `json:"description,omitempty"`
}

// WrapupContent is the closing section.
type WrapupContent struct {
	Overrides
	Title            string `json:"title"`
	NextMonthPreview string `json:"next_month_preview"`
	CTAText          string `json:"cta_text"`
	Signature        string `json:"signature"`
	ImageURL         string `json:"image_url"`
	ImageAlt         string `json:"image_alt"`
}

// FooterContent holds the tagline, link row, and unsubscribe line. Empty
// URL fields fall
// back to brand config values or ESP merge-tag placeholders.
type FooterContent struct {
	Overrides
	Tagline        string `json:"tagline"`
	WebsiteURL     string `json:"website_url"`
	ContactURL     string `json:"contact_url"`
	PreferencesURL string `json:"preferences_url"`
	UnsubscribeURL string `json:"unsubscribe_url"`
}

// HeroContent is the eblast hero block.
type HeroContent struct {
	Overrides
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	ImageURL    string `json:"image_url"`
	ImageAlt    string `json:"image_alt"`
}

// BodyContent is the eblast main message with a single optional CTA.
type BodyContent struct {
	Overrides
	ImageURL string `json:"image_url"`
	ImageAlt string `json:"image_alt"`
	Content  string `json:"content"`
	CTAText  string `json:"cta_text"`
	CTAURL   string `json:"cta_url"`
}

func (HeaderContent) isSectionContent()  {}
func (TitleContent) isSectionContent()   {}
func (OpeningContent) isSectionContent() {}
func (ProductContent) isSectionContent() {}
func (DetailsContent) isSectionContent() {}
func (HowToContent) isSectionContent()   {}
func (EventContent) isSectionContent()   {}
func (WrapupContent) isSectionContent()  {}
func (FooterContent) isSectionContent()  {}
func (HeroContent) isSectionContent()    {}
func (BodyContent) isSectionContent()    {}

// DecodeContent unmarshals a stored content blob into the typed variant
// for the given section type, applying the one-time legacy-shape upgrade
// so callers only ever see the current schema.
func DecodeContent(t SectionType, raw []byte) (SectionContent, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch t {
	case SectionHeader:
		var c HeaderContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	case SectionTitle:
		var c TitleContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	case SectionOpening:
		var c OpeningContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	case SectionFeature, SectionNewProduct:
		// cta_count defaults to 1 when absent; an explicit 0 still
		// suppresses the button.
		c := ProductContent{CTACount: 1}
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		c.upgradeLegacyCTA()
		return c, nil
	case SectionDetails:
		var c DetailsContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	case SectionHowTo:
		var c HowToContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	case SectionEvent:
		var c EventContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		c.upgradeLegacyEvent()
		return c, nil
	case SectionWrapup:
		var c WrapupContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	case SectionFooter:
		var c FooterContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	case EblastHero:
		var c HeroContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	case EblastBody:
		var c BodyContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("decode content: unknown section type %q", t)
}

// upgradeLegacyCTA converts the old single cta_text/cta_url pair into the
// CTAs list when no list is present. Blobs saved before the multi-CTA
// editor shipped keep rendering with exactly one button.
func (c *ProductContent) upgradeLegacyCTA() {
	if len(c.CTAs) == 0 && (c.LegacyCTAText != "" || c.LegacyCTAURL != "") {
		text := c.LegacyCTAText
		if text == "" {
			text = "Learn More"
		}
		url := c.LegacyCTAURL
		if url == "" {
			url = "#"
		}
		c.CTAs = []CTA{{Text: text, URL: url}}
		c.CTACount = 1
	}
	c.LegacyCTAText = ""
	c.LegacyCTAURL = ""
}

// upgradeLegacyEvent converts old single-event fields into the Events list,
// then drops entries without a name so the renderer can suppress cleanly.
func (c *EventContent) upgradeLegacyEvent() {
	if len(c.Events) == 0 && c.LegacyEventName != "" {
		c.Events = []Event{{
			EventName:   c.LegacyEventName,
			Dates:       c.LegacyDates,
			Location:    c.LegacyLocation,
			Description: c.LegacyDescription,
		}}
		c.EventCount = 1
	}
	c.LegacyEventName = ""
	c.LegacyDates = ""
	c.LegacyLocation = ""
	c.LegacyDescription = ""
}

// DefaultContent returns the empty-field content blob inserted when a
// newsletter section of the given type is created.
func DefaultContent(t SectionType) SectionContent {
	switch t {
	case SectionHeader:
		return HeaderContent{}
	case SectionTitle:
		return TitleContent{}
	case SectionOpening:
		return OpeningContent{}
	case SectionFeature, SectionNewProduct:
		return ProductContent{
			Features: []ProductFeature{},
			CTACount: 1,
			CTAs:     []CTA{{}},
		}
	case SectionDetails:
		return DetailsContent{}
	case SectionHowTo:
		return HowToContent{Subsections: []HowToSubsection{}}
	case SectionEvent:
		return EventContent{EventCount: 1, Events: []Event{{}}}
	case SectionWrapup:
		return WrapupContent{}
	case SectionFooter:
		return FooterContent{}
	case EblastHero:
		return HeroContent{}
	case EblastBody:
		return BodyContent{}
	}
	return nil
}

// EncodeContent marshals a content variant back to its stored JSON form.
func EncodeContent(c SectionContent) (json.RawMessage, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode section content: %w", err)
	}
	return raw, nil
}
