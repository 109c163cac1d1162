package engine

import (
	"html/template"
	"strconv"
	"strings"

	"brandpress/internal/models"
)

// palette resolves brand colors with sane fallbacks so a sparse config
// still renders.
type palette struct {
	brand models.BrandConfig
}

func (p palette) css(name, fallback string) template.CSS {
	return template.CSS(p.brand.Color(name, fallback))
}

// bgColor honors a per-section override when it looks like a hex color.
func bgColor(override string, fallback template.CSS) template.CSS {
	if strings.HasPrefix(override, "#") {
		return template.CSS(override)
	}
	return fallback
}

// imageBlock is the optional full-width image table shared by most
// sections. Nil means no image.
type imageBlock struct {
	URL     string
	Alt     string
	Padding template.CSS
}

func image(url, alt, padding string) *imageBlock {
	if url == "" {
		return nil
	}
	return &imageBlock{URL: url, Alt: alt, Padding: template.CSS(padding)}
}

type headerVars struct {
	BgColor   template.CSS
	LogoURL   string
	LogoWidth int
	Alt       string
}

func headerData(c models.HeaderContent, brand models.BrandConfig) headerVars {
	p := palette{brand}
	url, width := brand.HeaderLogo()
	if c.LogoURL != "" {
		url = c.LogoURL
	}
	alt := brand.NewsletterName
	if alt == "" {
		alt = "Newsletter"
	}
	return headerVars{
		BgColor:   bgColor(c.BgColorOverride, p.css("primary", "#333333")),
		LogoURL:   url,
		LogoWidth: width,
		Alt:       alt,
	}
}

type titleVars struct {
	BgColor template.CSS
	Primary template.CSS
	Name    string
	Month   string
	Year    string
}

func titleData(c models.TitleContent, n *models.Newsletter, brand models.BrandConfig) titleVars {
	p := palette{brand}
	name := c.NewsletterName
	if name == "" {
		name = brand.NewsletterName
	}
	if name == "" {
		name = "Newsletter"
	}
	month, year := c.Month, c.Year
	if n != nil {
		if month == "" {
			month = n.Month
		}
		if year == "" && n.Year > 0 {
			year = strconv.Itoa(n.Year)
		}
	}
	return titleVars{
		BgColor: bgColor(c.BgColorOverride, p.css("accent", "#cccccc")),
		Primary: p.css("primary", "#333333"),
		Name:    name,
		Month:   month,
		Year:    year,
	}
}

type openingVars struct {
	BgColor  template.CSS
	BodyText template.CSS
	Hook     string
	Overview string
	Image    *imageBlock
}

func openingData(c models.OpeningContent, brand models.BrandConfig) openingVars {
	p := palette{brand}
	return openingVars{
		BgColor:  bgColor(c.BgColorOverride, "#ffffff"),
		BodyText: p.css("body_text", "#333333"),
		Hook:     c.Hook,
		Overview: c.Overview,
		Image:    image(c.ImageURL, c.ImageAlt, "20px 0 0 0"),
	}
}

type ctaCell struct {
	Text  string
	URL   string
	Style template.CSS
}

type productVars struct {
	BgColor   template.CSS
	Primary   template.CSS
	BodyText  template.CSS
	SpecsText template.CSS
	Accent    template.CSS
	Border    template.CSS

	Title    string
	Tagline  string
	Image    *imageBlock
	Problem  string
	Solution string
	Features []models.ProductFeature
	Viewport string
	Why      string
	Specs    string

	SingleCTA *ctaCell
	MultiCTAs []ctaCell
}

func productData(t models.SectionType, c models.ProductContent, brand models.BrandConfig) productVars {
	p := palette{brand}

	// Feature rides on white, new_product on the alternating band color.
	defaultBg := template.CSS("#ffffff")
	if t == models.SectionNewProduct {
		defaultBg = p.css("secondary_bg", "#f4f4f4")
	}

	ctas := c.CTAs
	if c.CTACount > 0 && len(ctas) == 0 {
		ctas = []models.CTA{{Text: "Learn More", URL: "#"}}
	}

	v := productVars{
		BgColor:   bgColor(c.BgColorOverride, defaultBg),
		Primary:   p.css("primary", "#333333"),
		BodyText:  p.css("body_text", "#333333"),
		SpecsText: p.css("specs_text", "#666666"),
		Accent:    p.css("accent", "#cccccc"),
		Border:    p.css("border", "#e0e0e0"),
		Title:     c.Title,
		Tagline:   c.Tagline,
		Image:     image(c.ImageURL, c.ImageAlt, "0 0 20px 0"),
		Problem:   c.Problem,
		Solution:  c.Solution,
		Features:  c.Features,
		Viewport:  c.ViewportDetail,
		Why:       c.WhyItMatters,
		Specs:     c.Specs,
	}

	if len(ctas) == 1 {
		cell := buildCTA(ctas[0], "")
		v.SingleCTA = &cell
	} else if len(ctas) > 1 {
		spacing := "5px"
		if len(ctas) == 2 {
			spacing = "10px"
		}
		for i, cta := range ctas {
			var style string
			if i > 0 {
				style = "padding-left: " + spacing + ";"
			}
			if i < len(ctas)-1 {
				style += " padding-right: " + spacing + ";"
			}
			v.MultiCTAs = append(v.MultiCTAs, buildCTA(cta, style))
		}
	}
	return v
}

func buildCTA(c models.CTA, style string) ctaCell {
	text := c.Text
	if text == "" {
		text = "Learn More"
	}
	url := c.URL
	if url == "" {
		url = "#"
	}
	return ctaCell{Text: text, URL: url, Style: template.CSS(strings.TrimSpace(style))}
}

type detailsVars struct {
	BgColor  template.CSS
	Primary  template.CSS
	BodyText template.CSS
	Title    string
	Subtitle string
	Image    *imageBlock
	Body     string
	Closing  string
}

func detailsData(c models.DetailsContent, brand models.BrandConfig) detailsVars {
	p := palette{brand}
	return detailsVars{
		BgColor:  bgColor(c.BgColorOverride, p.css("detail_bg", "#f4f4f4")),
		Primary:  p.css("primary", "#333333"),
		BodyText: p.css("body_text", "#333333"),
		Title:    c.Title,
		Subtitle: c.Subtitle,
		Image:    image(c.ImageURL, c.ImageAlt, "0 0 20px 0"),
		Body:     c.Content,
		Closing:  c.Closing,
	}
}

type howtoVars struct {
	BgColor      template.CSS
	Primary      template.CSS
	BodyText     template.CSS
	Title        string
	Image        *imageBlock
	Intro        string
	Subsections  []models.HowToSubsection
	KeyPrinciple string
}

func howtoData(c models.HowToContent, brand models.BrandConfig) howtoVars {
	p := palette{brand}
	return howtoVars{
		BgColor:      bgColor(c.BgColorOverride, p.css("secondary_bg", "#f4f4f4")),
		Primary:      p.css("primary", "#333333"),
		BodyText:     p.css("body_text", "#333333"),
		Title:        c.Title,
		Image:        image(c.ImageURL, c.ImageAlt, "0 0 20px 0"),
		Intro:        c.Intro,
		Subsections:  c.Subsections,
		KeyPrinciple: c.KeyPrinciple,
	}
}

type eventVars struct {
	BgColor    template.CSS
	Primary    template.CSS
	DarkAccent template.CSS
	Headline   string
	Image      *imageBlock
	Events     []models.Event
	Closing    string
}

func eventData(c models.EventContent, events []models.Event, brand models.BrandConfig) eventVars {
	p := palette{brand}
	return eventVars{
		BgColor:    bgColor(c.BgColorOverride, p.css("accent", "#cccccc")),
		Primary:    p.css("primary", "#333333"),
		DarkAccent: p.css("dark_accent", "#333333"),
		Headline:   c.Headline,
		Image:      image(c.ImageURL, c.ImageAlt, "0 0 20px 0"),
		Events:     events,
		Closing:    c.Closing,
	}
}

type wrapupVars struct {
	BgColor   template.CSS
	Primary   template.CSS
	BodyText  template.CSS
	Title     string
	Image     *imageBlock
	Preview   string
	CTA       string
	Signature string
}

func wrapupData(c models.WrapupContent, brand models.BrandConfig) wrapupVars {
	p := palette{brand}
	cta := c.CTAText
	if cta == "" {
		cta = "Questions about anything we covered? Hit reply. We read every message."
	}
	signature := c.Signature
	if signature == "" {
		signature = brand.Signature
	}
	return wrapupVars{
		BgColor:   bgColor(c.BgColorOverride, "#ffffff"),
		Primary:   p.css("primary", "#333333"),
		BodyText:  p.css("body_text", "#333333"),
		Title:     c.Title,
		Image:     image(c.ImageURL, c.ImageAlt, "0 0 20px 0"),
		Preview:   c.NextMonthPreview,
		CTA:       cta,
		Signature: signature,
	}
}

type footerVars struct {
	BgColor     template.CSS
	FooterText  template.CSS
	FooterMuted template.CSS
	Accent      template.CSS
	Tagline     string
	Website     string
	Contact     string
	Preferences string
	Unsubscribe string
}

func footerData(c models.FooterContent, brand models.BrandConfig) footerVars {
	p := palette{brand}
	return footerVars{
		BgColor:     bgColor(c.BgColorOverride, p.css("primary", "#333333")),
		FooterText:  p.css("footer_text", "#cccccc"),
		FooterMuted: p.css("footer_muted", "#999999"),
		Accent:      p.css("accent", "#cccccc"),
		Tagline:     fallback(c.Tagline, brand.Tagline),
		Website:     fallback(c.WebsiteURL, brand.WebsiteURL, "#"),
		Contact:     fallback(c.ContactURL, brand.ContactURL, "#"),
		Preferences: fallback(c.PreferencesURL, placeholderPreferences),
		Unsubscribe: fallback(c.UnsubscribeURL, placeholderUnsubscribe),
	}
}

type heroVars struct {
	BgColor     template.CSS
	Primary     template.CSS
	BodyText    template.CSS
	Headline    string
	Subheadline string
	ImageURL    string
	ImageAlt    string
}

func heroData(c models.HeroContent, brand models.BrandConfig) heroVars {
	p := palette{brand}
	return heroVars{
		BgColor:     bgColor(c.BgColorOverride, "#ffffff"),
		Primary:     p.css("primary", "#333333"),
		BodyText:    p.css("body_text", "#333333"),
		Headline:    c.Headline,
		Subheadline: c.Subheadline,
		ImageURL:    c.ImageURL,
		ImageAlt:    c.ImageAlt,
	}
}

type bodyVars struct {
	BgColor  template.CSS
	BodyText template.CSS
	Accent   template.CSS
	Primary  template.CSS
	Image    *imageBlock
	Lines    []string
	CTAText  string
	CTAURL   string
}

func bodyData(c models.BodyContent, brand models.BrandConfig) bodyVars {
	p := palette{brand}
	url := c.CTAURL
	if url == "" {
		url = "#"
	}
	return bodyVars{
		BgColor:  bgColor(c.BgColorOverride, "#ffffff"),
		BodyText: p.css("body_text", "#333333"),
		Accent:   p.css("accent", "#cccccc"),
		Primary:  p.css("primary", "#333333"),
		Image:    image(c.ImageURL, c.ImageAlt, "0 0 20px 0"),
		Lines:    strings.Split(c.Content, "\n"),
		CTAText:  c.CTAText,
		CTAURL:   url,
	}
}

func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

