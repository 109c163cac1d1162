package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"brandpress/internal/models"
)

// Seed inserts the built-in brand profiles. It is a no-op when the brands
// table already has rows, so re-running at every boot is safe.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM brands`).Scan(&count); err != nil {
		return fmt.Errorf("seed count brands: %w", err)
	}
	if count > 0 {
		slog.Info("brands already seeded", "count", count)
		return nil
	}

	for _, b := range DefaultBrands() {
		cfg, err := json.Marshal(b.Config)
		if err != nil {
			return fmt.Errorf("seed marshal %s config: %w", b.Name, err)
		}
		_, err = db.Exec(
			`INSERT INTO brands (name, display_name, config) VALUES (?, ?, ?)`,
			b.Name, b.DisplayName, string(cfg),
		)
		if err != nil {
			return fmt.Errorf("seed insert %s: %w", b.Name, err)
		}
		slog.Info("seeded brand", "name", b.Name)
	}

	return nil
}

// DefaultBrands returns the built-in brand profiles. The home page falls
// back to these when the brands table cannot be read, so the create form
// stays usable while the database is down.
func DefaultBrands() []models.Brand {
	return []models.Brand{
		{ID: 1, Name: "project7", DisplayName: "PROJECT7 Armor", Config: project7Config()},
		{ID: 2, Name: "aardvark", DisplayName: "AARDVARK Tactical", Config: aardvarkConfig()},
	}
}

func project7Config() models.BrandConfig {
	return models.BrandConfig{
		Colors: map[string]string{
			"primary":       "#565C43", // OD Green, headers and footer
			"primary_olive": "#757A4D",
			"primary_black": "#2D2A26",
			"accent":        "#C0D330", // Lime Green
			"cool_grey":     "#76777B",
			"black":         "#000000",
			"secondary_bg":  "#CCCAC2",
			"detail_bg":     "#E6E7E8",
			"warm_grey":     "#9D9D8D",
			"body_text":     "#333333",
			"specs_text":    "#666666",
			"footer_text":   "#CCCAC2",
			"footer_muted":  "#9D9D8D",
			"dark_accent":   "#2D2A26",
			"border":        "#CCCAC2",
		},
		Fonts: models.FontConfig{
			Family:        "Arial, Helvetica, sans-serif",
			BrandFonts:    []string{"United Sans Sm Cd", "Panton Narrow"},
			BodySize:      "16px",
			HeaderSize:    "24px",
			SubheaderSize: "18px",
			SmallSize:     "14px",
		},
		LogoURL:        "https://p7img-20b64.kxcdn.com/web/image/website/2/logo/PROJECT7%20ARMOR?unique=4974767",
		WebsiteURL:     "https://www.project7armor.com",
		ContactURL:     "https://www.project7armor.com/pages/contact-us-helpdesk",
		NewsletterName: "Field Notes",
		Tagline:        "PROJECT7 builds tactical equipment based on operator feedback. We solve specific problems, not everything.",
		Signature:      "—The PROJECT7 Team",
	}
}

func aardvarkConfig() models.BrandConfig {
	return models.BrandConfig{
		Colors: map[string]string{
			"primary":      "#03253E", // DK Blue
			"accent":       "#F3E500", // Yellow
			"slate_blue":   "#4B5E6F",
			"sky_blue":     "#E3E8EE",
			"lt_sky_blue":  "#EAEFF3",
			"lt_beige":     "#DBD8CF",
			"secondary_bg": "#E3E8EE",
			"detail_bg":    "#EAEFF3",
			"body_text":    "#333333",
			"specs_text":   "#4B5E6F",
			"footer_text":  "#E3E8EE",
			"footer_muted": "#4B5E6F",
			"dark_accent":  "#03253E",
			"border":       "#DBD8CF",
		},
		Fonts: models.FontConfig{
			Family:        "Arial, Helvetica, sans-serif",
			BrandFont:     "DIN",
			BodySize:      "16px",
			HeaderSize:    "24px",
			SubheaderSize: "18px",
			SmallSize:     "14px",
		},
		// Delta A icon for the header, full wordmark elsewhere.
		LogoURL:        "https://aardimg-20b64.kxcdn.com/web/image/website/3/logo/AARDVARK?unique=9f3b3b6",
		IconURL:        "https://aardimg-20b64.kxcdn.com/web/image/20063-43070711/02b_aard_logo_notagln_ko_nobckgrnd.png",
		UseIconHeader:  true,
		WebsiteURL:     "https://www.aardvarktactical.com",
		ContactURL:     "https://www.aardvarktactical.com/contactus",
		NewsletterName: "AARD Report",
		Tagline:        "AARDVARK finds, develops, and manufactures purpose-built products that enhance tactical operator safety.",
		Signature:      "—The AARDVARK Team",
	}
}
