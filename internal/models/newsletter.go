package models

import "time"

// Status values for newsletters and eblasts. Only "draft" is assigned by
// the application today; the column is free-form text for future states.
const (
	StatusDraft = "draft"
)

// Newsletter is one monthly issue for a brand. It owns an ordered set of
// Sections (one per SectionType, created at insert time) and any uploaded
// Images. BrandName and BrandSlug are populated by join queries.
type Newsletter struct {
	ID        int64     `json:"id"`
	BrandID   int64     `json:"brand_id"`
	Title     string    `json:"title"`
	Month     string    `json:"month"`
	Year      int       `json:"year"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BrandName string `json:"brand_name,omitempty"`
	BrandSlug string `json:"brand_slug,omitempty"`
}

// Eblast is a single promotional email. Same ownership model as a
// Newsletter but with the simpler eblast section set.
type Eblast struct {
	ID          int64     `json:"id"`
	BrandID     int64     `json:"brand_id"`
	Title       string    `json:"title"`
	SubjectLine string    `json:"subject_line"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	BrandName string `json:"brand_name,omitempty"`
	BrandSlug string `json:"brand_slug,omitempty"`
}

// Image records an uploaded file. Filepath is the local path or S3 key
// depending on which storage backend took the upload.
type Image struct {
	ID               int64     `json:"id"`
	NewsletterID     *int64    `json:"newsletter_id,omitempty"`
	SectionID        *int64    `json:"section_id,omitempty"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	Filepath         string    `json:"filepath"`
	URL              string    `json:"url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
