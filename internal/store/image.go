package store

import (
	"database/sql"
	"fmt"

	"brandpress/internal/models"
)

// ImageStore records uploaded image metadata. The bytes themselves live
// on disk or in S3; Filepath points at whichever backend took them.
type ImageStore struct {
	db *sql.DB
}

// NewImageStore creates a new ImageStore with the given database connection.
func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

// Create inserts an image record and returns its id.
func (s *ImageStore) Create(img *models.Image) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO images (newsletter_id, section_id, filename, original_filename, filepath, url)
		VALUES (?, ?, ?, ?, ?, ?)
	`, img.NewsletterID, img.SectionID, img.Filename, img.OriginalFilename, img.Filepath, img.URL)
	if err != nil {
		return 0, fmt.Errorf("create image: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create image: last insert id: %w", err)
	}
	return id, nil
}

// ListByNewsletter returns all images uploaded for a newsletter, newest first.
func (s *ImageStore) ListByNewsletter(newsletterID int64) ([]models.Image, error) {
	rows, err := s.db.Query(`
		SELECT id, newsletter_id, section_id, filename, original_filename,
		       filepath, COALESCE(url, ''), created_at
		FROM images
		WHERE newsletter_id = ?
		ORDER BY created_at DESC
	`, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var items []models.Image
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(
			&img.ID, &img.NewsletterID, &img.SectionID, &img.Filename,
			&img.OriginalFilename, &img.Filepath, &img.URL, &img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		items = append(items, img)
	}
	return items, rows.Err()
}

// FindByID retrieves an image record. Returns nil if not found.
func (s *ImageStore) FindByID(id int64) (*models.Image, error) {
	img := &models.Image{}
	err := s.db.QueryRow(`
		SELECT id, newsletter_id, section_id, filename, original_filename,
		       filepath, COALESCE(url, ''), created_at
		FROM images WHERE id = ?
	`, id).Scan(
		&img.ID, &img.NewsletterID, &img.SectionID, &img.Filename,
		&img.OriginalFilename, &img.Filepath, &img.URL, &img.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find image by id: %w", err)
	}
	return img, nil
}
