package store

import (
	"database/sql"
	"fmt"

	"brandpress/internal/models"
)

// NewsletterStore handles newsletter database operations. Creating a
// newsletter also creates its full default section set in the same
// transaction; deleting one removes its sections and image records.
type NewsletterStore struct {
	db *sql.DB
}

// NewNewsletterStore creates a new NewsletterStore with the given database connection.
func NewNewsletterStore(db *sql.DB) *NewsletterStore {
	return &NewsletterStore{db: db}
}

// List returns all newsletters with their brand name and slug joined in,
// newest first.
func (s *NewsletterStore) List() ([]models.Newsletter, error) {
	rows, err := s.db.Query(`
		SELECT n.id, n.brand_id, n.title, n.month, n.year, n.status,
		       n.created_at, n.updated_at, b.display_name, b.name
		FROM newsletters n
		JOIN brands b ON n.brand_id = b.id
		ORDER BY n.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list newsletters: %w", err)
	}
	defer rows.Close()

	var items []models.Newsletter
	for rows.Next() {
		var n models.Newsletter
		if err := rows.Scan(
			&n.ID, &n.BrandID, &n.Title, &n.Month, &n.Year, &n.Status,
			&n.CreatedAt, &n.UpdatedAt, &n.BrandName, &n.BrandSlug,
		); err != nil {
			return nil, fmt.Errorf("scan newsletter: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// FindByID retrieves a newsletter with brand info joined in. Returns nil
// if not found.
func (s *NewsletterStore) FindByID(id int64) (*models.Newsletter, error) {
	n := &models.Newsletter{}
	err := s.db.QueryRow(`
		SELECT n.id, n.brand_id, n.title, n.month, n.year, n.status,
		       n.created_at, n.updated_at, b.display_name, b.name
		FROM newsletters n
		JOIN brands b ON n.brand_id = b.id
		WHERE n.id = ?
	`, id).Scan(
		&n.ID, &n.BrandID, &n.Title, &n.Month, &n.Year, &n.Status,
		&n.CreatedAt, &n.UpdatedAt, &n.BrandName, &n.BrandSlug,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find newsletter by id: %w", err)
	}
	return n, nil
}

// Create inserts a newsletter and its default section set atomically.
// Required sections start enabled, optional ones disabled. Returns the
// new newsletter id.
func (s *NewsletterStore) Create(brandID int64, title, month string, year int) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("create newsletter: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO newsletters (brand_id, title, month, year)
		VALUES (?, ?, ?, ?)
	`, brandID, title, month, year)
	if err != nil {
		return 0, fmt.Errorf("create newsletter: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create newsletter: last insert id: %w", err)
	}

	for i, info := range models.SectionTypes {
		content, err := models.EncodeContent(models.DefaultContent(info.Type))
		if err != nil {
			return 0, fmt.Errorf("create newsletter: default %s content: %w", info.Type, err)
		}
		_, err = tx.Exec(`
			INSERT INTO sections (newsletter_id, section_type, section_order, enabled, content)
			VALUES (?, ?, ?, ?, ?)
		`, id, info.Type, i, boolToInt(info.Required), string(content))
		if err != nil {
			return 0, fmt.Errorf("create newsletter: insert %s section: %w", info.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create newsletter: commit: %w", err)
	}
	return id, nil
}

// Touch bumps the newsletter's updated_at timestamp.
func (s *NewsletterStore) Touch(id int64) error {
	_, err := s.db.Exec(`
		UPDATE newsletters SET updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("touch newsletter: %w", err)
	}
	return nil
}

// Delete removes a newsletter along with its sections and image records.
// SQLite foreign keys are declared without ON DELETE, so the cascade is
// done here.
func (s *NewsletterStore) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete newsletter: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM images WHERE newsletter_id = ?`, id); err != nil {
		return fmt.Errorf("delete newsletter images: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sections WHERE newsletter_id = ?`, id); err != nil {
		return fmt.Errorf("delete newsletter sections: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM newsletters WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete newsletter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete newsletter: commit: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
