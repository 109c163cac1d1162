package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"brandpress/internal/models"
)

// EblastStore handles eblast and eblast-section database operations.
// Eblasts carry the four-section promo layout; all sections start
// enabled.
type EblastStore struct {
	db *sql.DB
}

// NewEblastStore creates a new EblastStore with the given database connection.
func NewEblastStore(db *sql.DB) *EblastStore {
	return &EblastStore{db: db}
}

// List returns all eblasts with brand info joined in, newest first.
func (s *EblastStore) List() ([]models.Eblast, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.brand_id, e.title, COALESCE(e.subject_line, ''), e.status,
		       e.created_at, e.updated_at, b.display_name, b.name
		FROM eblasts e
		JOIN brands b ON e.brand_id = b.id
		ORDER BY e.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list eblasts: %w", err)
	}
	defer rows.Close()

	var items []models.Eblast
	for rows.Next() {
		var e models.Eblast
		if err := rows.Scan(
			&e.ID, &e.BrandID, &e.Title, &e.SubjectLine, &e.Status,
			&e.CreatedAt, &e.UpdatedAt, &e.BrandName, &e.BrandSlug,
		); err != nil {
			return nil, fmt.Errorf("scan eblast: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// FindByID retrieves an eblast with brand info joined in. Returns nil
// if not found.
func (s *EblastStore) FindByID(id int64) (*models.Eblast, error) {
	e := &models.Eblast{}
	err := s.db.QueryRow(`
		SELECT e.id, e.brand_id, e.title, COALESCE(e.subject_line, ''), e.status,
		       e.created_at, e.updated_at, b.display_name, b.name
		FROM eblasts e
		JOIN brands b ON e.brand_id = b.id
		WHERE e.id = ?
	`, id).Scan(
		&e.ID, &e.BrandID, &e.Title, &e.SubjectLine, &e.Status,
		&e.CreatedAt, &e.UpdatedAt, &e.BrandName, &e.BrandSlug,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find eblast by id: %w", err)
	}
	return e, nil
}

// Create inserts an eblast and its default section set atomically.
// Unlike newsletters, every eblast section starts enabled.
func (s *EblastStore) Create(brandID int64, title, subjectLine string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("create eblast: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO eblasts (brand_id, title, subject_line)
		VALUES (?, ?, ?)
	`, brandID, title, subjectLine)
	if err != nil {
		return 0, fmt.Errorf("create eblast: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create eblast: last insert id: %w", err)
	}

	for i, info := range models.EblastSectionTypes {
		content, err := models.EncodeContent(models.DefaultContent(info.Type))
		if err != nil {
			return 0, fmt.Errorf("create eblast: default %s content: %w", info.Type, err)
		}
		_, err = tx.Exec(`
			INSERT INTO eblast_sections (eblast_id, section_type, section_order, enabled, content)
			VALUES (?, ?, ?, 1, ?)
		`, id, info.Type, i, string(content))
		if err != nil {
			return 0, fmt.Errorf("create eblast: insert %s section: %w", info.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create eblast: commit: %w", err)
	}
	return id, nil
}

// ListSections returns all sections of an eblast in display order.
func (s *EblastStore) ListSections(eblastID int64) ([]models.EblastSection, error) {
	rows, err := s.db.Query(`
		SELECT id, eblast_id, section_type, section_order, enabled,
		       content, created_at, updated_at
		FROM eblast_sections
		WHERE eblast_id = ?
		ORDER BY section_order
	`, eblastID)
	if err != nil {
		return nil, fmt.Errorf("list eblast sections: %w", err)
	}
	defer rows.Close()

	var items []models.EblastSection
	for rows.Next() {
		var sec models.EblastSection
		var content string
		if err := rows.Scan(
			&sec.ID, &sec.EblastID, &sec.Type, &sec.Order, &sec.Enabled,
			&content, &sec.CreatedAt, &sec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan eblast section: %w", err)
		}
		sec.Content = json.RawMessage(content)
		items = append(items, sec)
	}
	return items, rows.Err()
}

// EnabledSections returns only the enabled sections, in display order.
func (s *EblastStore) EnabledSections(eblastID int64) ([]models.EblastSection, error) {
	all, err := s.ListSections(eblastID)
	if err != nil {
		return nil, err
	}
	enabled := all[:0]
	for _, sec := range all {
		if sec.Enabled {
			enabled = append(enabled, sec)
		}
	}
	return enabled, nil
}

// FindSection returns one eblast section, or nil if it doesn't exist.
func (s *EblastStore) FindSection(id int64) (*models.EblastSection, error) {
	row := s.db.QueryRow(`
		SELECT id, eblast_id, section_type, section_order, enabled, content, created_at, updated_at
		FROM eblast_sections
		WHERE id = ?
	`, id)

	var sec models.EblastSection
	var content string
	err := row.Scan(&sec.ID, &sec.EblastID, &sec.Type, &sec.Order, &sec.Enabled, &content, &sec.CreatedAt, &sec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find eblast section %d: %w", id, err)
	}
	sec.Content = json.RawMessage(content)
	return &sec, nil
}

// UpdateSection replaces an eblast section's content and enabled flag,
// and bumps the owning eblast's updated_at.
func (s *EblastStore) UpdateSection(id int64, content json.RawMessage, enabled bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update eblast section: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE eblast_sections
		SET content = ?, enabled = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, string(content), boolToInt(enabled), id)
	if err != nil {
		return fmt.Errorf("update eblast section: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE eblasts
		SET updated_at = CURRENT_TIMESTAMP
		WHERE id = (SELECT eblast_id FROM eblast_sections WHERE id = ?)
	`, id)
	if err != nil {
		return fmt.Errorf("update eblast section: touch eblast: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update eblast section: commit: %w", err)
	}
	return nil
}

// Delete removes an eblast and its sections.
func (s *EblastStore) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete eblast: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM eblast_sections WHERE eblast_id = ?`, id); err != nil {
		return fmt.Errorf("delete eblast sections: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM eblasts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete eblast: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete eblast: commit: %w", err)
	}
	return nil
}
