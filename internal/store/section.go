package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"brandpress/internal/models"
)

// SectionStore handles newsletter section operations. Sections are
// created as a fixed set per newsletter; they are only ever updated or
// toggled, never added or removed individually.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore with the given database connection.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

// ListByNewsletter returns all sections of a newsletter in display order.
func (s *SectionStore) ListByNewsletter(newsletterID int64) ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT id, newsletter_id, section_type, section_order, enabled,
		       content, created_at, updated_at
		FROM sections
		WHERE newsletter_id = ?
		ORDER BY section_order
	`, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var items []models.Section
	for rows.Next() {
		var sec models.Section
		var content string
		if err := rows.Scan(
			&sec.ID, &sec.NewsletterID, &sec.Type, &sec.Order, &sec.Enabled,
			&content, &sec.CreatedAt, &sec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sec.Content = json.RawMessage(content)
		items = append(items, sec)
	}
	return items, rows.Err()
}

// EnabledByNewsletter returns only the enabled sections, in display order.
func (s *SectionStore) EnabledByNewsletter(newsletterID int64) ([]models.Section, error) {
	all, err := s.ListByNewsletter(newsletterID)
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

// FindByID retrieves a single section. Returns nil if not found.
func (s *SectionStore) FindByID(id int64) (*models.Section, error) {
	sec := &models.Section{}
	var content string
	err := s.db.QueryRow(`
		SELECT id, newsletter_id, section_type, section_order, enabled,
		       content, created_at, updated_at
		FROM sections WHERE id = ?
	`, id).Scan(
		&sec.ID, &sec.NewsletterID, &sec.Type, &sec.Order, &sec.Enabled,
		&content, &sec.CreatedAt, &sec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find section by id: %w", err)
	}
	sec.Content = json.RawMessage(content)
	return sec, nil
}

// Update replaces a section's content and enabled flag, and bumps the
// owning newsletter's updated_at so the list page reflects the edit.
func (s *SectionStore) Update(id int64, content json.RawMessage, enabled bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update section: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE sections
		SET content = ?, enabled = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, string(content), boolToInt(enabled), id)
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE newsletters
		SET updated_at = CURRENT_TIMESTAMP
		WHERE id = (SELECT newsletter_id FROM sections WHERE id = ?)
	`, id)
	if err != nil {
		return fmt.Errorf("update section: touch newsletter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update section: commit: %w", err)
	}
	return nil
}

// Toggle flips the enabled flag and returns the new state.
func (s *SectionStore) Toggle(id int64) (bool, error) {
	if _, err := s.db.Exec(`UPDATE sections SET enabled = NOT enabled WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("toggle section: %w", err)
	}
	var enabled bool
	if err := s.db.QueryRow(`SELECT enabled FROM sections WHERE id = ?`, id).Scan(&enabled); err != nil {
		if err == sql.ErrNoRows {
			return false, fmt.Errorf("toggle section: not found")
		}
		return false, fmt.Errorf("toggle section: %w", err)
	}
	return enabled, nil
}
