// Package store implements the persistence layer over database/sql.
// One store type per record kind; all queries go through the shared
// SQLite connection. Lookups return nil (not an error) when no row
// matches.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"brandpress/internal/models"
)

// BrandStore handles brand lookups. Brands are seeded at boot and never
// mutated through the application.
type BrandStore struct {
	db *sql.DB
}

// NewBrandStore creates a new BrandStore with the given database connection.
func NewBrandStore(db *sql.DB) *BrandStore {
	return &BrandStore{db: db}
}

// List returns all brands ordered by id.
func (s *BrandStore) List() ([]models.Brand, error) {
	rows, err := s.db.Query(`
		SELECT id, name, display_name, config, created_at
		FROM brands
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, *b)
	}
	return brands, rows.Err()
}

// FindByID retrieves a brand by id. Returns nil if not found.
func (s *BrandStore) FindByID(id int64) (*models.Brand, error) {
	row := s.db.QueryRow(`
		SELECT id, name, display_name, config, created_at
		FROM brands WHERE id = ?
	`, id)
	b, err := scanBrand(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find brand by id: %w", err)
	}
	return b, nil
}

// FindByName retrieves a brand by its slug name. Returns nil if not found.
func (s *BrandStore) FindByName(name string) (*models.Brand, error) {
	row := s.db.QueryRow(`
		SELECT id, name, display_name, config, created_at
		FROM brands WHERE name = ?
	`, name)
	b, err := scanBrand(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find brand by name: %w", err)
	}
	return b, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBrand(row rowScanner) (*models.Brand, error) {
	b := &models.Brand{}
	var config string
	if err := row.Scan(&b.ID, &b.Name, &b.DisplayName, &config, &b.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(config), &b.Config); err != nil {
		return nil, fmt.Errorf("decode brand config: %w", err)
	}
	return b, nil
}
