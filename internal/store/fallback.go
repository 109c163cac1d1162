package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"brandpress/internal/models"
)

// FallbackStore persists newsletter snapshots as JSON files when the
// database cannot take the write. Snapshots use millisecond timestamps
// as synthetic ids so they never collide with real row ids on the home
// page listing.
type FallbackStore struct {
	dir string
}

// NewFallbackStore creates a FallbackStore rooted at outputsDir/fallback.
func NewFallbackStore(outputsDir string) *FallbackStore {
	return &FallbackStore{dir: filepath.Join(outputsDir, "fallback")}
}

// Snapshot is the file shape written when the database is unavailable.
type Snapshot struct {
	ID        int64             `json:"id"`
	BrandID   int64             `json:"brand_id"`
	Title     string            `json:"title"`
	Month     string            `json:"month"`
	Year      int               `json:"year"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"created_at"`
	Sections  []SnapshotSection `json:"sections"`
}

// SnapshotSection mirrors a sections row inside a snapshot file.
type SnapshotSection struct {
	ID      int64              `json:"id"`
	Type    models.SectionType `json:"section_type"`
	Order   int                `json:"section_order"`
	Enabled int                `json:"enabled"`
	Content json.RawMessage    `json:"content"`
}

// WriteSnapshot saves a newsletter snapshot with the full default section
// set and returns its synthetic id.
func (s *FallbackStore) WriteSnapshot(brandID int64, title, month string, year int) (int64, error) {
	id := time.Now().UnixMilli()

	snap := Snapshot{
		ID:        id,
		BrandID:   brandID,
		Title:     title,
		Month:     month,
		Year:      year,
		Status:    models.StatusDraft,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	for i, info := range models.SectionTypes {
		content, err := models.EncodeContent(models.DefaultContent(info.Type))
		if err != nil {
			return 0, fmt.Errorf("fallback snapshot: default %s content: %w", info.Type, err)
		}
		snap.Sections = append(snap.Sections, SnapshotSection{
			ID:      int64(i + 1),
			Type:    info.Type,
			Order:   i,
			Enabled: boolToInt(info.Required),
			Content: content,
		})
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("fallback snapshot: mkdir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("fallback snapshot: marshal: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("newsletter_%d.json", id))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("fallback snapshot: write: %w", err)
	}
	return id, nil
}

// List returns all snapshots on disk, newest first. A missing fallback
// directory means no snapshots, not an error.
func (s *FallbackStore) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fallback list: %w", err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "newsletter_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		snap, err := s.read(filepath.Join(s.dir, name))
		if err != nil {
			// A torn write should not take down the listing.
			continue
		}
		snaps = append(snaps, *snap)
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID > snaps[j].ID })
	return snaps, nil
}

// Find returns the snapshot with the given synthetic id, or nil.
func (s *FallbackStore) Find(id int64) (*Snapshot, error) {
	path := filepath.Join(s.dir, "newsletter_"+strconv.FormatInt(id, 10)+".json")
	snap, err := s.read(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *FallbackStore) read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("fallback read %s: %w", filepath.Base(path), err)
	}
	return snap, nil
}
