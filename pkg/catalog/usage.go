package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/easeltools/easel/pkg/models"
)

// UsageStore records per-item usage locally so the recency filter and the
// "lastused" sort keep working when the host omits usage metadata.
type UsageStore struct {
	db *sql.DB
}

// NewUsageStore opens (or creates) the usage database under dataDir.
func NewUsageStore(dataDir string) (*UsageStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "usage.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &UsageStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize usage store: %w", err)
	}
	return s, nil
}

func (s *UsageStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage (
		item_id TEXT PRIMARY KEY,
		last_used TIMESTAMP NOT NULL,
		use_count INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordUse bumps an item's use count and sets its last-used time to now.
func (s *UsageStore) RecordUse(itemId string) error {
	query := `
	INSERT INTO usage (item_id, last_used, use_count) VALUES (?, ?, 1)
	ON CONFLICT(item_id) DO UPDATE SET
		last_used = excluded.last_used,
		use_count = use_count + 1
	`
	_, err := s.db.Exec(query, itemId, time.Now())
	return err
}

// LastUsed returns an item's recorded last-used time. The zero time means
// the item has never been used.
func (s *UsageStore) LastUsed(itemId string) (time.Time, error) {
	var t time.Time
	err := s.db.QueryRow(`SELECT last_used FROM usage WHERE item_id = ?`, itemId).Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// UseCount returns how many times an item was used.
func (s *UsageStore) UseCount(itemId string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT use_count FROM usage WHERE item_id = ?`, itemId).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Enrich stamps the canonical last_used field onto each item's Info map from
// the local store, leaving items untouched when nothing is recorded. The
// input slice is not modified; a new slice is returned.
func (s *UsageStore) Enrich(items []models.Item) ([]models.Item, error) {
	out := make([]models.Item, len(items))
	copy(out, items)
	for i := range out {
		t, err := s.LastUsed(out[i].Id)
		if err != nil {
			return nil, err
		}
		if t.IsZero() {
			continue
		}
		info := make(map[string]interface{}, len(out[i].Info)+1)
		for k, v := range out[i].Info {
			info[k] = v
		}
		info["last_used"] = t.Unix()
		out[i].Info = info
	}
	return out, nil
}

// Close closes the underlying database.
func (s *UsageStore) Close() error {
	return s.db.Close()
}
