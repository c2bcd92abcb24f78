package clicks

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for click counting.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the clicks database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("clicks: data dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("clicks: open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		return nil, fmt.Errorf("clicks: enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("clicks: ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS clicks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL,
			lang TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			referrer TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_clicks_slug ON clicks(slug);
		CREATE INDEX IF NOT EXISTS idx_clicks_timestamp ON clicks(timestamp);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Record stores a click.
func (s *Store) Record(c Click) error {
	_, err := s.db.Exec(`INSERT INTO clicks (slug, lang, ip_hash, referrer, timestamp) VALUES (?, ?, ?, ?, ?)`,
		c.Slug, c.Lang, c.IPHash, sql.NullString{String: c.Referrer, Valid: c.Referrer != ""}, c.Timestamp.UTC())
	return err
}

// TotalsBySlug returns the all-time click count per entry slug.
func (s *Store) TotalsBySlug() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT slug, COUNT(*) FROM clicks GROUP BY slug`)
	if err != nil {
		return nil, fmt.Errorf("clicks: totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var slug string
		var n int
		if err := rows.Scan(&slug, &n); err != nil {
			return nil, err
		}
		totals[slug] = n
	}
	return totals, rows.Err()
}

// Top returns the most-clicked slug/lang pairs within the time range,
// limited to n rows.
func (s *Store) Top(from, to time.Time, n int) ([]SlugCount, error) {
	rows, err := s.db.Query(`
		SELECT slug, lang, COUNT(*) AS clicks FROM clicks
		WHERE timestamp >= ? AND timestamp < ?
		GROUP BY slug, lang ORDER BY clicks DESC, slug LIMIT ?`,
		from.UTC(), to.UTC(), n)
	if err != nil {
		return nil, fmt.Errorf("clicks: top: %w", err)
	}
	defer rows.Close()

	var result []SlugCount
	for rows.Next() {
		var sc SlugCount
		if err := rows.Scan(&sc.Slug, &sc.Lang, &sc.Clicks); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

// CleanupOldClicks removes clicks older than the retention period.
func (s *Store) CleanupOldClicks(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	if _, err := s.db.Exec(`DELETE FROM clicks WHERE timestamp < ?`, cutoff); err != nil {
		return fmt.Errorf("clicks: cleanup: %w", err)
	}
	return nil
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupOldClicks(retentionDays); err != nil {
					fmt.Printf("cleanup error: %v\n", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
