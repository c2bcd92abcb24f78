package postindex

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"postindex/indexdoc"
)

// Store wraps a SQLite database and provides CRUD operations for index entries.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    links TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
`)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`ALTER TABLE entries ADD COLUMN published INTEGER NOT NULL DEFAULT 1;`); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return nil
		}
		return err
	}
	return nil
}

// ListEntries returns all published entries ordered by date descending.
// If lang is non-empty, results are filtered to entries carrying a link
// in that language.
func (s *Store) ListEntries(lang string) ([]Entry, error) {
	var rows *sql.Rows
	var err error
	if lang == "" {
		rows, err = s.db.Query(`SELECT slug, title, date, links, published FROM entries WHERE published = 1 ORDER BY date DESC, slug`)
	} else {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		rows, err = s.db.Query(`SELECT slug, title, date, links, published FROM entries WHERE published = 1 AND instr(lower(links), '"lang":"' || ? || '"') > 0 ORDER BY date DESC, slug`, normalized)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListAllEntries returns every entry (published and drafts) ordered by date descending.
func (s *Store) ListAllEntries() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT slug, title, date, links, published FROM entries ORDER BY date DESC, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var slug, title, date, links string
		var published int
		if err := rows.Scan(&slug, &title, &date, &links, &published); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Slug:      slug,
			Title:     title,
			Date:      date,
			Links:     DecodeLinks(links),
			Published: published == 1,
		})
	}
	return entries, rows.Err()
}

// ListLangs returns a sorted, deduplicated slice of all language tags
// used by published entries.
func (s *Store) ListLangs() ([]string, error) {
	rows, err := s.db.Query(`SELECT links FROM entries WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var links string
		if err := rows.Scan(&links); err != nil {
			return nil, err
		}
		for _, l := range DecodeLinks(links) {
			set[strings.ToUpper(l.Lang)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for l := range set {
		result = append(result, l)
	}
	sort.Strings(result)
	return result, nil
}

// GetEntry returns a single published entry by slug.
func (s *Store) GetEntry(slug string) (Entry, error) {
	return s.getEntry(slug, true)
}

// GetEntryAny returns an entry by slug regardless of published status (for admin).
func (s *Store) GetEntryAny(slug string) (Entry, error) {
	return s.getEntry(slug, false)
}

func (s *Store) getEntry(slug string, publishedOnly bool) (Entry, error) {
	query := `SELECT title, date, links, published FROM entries WHERE slug = ?`
	if publishedOnly {
		query += ` AND published = 1`
	}
	var title, date, links string
	var published int
	err := s.db.QueryRow(query, slug).Scan(&title, &date, &links, &published)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Links:     DecodeLinks(links),
		Published: published == 1,
	}, nil
}

// SaveEntry upserts an index entry. Language tags are normalized to
// upper case before storage.
func (s *Store) SaveEntry(e Entry) error {
	published := 0
	if e.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO entries (slug, title, date, links, published) VALUES (?, ?, ?, ?, ?)`,
		e.Slug, e.Title, e.Date, EncodeLinks(e.Links), published)
	return err
}

// DeleteEntry removes an entry by slug.
func (s *Store) DeleteEntry(slug string) error {
	_, err := s.db.Exec(`DELETE FROM entries WHERE slug = ?`, slug)
	return err
}

// EncodeLinks serializes links for the links column. Tags are stored
// upper-case so the document renders them canonically.
func EncodeLinks(links []indexdoc.Link) string {
	normalized := make([]indexdoc.Link, len(links))
	for i, l := range links {
		normalized[i] = indexdoc.Link{
			Lang: strings.ToUpper(strings.TrimSpace(l.Lang)),
			URL:  strings.TrimSpace(l.URL),
		}
	}
	b, err := json.Marshal(normalized)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeLinks parses the links column. Malformed data yields no links
// rather than an error; the linter catches content problems.
func DecodeLinks(s string) []indexdoc.Link {
	if s == "" || s == "[]" {
		return nil
	}
	var links []indexdoc.Link
	if err := json.Unmarshal([]byte(s), &links); err != nil {
		return nil
	}
	if len(links) == 0 {
		return nil
	}
	return links
}
