package postindex

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = sql.ErrNoRows

// EntryCache is an in-memory cache of published index entries and
// language tags with TTL.
type EntryCache struct {
	mu      sync.RWMutex
	entries []Entry
	langs   []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewEntryCache creates an EntryCache backed by the given Store.
func NewEntryCache(s *Store, ttl time.Duration) *EntryCache {
	return &EntryCache{store: s, ttl: ttl}
}

func (c *EntryCache) valid() bool {
	return c.entries != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *EntryCache) Invalidate() {
	c.mu.Lock()
	c.entries = nil
	c.langs = nil
	c.mu.Unlock()
}

func (c *EntryCache) load() error {
	if c.valid() {
		return nil
	}
	entries, err := c.store.ListEntries("")
	if err != nil {
		return err
	}
	langs, err := c.store.ListLangs()
	if err != nil {
		return err
	}
	c.entries = entries
	c.langs = langs
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached entries and langs after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock if a reload
// is needed.
func (c *EntryCache) ensureLoaded() ([]Entry, []string, error) {
	c.mu.RLock()
	if c.valid() {
		entries, langs := c.entries, c.langs
		c.mu.RUnlock()
		return entries, langs, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.entries, c.langs, nil
}

// ListEntries returns published entries, optionally filtered to those
// with a link in the given language.
func (c *EntryCache) ListEntries(lang string) ([]Entry, error) {
	entries, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if lang == "" {
		return entries, nil
	}
	normalized := normalizeLang(lang)
	var filtered []Entry
	for _, e := range entries {
		for _, l := range e.Links {
			if normalizeLang(l.Lang) == normalized {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered, nil
}

// ListLangs returns all language tags used by published entries.
func (c *EntryCache) ListLangs() ([]string, error) {
	_, langs, err := c.ensureLoaded()
	return langs, err
}

// GetEntry returns a single published entry by slug from the cache.
func (c *EntryCache) GetEntry(slug string) (Entry, error) {
	entries, _, err := c.ensureLoaded()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Slug == slug {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

func normalizeLang(l string) string {
	return strings.ToUpper(strings.TrimSpace(l))
}
