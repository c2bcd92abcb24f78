package postindex

import "time"

// SiteConfig holds all configuration for a postindex site.
type SiteConfig struct {
	Name        string // Site name (default "Posts")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/index.db")

	ClicksEnabled      bool   // Count outbound redirects (default true in scaffolding)
	ClicksDatabasePath string // Clicks SQLite path (default "data/clicks.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	EntryCacheTTL time.Duration // Entry cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Posts"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/index.db"
	}
	if c.ClicksDatabasePath == "" {
		c.ClicksDatabasePath = "data/clicks.db"
	}
	if c.EntryCacheTTL == 0 {
		c.EntryCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
