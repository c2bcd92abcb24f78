package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("ADMIN_SESSION_SECRET", "secret")
}

func clearSiteEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SITE_NAME", "SITE_URL", "SITE_DESCRIPTION", "SITE_AUTHOR",
		"LISTEN_ADDR", "DATABASE_PATH", "CLICKS_DATABASE_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestSiteConfigFileFillsBlanks(t *testing.T) {
	setRequiredEnv(t)
	clearSiteEnv(t)
	path := writeConfigFile(t, `
name: File Posts
url: https://file.example.com/
database_path: /srv/index.db
clicks:
  database_path: /srv/clicks.db
entry_cache_ttl: 90s
`)
	cfg, err := siteConfig(path)
	if err != nil {
		t.Fatalf("siteConfig failed: %v", err)
	}
	if cfg.Name != "File Posts" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.URL != "https://file.example.com" {
		t.Errorf("URL = %q, want trailing slash trimmed", cfg.URL)
	}
	if cfg.DatabasePath != "/srv/index.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ClicksDatabasePath != "/srv/clicks.db" {
		t.Errorf("ClicksDatabasePath = %q", cfg.ClicksDatabasePath)
	}
	if cfg.EntryCacheTTL != 90*time.Second {
		t.Errorf("EntryCacheTTL = %v", cfg.EntryCacheTTL)
	}
}

func TestSiteConfigEnvWinsOverFile(t *testing.T) {
	setRequiredEnv(t)
	clearSiteEnv(t)
	t.Setenv("SITE_NAME", "Env Posts")
	t.Setenv("DATABASE_PATH", "/env/index.db")
	t.Setenv("CLICKS_DATABASE_PATH", "/env/clicks.db")
	path := writeConfigFile(t, `
name: File Posts
database_path: /srv/index.db
clicks:
  database_path: /srv/clicks.db
`)
	cfg, err := siteConfig(path)
	if err != nil {
		t.Fatalf("siteConfig failed: %v", err)
	}
	if cfg.Name != "Env Posts" {
		t.Errorf("Name = %q, env should win", cfg.Name)
	}
	if cfg.DatabasePath != "/env/index.db" {
		t.Errorf("DatabasePath = %q, env should win", cfg.DatabasePath)
	}
	if cfg.ClicksDatabasePath != "/env/clicks.db" {
		t.Errorf("ClicksDatabasePath = %q, env should win", cfg.ClicksDatabasePath)
	}
}

func TestSiteConfigClicksDatabasePathFromEnv(t *testing.T) {
	setRequiredEnv(t)
	clearSiteEnv(t)
	t.Setenv("CLICKS_DATABASE_PATH", "/env/clicks.db")
	cfg, err := siteConfig("")
	if err != nil {
		t.Fatalf("siteConfig failed: %v", err)
	}
	if cfg.ClicksDatabasePath != "/env/clicks.db" {
		t.Errorf("ClicksDatabasePath = %q", cfg.ClicksDatabasePath)
	}
}

func TestSiteConfigBadCacheTTL(t *testing.T) {
	setRequiredEnv(t)
	clearSiteEnv(t)
	path := writeConfigFile(t, "entry_cache_ttl: not-a-duration\n")
	if _, err := siteConfig(path); err == nil {
		t.Fatal("expected error for unparseable entry_cache_ttl")
	}
}
