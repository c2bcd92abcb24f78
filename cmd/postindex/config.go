package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"postindex"
)

// fileConfig is the optional YAML site configuration for `serve`.
// Env vars fill whatever the file leaves empty, so secrets can stay in
// the environment while the rest lives in version control.
type fileConfig struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`

	Addr         string `yaml:"addr"`
	DatabasePath string `yaml:"database_path"`

	Clicks struct {
		Enabled      *bool  `yaml:"enabled"`
		DatabasePath string `yaml:"database_path"`
	} `yaml:"clicks"`

	CookieSecure  bool   `yaml:"cookie_secure"`
	EntryCacheTTL string `yaml:"entry_cache_ttl"` // time.ParseDuration syntax, e.g. "5m"
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// siteConfig builds the SiteConfig from an optional config file plus
// environment variables. The admin password and session secret are
// env-only.
func siteConfig(configPath string) (postindex.SiteConfig, error) {
	cfg := postindex.SiteConfig{
		Name:               postindex.EnvOr("SITE_NAME", ""),
		URL:                strings.TrimSuffix(postindex.EnvOr("SITE_URL", ""), "/"),
		Description:        postindex.EnvOr("SITE_DESCRIPTION", ""),
		Author:             postindex.EnvOr("SITE_AUTHOR", ""),
		Addr:               postindex.EnvOr("LISTEN_ADDR", ""),
		DatabasePath:       postindex.EnvOr("DATABASE_PATH", ""),
		ClicksDatabasePath: postindex.EnvOr("CLICKS_DATABASE_PATH", ""),
		ClicksEnabled:      !strings.EqualFold(os.Getenv("CLICKS_DISABLED"), "true"),
		CookieSecure:       strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
		AdminPassword:      postindex.MustEnv("ADMIN_PASSWORD"),
		SessionSecret:      postindex.MustEnv("ADMIN_SESSION_SECRET"),
	}

	if configPath == "" {
		return cfg, nil
	}
	fc, err := loadFileConfig(configPath)
	if err != nil {
		return cfg, err
	}
	if cfg.Name == "" {
		cfg.Name = fc.Name
	}
	if cfg.URL == "" {
		cfg.URL = strings.TrimSuffix(fc.URL, "/")
	}
	if cfg.Description == "" {
		cfg.Description = fc.Description
	}
	if cfg.Author == "" {
		cfg.Author = fc.Author
	}
	if cfg.Addr == "" {
		cfg.Addr = fc.Addr
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.Clicks.Enabled != nil {
		cfg.ClicksEnabled = *fc.Clicks.Enabled
	}
	if cfg.ClicksDatabasePath == "" {
		cfg.ClicksDatabasePath = fc.Clicks.DatabasePath
	}
	if fc.CookieSecure {
		cfg.CookieSecure = true
	}
	if fc.EntryCacheTTL != "" {
		ttl, err := time.ParseDuration(fc.EntryCacheTTL)
		if err != nil {
			return cfg, fmt.Errorf("parse entry_cache_ttl: %w", err)
		}
		cfg.EntryCacheTTL = ttl
	}
	return cfg, nil
}
