package main

import (
	"flag"

	"github.com/joho/godotenv"

	"postindex"
	"postindex/views"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML site config")
	staticDir := fs.String("static", "public", "directory for static assets")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Missing .env is fine; env vars may come from the environment proper.
	_ = godotenv.Load()

	cfg, err := siteConfig(*configPath)
	if err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = "Posts"
	}

	app := postindex.New(cfg, views.Default(cfg), postindex.WithStaticDir(*staticDir))
	defer app.Close()
	return app.Start()
}
