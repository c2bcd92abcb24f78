package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"postindex"
	"postindex/indexdoc"
)

// runImport parses an index document and upserts its entries into the
// database. Existing entries with the same slug are overwritten.
func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", "", "site config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: postindex import [-config site.yaml] <file>")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := indexdoc.Parse(string(data))
	if err != nil {
		return err
	}

	store, err := openStore(*configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	imported := 0
	for _, e := range doc.Entries {
		slug := postindex.Slugify(e.Title)
		if slug == "" {
			fmt.Fprintf(os.Stderr, "skipping line %d: title %q produces an empty slug\n", e.Line, e.Title)
			continue
		}
		if err := store.SaveEntry(postindex.Entry{
			Slug:      slug,
			Title:     e.Title,
			Date:      e.Date,
			Links:     e.Links,
			Published: true,
		}); err != nil {
			return fmt.Errorf("save %s: %w", slug, err)
		}
		imported++
	}
	fmt.Printf("imported %d of %d entries from %s\n", imported, len(doc.Entries), path)
	return nil
}

// runRender emits the canonical document from the database, footer
// stamped with today's date.
func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	out := fs.String("o", "", "output file (default stdout)")
	configPath := fs.String("config", "", "site config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListEntries("")
	if err != nil {
		return err
	}
	doc := indexdoc.Document{
		Title:       postindex.EnvOr("SITE_NAME", "Posts"),
		LastUpdated: time.Now().Format(indexdoc.DateFormat),
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, e.IndexEntry())
	}
	rendered := indexdoc.Render(doc)

	if *out == "" {
		fmt.Print(rendered)
		return nil
	}
	return os.WriteFile(*out, []byte(rendered), 0o644)
}

// openStore resolves the database path the same way serve does: env
// first, then the config file, then the default.
func openStore(configPath string) (*postindex.Store, error) {
	_ = godotenv.Load()
	dbPath := postindex.EnvOr("DATABASE_PATH", "")
	if dbPath == "" && configPath != "" {
		fc, err := loadFileConfig(configPath)
		if err != nil {
			return nil, err
		}
		dbPath = fc.DatabasePath
	}
	if dbPath == "" {
		dbPath = "data/index.db"
	}
	return postindex.NewStore(dbPath)
}
