// Package postindex is an engine for a single-document blog index built
// with Go, Echo, and templ. It stores dated entries that link to
// externally hosted articles in one or two languages, renders the
// canonical Markdown index with its last-updated/total footer, serves
// the index over HTTP with an RSS feed and admin dashboard, and counts
// outbound clicks.
//
// Users provide their own templ templates via the ViewFuncs struct,
// and postindex handles all the handler logic, middleware, and database
// operations.
package postindex

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"postindex/clicks"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home             func(entries []Entry, activeLang string, langs []string, siteURL string) templ.Component
	HomePartial      func(entries []Entry, activeLang string, langs []string, siteURL string) templ.Component
	EntryList        func(entries []Entry, activeLang string, langs []string) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(entries []Entry, clickTotals map[string]int, message string, csrfToken string) templ.Component
	AdminFormPartial func(entry Entry, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central postindex application. It wires together the store,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *EntryCache
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	clicksStore  *clicks.Store
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new postindex App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("postindex: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("postindex: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("postindex: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewEntryCache(a.Store, a.Config.EntryCacheTTL)

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.ClicksEnabled {
		clicksStore, err := clicks.NewStore(a.Config.ClicksDatabasePath)
		if err != nil {
			return fmt.Errorf("postindex: init clicks: %w", err)
		}
		a.clicksStore = clicksStore
		if err := clicks.InitSalt(clicksStore); err != nil {
			return fmt.Errorf("postindex: init clicks salt: %w", err)
		}
		stopCleanup := clicksStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/index.md", a.handleIndexDoc)
	e.GET("/", a.handleHome)
	e.GET("/go/:slug/:lang/", a.handleOutbound)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/entry/:slug/", a.handleAdminEntry)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/entry/:slug/", a.handleAdminDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.clicksStore != nil {
		a.clicksStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("postindex: required environment variable %s is not set", key)
	}
	return v
}
