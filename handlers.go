package postindex

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"postindex/clicks"
	"postindex/indexdoc"
)

func (a *App) handleHome(c echo.Context) error {
	lang := c.QueryParam("lang")
	entries, err := a.Cache.ListEntries(lang)
	if err != nil {
		return err
	}
	langs, err := a.Cache.ListLangs()
	if err != nil {
		return err
	}
	if c.Request().Header.Get("HX-Request") == "true" {
		partial := c.QueryParam("partial")
		switch partial {
		case "list":
			return Render(c, a.Views.EntryList(entries, lang, langs))
		case "home":
			return Render(c, a.Views.HomePartial(entries, lang, langs, a.Config.URL))
		}
	}
	return Render(c, a.Views.Home(entries, lang, langs, a.Config.URL))
}

// handleIndexDoc serves the canonical Markdown document rendered from
// the store. The footer's last-updated date is the newest entry date,
// so the served document is always internally consistent.
func (a *App) handleIndexDoc(c echo.Context) error {
	entries, err := a.Cache.ListEntries("")
	if err != nil {
		return err
	}
	doc := a.BuildDocument(entries)
	c.Response().Header().Set(echo.HeaderContentType, "text/markdown; charset=utf-8")
	return c.String(http.StatusOK, indexdoc.Render(doc))
}

// BuildDocument assembles the index document from stored entries.
func (a *App) BuildDocument(entries []Entry) indexdoc.Document {
	doc := indexdoc.Document{Title: a.Config.Name}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, e.IndexEntry())
	}
	doc.LastUpdated = NewestDate(entries)
	return doc
}

// handleOutbound redirects to the externally hosted article in the
// requested language, recording the click when counting is enabled.
func (a *App) handleOutbound(c echo.Context) error {
	slug := c.Param("slug")
	lang := c.Param("lang")
	entry, err := a.Cache.GetEntry(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	target := entry.IndexEntry().LinkFor(lang)
	if target == "" {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if a.clicksStore != nil {
		click := clicks.Click{
			Slug:      slug,
			Lang:      normalizeLang(lang),
			IPHash:    clicks.HashIP(c.RealIP()),
			Referrer:  c.Request().Referer(),
			Timestamp: time.Now(),
		}
		if err := a.clicksStore.Record(click); err != nil {
			c.Logger().Errorf("record click: %v", err)
		}
	}
	return c.Redirect(http.StatusFound, target)
}

func (a *App) handleSitemap(c echo.Context) error {
	entries, err := a.Cache.ListEntries("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, entries)
}

func (a *App) handleFeed(c echo.Context) error {
	entries, err := a.Cache.ListEntries("")
	if err != nil {
		return err
	}
	return a.renderFeed(c, entries)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
