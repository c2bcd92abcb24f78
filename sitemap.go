package postindex

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the site's own pages. Entry links point at
// external hosts and have no place in this site's sitemap, so only the
// home page and the Markdown document appear, stamped with the newest
// entry date.
func (a *App) renderSitemap(c echo.Context, entries []Entry) error {
	base := a.Config.URL
	lastMod := NewestDate(entries)
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: BuildURL(base), LastMod: lastMod},
			{Loc: base + "/index.md", LastMod: lastMod},
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
