package postindex

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderFeed writes an RSS 2.0 feed of the index. Item links point at
// the external articles directly, preferring the EN copy; the
// description lists the languages the article is available in.
func (a *App) renderFeed(c echo.Context, entries []Entry) error {
	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		link := PreferredLink(e)
		if link == "" {
			link = a.Config.URL
		}
		pubDate := ""
		if t, err := time.Parse("2006-01-02", e.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        link,
			Description: langSummary(e),
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        a.Config.URL,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

func langSummary(e Entry) string {
	if len(e.Links) == 0 {
		return ""
	}
	langs := make([]string, len(e.Links))
	for i, l := range e.Links {
		langs[i] = strings.ToUpper(l.Lang)
	}
	return "Available in " + strings.Join(langs, ", ")
}
