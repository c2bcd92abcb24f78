// Package views provides the default templ components for a postindex
// site. Sites that want their own look supply their own ViewFuncs; most
// deployments can use Default as-is and restyle with static CSS.
package views

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"postindex"
)

// Default returns a ViewFuncs set rendering the built-in templates for
// the given site configuration.
func Default(cfg postindex.SiteConfig) postindex.ViewFuncs {
	return postindex.ViewFuncs{
		Home: func(entries []postindex.Entry, activeLang string, langs []string, siteURL string) templ.Component {
			meta := postindex.PageMeta{Title: cfg.Name, URL: postindex.BuildURL(siteURL), OGType: "website"}
			return component(page(cfg, meta, homeBody(cfg, entries, activeLang, langs)))
		},
		HomePartial: func(entries []postindex.Entry, activeLang string, langs []string, siteURL string) templ.Component {
			return component(homeBody(cfg, entries, activeLang, langs))
		},
		EntryList: func(entries []postindex.Entry, activeLang string, langs []string) templ.Component {
			return component(entryList(entries, activeLang))
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return component(page(cfg, postindex.PageMeta{Title: "Admin"}, adminLoginBody(showError, csrfToken)))
		},
		AdminDashboard: func(entries []postindex.Entry, clickTotals map[string]int, message string, csrfToken string) templ.Component {
			return component(page(cfg, postindex.PageMeta{Title: "Admin"}, adminDashboardBody(entries, clickTotals, message, csrfToken)))
		},
		AdminFormPartial: func(entry postindex.Entry, csrfToken string) templ.Component {
			return component(entryForm(entry, csrfToken))
		},
		NotFound: func() templ.Component {
			return component(page(cfg, postindex.PageMeta{Title: "Not Found"}, `<main class="status-page"><h1>404</h1><p>This page does not exist.</p><p><a href="/">Back to the index</a></p></main>`))
		},
		ServerError: func() templ.Component {
			return component(page(cfg, postindex.PageMeta{Title: "Server Error"}, `<main class="status-page"><h1>500</h1><p>Something went wrong.</p><p><a href="/">Back to the index</a></p></main>`))
		},
	}
}

// component wraps a pre-rendered HTML string as a templ.Component.
func component(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

func page(cfg postindex.SiteConfig, meta postindex.PageMeta, body string) string {
	desc := meta.Description
	if desc == "" {
		desc = cfg.Description
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/>")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
	b.WriteString("<title>")
	b.WriteString(html.EscapeString(meta.Title))
	b.WriteString("</title>")
	if desc != "" {
		b.WriteString("<meta name=\"description\" content=\"" + html.EscapeString(desc) + "\"/>")
	}
	if meta.URL != "" {
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		b.WriteString("<link rel=\"canonical\" href=\"" + html.EscapeString(meta.URL) + "\"/>")
		b.WriteString("<meta property=\"og:url\" content=\"" + html.EscapeString(meta.URL) + "\"/>")
		b.WriteString("<meta property=\"og:type\" content=\"" + html.EscapeString(ogType) + "\"/>")
		b.WriteString("<meta property=\"og:title\" content=\"" + html.EscapeString(meta.Title) + "\"/>")
		b.WriteString("<meta property=\"og:site_name\" content=\"" + html.EscapeString(cfg.Name) + "\"/>")
		if desc != "" {
			b.WriteString("<meta property=\"og:description\" content=\"" + html.EscapeString(desc) + "\"/>")
		}
	}
	b.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" href=\"/feed.xml\"/>")
	b.WriteString("<link rel=\"stylesheet\" href=\"/public/style.css\"/>")
	b.WriteString("<script type=\"application/ld+json\">")
	b.WriteString(postindex.WebsiteJsonLD(cfg))
	b.WriteString("</script>")
	b.WriteString("</head><body>")
	b.WriteString(body)
	b.WriteString("</body></html>")
	return b.String()
}

func homeBody(cfg postindex.SiteConfig, entries []postindex.Entry, activeLang string, langs []string) string {
	var b strings.Builder
	b.WriteString("<main class=\"index\"><header><h1>")
	b.WriteString(html.EscapeString(cfg.Name))
	b.WriteString("</h1>")
	if cfg.Description != "" {
		b.WriteString("<p>" + html.EscapeString(cfg.Description) + "</p>")
	}
	b.WriteString("</header>")
	b.WriteString(langNav(activeLang, langs))
	b.WriteString(entryList(entries, activeLang))
	b.WriteString("<script type=\"application/ld+json\">")
	b.WriteString(postindex.ItemListJsonLD(entries, cfg))
	b.WriteString("</script>")
	b.WriteString("<footer><a href=\"/index.md\">index.md</a> &middot; <a href=\"/feed.xml\">RSS</a></footer>")
	b.WriteString("</main>")
	return b.String()
}

// langNav renders the language filter pills, with an "All" pill first.
func langNav(activeLang string, langs []string) string {
	if len(langs) < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<nav class=\"langs\">")
	b.WriteString(langPill("", "All", activeLang == ""))
	for _, l := range langs {
		b.WriteString(langPill(l, l, strings.EqualFold(activeLang, l)))
	}
	b.WriteString("</nav>")
	return b.String()
}

func langPill(lang, label string, active bool) string {
	class := "lang-pill"
	if active {
		class += " active"
	}
	href := "/"
	if lang != "" {
		href = "/?lang=" + postindex.PathEscape(lang)
	}
	return "<a class=\"" + class + "\" href=\"" + href + "\">" + html.EscapeString(label) + "</a>"
}

func entryList(entries []postindex.Entry, activeLang string) string {
	var b strings.Builder
	b.WriteString("<ul class=\"entries\" id=\"entries\">")
	for _, e := range entries {
		b.WriteString("<li><time datetime=\"")
		b.WriteString(html.EscapeString(e.Date))
		b.WriteString("\">")
		b.WriteString(html.EscapeString(e.Date))
		b.WriteString("</time> <span class=\"title\">")
		b.WriteString(html.EscapeString(e.Title))
		b.WriteString("</span>")
		for _, l := range e.Links {
			b.WriteString(" <a class=\"entry-link\" href=\"/go/")
			b.WriteString(postindex.PathEscape(e.Slug))
			b.WriteString("/")
			b.WriteString(postindex.PathEscape(strings.ToLower(l.Lang)))
			b.WriteString("/\" rel=\"noopener\">[")
			b.WriteString(html.EscapeString(strings.ToUpper(l.Lang)))
			b.WriteString("]</a>")
		}
		b.WriteString("</li>")
	}
	if len(entries) == 0 {
		b.WriteString("<li class=\"empty\">No posts yet.</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func adminLoginBody(showError bool, csrfToken string) string {
	var b strings.Builder
	b.WriteString("<main class=\"admin\"><h1>Admin</h1>")
	if showError {
		b.WriteString("<p class=\"error\">Wrong password.</p>")
	}
	b.WriteString("<form method=\"post\" action=\"/admin/login/\">")
	b.WriteString(csrfField(csrfToken))
	b.WriteString("<input type=\"password\" name=\"password\" placeholder=\"Password\" autofocus/>")
	b.WriteString("<button type=\"submit\">Log in</button>")
	b.WriteString("</form></main>")
	return b.String()
}

func adminDashboardBody(entries []postindex.Entry, clickTotals map[string]int, message string, csrfToken string) string {
	var b strings.Builder
	b.WriteString("<main class=\"admin\"><h1>Entries</h1>")
	if message != "" {
		b.WriteString("<p class=\"notice\">" + html.EscapeString(message) + "</p>")
	}
	b.WriteString("<form method=\"post\" action=\"/admin/logout/\">")
	b.WriteString(csrfField(csrfToken))
	b.WriteString("<button type=\"submit\">Log out</button></form>")
	b.WriteString(entryForm(postindex.Entry{Published: true}, csrfToken))
	b.WriteString("<table class=\"admin-entries\"><thead><tr><th>Date</th><th>Title</th><th>Links</th><th>Clicks</th><th>Published</th></tr></thead><tbody>")
	for _, e := range entries {
		b.WriteString("<tr><td>")
		b.WriteString(html.EscapeString(e.Date))
		b.WriteString("</td><td><a href=\"/admin/entry/")
		b.WriteString(postindex.PathEscape(e.Slug))
		b.WriteString("/\">")
		b.WriteString(html.EscapeString(e.Title))
		b.WriteString("</a></td><td>")
		langs := make([]string, len(e.Links))
		for i, l := range e.Links {
			langs[i] = strings.ToUpper(l.Lang)
		}
		b.WriteString(html.EscapeString(strings.Join(langs, " ")))
		b.WriteString("</td><td>")
		b.WriteString(strconv.Itoa(clickTotals[e.Slug]))
		b.WriteString("</td><td>")
		if e.Published {
			b.WriteString("yes")
		} else {
			b.WriteString("draft")
		}
		b.WriteString("</td></tr>")
	}
	b.WriteString("</tbody></table></main>")
	return b.String()
}

func entryForm(e postindex.Entry, csrfToken string) string {
	var b strings.Builder
	b.WriteString("<form class=\"entry-form\" method=\"post\" action=\"/admin/save/\">")
	b.WriteString(csrfField(csrfToken))
	b.WriteString("<input type=\"text\" name=\"title\" placeholder=\"Title\" value=\"" + html.EscapeString(e.Title) + "\"/>")
	b.WriteString("<input type=\"text\" name=\"slug\" placeholder=\"slug (optional)\" value=\"" + html.EscapeString(e.Slug) + "\"/>")
	b.WriteString("<input type=\"text\" name=\"date\" placeholder=\"YYYY-MM-DD\" value=\"" + html.EscapeString(e.Date) + "\"/>")
	b.WriteString("<input type=\"url\" name=\"url_en\" placeholder=\"EN link\" value=\"" + html.EscapeString(e.IndexEntry().LinkFor("EN")) + "\"/>")
	b.WriteString("<input type=\"url\" name=\"url_ru\" placeholder=\"RU link\" value=\"" + html.EscapeString(e.IndexEntry().LinkFor("RU")) + "\"/>")
	var kept []string
	for _, l := range e.Links {
		if up := strings.ToUpper(l.Lang); up != "EN" && up != "RU" {
			kept = append(kept, "["+up+"] "+l.URL)
		}
	}
	if len(kept) > 0 {
		b.WriteString("<p class=\"kept-links\">Kept as-is: " + html.EscapeString(strings.Join(kept, ", ")) + "</p>")
	}
	b.WriteString("<label><input type=\"checkbox\" name=\"published\" value=\"1\"")
	if e.Published {
		b.WriteString(" checked")
	}
	b.WriteString("/> Published</label>")
	b.WriteString("<button type=\"submit\">Save</button>")
	b.WriteString("</form>")
	return b.String()
}

func csrfField(token string) string {
	return "<input type=\"hidden\" name=\"_csrf\" value=\"" + html.EscapeString(token) + "\"/>"
}
