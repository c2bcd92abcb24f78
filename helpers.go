package postindex

import (
	"encoding/json"
	"net/url"
	"path"
	"sort"
	"strings"

	"postindex/indexdoc"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PreferredLink returns the entry's EN link when present, otherwise the
// first link. Returns "" for entries with no links.
func PreferredLink(e Entry) string {
	if u := e.IndexEntry().LinkFor("EN"); u != "" {
		return u
	}
	if len(e.Links) > 0 {
		return e.Links[0].URL
	}
	return ""
}

// NewestDate returns the most recent entry date, or "" when entries is empty.
func NewestDate(entries []Entry) string {
	newest := ""
	for _, e := range entries {
		if e.Date > newest {
			newest = e.Date
		}
	}
	return newest
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ItemListJsonLD returns a JSON-LD ItemList over the index entries, each
// item pointing at its preferred external URL.
func ItemListJsonLD(entries []Entry, cfg SiteConfig) string {
	items := make([]map[string]interface{}, 0, len(entries))
	for i, e := range entries {
		u := PreferredLink(e)
		if u == "" {
			continue
		}
		items = append(items, map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     e.Title,
			"url":      u,
		})
	}
	data := map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            cfg.Name,
		"itemListElement": items,
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// MergeFormLinks applies form-submitted links over a stored link set.
// Languages the form controls are replaced by the submitted values
// (a blank field removes that link); links in every other language
// pass through unchanged, so an edit never drops a link the form has
// no field for.
func MergeFormLinks(existing, submitted []indexdoc.Link, formLangs ...string) []indexdoc.Link {
	controlled := make(map[string]struct{}, len(formLangs))
	for _, lang := range formLangs {
		controlled[strings.ToUpper(strings.TrimSpace(lang))] = struct{}{}
	}
	links := append([]indexdoc.Link(nil), submitted...)
	for _, l := range existing {
		if _, ok := controlled[strings.ToUpper(strings.TrimSpace(l.Lang))]; !ok {
			links = append(links, l)
		}
	}
	return links
}

// LinksFromForm builds a link set from per-language form values,
// skipping languages left blank.
func LinksFromForm(pairs map[string]string) []indexdoc.Link {
	var links []indexdoc.Link
	for _, lang := range []string{"EN", "RU"} {
		if u := strings.TrimSpace(pairs[lang]); u != "" {
			links = append(links, indexdoc.Link{Lang: lang, URL: u})
		}
	}
	var extra []string
	for lang := range pairs {
		upper := strings.ToUpper(strings.TrimSpace(lang))
		if upper != "EN" && upper != "RU" {
			extra = append(extra, lang)
		}
	}
	sort.Strings(extra)
	for _, lang := range extra {
		if u := strings.TrimSpace(pairs[lang]); u != "" {
			links = append(links, indexdoc.Link{Lang: strings.ToUpper(strings.TrimSpace(lang)), URL: u})
		}
	}
	return links
}
