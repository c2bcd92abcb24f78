package postindex

import "postindex/indexdoc"

// Entry is the core content type stored in SQLite and rendered into the
// index document. Links point at externally hosted copies of the
// article, keyed by language tag.
type Entry struct {
	Slug      string
	Title     string
	Date      string // YYYY-MM-DD
	Links     []indexdoc.Link
	Published bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// IndexEntry converts a stored entry to its document representation.
func (e Entry) IndexEntry() indexdoc.Entry {
	return indexdoc.Entry{
		Date:  e.Date,
		Title: e.Title,
		Links: e.Links,
	}
}
