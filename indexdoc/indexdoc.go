// Package indexdoc parses, renders, and lints the Markdown post index:
// one line per published article with a date, a free-text title, and
// links to externally hosted copies keyed by language tag, followed by
// a footer stating the last-updated date and the total post count.
//
// The line-item format is
//
//	[YYYY-MM-DD] - <Title> - [[EN]](<url>) [[RU]](<url>)
//
// with language tags optional per entry.
package indexdoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateFormat is the calendar date layout used throughout the document.
const DateFormat = "2006-01-02"

// Link maps a language tag (canonically upper-case, e.g. "EN") to the
// URL of the article in that language.
type Link struct {
	Lang string `json:"lang"`
	URL  string `json:"url"`
}

// Entry is a single Post Entry: one line of the index.
type Entry struct {
	Date  string // YYYY-MM-DD
	Title string
	Links []Link
	Line  int // 1-based source line, 0 when not parsed from a document
}

// Document is the whole index: entries in file order plus the footer.
type Document struct {
	Title   string // heading text without the leading "# "
	Entries []Entry

	LastUpdated string // footer date, "" when the footer line is absent
	TotalPosts  int    // stated count, meaningful only when TotalLine > 0

	// Source line numbers of the footer lines, 0 when absent.
	LastUpdatedLine int
	TotalLine       int
}

var (
	reEntry       = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2})\]\s*-\s*(.+)$`)
	reLink        = regexp.MustCompile(`\[\[([^\[\]]*)\]\]\(([^()\s]*)\)`)
	reLastUpdated = regexp.MustCompile(`(?i)^\**last updated\**:?\**\s*(.+?)\**\s*$`)
	reTotalPosts  = regexp.MustCompile(`(?i)^\**total posts\**:?\**\s*(\d+)\**\s*$`)
)

// Parse reads a post index document. Lines that are neither entries nor
// footer lines (the heading, separators, blank lines, prose) are
// skipped. Entries keep their source line number so the linter can
// point at them. Parse itself never judges content; see Lint.
func Parse(src string) (Document, error) {
	var doc Document
	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		n := i + 1
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "# "):
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(line[2:])
			}
		case reEntry.MatchString(line):
			m := reEntry.FindStringSubmatch(line)
			entry := Entry{Date: m[1], Line: n}
			rest := m[2]
			for _, lm := range reLink.FindAllStringSubmatch(rest, -1) {
				entry.Links = append(entry.Links, Link{
					Lang: strings.ToUpper(strings.TrimSpace(lm[1])),
					URL:  lm[2],
				})
			}
			entry.Title = cleanTitle(reLink.ReplaceAllString(rest, ""))
			doc.Entries = append(doc.Entries, entry)
		case reLastUpdated.MatchString(line):
			m := reLastUpdated.FindStringSubmatch(line)
			doc.LastUpdated = strings.TrimSpace(m[1])
			doc.LastUpdatedLine = n
		case reTotalPosts.MatchString(line):
			m := reTotalPosts.FindStringSubmatch(line)
			total, err := strconv.Atoi(m[1])
			if err != nil {
				return Document{}, fmt.Errorf("indexdoc: line %d: total posts: %w", n, err)
			}
			doc.TotalPosts = total
			doc.TotalLine = n
		}
	}
	return doc, nil
}

// cleanTitle strips the separator left behind once link groups are
// removed from an entry line, e.g. "My Title - " -> "My Title".
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasSuffix(s, "-") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "-"))
	}
	return s
}

// FormatEntry renders one entry in the canonical line-item format.
func FormatEntry(e Entry) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.Date)
	b.WriteString("] - ")
	b.WriteString(e.Title)
	for i, l := range e.Links {
		if i == 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString("[[")
		b.WriteString(strings.ToUpper(l.Lang))
		b.WriteString("]](")
		b.WriteString(l.URL)
		b.WriteString(")")
	}
	return b.String()
}

// LinkFor returns the URL for the given language tag, or "" if the
// entry has no link in that language.
func (e Entry) LinkFor(lang string) string {
	lang = strings.ToUpper(strings.TrimSpace(lang))
	for _, l := range e.Links {
		if strings.ToUpper(l.Lang) == lang {
			return l.URL
		}
	}
	return ""
}
