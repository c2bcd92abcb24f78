package indexdoc

import (
	"sort"
	"strconv"
	"strings"
)

// Render emits the canonical document: heading, entries ordered by
// descending date, a separator, and the footer. The rendered total is
// always the actual entry count; the stated TotalPosts field is
// ignored so a rendered document can never disagree with itself.
func Render(doc Document) string {
	entries := make([]Entry, len(doc.Entries))
	copy(entries, doc.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	var b strings.Builder
	title := doc.Title
	if title == "" {
		title = "Posts"
	}
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")

	for _, e := range entries {
		b.WriteString(FormatEntry(e))
		b.WriteString("\n")
	}

	b.WriteString("\n---\n\n")
	if doc.LastUpdated != "" {
		b.WriteString("Last updated: ")
		b.WriteString(doc.LastUpdated)
		b.WriteString("\n")
	}
	b.WriteString("Total posts: ")
	b.WriteString(strconv.Itoa(len(entries)))
	b.WriteString("\n")
	return b.String()
}
