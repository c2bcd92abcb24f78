package indexdoc

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Lint rule names, one per check.
const (
	RuleCount     = "count"     // stated total vs actual entry lines
	RuleDate      = "date"      // entry date is a valid calendar date
	RuleOrder     = "order"     // dates non-increasing top to bottom
	RuleURL       = "url"       // links are well-formed absolute URLs
	RuleFooter    = "footer"    // footer present, last-updated >= newest entry
	RuleLang      = "lang"      // language tags non-empty and unique per entry
	RuleDuplicate = "duplicate" // no two entries share date and title
)

// Issue is a single content problem found by Lint.
type Issue struct {
	Line    int // 1-based source line, 0 for document-level issues
	Rule    string
	Message string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("line %d: [%s] %s", i.Line, i.Rule, i.Message)
	}
	return fmt.Sprintf("[%s] %s", i.Rule, i.Message)
}

// Lint checks a raw document against the content rules and returns all
// issues found. A nil slice means the document is clean. Content
// problems are always reported as issues, never as errors.
func Lint(src string) ([]Issue, error) {
	doc, err := Parse(src)
	if err != nil {
		return nil, err
	}
	var issues []Issue

	// Entry-level checks, remembering the previous valid date for the
	// ordering rule and seen date+title pairs for the duplicate rule.
	prevDate := ""
	prevLine := 0
	seen := make(map[string]int)
	newest := ""
	for _, e := range doc.Entries {
		d, derr := time.Parse(DateFormat, e.Date)
		if derr != nil || d.Format(DateFormat) != e.Date {
			issues = append(issues, Issue{
				Line:    e.Line,
				Rule:    RuleDate,
				Message: fmt.Sprintf("%q is not a valid calendar date", e.Date),
			})
		} else {
			if e.Date > newest {
				newest = e.Date
			}
			if prevDate != "" && e.Date > prevDate {
				issues = append(issues, Issue{
					Line:    e.Line,
					Rule:    RuleOrder,
					Message: fmt.Sprintf("date %s is newer than %s on line %d", e.Date, prevDate, prevLine),
				})
			}
			prevDate = e.Date
			prevLine = e.Line
		}

		key := e.Date + "\x00" + strings.ToLower(e.Title)
		if first, ok := seen[key]; ok {
			issues = append(issues, Issue{
				Line:    e.Line,
				Rule:    RuleDuplicate,
				Message: fmt.Sprintf("duplicate of entry on line %d", first),
			})
		} else {
			seen[key] = e.Line
		}

		issues = append(issues, lintLinks(e)...)
	}

	// Footer checks.
	if doc.TotalLine == 0 {
		issues = append(issues, Issue{
			Rule:    RuleFooter,
			Message: "missing \"Total posts\" footer line",
		})
	} else if doc.TotalPosts != len(doc.Entries) {
		issues = append(issues, Issue{
			Line:    doc.TotalLine,
			Rule:    RuleCount,
			Message: fmt.Sprintf("stated total %d, found %d entry lines", doc.TotalPosts, len(doc.Entries)),
		})
	}
	if doc.LastUpdatedLine == 0 {
		issues = append(issues, Issue{
			Rule:    RuleFooter,
			Message: "missing \"Last updated\" footer line",
		})
	} else if _, err := time.Parse(DateFormat, doc.LastUpdated); err != nil {
		issues = append(issues, Issue{
			Line:    doc.LastUpdatedLine,
			Rule:    RuleFooter,
			Message: fmt.Sprintf("last-updated date %q is not a valid calendar date", doc.LastUpdated),
		})
	} else if newest != "" && doc.LastUpdated < newest {
		issues = append(issues, Issue{
			Line:    doc.LastUpdatedLine,
			Rule:    RuleFooter,
			Message: fmt.Sprintf("last-updated %s is older than the newest entry (%s)", doc.LastUpdated, newest),
		})
	}

	return issues, nil
}

func lintLinks(e Entry) []Issue {
	var issues []Issue
	langs := make(map[string]struct{})
	for _, l := range e.Links {
		lang := strings.ToUpper(strings.TrimSpace(l.Lang))
		if lang == "" {
			issues = append(issues, Issue{
				Line:    e.Line,
				Rule:    RuleLang,
				Message: "empty language tag",
			})
		} else if _, ok := langs[lang]; ok {
			issues = append(issues, Issue{
				Line:    e.Line,
				Rule:    RuleLang,
				Message: fmt.Sprintf("language tag %s appears more than once", lang),
			})
		} else {
			langs[lang] = struct{}{}
		}
		if !ValidURL(l.URL) {
			issues = append(issues, Issue{
				Line:    e.Line,
				Rule:    RuleURL,
				Message: fmt.Sprintf("%q is not a well-formed http(s) URL", l.URL),
			})
		}
	}
	return issues
}

// ValidURL reports whether raw is an absolute http or https URL with a
// host.
func ValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	default:
		return false
	}
}
