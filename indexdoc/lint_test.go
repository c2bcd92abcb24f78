package indexdoc

import (
	"strings"
	"testing"
)

const cleanDoc = `# Posts

[2024-03-10] - Newer Post - [[EN]](https://example.com/en/newer) [[RU]](https://example.com/ru/newer)
[2024-01-05] - Older Post - [[EN]](https://example.com/en/older)

---

Last updated: 2024-03-10
Total posts: 2
`

func lintOne(t *testing.T, src, rule string) Issue {
	t.Helper()
	issues, err := Lint(src)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	var found []Issue
	for _, i := range issues {
		if i.Rule == rule {
			found = append(found, i)
		}
	}
	if len(found) != 1 {
		t.Fatalf("want exactly one %q issue, got %v", rule, issues)
	}
	return found[0]
}

func TestLintCleanDocument(t *testing.T) {
	issues, err := Lint(cleanDoc)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("clean document reported issues: %v", issues)
	}
}

func TestLintCountMismatch(t *testing.T) {
	src := strings.Replace(cleanDoc, "Total posts: 2", "Total posts: 5", 1)
	issue := lintOne(t, src, RuleCount)
	if !strings.Contains(issue.Message, "stated total 5") {
		t.Errorf("message = %q", issue.Message)
	}
	if issue.Line == 0 {
		t.Errorf("count issue should carry the footer line number")
	}
}

func TestLintInvalidDate(t *testing.T) {
	src := strings.Replace(cleanDoc, "[2024-01-05]", "[2024-02-30]", 1)
	issue := lintOne(t, src, RuleDate)
	if !strings.Contains(issue.Message, "2024-02-30") {
		t.Errorf("message = %q", issue.Message)
	}
}

func TestLintOrderViolation(t *testing.T) {
	src := `[2024-01-05] - Older Post - [[EN]](https://example.com/a)
[2024-03-10] - Newer Post - [[EN]](https://example.com/b)

Last updated: 2024-03-10
Total posts: 2
`
	issue := lintOne(t, src, RuleOrder)
	if issue.Line != 2 {
		t.Errorf("issue.Line = %d, want 2", issue.Line)
	}
}

func TestLintBadURL(t *testing.T) {
	tests := []string{
		"not-a-url",
		"ftp://example.com/file",
		"https://",
	}
	for _, bad := range tests {
		src := strings.Replace(cleanDoc, "https://example.com/en/older", bad, 1)
		issue := lintOne(t, src, RuleURL)
		if !strings.Contains(issue.Message, bad) {
			t.Errorf("%s: message = %q", bad, issue.Message)
		}
	}
}

func TestLintMissingFooter(t *testing.T) {
	src := "[2024-01-01] - Post - [[EN]](https://example.com/x)\n"
	issues, err := Lint(src)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	var footer int
	for _, i := range issues {
		if i.Rule == RuleFooter {
			footer++
		}
	}
	// One for the missing total line, one for the missing last-updated line.
	if footer != 2 {
		t.Errorf("want 2 footer issues, got %v", issues)
	}
}

func TestLintStaleLastUpdated(t *testing.T) {
	src := strings.Replace(cleanDoc, "Last updated: 2024-03-10", "Last updated: 2024-02-01", 1)
	issue := lintOne(t, src, RuleFooter)
	if !strings.Contains(issue.Message, "older than the newest entry") {
		t.Errorf("message = %q", issue.Message)
	}
}

func TestLintInvalidLastUpdated(t *testing.T) {
	src := strings.Replace(cleanDoc, "Last updated: 2024-03-10", "Last updated: March 10th", 1)
	issue := lintOne(t, src, RuleFooter)
	if !strings.Contains(issue.Message, "March 10th") {
		t.Errorf("message = %q", issue.Message)
	}
}

func TestLintEmptyLangTag(t *testing.T) {
	src := strings.Replace(cleanDoc, "[[EN]](https://example.com/en/older)", "[[]](https://example.com/en/older)", 1)
	issue := lintOne(t, src, RuleLang)
	if !strings.Contains(issue.Message, "empty") {
		t.Errorf("message = %q", issue.Message)
	}
}

func TestLintRepeatedLangTag(t *testing.T) {
	src := strings.Replace(cleanDoc,
		"[[EN]](https://example.com/en/newer) [[RU]](https://example.com/ru/newer)",
		"[[EN]](https://example.com/en/newer) [[en]](https://example.com/ru/newer)", 1)
	issue := lintOne(t, src, RuleLang)
	if !strings.Contains(issue.Message, "EN") {
		t.Errorf("message = %q", issue.Message)
	}
}

func TestLintDuplicateEntry(t *testing.T) {
	src := `[2024-03-10] - Same Post - [[EN]](https://example.com/a)
[2024-03-10] - same post - [[EN]](https://example.com/b)

Last updated: 2024-03-10
Total posts: 2
`
	issue := lintOne(t, src, RuleDuplicate)
	if issue.Line != 2 {
		t.Errorf("issue.Line = %d, want 2", issue.Line)
	}
}

func TestLintInvalidDateSkipsOrderCheck(t *testing.T) {
	// A broken date should report once and not cascade into ordering
	// noise for its neighbors.
	src := `[2024-03-10] - A - [[EN]](https://example.com/a)
[2024-13-01] - B - [[EN]](https://example.com/b)
[2024-01-01] - C - [[EN]](https://example.com/c)

Last updated: 2024-03-10
Total posts: 3
`
	issues, err := Lint(src)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	for _, i := range issues {
		if i.Rule == RuleOrder {
			t.Errorf("unexpected order issue: %v", i)
		}
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Line: 7, Rule: RuleDate, Message: "bad date"}
	if got := i.String(); got != "line 7: [date] bad date" {
		t.Errorf("String = %q", got)
	}
	i = Issue{Rule: RuleFooter, Message: "missing footer"}
	if got := i.String(); got != "[footer] missing footer" {
		t.Errorf("String = %q", got)
	}
}

func TestValidURL(t *testing.T) {
	valid := []string{
		"https://example.com/post",
		"http://example.com",
		" https://example.com/trimmed ",
	}
	for _, u := range valid {
		if !ValidURL(u) {
			t.Errorf("ValidURL(%q) = false, want true", u)
		}
	}
	invalid := []string{
		"",
		"example.com/no-scheme",
		"ftp://example.com",
		"https://",
		"/relative/path",
	}
	for _, u := range invalid {
		if ValidURL(u) {
			t.Errorf("ValidURL(%q) = true, want false", u)
		}
	}
}
