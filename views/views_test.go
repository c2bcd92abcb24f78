package views

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"postindex"
	"postindex/indexdoc"
)

func renderToString(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return b.String()
}

func testConfig() postindex.SiteConfig {
	return postindex.SiteConfig{
		Name:        "My Posts",
		URL:         "https://posts.example.com",
		Description: "Articles in EN and RU",
	}
}

func TestHomeRendersMetaAndEntries(t *testing.T) {
	cfg := testConfig()
	v := Default(cfg)

	entries := []postindex.Entry{
		{Slug: "profiling", Title: "Profiling Go Services", Date: "2024-03-10", Links: []indexdoc.Link{
			{Lang: "EN", URL: "https://example.com/en/profiling"},
			{Lang: "RU", URL: "https://example.com/ru/profiling"},
		}, Published: true},
	}
	out := renderToString(t, v.Home(entries, "", []string{"EN", "RU"}, cfg.URL))

	for _, want := range []string{
		"<title>My Posts</title>",
		`<link rel="canonical" href="https://posts.example.com"/>`,
		`<meta property="og:url" content="https://posts.example.com"/>`,
		`<meta property="og:type" content="website"/>`,
		`<meta property="og:site_name" content="My Posts"/>`,
		"Profiling Go Services",
		`href="/go/profiling/en/"`,
		`href="/go/profiling/ru/"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestHomePartialHasNoDocumentShell(t *testing.T) {
	v := Default(testConfig())
	out := renderToString(t, v.HomePartial(nil, "", nil, ""))
	if strings.Contains(out, "<!DOCTYPE html>") {
		t.Errorf("partial should not include the document shell:\n%s", out)
	}
	if !strings.Contains(out, "No posts yet.") {
		t.Errorf("empty list placeholder missing:\n%s", out)
	}
}

func TestAdminFormShowsUncontrolledLinks(t *testing.T) {
	v := Default(testConfig())
	entry := postindex.Entry{
		Slug: "multilingual", Title: "Multilingual Post", Date: "2024-06-01",
		Links: []indexdoc.Link{
			{Lang: "EN", URL: "https://example.com/en"},
			{Lang: "DE", URL: "https://example.com/de"},
		},
	}
	out := renderToString(t, v.AdminFormPartial(entry, "token"))

	if !strings.Contains(out, `value="https://example.com/en"`) {
		t.Errorf("EN field not prefilled:\n%s", out)
	}
	if !strings.Contains(out, "[DE] https://example.com/de") {
		t.Errorf("form should show the link it has no field for:\n%s", out)
	}
}

func TestAdminPagesCarryNoCanonicalURL(t *testing.T) {
	v := Default(testConfig())
	out := renderToString(t, v.AdminLogin(false, "token"))
	if strings.Contains(out, `rel="canonical"`) {
		t.Errorf("admin pages should not advertise a canonical URL:\n%s", out)
	}
	if !strings.Contains(out, "<title>Admin</title>") {
		t.Errorf("admin title missing:\n%s", out)
	}
}
