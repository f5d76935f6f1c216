package sanitize

import (
	"net/url"
	"testing"
	"unicode/utf8"

	"bibshelf/src/internal/schema"
)

func TestCleanString(t *testing.T) {
	in := "  \tHello\x00World\n  "
	out := CleanString(in, 100)
	if out != "HelloWorld" {
		t.Fatalf("CleanString unexpected: %q", out)
	}
	if s := CleanString("abcdef", 3); s != "abc" {
		t.Fatalf("CleanString truncation: want 'abc', got %q", s)
	}
	if s := CleanString("éèêë", 2); s != "éè" {
		t.Fatalf("CleanString counts runes: got %q", s)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("CleanString produced invalid utf8")
	}
}

func TestCleanURL(t *testing.T) {
	if CleanURL("") != "" {
		t.Fatalf("CleanURL empty should be empty")
	}
	if CleanURL("not a url") != "" {
		t.Fatalf("CleanURL invalid should be empty")
	}
	u := CleanURL("https://example.com/a b")
	if _, err := url.Parse(u); err != nil {
		t.Fatalf("CleanURL not parseable: %v", err)
	}
	if CleanURL("ftp://x") != "" {
		t.Fatalf("only http/https allowed")
	}
}

func TestCleanDOI(t *testing.T) {
	cases := map[string]string{
		"https://doi.org/10.1029/abc": "10.1029/abc",
		"doi:10.1/x":                  "10.1/x",
		" 10.5/y ":                    "10.5/y",
	}
	for in, want := range cases {
		if got := CleanDOI(in); got != want {
			t.Fatalf("CleanDOI(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanEntry(t *testing.T) {
	e := schema.Entry{ID: "x", Type: " Article ", Key: " k1 ", Fields: map[string]string{
		"Author": "  Claudepierre, S. G.\x00 ",
		"url":    "https://e.org/a b",
		"doi":    "https://doi.org/10.1/ABC",
		"note":   "  ",
	}}
	CleanEntry(&e)
	if e.Type != "Article" || e.Key != "k1" {
		t.Fatalf("CleanEntry did not trim: %+v", e)
	}
	if e.Fields["author"] != "Claudepierre, S. G." {
		t.Fatalf("author: %q", e.Fields["author"])
	}
	if e.Fields["url"] != "https://e.org/a%20b" {
		t.Fatalf("url: %q", e.Fields["url"])
	}
	if e.Fields["doi"] != "10.1/ABC" {
		t.Fatalf("doi: %q", e.Fields["doi"])
	}
	if _, ok := e.Fields["note"]; ok {
		t.Fatalf("empty field kept: %+v", e.Fields)
	}
	CleanEntry(nil)
}

func TestCleanConstant(t *testing.T) {
	c := schema.StringConstant{Name: " grl ", Content: "Geophys.\x07 Res. Lett. "}
	CleanConstant(&c)
	if c.Name != "grl" || c.Content != "Geophys. Res. Lett." {
		t.Fatalf("CleanConstant: %+v", c)
	}
}
