package formatcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const messy = `@String{grl = "Geophys. Res. Lett."}
@Article{c2014,
journal = grl, AUTHOR = {Claudepierre, S. G.},
title={Radiation belt electrons},
}
`

func TestFormatRewritesFile(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	path := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(path, []byte(messy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "width=120") {
		t.Fatalf("default width not reported: %q", out.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := string(b)
	if !strings.HasPrefix(got, `@String{grl = "Geophys. Res. Lett."}`) {
		t.Fatalf("constants must come first:\n%s", got)
	}
	// Article order: author, title, journal (required fields), references bare.
	want := "@Article{c2014,\n  author = {Claudepierre, S. G.},\n  title = {Radiation belt electrons},\n  journal = grl,\n}\n"
	if !strings.Contains(got, want) {
		t.Fatalf("entry not canonical:\n%s", got)
	}
}

func TestFormatStdoutLeavesFile(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	path := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(path, []byte(messy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--stdout", "-w", "40", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "@Article{c2014,") {
		t.Fatalf("stdout missing entry: %q", out.String())
	}
	b, _ := os.ReadFile(path)
	if string(b) != messy {
		t.Fatalf("file should be untouched")
	}
}

func TestFormatMissingFile(t *testing.T) {
	chdirForTest(t, t.TempDir())
	cmd := New()
	cmd.SetArgs([]string{"nope.bib"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
