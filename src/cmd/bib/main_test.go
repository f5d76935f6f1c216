package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestExecuteHelpListsCommands(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute help: %v", err)
	}
	for _, name := range []string{"copy", "paste", "strings", "cite", "export-bib", "search", "format", "verify"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("help missing %q:\n%s", name, out.String())
		}
	}
}

func TestUnknownCommandFails(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"lookup"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}
