package syntax

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tern-editor/tern/internal/renderer/highlight"
)

func writeDefinition(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const goDefinition = `name: go
filetypes:
  - go
rules:
  - pattern: '\b(func|return|package|import)\b'
    color: keyword
  - pattern: '//.*'
    color: comment
`

func TestBuiltinRules(t *testing.T) {
	rules := Builtin()
	if len(rules) != 3 {
		t.Fatalf("expected 3 builtin rules, got %d", len(rules))
	}
	tags := []string{rules[0].Tag(), rules[1].Tag(), rules[2].Tag()}
	want := []string{"keyword", "string", "comment"}
	for i, tag := range tags {
		if tag != want[i] {
			t.Errorf("rule %d: expected tag %q, got %q", i, want[i], tag)
		}
	}

	h := highlight.New(nil, rules...)
	spans := h.ScanLine(`int x; // note`)
	if len(spans) == 0 {
		t.Fatal("expected spans for builtin rules")
	}
	if spans[0].Tag != "keyword" {
		t.Errorf("expected leading keyword span, got %q", spans[0].Tag)
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	reg, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("expected nil error for missing dir, got %v", err)
	}
	rules := reg.RulesFor("main.go")
	if len(rules) != 3 {
		t.Errorf("expected builtin fallback, got %d rules", len(rules))
	}
}

func TestLoadDirParsesDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "go.yaml", goDefinition)

	reg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	rules := reg.RulesFor("cmd/main.go")
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules for .go, got %d", len(rules))
	}
	if rules[0].Tag() != "keyword" || rules[1].Tag() != "comment" {
		t.Errorf("unexpected tags: %q, %q", rules[0].Tag(), rules[1].Tag())
	}
	if lang := reg.LanguageFor("main.go"); lang != "go" {
		t.Errorf("expected language go, got %q", lang)
	}
}

func TestLoadDirRejectsBadPattern(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "broken.yaml", `name: broken
filetypes:
  - brk
rules:
  - pattern: '[unclosed'
    color: keyword
`)

	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("expected error to name the file, got %v", err)
	}
}

func TestLoadDirRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "bad.yaml", "name: [unterminated")

	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("expected error for malformed yaml")
	}
	if !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("expected error to name the file, got %v", err)
	}
}

func TestLoadDirSkipsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "notes.txt", "not yaml at all {{{")
	writeDefinition(t, dir, "go.yml", goDefinition)

	reg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(reg.RulesFor("x.go")) != 2 {
		t.Error("expected go.yml definition to load")
	}
}

func TestAddRequiresFileTypes(t *testing.T) {
	reg := NewRegistry()
	err := reg.Add(Definition{Name: "orphan"})
	if err == nil {
		t.Fatal("expected error for definition without filetypes")
	}
}

func TestExtensionMatchingIsCaseInsensitive(t *testing.T) {
	reg := NewRegistry()
	err := reg.Add(Definition{
		Name:      "c",
		FileTypes: []string{"C", "h"},
		Rules:     []RuleDef{{Pattern: `//.*`, Color: "comment"}},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(reg.RulesFor("main.c")) != 1 {
		t.Error("expected lowercase path to match uppercase filetype")
	}
	if len(reg.RulesFor("HEADER.H")) != 1 {
		t.Error("expected uppercase path to match")
	}
}

func TestLanguagesSortedAndDeduplicated(t *testing.T) {
	reg := NewRegistry()
	defs := []Definition{
		{Name: "ruby", FileTypes: []string{"rb"}},
		{Name: "c", FileTypes: []string{"c", "h"}},
	}
	for i := range defs {
		defs[i].Rules = []RuleDef{{Pattern: `//.*`, Color: "comment"}}
		if err := reg.Add(defs[i]); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	langs := reg.Languages()
	want := []string{"c", "ruby"}
	if len(langs) != len(want) {
		t.Fatalf("expected %v, got %v", want, langs)
	}
	for i, name := range want {
		if langs[i] != name {
			t.Errorf("expected %v, got %v", want, langs)
			break
		}
	}
}
