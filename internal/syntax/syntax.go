// Package syntax loads highlighting rule sets: a built-in default set
// plus optional per-language definitions from YAML files. The loaded
// registry is fixed for the life of the session; an invalid pattern is
// a configuration error surfaced at startup, never swallowed.
package syntax

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tern-editor/tern/internal/renderer/highlight"
)

// Definition is one language's highlighting description as it appears
// in a YAML file.
type Definition struct {
	Name      string    `yaml:"name"`
	FileTypes []string  `yaml:"filetypes"`
	Rules     []RuleDef `yaml:"rules"`
}

// RuleDef pairs a pattern with the color tag its matches claim. Color
// holds a theme tag like "keyword", a palette name, or a hex value.
type RuleDef struct {
	Pattern string `yaml:"pattern"`
	Color   string `yaml:"color"`
}

// Builtin returns the default rule set used when no definition claims
// a file: C-family keywords, double-quoted strings, line comments.
func Builtin() []highlight.Rule {
	return []highlight.Rule{
		highlight.MustRule(`\b(int|void|return|if|else|for|while|class)\b`, "keyword"),
		highlight.MustRule(`".*?"`, "string"),
		highlight.MustRule(`//.*`, "comment"),
	}
}

// Registry maps file extensions to compiled rule sets.
type Registry struct {
	byExt map[string][]highlight.Rule
	names map[string]string // extension -> language name
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string][]highlight.Rule),
		names: make(map[string]string),
	}
}

// LoadDir builds a registry from every .yaml/.yml file in dir. A
// missing directory yields an empty registry; an unparseable file or
// pattern is a configuration error.
func LoadDir(dir string) (*Registry, error) {
	reg := NewRegistry()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("syntax dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		def, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(def); err != nil {
			return nil, fmt.Errorf("syntax %s: %w", path, err)
		}
	}
	return reg, nil
}

// loadFile parses one definition file.
func loadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("syntax %s: %w", path, err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("syntax %s: %w", path, err)
	}
	return def, nil
}

// Add compiles def's rules and registers them for its file types.
func (r *Registry) Add(def Definition) error {
	if len(def.FileTypes) == 0 {
		return fmt.Errorf("definition %q has no filetypes", def.Name)
	}
	rules := make([]highlight.Rule, 0, len(def.Rules))
	for _, rd := range def.Rules {
		if rd.Pattern == "" {
			return fmt.Errorf("definition %q has a rule without a pattern", def.Name)
		}
		rule, err := highlight.NewRule(rd.Pattern, rd.Color)
		if err != nil {
			return err
		}
		rules = append(rules, rule)
	}
	for _, ft := range def.FileTypes {
		ext := normalizeExt(ft)
		r.byExt[ext] = rules
		r.names[ext] = def.Name
	}
	return nil
}

// RulesFor returns the rule set claiming path's extension, falling
// back to the built-in default set.
func (r *Registry) RulesFor(path string) []highlight.Rule {
	if rules, ok := r.byExt[normalizeExt(filepath.Ext(path))]; ok {
		return rules
	}
	return Builtin()
}

// LanguageFor returns the registered language name for path, or "".
func (r *Registry) LanguageFor(path string) string {
	return r.names[normalizeExt(filepath.Ext(path))]
}

// Languages returns the registered language names, sorted and
// deduplicated.
func (r *Registry) Languages() []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range r.names {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
