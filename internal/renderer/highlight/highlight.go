// Package highlight provides rule-based syntax highlighting. A
// highlighter maps a raw line to an ordered list of spans, each either
// claimed by one rule's color tag or plain, and can render the line as
// an ANSI-colorized string. Highlighting is deterministic and
// side-effect free; rules are fixed for the highlighter's lifetime.
package highlight

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Reset is the ANSI sequence restoring the terminal's default colors.
const Reset = "\x1b[0m"

// Rule pairs a regular expression with the color tag its matches
// claim. Rules registered earlier take priority over later ones.
type Rule struct {
	pattern *regexp.Regexp
	tag     string
}

// NewRule compiles pattern into a rule claiming tag.
func NewRule(pattern, tag string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", pattern, err)
	}
	return Rule{pattern: re, tag: tag}, nil
}

// MustRule is NewRule for statically known patterns; it panics on a
// bad pattern.
func MustRule(pattern, tag string) Rule {
	r, err := NewRule(pattern, tag)
	if err != nil {
		panic(err)
	}
	return r
}

// Tag returns the rule's color tag.
func (r Rule) Tag() string { return r.tag }

// Span is a maximal sub-range of a line, claimed by one rule's tag or
// plain. Start and End are byte offsets, half open.
type Span struct {
	Start int
	End   int
	Tag   string // empty for plain text
}

// Highlighter applies an ordered rule set against raw lines.
type Highlighter struct {
	theme *Theme
	rules []Rule
}

// New creates a highlighter with the given theme and rules. A nil
// theme falls back to the default theme.
func New(theme *Theme, rules ...Rule) *Highlighter {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Highlighter{theme: theme, rules: rules}
}

// Theme returns the theme the highlighter renders with.
func (h *Highlighter) Theme() *Theme { return h.theme }

// ScanLine partitions line into spans. Each rule in registration order
// finds all non-overlapping matches against the original raw line;
// a match claims its byte range unless any part is already claimed by
// an earlier rule. Gaps between claimed ranges come back as plain
// spans. An empty line yields no spans.
func (h *Highlighter) ScanLine(line string) []Span {
	covered := make([]bool, len(line))
	var claims []Span

	for _, rule := range h.rules {
		for _, m := range rule.pattern.FindAllStringIndex(line, -1) {
			start, end := m[0], m[1]
			if end <= start || isCovered(covered, start, end) {
				continue
			}
			markCovered(covered, start, end)
			claims = append(claims, Span{Start: start, End: end, Tag: rule.tag})
		}
	}

	sort.Slice(claims, func(i, j int) bool { return claims[i].Start < claims[j].Start })

	spans := make([]Span, 0, 2*len(claims)+1)
	pos := 0
	for _, c := range claims {
		if c.Start > pos {
			spans = append(spans, Span{Start: pos, End: c.Start})
		}
		spans = append(spans, c)
		pos = c.End
	}
	if pos < len(line) {
		spans = append(spans, Span{Start: pos, End: len(line)})
	}
	return spans
}

// Colorize renders line with ANSI color markers: claimed spans as
// prefix + text + reset, plain spans verbatim. A line with zero
// matches renders byte-identical to its input.
func (h *Highlighter) Colorize(line string) string {
	var sb strings.Builder
	for _, s := range h.ScanLine(line) {
		text := line[s.Start:s.End]
		prefix := h.theme.Prefix(s.Tag)
		if prefix == "" {
			sb.WriteString(text)
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(text)
		sb.WriteString(Reset)
	}
	return sb.String()
}

func isCovered(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}
