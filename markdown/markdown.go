// Package markdown renders assistant answers to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling.
package markdown

import (
	"regexp"

	"github.com/fwojciec/fatvo"
)

// citation matches the source markers the assistant's file search inserts,
// e.g. 【4:0†fatvo.pdf】.
var citation = regexp.MustCompile(`【[^】]*】`)

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width. Code blocks
// keep their lines. Citation markers are shortened to the source name.
func Render(source string, width int, theme fatvo.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	return newRenderer(theme).render([]byte(source), width)
}

// Sources returns the distinct source names cited in text, in order of first
// appearance.
func Sources(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range citation.FindAllString(text, -1) {
		name := sourceName(m)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// StripCitations removes citation markers from text.
func StripCitations(text string) string {
	return citation.ReplaceAllString(text, "")
}

// sourceName extracts the file name from a citation marker.
func sourceName(marker string) string {
	inner := []rune(marker)
	inner = inner[1 : len(inner)-1]
	for i, r := range inner {
		if r == '†' {
			return string(inner[i+1:])
		}
	}
	return ""
}
