// Package translit implements a table-driven transliteration engine between
// the Latin and Cyrillic orthographies of Uzbek.
//
// Conversion works on user-perceived characters (grapheme clusters) of NFC
// normalised text and resolves the longest matching table key first, so
// digraphs and trigraphs win over single letters. The engine fails open: any
// letter it cannot map makes Convert return the input unchanged with
// fatvo.Failed.
//
// Round trips are exact only for text free of collapsing graphemes. Several
// Latin spellings of the same sound (o', o‘, o’, o` and oʻ) all become ў and
// come back as oʻ; c and w have no Cyrillic letter of their own. On the
// Cyrillic side ь is dropped, and ц, щ and ы come back as Latin spellings of
// other letters.
package translit

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/fatvo"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Position constrains where in a word a rule may apply.
type Position int

const (
	Anywhere  Position = iota
	WordStart          // first character of a word
	WordInner          // letters on both sides
)

// Rule maps one source grapheme sequence to its target spelling. From is
// matched case-insensitively and must be written in lower case.
type Rule struct {
	From     string
	To       string
	Position Position
}

// Table is a compiled, immutable set of rules for one direction.
type Table struct {
	rules       map[string][]Rule
	maxLen      int
	passthrough []*unicode.RangeTable
}

// NewTable compiles rules into a lookup table. Letters belonging to one of
// the passthrough scripts are copied unchanged when no rule matches them.
// Rules sharing a key are tried in the order given.
func NewTable(rules []Rule, passthrough ...*unicode.RangeTable) *Table {
	t := &Table{
		rules:       make(map[string][]Rule, len(rules)),
		passthrough: passthrough,
	}
	for _, r := range rules {
		key := norm.NFC.String(r.From)
		t.rules[key] = append(t.rules[key], r)
		if n := uniseg.GraphemeClusterCount(key); n > t.maxLen {
			t.maxLen = n
		}
	}
	return t
}

// Engine converts text using one table per direction. It is safe for
// concurrent use.
type Engine struct {
	tables map[fatvo.Direction]*Table
	logger *slog.Logger
}

var _ fatvo.Transliterator = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report unmapped graphemes.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine from a Latin→Cyrillic and a Cyrillic→Latin table.
func New(latinToCyrillic, cyrillicToLatin *Table, opts ...Option) *Engine {
	e := &Engine{
		tables: map[fatvo.Direction]*Table{
			fatvo.LatinToCyrillic: latinToCyrillic,
			fatvo.CyrillicToLatin: cyrillicToLatin,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convert transliterates text in the given direction. It never panics: on
// any failure it returns text unchanged together with fatvo.Failed.
func (e *Engine) Convert(text string, dir fatvo.Direction) (out string, outcome fatvo.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("transliteration panicked", "direction", dir, "panic", r)
			out, outcome = text, fatvo.Failed
		}
	}()

	if !utf8.ValidString(text) {
		e.logger.Debug("transliteration input is not valid UTF-8", "direction", dir)
		return text, fatvo.Failed
	}
	t, ok := e.tables[dir]
	if !ok || t == nil {
		e.logger.Debug("no table for direction", "direction", dir)
		return text, fatvo.Failed
	}
	converted, err := t.convert(norm.NFC.String(text))
	if err != nil {
		e.logger.Debug("transliteration failed", "direction", dir, "error", err)
		return text, fatvo.Failed
	}
	return converted, fatvo.Converted
}

func (t *Table) convert(s string) (string, error) {
	gs := graphemes(s)
	var b strings.Builder
	b.Grow(len(s) * 2)

	for i := 0; i < len(gs); {
		rule, n := t.match(gs, i)
		if n > 0 {
			b.WriteString(applyCase(gs, i, n, rule.To))
			i += n
			continue
		}
		g := gs[i]
		if t.unmapped(g) {
			return "", fmt.Errorf("unmapped grapheme %q at %d: %w", g, i, fatvo.ErrConversion)
		}
		b.WriteString(g)
		i++
	}
	return b.String(), nil
}

// match returns the longest rule applicable at position i and the number of
// graphemes it consumes, or zero when nothing matches.
func (t *Table) match(gs []string, i int) (Rule, int) {
	for n := min(t.maxLen, len(gs)-i); n > 0; n-- {
		key := strings.ToLower(strings.Join(gs[i:i+n], ""))
		for _, r := range t.rules[key] {
			if applies(r.Position, gs, i, n) {
				return r, n
			}
		}
	}
	return Rule{}, 0
}

func applies(p Position, gs []string, i, n int) bool {
	switch p {
	case WordStart:
		return i == 0 || !isLetter(gs[i-1])
	case WordInner:
		return i > 0 && isLetter(gs[i-1]) && i+n < len(gs) && isLetter(gs[i+n])
	default:
		return true
	}
}

// unmapped reports whether g is a letter the table should have known.
// Modifier letters such as ʻ and ʼ are punctuation for this purpose.
func (t *Table) unmapped(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	if !unicode.IsLetter(r) || unicode.Is(unicode.Lm, r) {
		return false
	}
	for _, script := range t.passthrough {
		if unicode.Is(script, r) {
			return false
		}
	}
	return true
}

// applyCase carries the case of the matched source onto the replacement.
func applyCase(gs []string, i, n int, to string) string {
	src := strings.Join(gs[i:i+n], "")
	cased := casedLetters(src)
	if cased == 0 {
		// Apostrophes take the case of the word around them.
		if i > 0 && isUpper(gs[i-1]) && i+n < len(gs) && isUpper(gs[i+n]) {
			return strings.ToUpper(to)
		}
		return to
	}
	first, _ := utf8.DecodeRuneInString(src)
	if !unicode.IsUpper(first) {
		return to
	}
	if cased > 1 {
		if src == strings.ToUpper(src) {
			return strings.ToUpper(to)
		}
		return title(to)
	}
	if i+n < len(gs) && isLetter(gs[i+n]) {
		if isUpper(gs[i+n]) {
			return strings.ToUpper(to)
		}
		return title(to)
	}
	if i > 0 && isLetter(gs[i-1]) && isUpper(gs[i-1]) {
		return strings.ToUpper(to)
	}
	return title(to)
}

func casedLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsLower(r) {
			n++
		}
	}
	return n
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isLetter(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return unicode.IsLetter(r)
}

func isUpper(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return unicode.IsUpper(r)
}

func graphemes(s string) []string {
	out := make([]string, 0, len(s))
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}
