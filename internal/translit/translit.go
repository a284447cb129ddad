// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translit converts Greek text to Latin script following ELOT 743.
//
// Matching is an ordered-rule scan: at each position the rules are tried in
// table priority order and the first match wins. Digraphs are listed before
// the single letters they start with, so priority stands in for longest
// match. Context rules (μπ and the αυ/ευ/ηυ diphthongs) look at neighbouring
// runes of the original input, never at the output being built.
package translit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Transliterator renders Greek text in Latin script. It holds only
// immutable tables and is safe for concurrent use.
type Transliterator struct {
	table   *Table
	classes *classes
	nfc     bool
}

// Option configures a Transliterator.
type Option func(*Transliterator)

// WithNFC normalizes input to NFC before scanning, so decomposed accents
// (α followed by U+0301) match the precomposed rules.
func WithNFC() Option {
	return func(t *Transliterator) {
		t.nfc = true
	}
}

// New returns a Transliterator over the default ELOT 743 table.
func New(opts ...Option) *Transliterator {
	t := &Transliterator{
		table:   DefaultTable(),
		classes: defaultClasses(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Table returns the rule table used by t.
func (t *Transliterator) Table() *Table {
	return t.table
}

// Transliterate returns text with every recognized Greek grapheme replaced.
// Everything else passes through unchanged. It fails only on invalid UTF-8.
func (t *Transliterator) Transliterate(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	if !utf8.ValidString(text) {
		return "", newEncodingError(text)
	}
	if t.nfc {
		text = norm.NFC.String(text)
	}
	return t.render([]rune(text)), nil
}

func (t *Transliterator) render(src []rune) string {
	lower := make([]rune, len(src))
	for i, r := range src {
		lower[i] = unicode.ToLower(r)
	}

	var b strings.Builder
	b.Grow(len(src) * 2)

	for i := 0; i < len(src); {
		rule, ok := t.table.match(lower, i)
		if !ok {
			b.WriteRune(src[i])
			i++
			continue
		}
		end := i + rule.Len()
		b.WriteString(t.replace(rule, src, lower, i, end))
		i = end
	}
	return b.String()
}

// replace renders the match src[start:end]. Neighbour lookups read the
// original runes.
func (t *Transliterator) replace(rule *Rule, src, lower []rune, start, end int) string {
	matched := src[start:end]

	switch rule.Kind {
	case VoicedStop:
		out := "b"
		prev, hasPrev := runeAt(lower, start-1)
		next, hasNext := runeAt(lower, end)
		if hasPrev && hasNext && t.classes.letters.has(prev) && t.classes.letters.has(next) {
			out = "mp"
		}
		return mirrorCase(matched, out, t.classes.capitals)

	case Diphthong:
		head, _ := t.table.Lookup(firstLetter(rule.Pattern))
		out := head.Output + "f"
		if next, ok := runeAt(lower, end); ok && t.classes.voicing.has(next) {
			out = head.Output + "v"
		}
		return mirrorCase(matched, out, t.classes.capitals)

	default:
		// The rune after the match only informs casing.
		ref := src[start:min(end+1, len(src))]
		return mirrorCase(ref, rule.Output, t.classes.capitals)
	}
}

// runeAt is a bounds-checked read; ok is false outside s.
func runeAt(s []rune, i int) (r rune, ok bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

var std = New()

// Transliterate converts text with the default Transliterator.
func Transliterate(text string) (string, error) {
	return std.Transliterate(text)
}

// MustTransliterate is like Transliterate but panics on invalid UTF-8.
func MustTransliterate(text string) string {
	out, err := std.Transliterate(text)
	if err != nil {
		panic(err)
	}
	return out
}
