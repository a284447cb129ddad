// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translit

import (
	"fmt"
	"sync"
	"unicode/utf8"
)

// RuleKind selects how a matched grapheme is rendered.
type RuleKind int

const (
	// Simple rules emit a fixed Latin string.
	Simple RuleKind = iota
	// VoicedStop is the μπ digraph: "b" at a word edge, "mp" inside a word.
	VoicedStop
	// Diphthong covers αυ, ευ and ηυ: the υ becomes "v" before a voiced
	// sound and "f" otherwise.
	Diphthong
)

// String returns the kind name used by the rules listing.
func (k RuleKind) String() string {
	switch k {
	case Simple:
		return "simple"
	case VoicedStop:
		return "voiced-stop"
	case Diphthong:
		return "diphthong"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON and YAML listings.
func (k RuleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Rule is the transliteration behaviour of one grapheme.
type Rule struct {
	// Pattern is one or two lowercase Greek letters.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Kind selects the rendering logic.
	Kind RuleKind `json:"kind" yaml:"kind"`

	// Output is the fixed replacement for Simple rules; empty otherwise.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	runes []rune
}

// Len returns the pattern length in runes.
func (r Rule) Len() int {
	return len(r.runes)
}

// Table is an ordered, immutable set of rules. Order is match priority.
type Table struct {
	rules []Rule
	index map[string]int
	// byFirst lists rule positions per leading rune, in priority order.
	byFirst map[rune][]int
}

// Rules returns a copy of the rules in priority order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Lookup returns the rule keyed by the exact lowercase pattern.
func (t *Table) Lookup(pattern string) (Rule, bool) {
	i, ok := t.index[pattern]
	if !ok {
		return Rule{}, false
	}
	return t.rules[i], true
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// add appends a rule unless its pattern is already a key. It reports
// whether the rule was added.
func (t *Table) add(r Rule) bool {
	if _, dup := t.index[r.Pattern]; dup {
		return false
	}
	r.runes = []rune(r.Pattern)
	t.index[r.Pattern] = len(t.rules)
	t.byFirst[r.runes[0]] = append(t.byFirst[r.runes[0]], len(t.rules))
	t.rules = append(t.rules, r)
	return true
}

// fallbackPlaceholder marks alphabet positions whose letters must already be
// claimed by an explicit rule.
const fallbackPlaceholder = "."

const (
	alphabetGreek = "αάβγδεέζηήθιίϊΐκλμνξοόπρσςτυύϋΰφχψωώ"
	alphabetLatin = "aavgdeezii.iiiiklmnxooprsstyyyyf..oo"
)

// buildTable assembles the ELOT 743 rules in priority order. Digraphs come
// before any single letter that could otherwise win at the same position.
func buildTable() (*Table, error) {
	t := &Table{
		index:   make(map[string]int),
		byFirst: make(map[rune][]int),
	}

	simple := func(out string, patterns ...string) {
		for _, p := range patterns {
			t.add(Rule{Pattern: p, Kind: Simple, Output: out})
		}
	}

	simple("ai", "αι", "αί")
	simple("oi", "οι", "οί")
	simple("ou", "ου", "ού")
	simple("ei", "ει", "εί")

	for _, p := range []string{"αυ", "αύ", "ευ", "εύ", "ηυ", "ηύ"} {
		t.add(Rule{Pattern: p, Kind: Diphthong})
	}

	simple("nt", "ντ")
	t.add(Rule{Pattern: "μπ", Kind: VoicedStop})

	simple("ts", "τσ", "τς")
	simple("tz", "τζ")
	simple("ng", "γγ")
	simple("gk", "γκ")

	simple("th", "θ")
	simple("ch", "χ")
	simple("ps", "ψ")

	simple("nch", "γχ")
	simple("nx", "γξ")

	greek := []rune(alphabetGreek)
	latin := []rune(alphabetLatin)
	if len(greek) != len(latin) {
		return nil, fmt.Errorf("fallback alphabet mismatch: %d greek, %d latin", len(greek), len(latin))
	}
	for i, g := range greek {
		key := string(g)
		out := string(latin[i])
		if _, claimed := t.index[key]; claimed {
			continue
		}
		if out == fallbackPlaceholder {
			return nil, fmt.Errorf("fallback letter %q has no explicit rule", key)
		}
		t.add(Rule{Pattern: key, Kind: Simple, Output: out})
	}

	return t, nil
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := buildTable()
	if err != nil {
		panic("translit: " + err.Error())
	}
	return t
})

// DefaultTable returns the shared ELOT 743 rule table.
func DefaultTable() *Table {
	return defaultTable()
}

// firstLetter returns the single-letter prefix of a pattern.
func firstLetter(pattern string) string {
	_, size := utf8.DecodeRuneInString(pattern)
	return pattern[:size]
}

// match returns the highest-priority rule whose pattern starts at lower[i].
func (t *Table) match(lower []rune, i int) (*Rule, bool) {
	for _, idx := range t.byFirst[lower[i]] {
		r := &t.rules[idx]
		if hasPrefixAt(lower, i, r.runes) {
			return r, true
		}
	}
	return nil, false
}

func hasPrefixAt(s []rune, i int, prefix []rune) bool {
	if len(s)-i < len(prefix) {
		return false
	}
	for j, r := range prefix {
		if s[i+j] != r {
			return false
		}
	}
	return true
}
