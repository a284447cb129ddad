// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translit

import "sync"

type runeSet map[rune]struct{}

func newRuneSet(s string) runeSet {
	set := make(runeSet)
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

func (s runeSet) has(r rune) bool {
	_, ok := s[r]
	return ok
}

// classes holds the character sets consulted while rendering a match.
type classes struct {
	// capitals is compared against the literal original rune.
	capitals runeSet
	// letters and voicing are compared against lowercased neighbours.
	letters runeSet
	voicing runeSet
}

var defaultClasses = sync.OnceValue(func() *classes {
	return &classes{
		capitals: newRuneSet("ΑΆΒΓΔΕΈΖΗΉΘΙΊΪΚΛΜΝΞΟΌΠΡΣΤΥΎΫΦΧΨΩΏ"),
		letters:  newRuneSet(alphabetGreek),
		voicing:  newRuneSet("αάβγδεέζηλιμνορυω"),
	}
})
