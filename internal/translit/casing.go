// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translit

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// mirrorCase capitalizes candidate the way ref is capitalized. A capital
// followed by another capital (or standing alone) gives all caps; a capital
// followed by anything else gives title case.
func mirrorCase(ref []rune, candidate string, capitals runeSet) string {
	if len(ref) == 0 || !capitals.has(ref[0]) {
		return candidate
	}
	if len(ref) == 1 || capitals.has(ref[1]) {
		return strings.ToUpper(candidate)
	}
	r, size := utf8.DecodeRuneInString(candidate)
	if r == utf8.RuneError {
		return candidate
	}
	return string(unicode.ToUpper(r)) + candidate[size:]
}
