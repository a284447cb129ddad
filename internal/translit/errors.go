// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translit

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidEncoding is matched by every *EncodingError.
var ErrInvalidEncoding = errors.New("invalid UTF-8 input")

// EncodingError reports input that is not valid UTF-8.
type EncodingError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("transliterate: invalid UTF-8 at byte %d", e.Offset)
}

// Is lets errors.Is match ErrInvalidEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

func newEncodingError(s string) *EncodingError {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return &EncodingError{Offset: i}
		}
		i += size
	}
	return &EncodingError{Offset: len(s)}
}
