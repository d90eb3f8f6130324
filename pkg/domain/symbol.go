package domain

import (
	"fmt"
	"unicode/utf8"
)

// Epsilon is the reserved symbol labelling transitions that consume no input.
// It can never be part of an alphabet.
const Epsilon rune = 'e'

// ParseSymbol converts a textual symbol (as found in definition files) into a rune.
// Symbols must be exactly one character long.
func ParseSymbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q must be a single character", ErrInvalidSymbol, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// FormatSymbol is the inverse of ParseSymbol.
func FormatSymbol(r rune) string {
	return string(r)
}
