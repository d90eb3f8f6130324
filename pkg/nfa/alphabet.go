package nfa

import (
	"fmt"

	"github.com/aretw0/nfasim/pkg/domain"
)

// Alphabet is the ordered set of input symbols. It never contains domain.Epsilon.
type Alphabet struct {
	symbols []rune
	index   map[rune]struct{}
}

// NewAlphabet creates an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{index: make(map[rune]struct{})}
}

// Add inserts a symbol, keeping insertion order. Adding an existing symbol is a no-op.
// The epsilon symbol is rejected so that it can never be redefined as an input.
func (a *Alphabet) Add(symbol rune) error {
	if symbol == domain.Epsilon {
		return fmt.Errorf("%w: %q is reserved for epsilon", domain.ErrInvalidSymbol, symbol)
	}
	if _, ok := a.index[symbol]; ok {
		return nil
	}
	a.index[symbol] = struct{}{}
	a.symbols = append(a.symbols, symbol)
	return nil
}

// Contains reports whether symbol belongs to the alphabet.
func (a *Alphabet) Contains(symbol rune) bool {
	_, ok := a.index[symbol]
	return ok
}

// Symbols returns the symbols in insertion order.
func (a *Alphabet) Symbols() []rune {
	res := make([]rune, len(a.symbols))
	copy(res, a.symbols)
	return res
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}
