package nfa

import (
	"fmt"

	"github.com/aretw0/nfasim/pkg/domain"
)

// TransitionTable maps (state, symbol) to the set of destination states.
// The symbol may be an alphabet symbol or domain.Epsilon. An entry is never
// an empty set: absence means "no transition".
type TransitionTable struct {
	edges    []map[rune]StateSet
	alphabet *Alphabet
}

// NewTransitionTable creates a table whose non-epsilon symbols are checked against alphabet.
func NewTransitionTable(alphabet *Alphabet) *TransitionTable {
	return &TransitionTable{alphabet: alphabet}
}

// grow registers one more state slot. The automaton calls it from AddState.
func (t *TransitionTable) grow() {
	t.edges = append(t.edges, nil)
}

func (t *TransitionTable) known(id StateID) bool {
	return id >= 0 && int(id) < len(t.edges)
}

// AddTransition unions to into the destinations of (from, symbol).
// Transitions accumulate; they never overwrite earlier ones.
func (t *TransitionTable) AddTransition(from StateID, to []StateID, symbol rune) error {
	if !t.known(from) {
		return fmt.Errorf("%w: source #%d", domain.ErrUnknownState, from)
	}
	if len(to) == 0 {
		return domain.ErrEmptyTransition
	}
	for _, id := range to {
		if !t.known(id) {
			return fmt.Errorf("%w: destination #%d", domain.ErrUnknownState, id)
		}
	}
	if symbol != domain.Epsilon && !t.alphabet.Contains(symbol) {
		return fmt.Errorf("%w: %q is not in the alphabet", domain.ErrInvalidSymbol, symbol)
	}

	bySymbol := t.edges[from]
	if bySymbol == nil {
		bySymbol = make(map[rune]StateSet)
		t.edges[from] = bySymbol
	}
	dest, ok := bySymbol[symbol]
	if !ok {
		dest = make(StateSet, len(to))
		bySymbol[symbol] = dest
	}
	for _, id := range to {
		dest.Add(id)
	}
	return nil
}

// DestinationsOf returns a copy of the destinations of (state, symbol).
// The set is empty when there is no such transition; an error is only
// returned when the state itself does not belong to the table.
func (t *TransitionTable) DestinationsOf(state StateID, symbol rune) (StateSet, error) {
	if !t.known(state) {
		return nil, fmt.Errorf("%w: #%d", domain.ErrUnknownState, state)
	}
	dest := t.destinations(state, symbol)
	if dest == nil {
		return make(StateSet), nil
	}
	return dest.Clone(), nil
}

// destinations returns the stored set without copying. Callers must not mutate it.
func (t *TransitionTable) destinations(state StateID, symbol rune) StateSet {
	if !t.known(state) {
		return nil
	}
	return t.edges[state][symbol]
}

// Symbols returns the symbols (epsilon included) leaving state, unordered.
func (t *TransitionTable) Symbols(state StateID) []rune {
	if !t.known(state) {
		return nil
	}
	res := make([]rune, 0, len(t.edges[state]))
	for symbol := range t.edges[state] {
		res = append(res, symbol)
	}
	return res
}

// HasEpsilon reports whether any epsilon transition exists.
func (t *TransitionTable) HasEpsilon() bool {
	for _, bySymbol := range t.edges {
		if _, ok := bySymbol[domain.Epsilon]; ok {
			return true
		}
	}
	return false
}

// IsDeterministic reports whether every state has exactly one destination for
// every alphabet symbol and no epsilon transition exists. Missing transitions
// count against determinism. A table without states is not deterministic.
func (t *TransitionTable) IsDeterministic() bool {
	if len(t.edges) == 0 {
		return false
	}
	if t.HasEpsilon() {
		return false
	}
	for id := range t.edges {
		for _, symbol := range t.alphabet.symbols {
			if t.edges[id][symbol].Len() != 1 {
				return false
			}
		}
	}
	return true
}
