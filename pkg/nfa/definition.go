package nfa

import (
	"fmt"
	"slices"

	"github.com/aretw0/nfasim/pkg/domain"
)

// FromDefinition compiles a definition by replaying the registration operations:
// states, alphabet, start, finals, then transitions. The first error aborts the
// build and is returned wrapped with the element that caused it.
func FromDefinition(def domain.Definition) (*Automaton, error) {
	a := New(def.Name)

	for _, name := range def.States {
		if err := a.AddState(name); err != nil {
			return nil, fmt.Errorf("state %q: %w", name, err)
		}
	}

	for _, raw := range def.Alphabet {
		symbol, err := domain.ParseSymbol(raw)
		if err != nil {
			return nil, fmt.Errorf("alphabet: %w", err)
		}
		if err := a.AddSigma(symbol); err != nil {
			return nil, fmt.Errorf("alphabet: %w", err)
		}
	}

	if def.Start != "" {
		if err := a.SetStart(def.Start); err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
	}

	for _, name := range def.Final {
		if err := a.SetFinal(name); err != nil {
			return nil, fmt.Errorf("final: %w", err)
		}
	}

	for i, t := range def.Transitions {
		symbol, err := domain.ParseSymbol(t.Symbol)
		if err != nil {
			return nil, fmt.Errorf("transition #%d: %w", i, err)
		}
		if err := a.AddTransition(t.From, t.To, symbol); err != nil {
			return nil, fmt.Errorf("transition #%d: %w", i, err)
		}
	}

	return a, nil
}

// Definition exports the automaton. Transitions are grouped per state in
// declaration order, alphabet symbols first (in alphabet order) and epsilon last,
// so the output is stable across calls.
func (a *Automaton) Definition() domain.Definition {
	def := domain.Definition{
		Name:     a.name,
		States:   make([]string, 0, len(a.states)),
		Alphabet: make([]string, 0, a.alphabet.Len()),
		Final:    a.Names(a.finals),
	}
	for _, st := range a.states {
		def.States = append(def.States, st.name)
	}
	for _, symbol := range a.alphabet.symbols {
		def.Alphabet = append(def.Alphabet, domain.FormatSymbol(symbol))
	}
	if start, ok := a.Start(); ok {
		def.Start = start.name
	}

	order := append(slices.Clone(a.alphabet.symbols), domain.Epsilon)
	for _, st := range a.states {
		for _, symbol := range order {
			dest := a.table.destinations(st.id, symbol)
			if dest.Len() == 0 {
				continue
			}
			def.Transitions = append(def.Transitions, domain.TransitionDef{
				From:   st.name,
				Symbol: domain.FormatSymbol(symbol),
				To:     a.Names(dest),
			})
		}
	}
	return def
}
