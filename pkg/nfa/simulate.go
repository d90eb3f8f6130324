package nfa

import (
	"fmt"

	"github.com/aretw0/nfasim/pkg/domain"
)

// TraceStep is the set of active states after consuming Symbol.
// The first step of a trace has no symbol (Consumed is false): it is the
// closure of the start state.
type TraceStep struct {
	Symbol   rune
	Consumed bool
	Active   StateSet
}

// Trace is the sequence of active sets visited while reading an input.
// It always has len(input)+1 steps when the run completes.
type Trace []TraceStep

// Last returns the active set after the final symbol.
func (t Trace) Last() StateSet {
	if len(t) == 0 {
		return nil
	}
	return t[len(t)-1].Active
}

// MaxActive returns the largest active set size over the whole trace.
func (t Trace) MaxActive() int {
	maxSize := 0
	for _, step := range t {
		maxSize = max(maxSize, step.Active.Len())
	}
	return maxSize
}

// EpsilonClosure closes a set of this automaton's states under epsilon moves.
func (a *Automaton) EpsilonClosure(seeds StateSet) StateSet {
	return a.table.EpsilonClosure(seeds)
}

// EClosure returns, in declaration order, the names of the states reachable
// from the named states using only epsilon transitions (the states themselves included).
func (a *Automaton) EClosure(names ...string) ([]string, error) {
	seeds, err := a.Resolve(names...)
	if err != nil {
		return nil, err
	}
	return a.Names(a.table.EpsilonClosure(seeds)), nil
}

// Trace runs input through the automaton and records every active set.
// It fails with domain.ErrNoStartState when the automaton has no start state and
// with domain.ErrInvalidSymbol as soon as a symbol outside the alphabet is read.
// An empty input consumes nothing: the trace is the start closure alone.
func (a *Automaton) Trace(input string) (Trace, error) {
	if !a.hasStart {
		return nil, domain.ErrNoStartState
	}

	current := a.table.EpsilonClosure(NewStateSet(a.start))
	trace := make(Trace, 0, len(input)+1)
	trace = append(trace, TraceStep{Active: current})

	for pos, symbol := range input {
		if !a.alphabet.Contains(symbol) {
			return nil, fmt.Errorf("%w: %q at offset %d", domain.ErrInvalidSymbol, symbol, pos)
		}
		current = a.table.EpsilonClosure(a.table.step(current, symbol))
		trace = append(trace, TraceStep{Symbol: symbol, Consumed: true, Active: current})
	}
	return trace, nil
}

// Accepts reports whether input leads to a final state. Inputs that cannot be
// simulated (invalid symbol, no start state) are not accepted.
func (a *Automaton) Accepts(input string) bool {
	trace, err := a.Trace(input)
	if err != nil {
		return false
	}
	return trace.Last().Intersects(a.finals)
}

// MaxCopies returns the largest number of simultaneously active states seen
// while reading input, counting the initial closure. It is 0 for inputs that
// cannot be simulated.
func (a *Automaton) MaxCopies(input string) int {
	trace, err := a.Trace(input)
	if err != nil {
		return 0
	}
	return trace.MaxActive()
}

// Evaluate runs input once and reports acceptance, the copy metric and the
// named trace together. The returned error is the reason the input could not be
// simulated; the verdict is still usable (rejected, zero copies) in that case.
func (a *Automaton) Evaluate(input string) (domain.Verdict, error) {
	verdict := domain.Verdict{Input: input}

	trace, err := a.Trace(input)
	if err != nil {
		verdict.Error = err.Error()
		return verdict, err
	}

	verdict.Accepted = trace.Last().Intersects(a.finals)
	verdict.MaxCopies = trace.MaxActive()
	verdict.Trace = make([]domain.Step, len(trace))
	for i, step := range trace {
		verdict.Trace[i] = domain.Step{Active: a.Names(step.Active)}
		if step.Consumed {
			verdict.Trace[i].Symbol = domain.FormatSymbol(step.Symbol)
		}
	}
	return verdict, nil
}
