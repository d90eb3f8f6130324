package nfa

import (
	"fmt"

	"github.com/aretw0/nfasim/pkg/domain"
)

// Automaton is the composition root: it owns the states, the alphabet, the
// transition table, the start state and the set of final states.
//
// Registration methods (AddState, AddSigma, AddTransition, SetStart, SetFinal)
// must not run concurrently with anything else. Once built, every other
// method is a read and is safe for concurrent use.
type Automaton struct {
	name     string
	states   []State
	index    map[string]StateID
	alphabet *Alphabet
	table    *TransitionTable
	start    StateID
	hasStart bool
	finals   StateSet
}

// New creates an empty automaton.
func New(name string) *Automaton {
	alphabet := NewAlphabet()
	return &Automaton{
		name:     name,
		index:    make(map[string]StateID),
		alphabet: alphabet,
		table:    NewTransitionTable(alphabet),
		finals:   make(StateSet),
	}
}

// Name returns the automaton name (may be empty).
func (a *Automaton) Name() string {
	return a.name
}

// AddState creates a new state. The first state ever added becomes the start state.
func (a *Automaton) AddState(name string) error {
	if name == "" {
		return domain.ErrInvalidState
	}
	if _, ok := a.index[name]; ok {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateState, name)
	}
	st := State{id: StateID(len(a.states)), name: name}
	a.states = append(a.states, st)
	a.index[name] = st.id
	a.table.grow()

	if !a.hasStart {
		a.start = st.id
		a.hasStart = true
	}
	return nil
}

// SetStart makes name the start state.
func (a *Automaton) SetStart(name string) error {
	id, err := a.lookup(name)
	if err != nil {
		return err
	}
	a.start = id
	a.hasStart = true
	return nil
}

// SetFinal marks name as an accepting state.
func (a *Automaton) SetFinal(name string) error {
	id, err := a.lookup(name)
	if err != nil {
		return err
	}
	a.finals.Add(id)
	return nil
}

// AddSigma adds an input symbol. It is idempotent and rejects domain.Epsilon.
func (a *Automaton) AddSigma(symbol rune) error {
	return a.alphabet.Add(symbol)
}

// AddTransition adds edges from one state to each of to, labeled symbol.
// Use domain.Epsilon for epsilon transitions.
func (a *Automaton) AddTransition(from string, to []string, symbol rune) error {
	src, err := a.lookup(from)
	if err != nil {
		return err
	}
	dst := make([]StateID, 0, len(to))
	for _, name := range to {
		id, err := a.lookup(name)
		if err != nil {
			return err
		}
		dst = append(dst, id)
	}
	if err := a.table.AddTransition(src, dst, symbol); err != nil {
		return fmt.Errorf("transition %s -%c-> %v: %w", from, symbol, to, err)
	}
	return nil
}

// IsDFA reports whether the automaton is deterministic in the strict sense:
// exactly one transition per state and alphabet symbol, and no epsilon moves.
func (a *Automaton) IsDFA() bool {
	return a.table.IsDeterministic()
}

// Sigma returns the alphabet in insertion order.
func (a *Automaton) Sigma() []rune {
	return a.alphabet.Symbols()
}

// Alphabet exposes the alphabet (read-only use).
func (a *Automaton) Alphabet() *Alphabet {
	return a.alphabet
}

// Table exposes the transition table (read-only use).
func (a *Automaton) Table() *TransitionTable {
	return a.table
}

// State returns the state called name.
func (a *Automaton) State(name string) (State, bool) {
	id, ok := a.index[name]
	if !ok {
		return State{}, false
	}
	return a.states[id], true
}

// States returns every state in declaration order.
func (a *Automaton) States() []State {
	res := make([]State, len(a.states))
	copy(res, a.states)
	return res
}

// Start returns the start state, if any.
func (a *Automaton) Start() (State, bool) {
	if !a.hasStart {
		return State{}, false
	}
	return a.states[a.start], true
}

// Finals returns the accepting states in declaration order.
func (a *Automaton) Finals() []State {
	return a.statesOf(a.finals)
}

// IsFinal reports whether name is an accepting state.
func (a *Automaton) IsFinal(name string) bool {
	id, ok := a.index[name]
	return ok && a.finals.Contains(id)
}

// IsStart reports whether name is the start state.
func (a *Automaton) IsStart(name string) bool {
	id, ok := a.index[name]
	return ok && a.hasStart && a.start == id
}

// DestinationsOf returns the names of the states reached from name on symbol.
func (a *Automaton) DestinationsOf(name string, symbol rune) ([]string, error) {
	id, err := a.lookup(name)
	if err != nil {
		return nil, err
	}
	dest, err := a.table.DestinationsOf(id, symbol)
	if err != nil {
		return nil, err
	}
	return a.Names(dest), nil
}

// Resolve converts state names into a StateSet.
func (a *Automaton) Resolve(names ...string) (StateSet, error) {
	set := make(StateSet, len(names))
	for _, name := range names {
		id, err := a.lookup(name)
		if err != nil {
			return nil, err
		}
		set.Add(id)
	}
	return set, nil
}

// Names converts a StateSet into state names, in declaration order.
func (a *Automaton) Names(set StateSet) []string {
	ids := set.Sorted()
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if int(id) < len(a.states) {
			res = append(res, a.states[id].name)
		}
	}
	return res
}

func (a *Automaton) statesOf(set StateSet) []State {
	ids := set.Sorted()
	res := make([]State, 0, len(ids))
	for _, id := range ids {
		res = append(res, a.states[id])
	}
	return res
}

func (a *Automaton) lookup(name string) (StateID, error) {
	id, ok := a.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownState, name)
	}
	return id, nil
}
