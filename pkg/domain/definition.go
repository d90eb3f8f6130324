package domain

import "slices"

// Definition is the portable description of an automaton.
// It is what loaders produce and stores persist; the nfa package compiles it
// into an executable Automaton.
type Definition struct {
	// Name identifies the automaton inside a store or repository.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Description is free text, shown by 'inspect'.
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// States lists every state name, in declaration order.
	States []string `json:"states" yaml:"states" mapstructure:"states"`

	// Alphabet lists the input symbols. Each entry must be a single character
	// and must not be the epsilon symbol.
	Alphabet []string `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`

	// Start is the start state. If empty, the first declared state is used.
	Start string `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`

	// Final lists the accepting states.
	Final []string `json:"final" yaml:"final" mapstructure:"final"`

	// Transitions holds the labeled edges.
	Transitions []TransitionDef `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// TransitionDef is a set of edges from one state on one symbol.
type TransitionDef struct {
	From   string   `json:"from" yaml:"from" mapstructure:"from"`
	Symbol string   `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	To     []string `json:"to" yaml:"to" mapstructure:"to"`
}

// IsEpsilon reports whether the transition consumes no input.
func (t TransitionDef) IsEpsilon() bool {
	return t.Symbol == FormatSymbol(Epsilon)
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	c := *d
	c.States = slices.Clone(d.States)
	c.Alphabet = slices.Clone(d.Alphabet)
	c.Final = slices.Clone(d.Final)
	if d.Transitions != nil {
		c.Transitions = make([]TransitionDef, len(d.Transitions))
		for i, t := range d.Transitions {
			t.To = slices.Clone(t.To)
			c.Transitions[i] = t
		}
	}
	return &c
}
