package dsl

import (
	"fmt"

	"github.com/aretw0/nfasim/pkg/adapters/memory"
	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/nfa"
)

// Builder manages the automaton construction.
type Builder struct {
	name     string
	order    []string
	states   map[string]*StateBuilder
	alphabet []string
	seen     map[string]struct{}
	start    string
}

// New creates a new automaton builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[string]*StateBuilder),
		seen:   make(map[string]struct{}),
	}
}

// Add declares a state. The first declared state is the default start.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Sigma declares alphabet symbols.
func (b *Builder) Sigma(symbols ...string) *Builder {
	for _, s := range symbols {
		b.symbol(s)
	}
	return b
}

func (b *Builder) symbol(s string) {
	if s == domain.FormatSymbol(domain.Epsilon) {
		return
	}
	if _, ok := b.seen[s]; ok {
		return
	}
	b.seen[s] = struct{}{}
	b.alphabet = append(b.alphabet, s)
}

// Definition returns the serializable form of the automaton.
func (b *Builder) Definition() domain.Definition {
	def := domain.Definition{
		Name:     b.name,
		States:   append([]string(nil), b.order...),
		Alphabet: append([]string(nil), b.alphabet...),
		Start:    b.start,
	}
	for _, name := range b.order {
		sb := b.states[name]
		if sb.final {
			def.Final = append(def.Final, name)
		}
		def.Transitions = append(def.Transitions, sb.transitions...)
	}
	return def
}

// Build compiles the declared states into an automaton.
func (b *Builder) Build() (*nfa.Automaton, error) {
	a, err := nfa.FromDefinition(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton %q: %w", b.name, err)
	}
	return a, nil
}

// Store builds the automaton and returns an in-memory store holding its definition.
func (b *Builder) Store() (*memory.Store, error) {
	if _, err := b.Build(); err != nil {
		return nil, err
	}
	def := b.Definition()
	store, err := memory.NewStore(&def)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}
