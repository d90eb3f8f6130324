package dsl

import "github.com/aretw0/nfasim/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name        string
	final       bool
	transitions []domain.TransitionDef
	builder     *Builder
}

// On adds a transition consuming symbol into every target state.
func (s *StateBuilder) On(symbol string, targets ...string) *StateBuilder {
	s.builder.symbol(symbol)
	s.transitions = append(s.transitions, domain.TransitionDef{
		From:   s.name,
		Symbol: symbol,
		To:     targets,
	})
	return s
}

// Epsilon adds a transition that consumes no input.
func (s *StateBuilder) Epsilon(targets ...string) *StateBuilder {
	return s.On(domain.FormatSymbol(domain.Epsilon), targets...)
}

// Final marks the state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.final = true
	return s
}

// Start makes the state the start state, overriding the first declared one.
func (s *StateBuilder) Start() *StateBuilder {
	s.builder.start = s.name
	return s
}

// Name returns the state name.
func (s *StateBuilder) Name() string {
	return s.name
}
