package domain

import "errors"

// ErrDuplicateState is returned when a state with the same name already exists.
var ErrDuplicateState = errors.New("duplicate state")

// ErrUnknownState is returned when a name does not refer to a state of the automaton.
var ErrUnknownState = errors.New("unknown state")

// ErrInvalidState is returned when a state name is not acceptable (e.g. empty).
var ErrInvalidState = errors.New("invalid state name")

// ErrInvalidSymbol is returned when a symbol is neither epsilon nor part of the alphabet,
// or when an alphabet symbol would shadow epsilon.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ErrEmptyTransition is returned when a transition has no destination states.
var ErrEmptyTransition = errors.New("transition has no destination")

// ErrNoStartState is returned when a simulation is requested before any start state exists.
var ErrNoStartState = errors.New("no start state")

// ErrDefinitionNotFound is returned when a named definition cannot be found in a store or loader.
var ErrDefinitionNotFound = errors.New("definition not found")
