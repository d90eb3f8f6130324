package nfa

import (
	"maps"
	"slices"
)

// StateID is the arena index of a state inside its Automaton.
// IDs are only meaningful for the automaton that issued them.
type StateID int

// State is an immutable named vertex of the automaton.
type State struct {
	id   StateID
	name string
}

// ID returns the arena index of the state.
func (s State) ID() StateID { return s.id }

// Name returns the state name.
func (s State) Name() string { return s.name }

func (s State) String() string { return s.name }

// StateSet is a set of states of one automaton.
type StateSet map[StateID]struct{}

// NewStateSet creates a set holding the given ids.
func NewStateSet(ids ...StateID) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s StateSet) Add(id StateID) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Contains reports whether id is in the set.
func (s StateSet) Contains(id StateID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of states in the set.
func (s StateSet) Len() int { return len(s) }

// AddAll inserts every element of other.
func (s StateSet) AddAll(other StateSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Union returns a new set with the elements of both sets.
func (s StateSet) Union(other StateSet) StateSet {
	res := make(StateSet, len(s)+len(other))
	res.AddAll(s)
	res.AddAll(other)
	return res
}

// Intersects reports whether the two sets share at least one state.
func (s StateSet) Intersects(other StateSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for id := range small {
		if large.Contains(id) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold the same states.
func (s StateSet) Equal(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s StateSet) Clone() StateSet {
	return maps.Clone(s)
}

// Sorted returns the ids in ascending (declaration) order.
func (s StateSet) Sorted() []StateID {
	return slices.Sorted(maps.Keys(s))
}
