package nfa

import "github.com/aretw0/nfasim/pkg/domain"

// EpsilonClosure returns the smallest set containing seeds that is closed under
// epsilon moves. The walk uses an explicit stack and marks states when they are
// pushed, so self loops and epsilon cycles terminate. The closure of a set is the
// union of the closures of its members; an empty seed yields an empty set.
func (t *TransitionTable) EpsilonClosure(seeds StateSet) StateSet {
	closure := make(StateSet, len(seeds))
	stack := make([]StateID, 0, len(seeds))
	for id := range seeds {
		if closure.Add(id) {
			stack = append(stack, id)
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for next := range t.destinations(id, domain.Epsilon) {
			if closure.Add(next) {
				stack = append(stack, next)
			}
		}
	}
	return closure
}

// step returns the states reachable from current by consuming symbol,
// before closing over epsilon moves.
func (t *TransitionTable) step(current StateSet, symbol rune) StateSet {
	stepped := make(StateSet)
	for id := range current {
		stepped.AddAll(t.destinations(id, symbol))
	}
	return stepped
}
