/*
Package nfa implements a non-deterministic finite automaton with epsilon transitions
and its set-of-states simulation.

States live in an arena and are addressed by StateID; names are only resolved at the
boundary (AddState, SetFinal, AddTransition, EClosure...). Simulation never mutates
the automaton, so a fully built Automaton can be shared between goroutines as long
as nobody registers new states or transitions on it afterwards.

# Simulation

Each call walks the input once:

	current := closure({start})
	for each symbol c:
		current = closure(⋃ destinations(s, c) for s in current)

Accepts folds the walk into "does the last set contain a final state", MaxCopies
into "largest set seen", so both answers always describe the same run.
*/
package nfa
