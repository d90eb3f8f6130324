/*
Package domain contains the core domain models shared by the nfasim engine and its adapters.

It defines the serializable shape of an automaton (Definition), the outcome of a
simulation (Verdict), the error taxonomy and the lifecycle hooks used for
observability. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Definition: A portable description of an NFA (states, alphabet, start, finals, transitions).
  - TransitionDef: One labeled edge set, from a single state on a single symbol.
  - Verdict: The result of running an input through an automaton (acceptance, max copies, trace).
  - LifecycleHooks: Callbacks fired by the engine around each simulation.
*/
package domain
