/*
Package nfasim simulates non-deterministic finite automata with epsilon transitions.

An automaton is a labeled state graph: states, an input alphabet, a start state,
a set of final states and a transition relation that maps a state and a symbol
(or epsilon) to a set of states. The simulation tracks every state the automaton
could be in at once, so it answers two questions for an input string: whether it
is accepted, and how many parallel copies of the machine were alive at the
busiest point.

# Layout

  - pkg/nfa holds the core: state arena, alphabet, transition table, closure and simulation.
  - pkg/domain holds the serializable Definition and Verdict plus the error taxonomy.
  - pkg/adapters provide definition sources (Loam, Redis, memory) and transports (HTTP, MCP).
  - Engine, in this package, ties a loader to a cache of compiled automata.

# Usage

	eng, err := nfasim.New("./automata")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	verdict, err := eng.Evaluate(ctx, "ends-with-01", "1101")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(verdict.Accepted, verdict.MaxCopies)

Definitions are Markdown documents with YAML front matter (or plain YAML/JSON files):

	---
	name: ends-with-01
	states: [p, q, r]
	alphabet: ["0", "1"]
	final: [r]
	transitions:
	  - {from: p, symbol: "0", to: [p, q]}
	  - {from: p, symbol: "1", to: [p]}
	  - {from: q, symbol: "1", to: [r]}
	---

The symbol "e" is reserved for epsilon transitions.
*/
package nfasim
