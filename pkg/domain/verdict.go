package domain

// Step is one point of a simulation: the symbol just consumed (zero for the
// initial closure) and the states active afterwards, by name.
type Step struct {
	Symbol string   `json:"symbol,omitempty"`
	Active []string `json:"active"`
}

// Verdict is the outcome of running one input through an automaton.
type Verdict struct {
	Input     string `json:"input"`
	Accepted  bool   `json:"accepted"`
	MaxCopies int    `json:"max_copies"`
	Trace     []Step `json:"trace,omitempty"`
	// Error carries the reason a simulation was rejected before completion
	// (e.g. an input symbol outside the alphabet). Empty on a normal run.
	Error string `json:"error,omitempty"`
}
