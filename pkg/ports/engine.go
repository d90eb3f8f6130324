package ports

import (
	"context"

	"github.com/aretw0/nfasim/pkg/domain"
)

// Simulator is the engine surface used by transport adapters (HTTP, MCP).
// Every method is safe for concurrent use.
type Simulator interface {
	// Evaluate runs input through the named automaton.
	// A non-nil error means the automaton could not be obtained; invalid input
	// is reported inside the Verdict instead.
	Evaluate(ctx context.Context, name, input string) (domain.Verdict, error)

	// Closure returns the epsilon-closure of the given states of the named automaton.
	Closure(ctx context.Context, name string, states ...string) ([]string, error)

	// Describe returns the normalized definition of the named automaton.
	Describe(ctx context.Context, name string) (*domain.Definition, error)

	// List returns the names of every available automaton.
	List(ctx context.Context) ([]string, error)
}
