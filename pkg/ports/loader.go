package ports

import (
	"context"

	"github.com/aretw0/nfasim/pkg/domain"
)

// DefinitionLoader defines how the engine retrieves automaton definitions.
// This allows the storage layer (Loam, Redis, Memory) to be decoupled.
type DefinitionLoader interface {
	// Load retrieves a definition by name.
	// Returns domain.ErrDefinitionNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.Definition, error)

	// List returns the names of every available definition, sorted.
	List(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// The engine uses it to drop compiled automata whose source changed.
type Watchable interface {
	// Watch returns a channel that receives the name of each changed definition.
	Watch(ctx context.Context) (<-chan string, error)
}
