package ports

import (
	"context"

	"github.com/aretw0/nfasim/pkg/domain"
)

// DefinitionStore persists automaton definitions.
type DefinitionStore interface {
	DefinitionLoader

	// Save creates or replaces the definition stored under def.Name.
	Save(ctx context.Context, def *domain.Definition) error

	// Delete removes a definition. Deleting a missing definition is not an error.
	Delete(ctx context.Context, name string) error
}
