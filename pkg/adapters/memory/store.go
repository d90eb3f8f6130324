package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/nfasim/pkg/domain"
)

// Store implements ports.DefinitionStore in memory.
// Safe for concurrent use.
type Store struct {
	data     map[string]*domain.Definition
	mu       sync.RWMutex
	watchers []chan string
}

// NewStore creates a new in-memory store, optionally seeded with definitions.
func NewStore(defs ...*domain.Definition) (*Store, error) {
	s := &Store{
		data: make(map[string]*domain.Definition),
	}
	for _, def := range defs {
		if err := s.Save(context.Background(), def); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save persists a copy of the definition.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	if def == nil || def.Name == "" {
		return errors.New("definition name cannot be empty")
	}

	// Deep copy to ensure isolation, similar to serialization
	copied := def.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.Name] = copied
	s.notify(def.Name)
	return nil
}

// Load retrieves a copy of the definition.
func (s *Store) Load(ctx context.Context, name string) (*domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}

	// Copy on read so callers can't mutate store state through the pointer
	return def.Clone(), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; ok {
		delete(s.data, name)
		s.notify(name)
	}
	return nil
}

// Watch implements ports.Watchable. The channel receives the name of every
// saved or deleted definition and is closed when ctx is done.
// Notifications are dropped for a watcher whose buffer is full.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 16)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		s.watchers = slices.DeleteFunc(s.watchers, func(w chan string) bool { return w == ch })
		close(ch)
	}()
	return ch, nil
}

// notify must be called with s.mu held.
func (s *Store) notify(name string) {
	for _, ch := range s.watchers {
		select {
		case ch <- name:
		default:
		}
	}
}

// List returns the stored names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names) // Deterministic order
	return names, nil
}
