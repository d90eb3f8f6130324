package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/nfasim/pkg/domain"
)

// Loader adapts a Loam repository to the ports.DefinitionLoader interface.
// Each document holds one automaton in its front matter; the document body,
// if any, becomes the description.
type Loader struct {
	Repo *loam.TypedRepository[DefinitionMetadata]

	mu sync.Mutex
	// names maps a document ID (without extension) to the definition name it declares.
	names map[string]string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DefinitionMetadata]) *Loader {
	return &Loader{
		Repo:  repo,
		names: make(map[string]string),
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric front matter as json.Number; ReadOnly keeps
	// Loam from creating anything in the user's directory.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[DefinitionMetadata](repo)), nil
}

// Load retrieves a definition by name (file name without extension, or the
// explicit `name` of its front matter).
func (l *Loader) Load(ctx context.Context, name string) (*domain.Definition, error) {
	doc, err := l.Repo.Get(ctx, name)
	if err == nil {
		l.remember(doc.ID, documentName(doc.ID, doc.Data))
		return l.convert(name, doc.ID, doc.Data, doc.Content)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	// No file carries that name; it may come from front matter instead.
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	for _, candidate := range docs {
		l.remember(candidate.ID, documentName(candidate.ID, candidate.Data))
		if documentName(candidate.ID, candidate.Data) == name {
			return l.convert(name, candidate.ID, candidate.Data, candidate.Content)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
}

func (l *Loader) convert(name, docID string, meta DefinitionMetadata, content string) (*domain.Definition, error) {
	def, err := toDefinition(docID, meta, content)
	if err != nil {
		return nil, fmt.Errorf("definition %s: %w", name, err)
	}
	return def, nil
}

// List lists all definitions in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		name := documentName(doc.ID, doc.Data)

		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: definition '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
		l.remember(doc.ID, name)
	}
	slices.Sort(names)
	return names, nil
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				for _, name := range l.resolve(ctx, evt) {
					select {
					case ch <- name:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return ch, nil
}

// resolve returns the definition names affected by a change event. A document
// whose front matter renamed it reports both the old and the new name.
func (l *Loader) resolve(ctx context.Context, evt core.Event) []string {
	id := trimExtension(evt.ID)

	l.mu.Lock()
	previous, known := l.names[id]
	l.mu.Unlock()

	var names []string
	if known {
		names = append(names, previous)
	}

	if evt.Type == core.EventDelete {
		l.forget(id)
	} else if doc, err := l.Repo.Get(ctx, evt.ID); err == nil {
		name := documentName(id, doc.Data)
		l.remember(id, name)
		if !known || name != previous {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		names = append(names, id)
	}
	return names
}

func (l *Loader) remember(docID, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.names == nil {
		l.names = make(map[string]string)
	}
	l.names[trimExtension(docID)] = name
}

func (l *Loader) forget(docID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.names, trimExtension(docID))
}

func documentName(docID string, meta DefinitionMetadata) string {
	if meta.Name != "" {
		return trimExtension(meta.Name)
	}
	return trimExtension(docID)
}

func toDefinition(docID string, meta DefinitionMetadata, content string) (*domain.Definition, error) {
	def := &domain.Definition{
		Name:        documentName(docID, meta),
		Description: meta.Description,
		States:      meta.States,
		Start:       meta.Start,
		Final:       meta.Final,
	}
	if def.Description == "" {
		def.Description = strings.TrimSpace(content)
	}

	for _, raw := range append(meta.Alphabet, meta.Sigma...) {
		def.Alphabet = append(def.Alphabet, fmt.Sprint(raw))
	}

	for i, lt := range meta.Transitions {
		symbol := lt.Symbol
		if symbol == nil {
			symbol = lt.On
		}
		if symbol == nil {
			return nil, fmt.Errorf("transition #%d: %w: missing symbol", i, domain.ErrInvalidSymbol)
		}
		to, err := stateList(lt.To)
		if err != nil {
			return nil, fmt.Errorf("transition #%d: %w", i, err)
		}
		def.Transitions = append(def.Transitions, domain.TransitionDef{
			From:   lt.From,
			Symbol: fmt.Sprint(symbol),
			To:     to,
		})
	}
	return def, nil
}

// stateList accepts `to: q1` as well as `to: [q1, q2]`.
func stateList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []string:
		return val, nil
	case []any:
		res := make([]string, 0, len(val))
		for _, item := range val {
			res = append(res, fmt.Sprint(item))
		}
		return res, nil
	default:
		return nil, fmt.Errorf("unsupported 'to' value of type %T", v)
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
