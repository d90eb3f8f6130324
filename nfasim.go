package nfasim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	loamAdapter "github.com/aretw0/nfasim/pkg/adapters/loam"
	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/nfa"
	"github.com/aretw0/nfasim/pkg/ports"
)

// Engine is the high-level entry point for the nfasim library.
// It resolves named definitions through a loader, compiles them once and runs
// simulations against the cached, read-only automata.
type Engine struct {
	loader ports.DefinitionLoader
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	Name   string

	mu    sync.RWMutex
	cache map[string]*nfa.Automaton
	// gens counts invalidations per name. A load only fills the cache if no
	// invalidation happened since it started.
	gens map[string]uint64
}

var _ ports.Simulator = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom DefinitionLoader, bypassing the default Loam initialization.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine.
// By default, it reads definitions from a Loam repository at the given path.
// If WithLoader option is provided, repoPath can be empty and Loam is skipped.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		cache: make(map[string]*nfa.Automaton),
		gens:  make(map[string]uint64),
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		loader, err := loamAdapter.Open(absPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	} else if repoPath != "" {
		eng.Name = filepath.Base(repoPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repo", eng.Name)
	}

	return eng, nil
}

// Automaton returns the compiled automaton for name, loading it on first use.
// The returned automaton is shared and must not be modified.
func (e *Engine) Automaton(ctx context.Context, name string) (*nfa.Automaton, error) {
	e.mu.RLock()
	a, ok := e.cache[name]
	gen := e.gens[name]
	e.mu.RUnlock()
	if ok {
		return a, nil
	}

	def, err := e.loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	a, err = nfa.FromDefinition(*def)
	if err != nil {
		e.logger.Warn("definition rejected", "automaton", name, "error", err)
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	e.mu.Lock()
	if cached, ok := e.cache[name]; ok {
		a = cached
	} else if e.gens[name] == gen {
		e.cache[name] = a
	}
	e.mu.Unlock()

	e.logger.Debug("definition loaded", "automaton", name, "states", len(a.States()), "dfa", a.IsDFA())
	if e.hooks.OnDefinitionLoad != nil {
		e.hooks.OnDefinitionLoad(ctx, &domain.LoadEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventDefinitionLoad,
				Automaton: name,
			},
			States: len(a.States()),
			IsDFA:  a.IsDFA(),
		})
	}
	return a, nil
}

// Evaluate runs input through the named automaton.
// Input outside the alphabet yields a rejected verdict with its Error set; the
// returned error is reserved for failures to obtain the automaton.
func (e *Engine) Evaluate(ctx context.Context, name, input string) (domain.Verdict, error) {
	a, err := e.Automaton(ctx, name)
	if err != nil {
		return domain.Verdict{Input: input, Error: err.Error()}, err
	}

	start := time.Now()
	if e.hooks.OnSimulationStart != nil {
		e.hooks.OnSimulationStart(ctx, &domain.SimulationEvent{
			EventBase: domain.EventBase{
				Timestamp: start,
				Type:      domain.EventSimulationStart,
				Automaton: name,
			},
			InputLength: len([]rune(input)),
		})
	}

	verdict, simErr := a.Evaluate(input)
	if simErr != nil {
		e.logger.Debug("input rejected", "automaton", name, "error", simErr)
	}
	e.logger.Debug("simulation finished",
		"automaton", name,
		"input_len", len([]rune(input)),
		"accepted", verdict.Accepted,
		"max_copies", verdict.MaxCopies,
	)

	if e.hooks.OnSimulationEnd != nil {
		e.hooks.OnSimulationEnd(ctx, &domain.SimulationEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventSimulationEnd,
				Automaton: name,
			},
			InputLength: len([]rune(input)),
			Verdict:     &verdict,
			Duration:    time.Since(start),
		})
	}
	return verdict, nil
}

// Accepts reports whether the named automaton accepts input.
func (e *Engine) Accepts(ctx context.Context, name, input string) (bool, error) {
	v, err := e.Evaluate(ctx, name, input)
	return v.Accepted, err
}

// MaxCopies reports the largest number of simultaneously active states while reading input.
func (e *Engine) MaxCopies(ctx context.Context, name, input string) (int, error) {
	v, err := e.Evaluate(ctx, name, input)
	return v.MaxCopies, err
}

// Closure returns the epsilon-closure of states in the named automaton.
func (e *Engine) Closure(ctx context.Context, name string, states ...string) ([]string, error) {
	a, err := e.Automaton(ctx, name)
	if err != nil {
		return nil, err
	}
	return a.EClosure(states...)
}

// Describe returns the normalized definition of the named automaton.
func (e *Engine) Describe(ctx context.Context, name string) (*domain.Definition, error) {
	a, err := e.Automaton(ctx, name)
	if err != nil {
		return nil, err
	}
	def := a.Definition()
	return &def, nil
}

// List returns the names known to the loader.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.loader.List(ctx)
}

// Invalidate drops the compiled automaton for name, if any.
func (e *Engine) Invalidate(name string) {
	e.mu.Lock()
	delete(e.cache, name)
	e.gens[name]++
	e.mu.Unlock()
}

// ErrWatchUnsupported is returned by Watch when the loader cannot report changes.
var ErrWatchUnsupported = errors.New("current loader does not support watching")

// Watch returns a channel that signals when a definition changes.
// Each change invalidates the cached automaton before the name is forwarded.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := e.loader.(ports.Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	src, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case name, ok := <-src:
				if !ok {
					return
				}
				e.Invalidate(name)
				e.logger.Info("definition changed", "automaton", name)
				select {
				case out <- name:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Loader returns the underlying DefinitionLoader used by the engine.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}
