package nfasim_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/nfasim"
	"github.com/aretw0/nfasim/pkg/adapters/memory"
	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/dsl"
	"github.com/aretw0/nfasim/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endsWith01() *domain.Definition {
	b := dsl.New("ends-with-01")
	b.Add("p").On("0", "p", "q").On("1", "p")
	b.Add("q").On("1", "r")
	b.Add("r").Final()
	def := b.Definition()
	return &def
}

func newEngine(t *testing.T, opts ...nfasim.Option) (*nfasim.Engine, *memory.Store) {
	t.Helper()
	store, err := memory.NewStore(endsWith01())
	require.NoError(t, err)

	eng, err := nfasim.New("", append([]nfasim.Option{nfasim.WithLoader(store)}, opts...)...)
	require.NoError(t, err)
	return eng, store
}

func TestEngine_Evaluate(t *testing.T) {
	eng, _ := newEngine(t)
	ctx := context.Background()

	v, err := eng.Evaluate(ctx, "ends-with-01", "1101")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Equal(t, 2, v.MaxCopies)
	assert.Len(t, v.Trace, 5)
	assert.Empty(t, v.Error)

	accepted, err := eng.Accepts(ctx, "ends-with-01", "10")
	require.NoError(t, err)
	assert.False(t, accepted)

	copies, err := eng.MaxCopies(ctx, "ends-with-01", "")
	require.NoError(t, err)
	assert.Equal(t, 1, copies)
}

func TestEngine_InvalidInputIsAVerdict(t *testing.T) {
	eng, _ := newEngine(t)

	v, err := eng.Evaluate(context.Background(), "ends-with-01", "012")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
	assert.Zero(t, v.MaxCopies)
	assert.Contains(t, v.Error, domain.ErrInvalidSymbol.Error())
}

func TestEngine_NotFound(t *testing.T) {
	eng, _ := newEngine(t)
	ctx := context.Background()

	_, err := eng.Evaluate(ctx, "missing", "0")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = eng.Closure(ctx, "missing", "p")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = eng.Describe(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestEngine_CompileError(t *testing.T) {
	store, err := memory.NewStore(&domain.Definition{
		Name:   "broken",
		States: []string{"a", "a"},
	})
	require.NoError(t, err)
	eng, err := nfasim.New("", nfasim.WithLoader(store))
	require.NoError(t, err)

	_, err = eng.Evaluate(context.Background(), "broken", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateState)
}

func TestEngine_ClosureAndDescribe(t *testing.T) {
	store, err := memory.NewStore(&domain.Definition{
		Name:   "chain",
		States: []string{"a", "b", "c"},
		Transitions: []domain.TransitionDef{
			{From: "a", Symbol: "e", To: []string{"b"}},
			{From: "b", Symbol: "e", To: []string{"c"}},
		},
	})
	require.NoError(t, err)
	eng, err := nfasim.New("", nfasim.WithLoader(store))
	require.NoError(t, err)
	ctx := context.Background()

	closure, err := eng.Closure(ctx, "chain", "a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, closure)

	_, err = eng.Closure(ctx, "chain", "z")
	assert.ErrorIs(t, err, domain.ErrUnknownState)

	def, err := eng.Describe(ctx, "chain")
	require.NoError(t, err)
	assert.Equal(t, "a", def.Start)
	assert.Len(t, def.Transitions, 2)

	names, err := eng.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chain"}, names)
}

func TestEngine_Hooks(t *testing.T) {
	var (
		mu     sync.Mutex
		events []domain.EventType
		end    *domain.SimulationEvent
	)
	record := func(ev domain.EventType) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}

	eng, _ := newEngine(t, nfasim.WithLifecycleHooks(domain.LifecycleHooks{
		OnDefinitionLoad: func(_ context.Context, e *domain.LoadEvent) {
			record(e.Type)
			assert.Equal(t, 3, e.States)
		},
		OnSimulationStart: func(_ context.Context, e *domain.SimulationEvent) {
			record(e.Type)
			assert.Equal(t, 2, e.InputLength)
		},
		OnSimulationEnd: func(_ context.Context, e *domain.SimulationEvent) {
			record(e.Type)
			end = e
		},
	}))

	ctx := context.Background()
	_, err := eng.Evaluate(ctx, "ends-with-01", "01")
	require.NoError(t, err)
	_, err = eng.Evaluate(ctx, "ends-with-01", "01")
	require.NoError(t, err)

	assert.Equal(t, []domain.EventType{
		domain.EventDefinitionLoad,
		domain.EventSimulationStart, domain.EventSimulationEnd,
		domain.EventSimulationStart, domain.EventSimulationEnd,
	}, events, "definition is compiled once")
	require.NotNil(t, end)
	require.NotNil(t, end.Verdict)
	assert.True(t, end.Verdict.Accepted)
}

func TestEngine_CacheAndInvalidate(t *testing.T) {
	eng, store := newEngine(t)
	ctx := context.Background()

	first, err := eng.Automaton(ctx, "ends-with-01")
	require.NoError(t, err)
	second, err := eng.Automaton(ctx, "ends-with-01")
	require.NoError(t, err)
	assert.Same(t, first, second)

	// Replace the definition: accept everything ending in 0.
	require.NoError(t, store.Save(ctx, &domain.Definition{
		Name:     "ends-with-01",
		States:   []string{"s", "f"},
		Alphabet: []string{"0", "1"},
		Final:    []string{"f"},
		Transitions: []domain.TransitionDef{
			{From: "s", Symbol: "0", To: []string{"s", "f"}},
			{From: "s", Symbol: "1", To: []string{"s"}},
		},
	}))

	accepted, err := eng.Accepts(ctx, "ends-with-01", "10")
	require.NoError(t, err)
	assert.False(t, accepted, "stale cache until invalidated")

	eng.Invalidate("ends-with-01")
	accepted, err = eng.Accepts(ctx, "ends-with-01", "10")
	require.NoError(t, err)
	assert.True(t, accepted)
}

// slowLoader blocks its first Load after reading the definition, until released.
type slowLoader struct {
	ports.DefinitionLoader
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (l *slowLoader) Load(ctx context.Context, name string) (*domain.Definition, error) {
	def, err := l.DefinitionLoader.Load(ctx, name)
	l.once.Do(func() {
		close(l.loaded)
		<-l.release
	})
	return def, err
}

func TestEngine_InvalidateDuringLoad(t *testing.T) {
	ctx := context.Background()
	store, err := memory.NewStore(endsWith01())
	require.NoError(t, err)
	loader := &slowLoader{
		DefinitionLoader: store,
		loaded:           make(chan struct{}),
		release:          make(chan struct{}),
	}
	eng, err := nfasim.New("", nfasim.WithLoader(loader))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := eng.Evaluate(ctx, "ends-with-01", "1")
		done <- err
	}()
	<-loader.loaded

	// Every state final: "1" becomes accepted.
	updated := endsWith01()
	updated.Final = []string{"p", "q", "r"}
	require.NoError(t, store.Save(ctx, updated))
	eng.Invalidate("ends-with-01")

	close(loader.release)
	require.NoError(t, <-done)

	v, err := eng.Evaluate(ctx, "ends-with-01", "1")
	require.NoError(t, err)
	assert.True(t, v.Accepted, "a load that raced an invalidation must not be cached")
}

func TestEngine_WatchInvalidates(t *testing.T) {
	eng, store := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := eng.Automaton(ctx, "ends-with-01")
	require.NoError(t, err)

	changes, err := eng.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "ends-with-01"))

	select {
	case name := <-changes:
		assert.Equal(t, "ends-with-01", name)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	_, err = eng.Evaluate(ctx, "ends-with-01", "01")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

type staticLoader struct{}

func (staticLoader) Load(context.Context, string) (*domain.Definition, error) {
	return nil, domain.ErrDefinitionNotFound
}

func (staticLoader) List(context.Context) ([]string, error) { return nil, nil }

func TestEngine_WatchUnsupported(t *testing.T) {
	eng, err := nfasim.New("label", nfasim.WithLoader(staticLoader{}))
	require.NoError(t, err)
	assert.Equal(t, "label", eng.Name)

	_, err = eng.Watch(context.Background())
	assert.ErrorIs(t, err, nfasim.ErrWatchUnsupported)
}

func TestEngine_ConcurrentEvaluate(t *testing.T) {
	eng, _ := newEngine(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := eng.Evaluate(ctx, "ends-with-01", "0101")
			assert.NoError(t, err)
			assert.True(t, v.Accepted)
		}()
	}
	wg.Wait()
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := nfasim.New("")
	require.Error(t, err)
}

func TestNew_LoamDirectory(t *testing.T) {
	dir := t.TempDir()
	doc := `---
name: single
states: [s]
alphabet: [a]
final: [s]
transitions:
  - {from: s, symbol: a, to: [s]}
---
Accepts any number of a.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "single.md"), []byte(doc), 0o644))

	eng, err := nfasim.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), eng.Name)

	accepted, err := eng.Accepts(context.Background(), "single", "aaa")
	require.NoError(t, err)
	assert.True(t, accepted)
}
