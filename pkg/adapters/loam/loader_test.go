package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/nfasim/internal/testutils"
	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/nfa"
	"github.com/aretw0/nfasim/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsWith01Doc = `---
states: [p, q, r]
alphabet: [0, 1]
final: [r]
transitions:
  - from: p
    symbol: 0
    to: [p, q]
  - from: p
    on: 1
    to: p
  - from: q
    symbol: 1
    to: r
---
Binary strings ending in 01.
`

const epsilonDoc = `---
name: eps
description: epsilon to final
states: [q0, q1]
sigma: [a]
start: q0
final: [q1]
transitions:
  - {from: q0, symbol: e, to: q1}
---
`

func seed(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	_, loader := seedDir(t, files)
	return loader
}

func seedDir(t *testing.T, files map[string]string) (string, *Loader) {
	t.Helper()
	tmpDir, repo := testutils.SetupTestRepo(t)

	for filename, content := range files {
		err := os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644)
		require.NoError(t, err)
	}

	typedRepo := loam.NewTypedRepository[DefinitionMetadata](repo)
	return tmpDir, New(typedRepo)
}

func TestLoader_Contract(t *testing.T) {
	loader := seed(t, map[string]string{
		"ends-with-01.md": endsWith01Doc,
		"epsilon.md":      epsilonDoc,
	})

	setupData := map[string]*domain.Definition{
		"ends-with-01": {States: []string{"p", "q", "r"}, Transitions: make([]domain.TransitionDef, 3)},
		"eps":          {States: []string{"q0", "q1"}, Transitions: make([]domain.TransitionDef, 1)},
	}

	tests.DefinitionLoaderContractTest(t, loader, setupData)
}

func TestLoader_Load_NormalizesSymbols(t *testing.T) {
	loader := seed(t, map[string]string{"ends-with-01.md": endsWith01Doc})

	def, err := loader.Load(context.Background(), "ends-with-01")
	require.NoError(t, err)

	assert.Equal(t, "ends-with-01", def.Name)
	assert.Equal(t, []string{"0", "1"}, def.Alphabet)
	assert.Equal(t, "Binary strings ending in 01.", def.Description)
	assert.Equal(t, domain.TransitionDef{From: "p", Symbol: "1", To: []string{"p"}}, def.Transitions[1])

	a, err := nfa.FromDefinition(*def)
	require.NoError(t, err)
	assert.True(t, a.Accepts("1101"))
	assert.False(t, a.Accepts("110"))
}

func TestLoader_Load_ByFrontMatterName(t *testing.T) {
	loader := seed(t, map[string]string{"epsilon.md": epsilonDoc})

	def, err := loader.Load(context.Background(), "eps")
	require.NoError(t, err)
	assert.Equal(t, "epsilon to final", def.Description)
	assert.Equal(t, []string{"a"}, def.Alphabet)

	a, err := nfa.FromDefinition(*def)
	require.NoError(t, err)
	assert.True(t, a.Accepts(""))
}

func TestLoader_Load_BrokenDocument(t *testing.T) {
	loader := seed(t, map[string]string{
		"broken.md": "---\nstates: {a: 1}\n---\n",
	})

	_, err := loader.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDefinitionNotFound)
	assert.Contains(t, err.Error(), "loam get failed for broken")
}

func TestLoader_Load_Missing(t *testing.T) {
	loader := seed(t, map[string]string{"epsilon.md": epsilonDoc})

	_, err := loader.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestLoader_Resolve_UsesFrontMatterName(t *testing.T) {
	ctx := context.Background()
	dir, loader := seedDir(t, map[string]string{"file-id.md": epsilonDoc})
	path := filepath.Join(dir, "file-id.md")

	names, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"eps"}, names)

	// Content change, same name
	require.NoError(t, os.WriteFile(path, []byte(epsilonDoc+"Now with a body.\n"), 0644))
	assert.Equal(t, []string{"eps"}, loader.resolve(ctx, core.Event{Type: core.EventModify, ID: "file-id.md"}))

	// Renamed in front matter: both names are stale
	renamed := "---\nname: eps2\nstates: [q0]\n---\n"
	require.NoError(t, os.WriteFile(path, []byte(renamed), 0644))
	assert.Equal(t, []string{"eps", "eps2"}, loader.resolve(ctx, core.Event{Type: core.EventModify, ID: "file-id"}))

	require.NoError(t, os.Remove(path))
	assert.Equal(t, []string{"eps2"}, loader.resolve(ctx, core.Event{Type: core.EventDelete, ID: "file-id.md"}))

	// Never seen and gone: the document ID is the best guess
	assert.Equal(t, []string{"ghost"}, loader.resolve(ctx, core.Event{Type: core.EventDelete, ID: "ghost.md"}))
}

func TestLoader_Watch_EmitsDefinitionName(t *testing.T) {
	dir, loader := seedDir(t, map[string]string{"file-id.md": epsilonDoc})

	names, err := loader.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"eps"}, names)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := loader.Watch(ctx)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file-id.md"), []byte(epsilonDoc+"Edited.\n"), 0644))

	select {
	case name := <-ch:
		assert.Equal(t, "eps", name)
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout waiting for watch event")
	}
}

func TestLoader_List_DetectsCollisions(t *testing.T) {
	loader := seed(t, map[string]string{
		"foo.md": "---\nname: foo\nstates: [a]\n---\n",
		"foo.json": `{
  "name": "foo",
  "states": ["a"]
}`,
	})

	_, err := loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestStateList(t *testing.T) {
	got, err := stateList("q1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, got)

	got, err = stateList([]any{"q1", 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "2"}, got)

	_, err = stateList(map[string]any{})
	assert.Error(t, err)
}
