package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_EndsWith01(t *testing.T) {
	// 1. Build the automaton using DSL
	b := New("ends-with-01")

	b.Add("p").On("0", "p", "q").On("1", "p")
	b.Add("q").On("1", "r")
	b.Add("r").Final()

	a, err := b.Build()
	require.NoError(t, err)

	// 2. Verify structure
	assert.Equal(t, "ends-with-01", a.Name())
	assert.Equal(t, []rune{'0', '1'}, a.Sigma())
	assert.True(t, a.IsStart("p"))
	assert.True(t, a.IsFinal("r"))
	assert.False(t, a.IsDFA())

	// 3. Verify behaviour
	assert.True(t, a.Accepts("1101"))
	assert.False(t, a.Accepts("10"))
}

func TestBuilder_EpsilonAndStart(t *testing.T) {
	b := New("eps")
	b.Add("a").Epsilon("b")
	b.Add("b").Final()
	b.Add("c").Start().Epsilon("a")

	def := b.Definition()
	assert.Equal(t, "c", def.Start)
	assert.Empty(t, def.Alphabet, "epsilon must not be added to the alphabet")
	require.Len(t, def.Transitions, 2)
	assert.True(t, def.Transitions[0].IsEpsilon())

	a, err := b.Build()
	require.NoError(t, err)
	assert.True(t, a.Accepts(""))
	assert.Equal(t, 3, a.MaxCopies(""))
}

func TestBuilder_SigmaOrder(t *testing.T) {
	b := New("order").Sigma("b", "a")
	b.Add("s").On("a", "s").On("b", "s").Final()

	def := b.Definition()
	assert.Equal(t, []string{"b", "a"}, def.Alphabet)

	a, err := b.Build()
	require.NoError(t, err)
	assert.True(t, a.IsDFA())
}

func TestBuilder_AddIsIdempotent(t *testing.T) {
	b := New("twice")
	first := b.Add("s")
	second := b.Add("s")
	assert.Same(t, first, second)
	assert.Equal(t, []string{"s"}, b.Definition().States)
}

func TestBuilder_UnknownTarget(t *testing.T) {
	b := New("broken")
	b.Add("s").On("a", "ghost")

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownState)

	_, err = b.Store()
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

func TestBuilder_Store(t *testing.T) {
	b := New("stored")
	b.Add("s").On("x", "s").Final()

	store, err := b.Store()
	require.NoError(t, err)

	def, err := store.Load(context.Background(), "stored")
	require.NoError(t, err)
	assert.Equal(t, []string{"s"}, def.States)
	assert.Equal(t, []string{"x"}, def.Alphabet)
}
