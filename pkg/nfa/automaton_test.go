package nfa_test

import (
	"testing"

	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/nfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomaton_AddState(t *testing.T) {
	a := nfa.New("test")

	require.NoError(t, a.AddState("q0"))
	require.NoError(t, a.AddState("q1"))

	t.Run("first state becomes start", func(t *testing.T) {
		assert.True(t, a.IsStart("q0"))
		assert.False(t, a.IsStart("q1"))
	})

	t.Run("duplicate is rejected", func(t *testing.T) {
		err := a.AddState("q0")
		assert.ErrorIs(t, err, domain.ErrDuplicateState)
		assert.Len(t, a.States(), 2)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		assert.ErrorIs(t, a.AddState(""), domain.ErrInvalidState)
	})

	t.Run("lookup", func(t *testing.T) {
		st, ok := a.State("q1")
		require.True(t, ok)
		assert.Equal(t, "q1", st.Name())
		assert.Equal(t, nfa.StateID(1), st.ID())

		_, ok = a.State("ghost")
		assert.False(t, ok)
	})
}

func TestAutomaton_StartAndFinal(t *testing.T) {
	a := nfa.New("test")
	require.NoError(t, a.AddState("a"))
	require.NoError(t, a.AddState("b"))

	require.NoError(t, a.SetStart("b"))
	assert.True(t, a.IsStart("b"))
	assert.False(t, a.IsStart("a"))

	require.NoError(t, a.SetFinal("a"))
	assert.True(t, a.IsFinal("a"))
	assert.False(t, a.IsFinal("b"))
	assert.False(t, a.IsFinal("ghost"))

	assert.ErrorIs(t, a.SetStart("ghost"), domain.ErrUnknownState)
	assert.ErrorIs(t, a.SetFinal("ghost"), domain.ErrUnknownState)

	start, ok := a.Start()
	require.True(t, ok)
	assert.Equal(t, "b", start.Name())
}

func TestAutomaton_AddSigma(t *testing.T) {
	a := nfa.New("test")

	require.NoError(t, a.AddSigma('b'))
	require.NoError(t, a.AddSigma('a'))
	require.NoError(t, a.AddSigma('b'))

	assert.Equal(t, []rune{'b', 'a'}, a.Sigma(), "insertion order, no duplicates")
	assert.ErrorIs(t, a.AddSigma(domain.Epsilon), domain.ErrInvalidSymbol)
	assert.NotContains(t, a.Sigma(), domain.Epsilon)
}

func TestAutomaton_AddTransition(t *testing.T) {
	a := nfa.New("test")
	require.NoError(t, a.AddState("p"))
	require.NoError(t, a.AddState("q"))
	require.NoError(t, a.AddState("r"))
	require.NoError(t, a.AddSigma('0'))

	tests := []struct {
		name   string
		from   string
		to     []string
		symbol rune
		want   error
	}{
		{"unknown source", "ghost", []string{"q"}, '0', domain.ErrUnknownState},
		{"unknown destination", "p", []string{"q", "ghost"}, '0', domain.ErrUnknownState},
		{"symbol outside alphabet", "p", []string{"q"}, '1', domain.ErrInvalidSymbol},
		{"empty destination", "p", nil, '0', domain.ErrEmptyTransition},
		{"alphabet symbol", "p", []string{"q"}, '0', nil},
		{"epsilon", "q", []string{"r"}, domain.Epsilon, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.AddTransition(tt.from, tt.to, tt.symbol)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("transitions accumulate", func(t *testing.T) {
		require.NoError(t, a.AddTransition("p", []string{"r"}, '0'))
		dest, err := a.DestinationsOf("p", '0')
		require.NoError(t, err)
		assert.Equal(t, []string{"q", "r"}, dest)
	})

	t.Run("no transition is an empty set", func(t *testing.T) {
		dest, err := a.DestinationsOf("r", '0')
		require.NoError(t, err)
		assert.Empty(t, dest)
	})

	t.Run("unknown state lookup", func(t *testing.T) {
		_, err := a.DestinationsOf("ghost", '0')
		assert.ErrorIs(t, err, domain.ErrUnknownState)
	})
}

func TestTransitionTable_DestinationsOfIsACopy(t *testing.T) {
	a := nfa.New("test")
	require.NoError(t, a.AddState("p"))
	require.NoError(t, a.AddState("q"))
	require.NoError(t, a.AddSigma('x'))
	require.NoError(t, a.AddTransition("p", []string{"q"}, 'x'))

	p, _ := a.State("p")
	dest, err := a.Table().DestinationsOf(p.ID(), 'x')
	require.NoError(t, err)
	dest.Add(p.ID())

	again, err := a.Table().DestinationsOf(p.ID(), 'x')
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())

	_, err = a.Table().DestinationsOf(nfa.StateID(42), 'x')
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

func TestAutomaton_IsDFA(t *testing.T) {
	build := func(t *testing.T, edges func(t *testing.T, a *nfa.Automaton)) *nfa.Automaton {
		t.Helper()
		a := nfa.New("dfa")
		require.NoError(t, a.AddState("s0"))
		require.NoError(t, a.AddState("s1"))
		require.NoError(t, a.AddSigma('0'))
		require.NoError(t, a.AddSigma('1'))
		edges(t, a)
		return a
	}
	complete := func(t *testing.T, a *nfa.Automaton) {
		require.NoError(t, a.AddTransition("s0", []string{"s1"}, '0'))
		require.NoError(t, a.AddTransition("s0", []string{"s0"}, '1'))
		require.NoError(t, a.AddTransition("s1", []string{"s0"}, '0'))
		require.NoError(t, a.AddTransition("s1", []string{"s1"}, '1'))
	}

	t.Run("complete deterministic", func(t *testing.T) {
		assert.True(t, build(t, complete).IsDFA())
	})

	t.Run("missing transition", func(t *testing.T) {
		a := build(t, func(t *testing.T, a *nfa.Automaton) {
			require.NoError(t, a.AddTransition("s0", []string{"s1"}, '0'))
			require.NoError(t, a.AddTransition("s0", []string{"s0"}, '1'))
			require.NoError(t, a.AddTransition("s1", []string{"s0"}, '0'))
		})
		assert.False(t, a.IsDFA())
	})

	t.Run("branching transition", func(t *testing.T) {
		a := build(t, func(t *testing.T, a *nfa.Automaton) {
			complete(t, a)
			require.NoError(t, a.AddTransition("s1", []string{"s0"}, '1'))
		})
		assert.False(t, a.IsDFA())
	})

	t.Run("any epsilon", func(t *testing.T) {
		a := build(t, func(t *testing.T, a *nfa.Automaton) {
			complete(t, a)
			require.NoError(t, a.AddTransition("s1", []string{"s1"}, domain.Epsilon))
		})
		assert.False(t, a.IsDFA())
	})

	t.Run("unreachable partial state", func(t *testing.T) {
		a := build(t, complete)
		require.NoError(t, a.AddState("island"))
		assert.False(t, a.IsDFA())
	})

	t.Run("no states", func(t *testing.T) {
		assert.False(t, nfa.New("empty").IsDFA())
	})
}
