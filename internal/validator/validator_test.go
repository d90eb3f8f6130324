package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	// 1. Scenario A: start -> mid -> end(final), plus an island and a dead end.
	def := domain.Definition{
		Name:     "sample",
		States:   []string{"start", "mid", "end", "sink", "island"},
		Alphabet: []string{"a", "b"},
		Final:    []string{"end"},
		Transitions: []domain.TransitionDef{
			{From: "start", Symbol: "a", To: []string{"mid"}},
			{From: "start", Symbol: "b", To: []string{"sink"}},
			{From: "mid", Symbol: "e", To: []string{"end"}},
			{From: "island", Symbol: "a", To: []string{"end"}},
		},
	}

	report, a, err := Validate(def)
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.Equal(t, 5, report.States)
	assert.Equal(t, 2, report.Alphabet)
	assert.Equal(t, 4, report.Transitions)
	assert.Equal(t, 1, report.Epsilons)
	assert.False(t, report.IsDFA)
	assert.Equal(t, []string{"island"}, report.Unreachable)
	assert.Equal(t, []string{"sink"}, report.Dead)
	assert.NotEmpty(t, report.Warnings)

	// 2. Scenario B: broken reference.
	def.Transitions = append(def.Transitions, domain.TransitionDef{From: "start", Symbol: "a", To: []string{"ghost"}})
	_, _, err = Validate(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownState)
	assert.True(t, strings.Contains(err.Error(), "ghost"), "error should name the missing state: %v", err)
}

func TestValidate_CompleteDFA(t *testing.T) {
	def := domain.Definition{
		States:   []string{"even", "odd"},
		Alphabet: []string{"1"},
		Final:    []string{"even"},
		Transitions: []domain.TransitionDef{
			{From: "even", Symbol: "1", To: []string{"odd"}},
			{From: "odd", Symbol: "1", To: []string{"even"}},
		},
	}

	report, _, err := Validate(def)
	require.NoError(t, err)
	assert.True(t, report.IsDFA)
	assert.Empty(t, report.Unreachable)
	assert.Empty(t, report.Dead)
	assert.Empty(t, report.Warnings)
}

func TestValidate_NoFinals(t *testing.T) {
	report, _, err := Validate(domain.Definition{States: []string{"only"}})
	require.NoError(t, err)
	assert.Contains(t, report.Warnings, "no final states: every input is rejected")
	assert.Equal(t, []string{"only"}, report.Dead)
}

func TestValidate_Empty(t *testing.T) {
	report, _, err := Validate(domain.Definition{})
	require.NoError(t, err)
	assert.Equal(t, []string{"automaton has no states"}, report.Warnings)
}
