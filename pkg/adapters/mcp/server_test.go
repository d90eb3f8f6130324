package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/nfasim"
	"github.com/aretw0/nfasim/internal/logging"
	"github.com/aretw0/nfasim/pkg/adapters/memory"
	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	store, err := memory.NewStore(
		&domain.Definition{
			Name:     "eps",
			States:   []string{"q0", "q1", "q2"},
			Alphabet: []string{"a"},
			Final:    []string{"q2"},
			Transitions: []domain.TransitionDef{
				{From: "q0", Symbol: "e", To: []string{"q1"}},
				{From: "q1", Symbol: "a", To: []string{"q2"}},
			},
		},
		&domain.Definition{Name: "broken", States: []string{"x", "x"}},
	)
	require.NoError(t, err)

	eng, err := nfasim.New("", nfasim.WithLoader(store))
	require.NoError(t, err)
	return NewServer(eng, logging.NewNop())
}

func TestHandleEvaluate(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	v, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Name: "eps", Input: "a"})
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Equal(t, 2, v.MaxCopies)

	v, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Name: "eps", Input: "b"})
	require.NoError(t, err)
	assert.False(t, v.Accepted)
	assert.NotEmpty(t, v.Error)

	_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Name: "missing", Input: "a"})
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestHandleClosure(t *testing.T) {
	s := newServer(t)

	res, err := s.handleClosure(context.Background(), mcp.CallToolRequest{}, ClosureArgs{Name: "eps", States: " q0 , "})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"q0", "q1"}, res.States)

	_, err = s.handleClosure(context.Background(), mcp.CallToolRequest{}, ClosureArgs{Name: "eps", States: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

func TestHandleDescribe(t *testing.T) {
	s := newServer(t)

	res, err := s.handleDescribe(context.Background(), mcp.CallToolRequest{}, DescribeArgs{Name: "eps"})
	require.NoError(t, err)
	assert.Equal(t, "q0", res.Definition.Start)
	assert.Contains(t, res.Mermaid, "ε")
}

func TestHandleList(t *testing.T) {
	s := newServer(t)

	res, err := s.handleList(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(text.Text), &names))
	assert.Equal(t, []string{"broken", "eps"}, names)
}

func TestReadAutomata_SkipsBrokenDefinitions(t *testing.T) {
	s := newServer(t)

	contents, err := s.readAutomata(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, AutomataURI, text.URI)

	var defs []domain.Definition
	require.NoError(t, json.Unmarshal([]byte(text.Text), &defs))
	require.Len(t, defs, 1)
	assert.Equal(t, "eps", defs[0].Name)
}
