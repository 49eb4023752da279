package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/planestic/ud-assistant/internal/ai"
	"github.com/planestic/ud-assistant/internal/assistant"
	"github.com/planestic/ud-assistant/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	results []search.Result
	outcome search.Outcome
}

func (f fakeAssistant) Ask(_ context.Context, query string) assistant.Answer {
	return assistant.Answer{Query: query, Text: "respuesta", Sources: f.results}
}

func (f fakeAssistant) Context(_ context.Context, _ string) (string, []search.Result, search.Outcome) {
	if len(f.results) == 0 {
		return "", nil, f.outcome
	}
	return "[A](https://a.udistrital.edu.co)\nbody\n", f.results, f.outcome
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

var sampleResults = []search.Result{
	{Title: "A", URL: "https://a.udistrital.edu.co", Content: "primero"},
	{Title: "B", URL: "https://b.udistrital.edu.co", Content: "segundo"},
}

func TestAskUDRequiresQuery(t *testing.T) {
	h := NewHandlers(fakeAssistant{})
	res, err := h.AskUD(context.Background(), call(map[string]any{"query": "   "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAskUDListsSources(t *testing.T) {
	h := NewHandlers(fakeAssistant{results: sampleResults})
	res, err := h.AskUD(context.Background(), call(map[string]any{"query": "rector"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "respuesta\n\nFuentes:\n1. https://a.udistrital.edu.co\n2. https://b.udistrital.edu.co", resultText(t, res))
}

func TestWebSearchReturnsPackedContext(t *testing.T) {
	h := NewHandlers(fakeAssistant{results: sampleResults})
	res, err := h.WebSearch(context.Background(), call(map[string]any{"query": "rector"}))
	require.NoError(t, err)
	assert.Equal(t, "[A](https://a.udistrital.edu.co)\nbody\n", resultText(t, res))
}

func TestWebSearchLimit(t *testing.T) {
	h := NewHandlers(fakeAssistant{results: sampleResults})
	res, err := h.WebSearch(context.Background(), call(map[string]any{"query": "rector", "limit": float64(1)}))
	require.NoError(t, err)
	assert.Equal(t, "1. [A](https://a.udistrital.edu.co)\n   primero", resultText(t, res))
}

func TestWebSearchNoResults(t *testing.T) {
	h := NewHandlers(fakeAssistant{})
	res, err := h.WebSearch(context.Background(), call(map[string]any{"query": "nada"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, assistant.NoResultsMessage, resultText(t, res))
}

func TestWebSearchConnectionFailure(t *testing.T) {
	h := NewHandlers(fakeAssistant{outcome: search.Outcome{
		Attempts: 3,
		Kind:     search.KindTransient,
		Err:      errors.New("timeout"),
	}})
	res, err := h.WebSearch(context.Background(), call(map[string]any{"query": "rector"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, ai.FallbackMessage(ai.FailureConnection), resultText(t, res))
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer(fakeAssistant{}, "test")
	require.NotNil(t, s)
}
