package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/planestic/ud-assistant/internal/ai"
	"github.com/planestic/ud-assistant/internal/assistant"
	"github.com/planestic/ud-assistant/internal/search"
)

// Assistant is what the MCP tools call into.
type Assistant interface {
	Ask(ctx context.Context, query string) assistant.Answer
	Context(ctx context.Context, query string) (string, []search.Result, search.Outcome)
}

// Handlers holds the MCP tool handlers bound to one assistant.
type Handlers struct {
	assistant Assistant
}

func NewHandlers(a Assistant) *Handlers {
	return &Handlers{assistant: a}
}

func queryArg(req mcp.CallToolRequest) (string, bool) {
	query, ok := req.Params.Arguments["query"].(string)
	query = strings.TrimSpace(query)
	return query, ok && query != ""
}

// AskUD answers a question about the university with cited sources.
func (h *Handlers) AskUD(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := queryArg(req)
	if !ok {
		return mcp.NewToolResultError("query is required"), nil
	}

	ans := h.assistant.Ask(ctx, query)

	var sb strings.Builder
	sb.WriteString(ans.Text)
	if len(ans.Sources) > 0 {
		sb.WriteString("\n\nFuentes:\n")
		for i, r := range ans.Sources {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, r.URL)
		}
	}
	return mcp.NewToolResultText(strings.TrimRight(sb.String(), "\n")), nil
}

// WebSearch returns the ranked and packed search context for query without
// calling the language model.
func (h *Handlers) WebSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := queryArg(req)
	if !ok {
		return mcp.NewToolResultError("query is required"), nil
	}

	limit := 0
	if l, ok := req.Params.Arguments["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	packed, ranked, outcome := h.assistant.Context(ctx, query)
	if len(ranked) == 0 {
		if outcome.ConnectionFailed() {
			return mcp.NewToolResultError(ai.FallbackMessage(ai.FailureConnection)), nil
		}
		return mcp.NewToolResultText(assistant.NoResultsMessage), nil
	}

	if limit > 0 && limit < len(ranked) {
		return mcp.NewToolResultText(FormatResults(ranked[:limit])), nil
	}
	return mcp.NewToolResultText(packed), nil
}

// FormatResults renders ranked results as a numbered list.
func FormatResults(results []search.Result) string {
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. [%s](%s)\n", i+1, r.Title, r.URL)
		if body := strings.TrimSpace(r.Body()); body != "" {
			sb.WriteString("   ")
			sb.WriteString(truncate(body, 300))
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
