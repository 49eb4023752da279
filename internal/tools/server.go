package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const ServerName = "ud-assistant"

// NewServer builds an MCP server exposing ask_ud and web_search.
func NewServer(a Assistant, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)
	Register(s, NewHandlers(a))
	return s
}

func Register(s *server.MCPServer, h *Handlers) {
	s.AddTool(mcp.NewTool("ask_ud",
		mcp.WithDescription("Answer a question about Universidad Distrital Francisco José de Caldas using live web search over its official sites. Answers are in Spanish and cite their sources."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The question, e.g. \"¿Cuándo son las inscripciones de pregrado?\"")),
	), h.AskUD)

	s.AddTool(mcp.NewTool("web_search",
		mcp.WithDescription("Search the web for Universidad Distrital information and return ranked sources without generating an answer."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithNumber("limit", mcp.Description("Return at most this many ranked sources instead of the packed context"), mcp.Min(1)),
	), h.WebSearch)
}
