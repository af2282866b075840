package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/docquery/internal/retrieval"
)

// Server wraps the MCP server with its retrieval dependency.
type Server struct {
	server *mcp.Server
	engine *retrieval.Engine
}

// NewServer creates an MCP server with the ask tool registered.
func NewServer(engine *retrieval.Engine, defaultTopK int) *Server {
	impl := &mcp.Implementation{
		Name:    "docquery-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a natural-language question against the ingested document corpus. Returns the most semantically similar passages with source, page and similarity score.",
	}, makeAskHandler(engine, defaultTopK))

	return &Server{
		server: server,
		engine: engine,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
