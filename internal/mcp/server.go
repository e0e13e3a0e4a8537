package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"docchunk-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools with their proper schemas using mcp-go builder pattern
	toolDefinitions := map[string]mcp.Tool{
		"chunk_text": mcp.NewTool("chunk_text",
			mcp.WithDescription("Split arbitrary text into bounded-size chunks suitable for embedding or indexing. Returns chunk records with byte lengths, offsets, hashes and token counts."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("The document text to chunk"),
			),
			mcp.WithNumber("chunk_size_bytes",
				mcp.Description("Byte budget per chunk (default: 1024, minimum: 100)"),
			),
			mcp.WithNumber("overlap_ratio",
				mcp.Description("Fraction of the budget shared between consecutive chunks, 0 to 0.5 (default: 0.1)"),
			),
			mcp.WithString("strategy",
				mcp.Description("Segmentation strategy"),
				mcp.Enum("recursive", "markdown", "semantic", "fixed", "adaptive"),
			),
		),
		"chunk_markdown": mcp.NewTool("chunk_markdown",
			mcp.WithDescription("Split Markdown into chunks along heading boundaries, keeping code fences, tables and math blocks intact. Oversized protected blocks are emitted whole and flagged."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("The Markdown text to chunk"),
			),
			mcp.WithNumber("chunk_size_bytes",
				mcp.Description("Byte budget per chunk (default: 1024, minimum: 100)"),
			),
		),
		"classify_text": mcp.NewTool("classify_text",
			mcp.WithDescription("Detect the language family (latin/cjk/mixed) and content type (plain/markdown/code/html/json/xml) of a text sample."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("The text sample to classify"),
			),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
	}
}
