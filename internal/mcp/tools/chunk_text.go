package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/docchunk/internal/chunker"
	"github.com/roivaz/docchunk/internal/logging"
)

type ChunkTextHandler struct {
	Base chunker.Config
	Log  logging.Logger
}

func (h *ChunkTextHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	text, _ := args["text"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	cfg := h.Base
	if raw, ok := args["chunk_size_bytes"].(float64); ok && int(raw) != 0 {
		cfg.ChunkSizeBytes = int(raw)
	}
	if raw, ok := args["overlap_ratio"].(float64); ok {
		cfg.OverlapRatio = raw
	}
	if raw, ok := args["strategy"].(string); ok && raw != "" {
		cfg.Strategy = chunker.Strategy(raw)
	}

	engine, err := chunker.New(cfg, h.Log)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chunks, err := engine.Chunk(text)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(chunkResponse(chunks)))), nil
}

type ChunkMarkdownHandler struct {
	Base chunker.Config
	Log  logging.Logger
}

func (h *ChunkMarkdownHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	text, _ := args["text"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	cfg := h.Base
	if raw, ok := args["chunk_size_bytes"].(float64); ok && int(raw) != 0 {
		cfg.ChunkSizeBytes = int(raw)
	}

	engine, err := chunker.New(cfg, h.Log)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chunks, err := engine.ChunkMarkdown(text)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(chunkResponse(chunks)))), nil
}

func chunkResponse(chunks []chunker.Chunk) any {
	return struct {
		Chunks []chunker.Chunk `json:"chunks"`
		Total  int             `json:"total"`
	}{Chunks: chunks, Total: len(chunks)}
}
