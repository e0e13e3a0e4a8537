package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/docchunk/internal/config"
	"github.com/roivaz/docchunk/internal/logging"
	"github.com/roivaz/docchunk/internal/mcp/tools"
	"github.com/roivaz/docchunk/internal/pipeline"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
}

func DefaultConfig() Config {
	base := pipeline.LoadConfig().Chunker
	log := logging.New(logging.ForLevel(config.LogLevel())).WithName("mcp")

	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"chunk_text":     &tools.ChunkTextHandler{Base: base, Log: log},
			"chunk_markdown": &tools.ChunkMarkdownHandler{Base: base, Log: log},
			"classify_text":  &tools.ClassifyTextHandler{},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
	}
}
