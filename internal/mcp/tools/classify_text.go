package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/docchunk/internal/chunker"
)

type ClassifyTextHandler struct{}

func (h *ClassifyTextHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, _ := req.GetArguments()["text"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	lang, ctype := chunker.Classify(text)
	response := struct {
		Language    chunker.Language    `json:"language"`
		ContentType chunker.ContentType `json:"content_type"`
	}{Language: lang, ContentType: ctype}

	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}
