package chunker

import (
	"strings"

	"sigs.k8s.io/yaml"
)

// parseFrontMatter decodes a protected YAML front matter block into a map.
// A malformed document degrades to nil; front matter is metadata, never a
// reason to fail the run.
func parseFrontMatter(block ProtectedBlock) map[string]any {
	body := strings.TrimSpace(block.Content)
	body = strings.TrimPrefix(body, "---")
	if i := strings.LastIndex(body, "---"); i >= 0 {
		body = body[:i]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	var out map[string]any
	if err := yaml.Unmarshal([]byte(body), &out); err != nil {
		return nil
	}
	return out
}
