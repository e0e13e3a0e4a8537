// Package pipeline walks a directory tree, feeds eligible files through the
// chunking engine and hands the resulting documents to an injected sink. All
// file I/O lives here; the engine itself never touches the filesystem.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/roivaz/docchunk/internal/chunker"
	"github.com/roivaz/docchunk/internal/config"
	"github.com/roivaz/docchunk/internal/logging"
)

// Document is one chunked file.
type Document struct {
	Path    string          `json:"path"`
	DocType string          `json:"doc_type"`
	Chunks  []chunker.Chunk `json:"chunks"`
}

// Sink receives chunked documents. The vector store, index or output file
// behind it is the caller's concern.
type Sink interface {
	Write(ctx context.Context, doc Document) error
}

// Config carries runner settings plus the engine configuration.
type Config struct {
	Chunker        chunker.Config
	Include        []string
	Exclude        []string
	MaxFiles       int
	MaxChunks      int
	MaxConcurrency int
}

// LoadConfig assembles the pipeline configuration from the config registry.
func LoadConfig() Config {
	return Config{
		Chunker: chunker.Config{
			ChunkSizeBytes:       config.ChunkSizeBytes(),
			OverlapRatio:         config.OverlapRatio(),
			RespectSpecialBlocks: config.RespectSpecialBlocks(),
			PreserveStructure:    config.PreserveStructure(),
			Language:             chunker.Language(config.Language()),
			ContentType:          chunker.ContentType(config.ContentType()),
			Strategy:             chunker.Strategy(config.Strategy()),
		},
		Include:        config.IncludeGlobs(),
		Exclude:        config.ExcludeGlobs(),
		MaxFiles:       config.MaxFiles(),
		MaxChunks:      config.MaxChunks(),
		MaxConcurrency: config.MaxConcurrency(),
	}
}

type Runner struct {
	Engine    *chunker.Engine
	Sink      Sink
	Include   []string
	Exclude   []string
	MaxFiles  int
	MaxChunks int
	Log       logging.Logger
}

// Run chunks every selected file under root, in path order, and writes each
// document to the sink. Cancellation is checked between files, never inside
// a file's pipeline.
func (r *Runner) Run(ctx context.Context, root string) error {
	files, err := listFiles(root)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	includeRx := globsToRegexp(r.Include)
	excludeRx := globsToRegexp(r.Exclude)
	selected := filterFiles(files, includeRx, excludeRx, r.MaxFiles)
	r.Log.Info("selected files", "total", len(files), "selected", len(selected))

	written := 0
	for _, path := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.MaxChunks > 0 && written >= r.MaxChunks {
			break
		}

		content, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			r.Log.Error(err, "skipping unreadable file", "path", path)
			continue
		}
		chunks, err := r.Engine.ChunkWithHint(string(content), path)
		if err != nil {
			return fmt.Errorf("chunk %s: %w", path, err)
		}
		if len(chunks) == 0 {
			continue
		}
		if r.MaxChunks > 0 && written+len(chunks) > r.MaxChunks {
			chunks = chunks[:r.MaxChunks-written]
		}

		doc := Document{Path: path, DocType: classifyDocType(path), Chunks: chunks}
		if err := r.Sink.Write(ctx, doc); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written += len(chunks)
	}
	r.Log.Info("pipeline finished", "files", len(selected), "chunks", written)
	return nil
}

func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func globsToRegexp(globs []string) *regexp.Regexp {
	if len(globs) == 0 {
		return nil
	}
	var parts []string
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		// Convert glob to regex:
		// **/ → (.*/)? (zero or more directories)
		// ** → .* (any characters)
		// * → [^/]* (any characters except /)
		r := regexp.QuoteMeta(g)
		r = strings.ReplaceAll(r, "\\*\\*/", "(.*/)?")
		r = strings.ReplaceAll(r, "\\*\\*", ".*")
		r = strings.ReplaceAll(r, "\\*", "[^/]*")
		parts = append(parts, "^"+r+"$")
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(parts, "|"))
}

func filterFiles(files []string, include, exclude *regexp.Regexp, max int) []string {
	var out []string
	for _, f := range files {
		if include != nil && !include.MatchString(f) {
			continue
		}
		if exclude != nil && exclude.MatchString(f) {
			continue
		}
		out = append(out, f)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

func classifyDocType(path string) string {
	base := filepath.Base(path)
	if strings.EqualFold(base, "README.md") {
		return "readme"
	}
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "docs/") || strings.Contains(lower, "/docs/") {
		return "docs"
	}
	if strings.HasPrefix(lower, "adr/") || strings.Contains(lower, "/adr/") {
		return "adr"
	}
	return "other"
}
