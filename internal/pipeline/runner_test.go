package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/roivaz/docchunk/internal/chunker"
	"github.com/roivaz/docchunk/internal/logging"
)

type captureSink struct {
	docs []Document
}

func (s *captureSink) Write(_ context.Context, doc Document) error {
	s.docs = append(s.docs, doc)
	return nil
}

func writeFile(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRunnerChunksSelectedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# Readme\n\n"+strings.Repeat("Intro text. ", 50))
	writeFile(t, root, "guide/setup.md", "# Setup\n\n"+strings.Repeat("Steps here. ", 50))
	writeFile(t, root, "notes.txt", "plain notes")
	writeFile(t, root, ".git/config", "[core]")

	log := logging.New(logr.Discard())
	engine, err := chunker.New(chunker.Config{ChunkSizeBytes: 256, PreserveStructure: true, RespectSpecialBlocks: true}, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sink := &captureSink{}
	runner := &Runner{
		Engine:  engine,
		Sink:    sink,
		Include: []string{"**/*.md"},
		Exclude: []string{"**/.git/**"},
		Log:     log,
	}
	if err := runner.Run(context.Background(), root); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(sink.docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(sink.docs))
	}
	for _, doc := range sink.docs {
		if len(doc.Chunks) == 0 {
			t.Fatalf("expected chunks for %s", doc.Path)
		}
		if strings.HasSuffix(doc.Path, "README.md") && doc.DocType != "readme" {
			t.Fatalf("expected readme doc type, got %s", doc.DocType)
		}
	}
}

func TestRunnerHonorsMaxChunks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", strings.Repeat("Lots of text in here. ", 200))
	writeFile(t, root, "b.md", strings.Repeat("More text in here. ", 200))

	log := logging.New(logr.Discard())
	engine, err := chunker.New(chunker.Config{ChunkSizeBytes: 128}, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sink := &captureSink{}
	runner := &Runner{
		Engine:    engine,
		Sink:      sink,
		Include:   []string{"**/*.md"},
		MaxChunks: 5,
		Log:       log,
	}
	if err := runner.Run(context.Background(), root); err != nil {
		t.Fatalf("Run: %v", err)
	}

	total := 0
	for _, doc := range sink.docs {
		total += len(doc.Chunks)
	}
	if total > 5 {
		t.Fatalf("expected at most 5 chunks, got %d", total)
	}
}

func TestRunnerStopsOnCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "# A\n\ncontent")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	log := logging.New(logr.Discard())
	engine, err := chunker.New(chunker.DefaultConfig(), log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	runner := &Runner{Engine: engine, Sink: &captureSink{}, Include: []string{"**/*.md"}, Log: log}

	if err := runner.Run(ctx, root); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestGlobsToRegexp(t *testing.T) {
	rx := globsToRegexp([]string{"**/*.md", "README.md"})
	for _, match := range []string{"README.md", "docs/guide.md", "a/b/c.md"} {
		if !rx.MatchString(match) {
			t.Fatalf("expected %s to match", match)
		}
	}
	if rx.MatchString("main.go") {
		t.Fatalf("main.go should not match")
	}
}
