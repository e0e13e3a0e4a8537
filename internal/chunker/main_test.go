package chunker

import (
	"os"
	"testing"

	"github.com/go-logr/logr"

	"github.com/roivaz/docchunk/internal/logging"
)

func TestMain(m *testing.M) {
	// Keep tests hermetic: the BPE encoder may fetch its vocabulary on first
	// use, so tests run on the heuristic estimator.
	countTokensFunc = func(text string) int { return maxInt(1, len(text)/approxCharsPerToken) }
	os.Exit(m.Run())
}

func testLogger() logging.Logger {
	return logging.New(logr.Discard())
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	engine, err := New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}
