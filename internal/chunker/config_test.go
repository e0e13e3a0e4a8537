package chunker

import (
	"errors"
	"testing"
)

func TestNormalizeRaisesSmallChunkSize(t *testing.T) {
	cfg, err := Config{ChunkSizeBytes: 10}.Normalize(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ChunkSizeBytes != MinChunkSizeBytes {
		t.Fatalf("expected chunk size %d, got %d", MinChunkSizeBytes, cfg.ChunkSizeBytes)
	}
}

func TestNormalizeDefaultsZeroChunkSize(t *testing.T) {
	cfg, err := Config{}.Normalize(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ChunkSizeBytes != DefaultChunkSizeBytes {
		t.Fatalf("expected default chunk size, got %d", cfg.ChunkSizeBytes)
	}
	if cfg.Strategy != StrategyAdaptive || cfg.Language != LanguageAuto || cfg.ContentType != ContentTypeAuto {
		t.Fatalf("expected auto defaults, got %+v", cfg)
	}
}

func TestNormalizeRejectsNegativeChunkSize(t *testing.T) {
	_, err := Config{ChunkSizeBytes: -1}.Normalize(testLogger())
	if !errors.Is(err, ErrInvalidChunkSize) {
		t.Fatalf("expected ErrInvalidChunkSize, got %v", err)
	}
}

func TestNormalizeClampsOverlapRatio(t *testing.T) {
	for _, ratio := range []float64{-0.3, 0, 0.1, 0.5, 0.9, 3} {
		cfg, err := Config{ChunkSizeBytes: 1000, OverlapRatio: ratio}.Normalize(testLogger())
		if err != nil {
			t.Fatalf("ratio %v: unexpected error: %v", ratio, err)
		}
		if cfg.OverlapBytes < 0 || cfg.OverlapBytes > cfg.ChunkSizeBytes/2 {
			t.Fatalf("ratio %v: overlap %d outside [0, %d]", ratio, cfg.OverlapBytes, cfg.ChunkSizeBytes/2)
		}
	}
}

func TestNormalizeAllowsLargeChunkSize(t *testing.T) {
	cfg, err := Config{ChunkSizeBytes: 100000}.Normalize(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ChunkSizeBytes != 100000 {
		t.Fatalf("large chunk size should be kept, got %d", cfg.ChunkSizeBytes)
	}
}
