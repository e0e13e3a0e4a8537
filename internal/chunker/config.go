package chunker

import (
	"fmt"

	"github.com/roivaz/docchunk/internal/logging"
)

// Language selects the separator set used by the recursive splitter.
type Language string

const (
	LanguageAuto  Language = "auto"
	LanguageLatin Language = "latin"
	LanguageCJK   Language = "cjk"
	LanguageMixed Language = "mixed"
)

// ContentType describes the detected or declared shape of the input text.
type ContentType string

const (
	ContentTypeAuto     ContentType = "auto"
	ContentTypePlain    ContentType = "plain"
	ContentTypeMarkdown ContentType = "markdown"
	ContentTypeCode     ContentType = "code"
	ContentTypeHTML     ContentType = "html"
	ContentTypeJSON     ContentType = "json"
	ContentTypeXML      ContentType = "xml"
)

// Strategy selects how a document is segmented before size enforcement.
type Strategy string

const (
	StrategyRecursive Strategy = "recursive"
	StrategyMarkdown  Strategy = "markdown"
	StrategySemantic  Strategy = "semantic"
	StrategyFixed     Strategy = "fixed"
	StrategyAdaptive  Strategy = "adaptive"
)

const (
	// MinChunkSizeBytes is the smallest budget the engine will work with;
	// smaller configured values are raised to it.
	MinChunkSizeBytes = 100
	// MaxChunkSizeBytes is the largest recommended budget. Larger values are
	// allowed but logged as a performance concern.
	MaxChunkSizeBytes = 8192
	// DefaultChunkSizeBytes is used when no budget is configured.
	DefaultChunkSizeBytes = 1024

	maxOverlapRatio = 0.5
)

// ErrInvalidChunkSize is returned for a negative chunk size. Every other
// out-of-range value is repaired rather than rejected.
var ErrInvalidChunkSize = fmt.Errorf("chunk size must not be negative")

// Config controls a chunking engine. The zero value is usable: Normalize
// fills in defaults and repairs out-of-range values.
type Config struct {
	// ChunkSizeBytes is the UTF-8 byte budget for a normal chunk.
	ChunkSizeBytes int
	// OverlapRatio is the fraction of the budget shared between consecutive
	// chunks, clamped to [0, 0.5].
	OverlapRatio float64
	// OverlapBytes is derived from the clamped budget and ratio by Normalize.
	OverlapBytes int

	// RespectSpecialBlocks keeps code fences, tables, math blocks and similar
	// regions unsplit via placeholder protection.
	RespectSpecialBlocks bool
	// PreserveStructure enables heading-aware segmentation for Markdown.
	PreserveStructure bool

	Language    Language
	ContentType ContentType
	Strategy    Strategy

	// Metadata is merged into every emitted chunk without overwriting
	// engine-computed fields.
	Metadata map[string]any
}

// DefaultConfig returns the configuration used when callers have no opinion.
func DefaultConfig() Config {
	return Config{
		ChunkSizeBytes:       DefaultChunkSizeBytes,
		OverlapRatio:         0.1,
		RespectSpecialBlocks: true,
		PreserveStructure:    true,
		Language:             LanguageAuto,
		ContentType:          ContentTypeAuto,
		Strategy:             StrategyAdaptive,
	}
}

// Normalize clamps out-of-range values, fills defaults and derives
// OverlapBytes. It never fails for out-of-range input; the only hard error is
// a negative chunk size, which is caller misuse rather than a tunable.
func (c Config) Normalize(log logging.Logger) (Config, error) {
	if c.ChunkSizeBytes < 0 {
		return Config{}, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, c.ChunkSizeBytes)
	}
	if c.ChunkSizeBytes == 0 {
		c.ChunkSizeBytes = DefaultChunkSizeBytes
	}
	if c.ChunkSizeBytes < MinChunkSizeBytes {
		log.Info("chunk size below minimum, raising", "configured", c.ChunkSizeBytes, "minimum", MinChunkSizeBytes)
		c.ChunkSizeBytes = MinChunkSizeBytes
	}
	if c.ChunkSizeBytes > MaxChunkSizeBytes {
		log.Info("chunk size above recommended maximum, keeping", "configured", c.ChunkSizeBytes, "maximum", MaxChunkSizeBytes)
	}

	if c.OverlapRatio < 0 {
		log.Info("overlap ratio below zero, clamping", "configured", c.OverlapRatio)
		c.OverlapRatio = 0
	}
	if c.OverlapRatio > maxOverlapRatio {
		log.Info("overlap ratio above maximum, clamping", "configured", c.OverlapRatio, "maximum", maxOverlapRatio)
		c.OverlapRatio = maxOverlapRatio
	}
	c.OverlapBytes = int(float64(c.ChunkSizeBytes) * c.OverlapRatio)

	if c.Language == "" {
		c.Language = LanguageAuto
	}
	if c.ContentType == "" {
		c.ContentType = ContentTypeAuto
	}
	if c.Strategy == "" {
		c.Strategy = StrategyAdaptive
	}
	return c, nil
}
