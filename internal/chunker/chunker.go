// Package chunker splits documents into bounded-size, order-preserving,
// deterministic fragments suitable for embedding and indexing. It preserves
// semantic structure (headings, code fences, tables, math blocks) through
// placeholder protection and enforces a strict UTF-8 byte budget via tiered
// fallback splitting. The engine performs no I/O: it consumes a decoded
// string and returns chunk records.
package chunker

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/roivaz/docchunk/internal/logging"
)

type classification struct {
	lang  Language
	ctype ContentType
}

// Engine runs the chunking pipeline. It is safe for concurrent use: the
// configuration is immutable after construction and the only shared state is
// a write-once classification cache.
type Engine struct {
	cfg Config
	log logging.Logger

	cacheMu       sync.Mutex
	classifyCache map[string]classification
}

// New validates the configuration and builds an engine. Out-of-range values
// are repaired with a logged warning; only a negative chunk size errors.
func New(cfg Config, log logging.Logger) (*Engine, error) {
	normalized, err := cfg.Normalize(log)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:           normalized,
		log:           log,
		classifyCache: make(map[string]classification),
	}, nil
}

// Config returns the engine's normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

// Chunk splits text using the configured strategy.
func (e *Engine) Chunk(text string) ([]Chunk, error) {
	return e.run(text, "", e.cfg.Strategy, e.cfg.ContentType)
}

// ChunkWithHint is Chunk with a filename hint that short-circuits content
// type detection for known extensions.
func (e *Engine) ChunkWithHint(text, filename string) ([]Chunk, error) {
	return e.run(text, filename, e.cfg.Strategy, e.cfg.ContentType)
}

// ChunkMarkdown splits text through the heading-aware structural path.
func (e *Engine) ChunkMarkdown(text string) ([]Chunk, error) {
	return e.run(text, "", StrategyMarkdown, ContentTypeMarkdown)
}

// ChunkText splits text through the plain recursive path, ignoring document
// structure.
func (e *Engine) ChunkText(text string) ([]Chunk, error) {
	return e.run(text, "", StrategyRecursive, ContentTypePlain)
}

// ChunkBatch fans N independent documents out across a bounded worker pool.
// Cancellation is cooperative between documents: a single document's
// pipeline always runs to completion. Results keep input order.
func (e *Engine) ChunkBatch(ctx context.Context, texts []string, maxConcurrency int) ([][]Chunk, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = runtime.NumCPU()
	}
	results := make([][]Chunk, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	semaphore := make(chan struct{}, maxConcurrency)

	for i, text := range texts {
		select {
		case <-gctx.Done():
			return nil, gctx.Err()
		default:
		}
		g.Go(func() error {
			select {
			case semaphore <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-semaphore }()

			chunks, err := e.run(text, "", e.cfg.Strategy, e.cfg.ContentType)
			if err != nil {
				return fmt.Errorf("chunk document %d: %w", i, err)
			}
			results[i] = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// run is the linear pipeline:
// RAW -> CLASSIFIED -> PROTECTED -> SEGMENTED -> SIZED -> RESTORED -> MERGED -> FINALIZED.
func (e *Engine) run(text, filename string, strategy Strategy, ctype ContentType) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return []Chunk{}, nil
	}

	lang, ctype := e.resolveClassification(text, filename, ctype)
	strategy = resolveStrategy(strategy, ctype, e.cfg.PreserveStructure)

	prot := newProtector(e.log)
	working := text
	if e.cfg.RespectSpecialBlocks {
		working = prot.extract(text)
	}

	splitter := &recursiveSplitter{
		budget:     e.cfg.ChunkSizeBytes,
		overlap:    e.cfg.OverlapBytes,
		separators: separatorsFor(lang),
		sizeOf:     prot.effectiveSize,
		spans:      prot.placeholderSpans,
		lonePlace:  prot.isLonePlaceholder,
	}

	var fragments []string
	switch strategy {
	case StrategyMarkdown:
		sections := splitByHeadings(working)
		if len(sections) == 0 {
			// No headings: the whole text is a single section.
			fragments = splitter.split(working)
		} else {
			fragments = packSections(sections, e.cfg.ChunkSizeBytes, prot.effectiveSize, splitter)
		}
	case StrategySemantic:
		fragments = packSections(splitParagraphs(working), e.cfg.ChunkSizeBytes, prot.effectiveSize, splitter)
	case StrategyFixed:
		fragments = splitter.byteWindows(working)
	default:
		fragments = splitter.split(working)
	}

	restored := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(prot.restore(fragment))
		if fragment != "" {
			restored = append(restored, fragment)
		}
	}

	merged := mergeUndersized(restored, MinChunkSizeBytes, e.cfg.ChunkSizeBytes)
	final := e.enforceBudget(merged, prot, lang)

	chunks := e.assemble(text, final, lang, ctype, prot)
	e.log.Debug("chunked document", "bytes", len(text), "chunks", len(chunks), "strategy", string(strategy))
	return chunks, nil
}

// resolveClassification fills in auto language/content type, consulting the
// filename hint first and then the cached classifier.
func (e *Engine) resolveClassification(text, filename string, ctype ContentType) (Language, ContentType) {
	lang := e.cfg.Language
	if ctype == ContentTypeAuto && filename != "" {
		ctype = contentTypeForFilename(filename)
	}
	if lang != LanguageAuto && ctype != ContentTypeAuto {
		return lang, ctype
	}

	sample := truncateRunes(text, 2*classifySampleRunes)
	detected := e.cachedClassify(sample)
	if lang == LanguageAuto {
		lang = detected.lang
	}
	if ctype == ContentTypeAuto {
		ctype = detected.ctype
	}
	return lang, ctype
}

// cachedClassify memoizes classification by sample hash. Writes are
// idempotent, so a single mutex around the map is all the locking needed.
func (e *Engine) cachedClassify(sample string) classification {
	key := sha256Hex(sample)
	e.cacheMu.Lock()
	cached, ok := e.classifyCache[key]
	e.cacheMu.Unlock()
	if ok {
		return cached
	}
	lang, ctype := Classify(sample)
	result := classification{lang: lang, ctype: ctype}
	e.cacheMu.Lock()
	e.classifyCache[key] = result
	e.cacheMu.Unlock()
	return result
}

func resolveStrategy(strategy Strategy, ctype ContentType, preserveStructure bool) Strategy {
	switch strategy {
	case StrategyAdaptive:
		if ctype == ContentTypeMarkdown && preserveStructure {
			return StrategyMarkdown
		}
		return StrategyRecursive
	case StrategyMarkdown:
		if !preserveStructure {
			return StrategyRecursive
		}
		return StrategyMarkdown
	default:
		return strategy
	}
}
