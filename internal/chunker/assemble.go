package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Chunk is a bounded-size fragment of a document. All fields are computed at
// assembly; chunks are immutable values owned by the caller.
type Chunk struct {
	ID      string `json:"id"`
	Index   int    `json:"index"`
	Content string `json:"content"`

	ByteLength int `json:"byte_length"`
	CharLength int `json:"char_length"`
	TokenCount int `json:"token_count"`

	// StartPosition and EndPosition are best-effort byte offsets into the
	// original text, located by forward-only substring search. They are
	// approximate when content repeats or when fragments were rejoined
	// during merging.
	StartPosition int `json:"start_position"`
	EndPosition   int `json:"end_position"`

	Language    Language    `json:"language"`
	ContentType ContentType `json:"content_type"`
	ContentHash string      `json:"content_hash"`

	// OversizedAtomic marks a chunk that is exactly one protected block
	// larger than the budget, emitted whole rather than split.
	OversizedAtomic bool `json:"oversized_atomic,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// assemble builds the final chunk records from restored fragments.
func (e *Engine) assemble(original string, fragments []string, lang Language, ctype ContentType, prot *protector) []Chunk {
	var frontMatter map[string]any
	if block, ok := prot.frontMatterBlock(); ok {
		frontMatter = parseFrontMatter(block)
	}

	chunks := make([]Chunk, 0, len(fragments))
	searchFrom := 0
	prevEnd := 0
	for i, fragment := range fragments {
		start := strings.Index(original[searchFrom:], fragment)
		if start >= 0 {
			start += searchFrom
		} else {
			// Merged fragments no longer appear verbatim; fall back to the
			// previous chunk's end.
			start = prevEnd
		}
		byteLen := len(fragment)
		hash := sha256Hex(fragment)

		chunks = append(chunks, Chunk{
			ID:            uuid.NewSHA1(uuid.NameSpaceOID, []byte(hash+":"+strconv.Itoa(i))).String(),
			Index:         i,
			Content:       fragment,
			ByteLength:    byteLen,
			CharLength:    utf8.RuneCountInString(fragment),
			TokenCount:    countTokens(fragment),
			StartPosition: start,
			EndPosition:   start + byteLen,
			Language:      lang,
			ContentType:   ctype,
			ContentHash:   hash,
			Metadata:      e.chunkMetadata(frontMatter),
		})
		if _, ok := prot.atomicFor(fragment, e.cfg.ChunkSizeBytes); ok {
			chunks[len(chunks)-1].OversizedAtomic = true
		}

		// Overlapping successors may step back at most overlap bytes, so the
		// next search starts just past this chunk's start.
		searchFrom = start + 1
		prevEnd = start + byteLen
	}
	return chunks
}

// chunkMetadata merges caller-supplied metadata with engine extras. Caller
// keys never overwrite engine-computed fields because those live on the
// Chunk struct itself.
func (e *Engine) chunkMetadata(frontMatter map[string]any) map[string]any {
	if len(e.cfg.Metadata) == 0 && len(frontMatter) == 0 {
		return nil
	}
	out := make(map[string]any, len(e.cfg.Metadata)+1)
	for k, v := range e.cfg.Metadata {
		out[k] = v
	}
	if len(frontMatter) > 0 {
		// Each chunk gets its own copy so mutating one chunk's metadata
		// cannot leak into its siblings.
		fm := make(map[string]any, len(frontMatter))
		for k, v := range frontMatter {
			fm[k] = v
		}
		out["front_matter"] = fm
	}
	return out
}

func sha256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
