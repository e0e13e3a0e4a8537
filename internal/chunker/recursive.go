package chunker

import (
	"strings"
)

// Separator tiers, most structural first. The empty string is the terminal
// tier: raw byte windows.
var (
	latinSeparators = []string{"\n\n\n", "\n\n", "\n", ". ", "! ", "? ", " ", ""}
	cjkSeparators   = []string{"\n\n\n", "\n\n", "\n", "。", "！", "？", "；", "，", "、", " ", ""}
)

func separatorsFor(lang Language) []string {
	if lang == LanguageCJK {
		return cjkSeparators
	}
	return latinSeparators
}

// recursiveSplitter enforces the byte budget through tiered fallback:
// separator-aware packing first, consuming one separator per tier, then raw
// byte windows. Sizes are computed through sizeOf so placeholder tokens count
// as their restored byte length.
type recursiveSplitter struct {
	budget     int
	overlap    int
	separators []string

	sizeOf    func(string) int
	spans     func(string) [][]int
	lonePlace func(string) bool
}

// plainSplitter builds a splitter for text with no placeholders in it, used
// when a restored fragment still breaches the budget.
func plainSplitter(budget, overlap int, lang Language) *recursiveSplitter {
	return &recursiveSplitter{
		budget:     budget,
		overlap:    overlap,
		separators: separatorsFor(lang),
		sizeOf:     func(s string) int { return len(s) },
		spans:      func(string) [][]int { return nil },
		lonePlace:  func(string) bool { return false },
	}
}

func (r *recursiveSplitter) split(text string) []string {
	return r.splitTier(text, 0)
}

func (r *recursiveSplitter) splitTier(text string, tier int) []string {
	if r.sizeOf(text) <= r.budget {
		return []string{text}
	}
	if r.lonePlace(text) {
		// A single protected block over budget: emitted whole, flagged as
		// oversized-atomic downstream. Never truncated, never unprotected.
		return []string{strings.TrimSpace(text)}
	}
	if tier >= len(r.separators) {
		return r.byteWindows(text)
	}
	sep := r.separators[tier]
	if sep == "" {
		return r.byteWindows(text)
	}

	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return r.splitTier(text, tier+1)
	}
	// Re-attach the separator so the pieces concatenate back to the input.
	pieces := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if part != "" {
			pieces = append(pieces, part)
		}
	}
	return r.pack(pieces, tier)
}

// pack greedily accumulates pieces up to the budget. Oversized pieces recurse
// into the next tier; separators are never reused for the same piece. After a
// flush, trailing pieces totalling at most overlap bytes seed the next
// accumulation.
func (r *recursiveSplitter) pack(pieces []string, tier int) []string {
	var out []string
	var cur []string
	curSize := 0
	fresh := false

	emit := func() {
		if !fresh {
			return
		}
		out = append(out, strings.Join(cur, ""))
		fresh = false
	}
	carry := func() {
		var keep []string
		total := 0
		for i := len(cur) - 1; i >= 0; i-- {
			size := r.sizeOf(cur[i])
			if total+size > r.overlap {
				break
			}
			total += size
			keep = append([]string{cur[i]}, keep...)
		}
		cur, curSize = keep, total
	}

	for _, piece := range pieces {
		size := r.sizeOf(piece)
		if size > r.budget {
			// Flush pending accumulation first to preserve document order.
			emit()
			cur, curSize = nil, 0
			out = append(out, r.splitTier(piece, tier+1)...)
			continue
		}
		if curSize+size > r.budget {
			emit()
			carry()
			if curSize+size > r.budget {
				// The overlap carry alone would push this chunk over
				// budget; drop it rather than violate the bound.
				cur, curSize = nil, 0
			}
		}
		cur = append(cur, piece)
		curSize += size
		fresh = true
	}
	emit()
	return out
}

// byteWindows is the terminal tier: fixed-size byte slices with overlap.
// Windows never cut inside a placeholder token, and boundaries are walked
// back up to 3 bytes to avoid splitting a UTF-8 multi-byte sequence.
func (r *recursiveSplitter) byteWindows(text string) []string {
	var out []string
	cursor := 0
	for _, span := range r.spans(text) {
		if span[0] > cursor {
			out = append(out, r.rawWindows(text[cursor:span[0]])...)
		}
		// Placeholder tokens are emitted whole regardless of window math.
		out = append(out, text[span[0]:span[1]])
		cursor = span[1]
	}
	if cursor < len(text) {
		out = append(out, r.rawWindows(text[cursor:])...)
	}
	return out
}

func (r *recursiveSplitter) rawWindows(text string) []string {
	var out []string
	start := 0
	for start < len(text) {
		end := start + r.budget
		if end >= len(text) {
			out = append(out, text[start:])
			break
		}
		end = utf8SafeBoundary(text, start, end)
		out = append(out, text[start:end])

		// The +1 lower bound prevents an infinite loop when a misconfigured
		// overlap reaches the budget.
		next := end - r.overlap
		if next <= start {
			next = start + 1
		}
		next = utf8SafeBoundary(text, start, next)
		start = next
	}
	return out
}

// utf8SafeBoundary walks pos backward at most 3 bytes while it points at a
// UTF-8 continuation byte, keeping at least one byte of progress past start.
// If no valid boundary exists within the lookback window the position is used
// as-is; the input is not valid UTF-8 at that point anyway.
func utf8SafeBoundary(text string, start, pos int) int {
	limit := pos - 3
	if limit < start+1 {
		limit = start + 1
	}
	for pos > limit && isContinuationByte(text[pos]) {
		pos--
	}
	return pos
}

func isContinuationByte(b byte) bool {
	return b >= 0x80 && b <= 0xBF
}
