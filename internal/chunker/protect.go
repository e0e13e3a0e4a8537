package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roivaz/docchunk/internal/logging"
)

// BlockType labels a protected region.
type BlockType string

const (
	BlockCode        BlockType = "CODE"
	BlockInlineCode  BlockType = "INLINE"
	BlockMath        BlockType = "MATH"
	BlockTable       BlockType = "TABLE"
	BlockImage       BlockType = "IMAGE"
	BlockLink        BlockType = "LINK"
	BlockHTML        BlockType = "HTML"
	BlockFrontMatter BlockType = "FRONTMATTER"
)

// ProtectedBlock is a region substituted with a placeholder so splitting can
// never cut through it. Blocks live for a single chunking run.
type ProtectedBlock struct {
	Placeholder string
	Content     string
	Type        BlockType
	ByteLength  int
}

// protectionPatterns run in a fixed priority order. Code fences go first:
// code is the most likely content to incidentally contain other constructs'
// syntax (a pipe table inside a fence is frozen before the table pattern
// runs). Nested or ambiguous markup beyond that ordering is a known
// limitation and is not special-cased.
var protectionPatterns = []struct {
	typ BlockType
	re  *regexp.Regexp
}{
	{BlockCode, regexp.MustCompile("(?s)```.*?```")},
	{BlockCode, regexp.MustCompile("(?s)~~~.*?~~~")},
	{BlockInlineCode, regexp.MustCompile("`[^`\n]+`")},
	{BlockMath, regexp.MustCompile(`(?s)\$\$.*?\$\$`)},
	{BlockTable, regexp.MustCompile(`(?m)(?:^[ \t]*\|[^\n]*\|[ \t]*\n?){2,}`)},
	{BlockImage, regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)},
	{BlockLink, regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)},
	{BlockHTML, regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9-]*(?:\s[^<>]*)?>`)},
	{BlockFrontMatter, regexp.MustCompile(`(?s)\A---\n.*?\n---\n`)},
}

var placeholderPattern = regexp.MustCompile(`__PROTECTED_[A-Z]+_\d+__`)

// protector extracts unsplittable regions into placeholders and restores
// them after sizing. One instance serves exactly one chunking run.
type protector struct {
	counter int
	blocks  map[string]ProtectedBlock
	log     logging.Logger
}

func newProtector(log logging.Logger) *protector {
	return &protector{blocks: make(map[string]ProtectedBlock), log: log}
}

// extract replaces every protected region with a unique placeholder token.
// Each pattern scans the already-substituted text, so regions frozen by an
// earlier pattern are never re-matched by a later one.
func (p *protector) extract(text string) string {
	for _, pat := range protectionPatterns {
		text = pat.re.ReplaceAllStringFunc(text, func(match string) string {
			placeholder := fmt.Sprintf("__PROTECTED_%s_%d__", pat.typ, p.counter)
			p.counter++
			p.blocks[placeholder] = ProtectedBlock{
				Placeholder: placeholder,
				Content:     match,
				Type:        pat.typ,
				ByteLength:  len(match),
			}
			return placeholder
		})
	}
	return text
}

// restore substitutes placeholders back to their original content. Order
// does not matter because placeholders are unique; the loop handles the rare
// case of a protected region whose content itself swallowed an earlier
// placeholder.
func (p *protector) restore(text string) string {
	if len(p.blocks) == 0 {
		return text
	}
	for pass := 0; pass <= len(p.blocks); pass++ {
		replaced := false
		for placeholder, block := range p.blocks {
			if strings.Contains(text, placeholder) {
				text = strings.ReplaceAll(text, placeholder, block.Content)
				replaced = true
			}
		}
		if !replaced {
			break
		}
	}
	if placeholderPattern.MatchString(text) {
		// A token with no matching block, typically a placeholder cut
		// through by a splitting tier. The engine degrades instead of
		// failing: the region loses its protection and the remnant token
		// passes through as literal text.
		p.log.Info("unresolved placeholder after restore, protection degraded")
	}
	return text
}

// effectiveSize is the byte length s would have after restoration:
// placeholder tokens count as their original block's byte length.
func (p *protector) effectiveSize(s string) int {
	if len(p.blocks) == 0 {
		return len(s)
	}
	size := len(s)
	for _, token := range placeholderPattern.FindAllString(s, -1) {
		if block, ok := p.blocks[token]; ok {
			size += block.ByteLength - len(token)
		}
	}
	return size
}

// placeholderSpans returns the [start, end) byte ranges of placeholder
// tokens in s, so window slicing can avoid cutting inside them.
func (p *protector) placeholderSpans(s string) [][]int {
	if len(p.blocks) == 0 {
		return nil
	}
	return placeholderPattern.FindAllStringIndex(s, -1)
}

// isLonePlaceholder reports whether s is exactly one placeholder token.
func (p *protector) isLonePlaceholder(s string) bool {
	_, ok := p.blocks[strings.TrimSpace(s)]
	return ok
}

// atomicFor returns the protected block a restored fragment consists of, when
// the fragment is exactly one block whose own byte length exceeds the budget.
func (p *protector) atomicFor(fragment string, budget int) (ProtectedBlock, bool) {
	trimmed := strings.TrimSpace(fragment)
	for _, block := range p.blocks {
		if block.ByteLength > budget && strings.TrimSpace(block.Content) == trimmed {
			return block, true
		}
	}
	return ProtectedBlock{}, false
}

// frontMatterBlock returns the protected YAML front matter, if any.
func (p *protector) frontMatterBlock() (ProtectedBlock, bool) {
	for _, block := range p.blocks {
		if block.Type == BlockFrontMatter {
			return block, true
		}
	}
	return ProtectedBlock{}, false
}
