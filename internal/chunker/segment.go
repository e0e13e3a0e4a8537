package chunker

import (
	"regexp"
	"strings"
)

var (
	headingPattern   = regexp.MustCompile(`(?m)^#{1,6}[ \t]`)
	paragraphPattern = regexp.MustCompile(`\n[ \t]*\n`)
)

// sectionJoinOverhead is the byte cost of the "\n\n" joining two packed
// sections.
const sectionJoinOverhead = 2

// splitByHeadings cuts text into heading-delimited sections: each section
// starts at a heading line (any level) and runs to the next heading or end of
// document. Text before the first heading becomes a leading section so no
// content is dropped. Returns nil when the text has no headings.
func splitByHeadings(text string) []string {
	locs := headingPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	var sections []string
	if locs[0][0] > 0 {
		if pre := text[:locs[0][0]]; strings.TrimSpace(pre) != "" {
			sections = append(sections, pre)
		}
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, text[loc[0]:end])
	}
	return sections
}

// splitParagraphs is the heuristic grouping unit for the semantic strategy:
// blank-line-delimited paragraphs, later packed exactly like sections.
func splitParagraphs(text string) []string {
	return paragraphPattern.Split(text, -1)
}

// packSections greedily accumulates sections into chunks up to the budget,
// joining with a blank line. A section over budget flushes the pending
// accumulation first (order is preserved) and is handed to the recursive
// splitter in isolation.
func packSections(sections []string, budget int, sizeOf func(string) int, split *recursiveSplitter) []string {
	var out []string
	var cur []string
	curSize := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, strings.Join(cur, "\n\n"))
		cur, curSize = nil, 0
	}

	for _, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		size := sizeOf(section)
		if size > budget {
			flush()
			out = append(out, split.split(section)...)
			continue
		}
		overhead := 0
		if len(cur) > 0 {
			overhead = sectionJoinOverhead
		}
		if curSize+size+overhead > budget {
			flush()
			overhead = 0
		}
		cur = append(cur, section)
		curSize += size + overhead
	}
	flush()
	return out
}
