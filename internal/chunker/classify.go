package chunker

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// classifySampleRunes bounds how much of the document the content-type
// battery inspects.
const classifySampleRunes = 1000

var (
	mdHeaderPattern = regexp.MustCompile(`(?m)^#{1,6}\s`)
	mdFencePattern  = regexp.MustCompile("(?m)^(```|~~~)")
	mdImagePattern  = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLinkPattern   = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)
	mdTablePattern  = regexp.MustCompile(`(?m)^[ \t]*\|.*\|[ \t]*$`)

	htmlTagPattern = regexp.MustCompile(`(?i)<(!doctype|html|head|body|div|span|p|a|table|ul|ol|li|br|h[1-6])\b[^>]*>`)
	xmlDeclPattern = regexp.MustCompile(`(?i)^\s*<\?xml\b`)

	codePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*func\s+\w+\s*\(`),
		regexp.MustCompile(`(?m)^\s*(def|class)\s+\w+`),
		regexp.MustCompile(`(?m)^\s*(import|package|#include)\b`),
		regexp.MustCompile(`(?m)^\s*(const|var|let)\s+\w+\s*=`),
	}
)

// Classify detects language and content type from a text sample. It is a
// pure function: deterministic, no side effects. The engine consults it only
// when the configuration asks for auto detection.
func Classify(sample string) (Language, ContentType) {
	return detectLanguage(sample), detectContentType(sample)
}

func detectLanguage(sample string) Language {
	var cjk, latin, total int
	for _, r := range sample {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case isCJK(r):
			cjk++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	if total == 0 {
		return LanguageLatin
	}
	cjkRatio := float64(cjk) / float64(total)
	latinRatio := float64(latin) / float64(total)
	switch {
	case cjkRatio > 0.3 && latinRatio > 0.2:
		return LanguageMixed
	case cjkRatio > 0.3:
		return LanguageCJK
	case latinRatio > 0.5:
		return LanguageLatin
	default:
		return LanguageMixed
	}
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

func detectContentType(sample string) ContentType {
	head := truncateRunes(sample, classifySampleRunes)

	mdHits := len(mdHeaderPattern.FindAllString(head, -1)) +
		len(mdFencePattern.FindAllString(head, -1))/2 +
		len(mdImagePattern.FindAllString(head, -1)) +
		len(mdLinkPattern.FindAllString(head, -1)) +
		len(mdTablePattern.FindAllString(head, -1))/2
	if mdHits >= 2 {
		return ContentTypeMarkdown
	}

	// Fallback priority: HTML, JSON, XML, code. An XHTML document with an
	// <?xml ...?> prolog classifies as HTML, not XML.
	if htmlTagPattern.MatchString(head) {
		return ContentTypeHTML
	}
	trimmed := strings.TrimSpace(sample)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if gjson.Valid(trimmed) {
			return ContentTypeJSON
		}
	}
	if xmlDeclPattern.MatchString(head) {
		return ContentTypeXML
	}
	for _, p := range codePatterns {
		if p.MatchString(head) {
			return ContentTypeCode
		}
	}
	return ContentTypePlain
}

// contentTypeForFilename maps a filename hint to a content type, or auto when
// the extension is unknown.
func contentTypeForFilename(name string) ContentType {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".mdx"), strings.HasSuffix(lower, ".markdown"):
		return ContentTypeMarkdown
	case strings.HasSuffix(lower, ".json"):
		return ContentTypeJSON
	case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
		return ContentTypeHTML
	case strings.HasSuffix(lower, ".xml"):
		return ContentTypeXML
	case strings.HasSuffix(lower, ".go"), strings.HasSuffix(lower, ".py"),
		strings.HasSuffix(lower, ".js"), strings.HasSuffix(lower, ".ts"),
		strings.HasSuffix(lower, ".java"), strings.HasSuffix(lower, ".rs"),
		strings.HasSuffix(lower, ".c"), strings.HasSuffix(lower, ".sh"):
		return ContentTypeCode
	case strings.HasSuffix(lower, ".txt"):
		return ContentTypePlain
	default:
		return ContentTypeAuto
	}
}

func truncateRunes(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
