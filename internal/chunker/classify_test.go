package chunker

import (
	"strings"
	"testing"
)

func TestClassifyMarkdown(t *testing.T) {
	sample := "# Title\n\nSome intro with a [link](https://example.com).\n\n## Section\n\nBody text.\n"
	lang, ctype := Classify(sample)
	if ctype != ContentTypeMarkdown {
		t.Fatalf("expected markdown, got %s", ctype)
	}
	if lang != LanguageLatin {
		t.Fatalf("expected latin, got %s", lang)
	}
}

func TestClassifyCJK(t *testing.T) {
	lang, _ := Classify(strings.Repeat("这是一个中文文档。", 10))
	if lang != LanguageCJK {
		t.Fatalf("expected cjk, got %s", lang)
	}
}

func TestClassifyMixed(t *testing.T) {
	lang, _ := Classify(strings.Repeat("Go 语言的 goroutine 调度器 scheduler ", 10))
	if lang != LanguageMixed {
		t.Fatalf("expected mixed, got %s", lang)
	}
}

func TestClassifyJSON(t *testing.T) {
	_, ctype := Classify(`{"name": "docchunk", "values": [1, 2, 3]}`)
	if ctype != ContentTypeJSON {
		t.Fatalf("expected json, got %s", ctype)
	}
}

func TestClassifyCode(t *testing.T) {
	_, ctype := Classify("package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n")
	if ctype != ContentTypeCode {
		t.Fatalf("expected code, got %s", ctype)
	}
}

func TestClassifyHTML(t *testing.T) {
	_, ctype := Classify("<!DOCTYPE html>\n<html><body><p>hello</p></body></html>")
	if ctype != ContentTypeHTML {
		t.Fatalf("expected html, got %s", ctype)
	}
}

func TestClassifyXML(t *testing.T) {
	_, ctype := Classify("<?xml version=\"1.0\"?>\n<catalog><item id=\"1\"/></catalog>")
	if ctype != ContentTypeXML {
		t.Fatalf("expected xml, got %s", ctype)
	}
}

func TestClassifyXHTMLPrefersHTML(t *testing.T) {
	// Matches both the XML declaration and the HTML tag battery; HTML has
	// the higher fallback priority.
	_, ctype := Classify("<?xml version=\"1.0\"?>\n<html><body><p>hi</p></body></html>")
	if ctype != ContentTypeHTML {
		t.Fatalf("expected html, got %s", ctype)
	}
}

func TestClassifyPlain(t *testing.T) {
	_, ctype := Classify("Just a plain paragraph of prose with nothing special about it.")
	if ctype != ContentTypePlain {
		t.Fatalf("expected plain, got %s", ctype)
	}
}

func TestContentTypeForFilename(t *testing.T) {
	if got := contentTypeForFilename("docs/guide.md"); got != ContentTypeMarkdown {
		t.Fatalf("expected markdown for .md, got %s", got)
	}
	if got := contentTypeForFilename("main.go"); got != ContentTypeCode {
		t.Fatalf("expected code for .go, got %s", got)
	}
	if got := contentTypeForFilename("data.unknown"); got != ContentTypeAuto {
		t.Fatalf("expected auto for unknown extension, got %s", got)
	}
}
