package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitRespectsBudget(t *testing.T) {
	s := plainSplitter(100, 0, LanguageLatin)
	text := strings.Repeat("alpha beta gamma delta. ", 50)

	for i, piece := range s.split(text) {
		if len(piece) > 100 {
			t.Fatalf("piece %d over budget: %d bytes", i, len(piece))
		}
	}
}

func TestSplitPreservesContentWithoutOverlap(t *testing.T) {
	s := plainSplitter(100, 0, LanguageLatin)
	text := strings.Repeat("one two three four five six seven. ", 30)

	if got := strings.Join(s.split(text), ""); got != text {
		t.Fatalf("concatenated pieces differ from input")
	}
}

func TestByteWindowsKeepRunesIntact(t *testing.T) {
	s := plainSplitter(100, 0, LanguageCJK)
	text := strings.Repeat("文", 200) // 600 bytes, no separators

	pieces := s.split(text)
	if len(pieces) < 6 {
		t.Fatalf("expected at least 6 windows, got %d", len(pieces))
	}
	for i, piece := range pieces {
		if !utf8.ValidString(piece) {
			t.Fatalf("piece %d is not valid UTF-8", i)
		}
		if len(piece) > 100 {
			t.Fatalf("piece %d over budget: %d bytes", i, len(piece))
		}
	}
	if strings.Join(pieces, "") != text {
		t.Fatalf("windows do not cover the input")
	}
}

func TestByteWindowOverlap(t *testing.T) {
	s := plainSplitter(100, 20, LanguageLatin)
	text := strings.Repeat("a", 350)

	pieces := s.rawWindows(text)
	for i := 1; i < len(pieces); i++ {
		if !strings.HasSuffix(pieces[i-1], pieces[i][:20]) {
			t.Fatalf("window %d does not overlap its predecessor", i)
		}
	}
}

func TestByteWindowsTerminateOnForcedOverlap(t *testing.T) {
	// Overlap equal to the budget would stall without the +1 lower bound.
	s := plainSplitter(100, 100, LanguageLatin)
	text := strings.Repeat("b", 400)

	pieces := s.rawWindows(text)
	if len(pieces) == 0 {
		t.Fatalf("expected pieces")
	}
	for _, piece := range pieces {
		if len(piece) > 100 {
			t.Fatalf("piece over budget: %d", len(piece))
		}
	}
}

func TestSeparatorsForLanguage(t *testing.T) {
	if seps := separatorsFor(LanguageCJK); seps[3] != "。" {
		t.Fatalf("expected CJK sentence separators, got %v", seps)
	}
	if seps := separatorsFor(LanguageMixed); seps[3] != ". " {
		t.Fatalf("mixed language should use latin separators, got %v", seps)
	}
}
