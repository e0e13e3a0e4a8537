package chunker

import (
	"github.com/tmc/langchaingo/textsplitter"
)

// Splitter adapts an Engine to langchaingo's textsplitter.TextSplitter so the
// engine can drop into existing document-loader pipelines.
type Splitter struct {
	engine *Engine
}

var _ textsplitter.TextSplitter = Splitter{}

func NewSplitter(engine *Engine) Splitter {
	return Splitter{engine: engine}
}

// SplitText returns the chunk contents in document order.
func (s Splitter) SplitText(text string) ([]string, error) {
	chunks, err := s.engine.Chunk(text)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return parts, nil
}
