package chunker

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const approxCharsPerToken = 4

var (
	tokenEncoderOnce sync.Once
	tokenEncoder     *tiktoken.Tiktoken

	countTokensFunc = defaultCountTokens
)

// countTokens estimates the token count of text for downstream embedding
// budgets. It prefers a real BPE encoding and falls back to a chars/4
// heuristic when the encoder is unavailable.
func countTokens(text string) int {
	return countTokensFunc(text)
}

func defaultCountTokens(text string) int {
	if enc := getTokenEncoder(); enc != nil {
		if tokens := enc.Encode(text, nil, nil); len(tokens) > 0 {
			return len(tokens)
		}
	}
	return maxInt(1, len(text)/approxCharsPerToken)
}

func getTokenEncoder() *tiktoken.Tiktoken {
	tokenEncoderOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return
		}
		tokenEncoder = enc
	})
	return tokenEncoder
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
