// Package tokenizer counts and trims text in model tokens.
package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding matches the gpt-4o model family.
const DefaultEncoding = "o200k_base"

var loaderOnce sync.Once

// Tokenizer wraps a BPE encoding loaded from the embedded offline ranks.
type Tokenizer struct {
	enc      *tiktoken.Tiktoken
	encoding string
}

// New loads the named encoding without touching the network.
func New(encoding string) (*Tokenizer, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	if encoding == "" {
		encoding = DefaultEncoding
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding %s: %w", encoding, err)
	}

	return &Tokenizer{enc: enc, encoding: encoding}, nil
}

// Encoding returns the encoding name.
func (t *Tokenizer) Encoding() string {
	return t.encoding
}

// Encode returns the token ids of text.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.Encode(text))
}

// Truncation is the outcome of fitting text under a ceiling.
type Truncation struct {
	Text           string
	Tokens         []int
	OriginalTokens int
	Truncated      bool
}

// TruncateTail keeps only the last ceiling tokens of text.
// Text already under the ceiling is returned unchanged.
func (t *Tokenizer) TruncateTail(text string, ceiling int) Truncation {
	tokens := t.Encode(text)
	result := Truncation{
		Text:           text,
		Tokens:         tokens,
		OriginalTokens: len(tokens),
	}
	if ceiling <= 0 || len(tokens) <= ceiling {
		return result
	}

	kept := tokens[len(tokens)-ceiling:]
	result.Tokens = kept
	result.Text = t.enc.Decode(kept)
	result.Truncated = true
	return result
}
