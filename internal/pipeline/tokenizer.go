package pipeline

import (
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// TokenizerFileName is the HuggingFace tokenizer definition inside a bundle.
const TokenizerFileName = "tokenizer.json"

// Tokenizer splits raw text into surface tokens.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// hfTokenizer runs the tokenizer.json definition shipped with a bundle.
type hfTokenizer struct {
	inner *tokenizer.Tokenizer
}

func newHFTokenizer(path string) (*hfTokenizer, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", path, err)
	}
	return &hfTokenizer{inner: tk}, nil
}

func (t *hfTokenizer) Tokenize(text string) ([]string, error) {
	// Special tokens ([CLS], [SEP], ...) are padding for the model input,
	// not part of the text, so they are left out here.
	encoding, err := t.inner.EncodeSingle(text, false)
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	return encoding.Tokens, nil
}
