package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/neurosnap/sentences"
)

// senterFile holds the Punkt training data for the sentence component.
const senterFile = "senter/punkt.json"

// Segmenter splits raw text into sentences.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// punktSegmenter wraps a Punkt sentence tokenizer trained for the model's
// language.
type punktSegmenter struct {
	inner *sentences.DefaultSentenceTokenizer
}

func newPunktSegmenter(path string) (*punktSegmenter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sentence model %s: %w", path, err)
	}
	training, err := sentences.LoadTraining(data)
	if err != nil {
		return nil, fmt.Errorf("parse sentence model %s: %w", path, err)
	}
	return &punktSegmenter{inner: sentences.NewSentenceTokenizer(training)}, nil
}

func (s *punktSegmenter) Segment(text string) ([]string, error) {
	var out []string
	for _, sent := range s.inner.Tokenize(text) {
		if trimmed := strings.TrimSpace(sent.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
