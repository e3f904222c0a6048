// Package pipeline loads exported model bundles and runs their processing
// components over raw text. A bundle is a directory tree in the layout
// spaCy uses for packaged models: meta.json describing the model plus one
// subdirectory of artifacts per pipeline component.
//
// Only meta.json is required. Every component artifact is optional and a
// broken one degrades that component instead of failing the whole load,
// so a partially installed model can still be inspected.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lfaller/inspect-spacy-model/internal/logging"
)

// SkippedComponent records a pipeline component that could not be loaded
// and the reason it was skipped.
type SkippedComponent struct {
	Name   string
	Reason string
}

// Pipeline is a loaded model bundle with its runnable components.
type Pipeline struct {
	dir       string
	meta      *Meta
	vocab     *Vocab
	tokenizer Tokenizer
	segmenter Segmenter
	tagger    *lookupTagger
	ruler     *patternRuler

	components []string
	skipped    []SkippedComponent
}

// Load reads the bundle at dir. The meta.json must parse; everything else
// is loaded best effort, with failures recorded as skipped components.
func Load(dir string, opts ...Option) (*Pipeline, error) {
	meta, err := ParseMeta(filepath.Join(dir, MetaFileName))
	if err != nil {
		return nil, err
	}

	p := &Pipeline{dir: dir, meta: meta}
	for _, opt := range opts {
		opt(p)
	}

	p.vocab = loadVocab(dir)

	if p.tokenizer == nil {
		tok, err := newHFTokenizer(filepath.Join(dir, TokenizerFileName))
		if err != nil {
			p.skip("tokenizer", err)
		} else {
			p.tokenizer = tok
		}
	}

	for _, name := range meta.Pipeline {
		if err := p.loadComponent(name); err != nil {
			p.skip(name, err)
			continue
		}
		p.components = append(p.components, name)
	}

	return p, nil
}

func (p *Pipeline) loadComponent(name string) error {
	switch name {
	case "tagger":
		tagger, err := newLookupTagger(filepath.Join(p.dir, taggerFile))
		if err != nil {
			return err
		}
		p.tagger = tagger
	case "ner", "entity_ruler":
		ruler, err := newPatternRuler(filepath.Join(p.dir, rulerFile))
		if err != nil {
			return err
		}
		p.ruler = ruler
	case "senter", "sentencizer":
		if p.segmenter != nil {
			return nil
		}
		segmenter, err := newPunktSegmenter(filepath.Join(p.dir, senterFile))
		if err != nil {
			return err
		}
		p.segmenter = segmenter
	default:
		return fmt.Errorf("unsupported component %q", name)
	}
	return nil
}

func (p *Pipeline) skip(name string, err error) {
	logging.Infof("Skipping component %s: %v", name, err)
	p.skipped = append(p.skipped, SkippedComponent{Name: name, Reason: err.Error()})
}

// Dir returns the bundle directory the pipeline was loaded from.
func (p *Pipeline) Dir() string {
	return p.dir
}

// Meta returns the parsed meta.json.
func (p *Pipeline) Meta() *Meta {
	return p.meta
}

// Vocab returns the bundle's vocabulary.
func (p *Pipeline) Vocab() *Vocab {
	return p.vocab
}

// Components returns the names of the components that loaded, in the
// order meta.json declares them.
func (p *Pipeline) Components() []string {
	return p.components
}

// Skipped returns the components that failed to load.
func (p *Pipeline) Skipped() []SkippedComponent {
	return p.skipped
}

// HasComponent reports whether the named component loaded.
func (p *Pipeline) HasComponent(name string) bool {
	for _, c := range p.components {
		if c == name {
			return true
		}
	}
	return false
}

// ComponentType returns the type name of the value backing a loaded
// component, or "" when the component did not load.
func (p *Pipeline) ComponentType(name string) string {
	switch name {
	case "tagger":
		if p.tagger != nil {
			return typeName(p.tagger)
		}
	case "ner", "entity_ruler":
		if p.ruler != nil {
			return typeName(p.ruler)
		}
	case "senter", "sentencizer":
		if p.segmenter != nil {
			return typeName(p.segmenter)
		}
	}
	return ""
}

func typeName(v interface{}) string {
	name := fmt.Sprintf("%T", v)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Labels returns the label set of the named component. Loaded components
// answer from their artifacts; otherwise the label set recorded in
// meta.json is used, so labels survive a broken component.
func (p *Pipeline) Labels(name string) []string {
	switch name {
	case "tagger":
		if p.tagger != nil {
			return p.tagger.Labels()
		}
	case "ner", "entity_ruler":
		if p.ruler != nil {
			return p.ruler.Labels()
		}
	}
	return p.meta.ComponentLabels(name)
}

// Process runs text through the loaded components. It requires a working
// tokenizer; tagger, entity and sentence annotations are filled in only
// when those components are available.
func (p *Pipeline) Process(text string) (*Doc, error) {
	if p.tokenizer == nil {
		return nil, fmt.Errorf("model has no usable tokenizer")
	}
	words, err := p.tokenizer.Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	doc := &Doc{Text: text, Tokens: alignTokens(text, words)}

	surfaces := make([]string, len(doc.Tokens))
	for i := range doc.Tokens {
		surfaces[i] = surfaceForm(doc.Tokens[i].Text)
	}

	if p.tagger != nil {
		for i := range doc.Tokens {
			tag := p.tagger.Tag(surfaces[i])
			doc.Tokens[i].Tag = tag
			doc.Tokens[i].POS = p.tagger.POS(tag)
		}
	}

	if p.ruler != nil {
		doc.Ents = p.ruler.Apply(surfaces)
		for i := range doc.Ents {
			doc.Ents[i].Text = doc.spanText(doc.Ents[i].Start, doc.Ents[i].End)
		}
	}

	if p.segmenter != nil {
		sents, err := p.segmenter.Segment(text)
		if err != nil {
			return nil, fmt.Errorf("segment sentences: %w", err)
		}
		doc.Sents = sents
	}

	return doc, nil
}

// Close releases resources held by the pipeline, currently the mapped
// vector table.
func (p *Pipeline) Close() error {
	if p.vocab == nil {
		return nil
	}
	return p.vocab.Close()
}

// alignTokens locates each tokenizer output in text, scanning forward so
// repeated words resolve to distinct positions. Tokens that cannot be
// found (artifacts of subword normalization) keep -1 offsets.
func alignTokens(text string, words []string) []Token {
	runes := []rune(text)
	folded := []rune(strings.ToLower(text))
	tokens := make([]Token, len(words))
	cursor := 0
	for i, word := range words {
		tokens[i] = Token{Text: word, Start: -1, End: -1}
		surface := []rune(surfaceForm(word))
		if len(surface) == 0 {
			continue
		}
		at := indexRunes(runes, surface, cursor)
		if at < 0 {
			at = indexRunes(folded, []rune(strings.ToLower(string(surface))), cursor)
		}
		if at < 0 {
			continue
		}
		tokens[i].Start = at
		tokens[i].End = at + len(surface)
		cursor = at + len(surface)
	}
	return tokens
}

// surfaceForm strips subword continuation markers so a token can be
// matched against the original text and the exported lookup tables.
func surfaceForm(word string) string {
	word = strings.TrimPrefix(word, "##")
	word = strings.TrimPrefix(word, "▁") // SentencePiece metaspace
	word = strings.TrimPrefix(word, "Ġ") // byte level space marker
	return word
}

func indexRunes(haystack, needle []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
