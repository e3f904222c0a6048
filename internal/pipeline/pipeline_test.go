package pipeline

import (
	"reflect"
	"strings"
	"testing"
)

// fieldsTokenizer splits on whitespace, standing in for the bundled
// tokenizer.json so tests stay independent of full tokenizer definitions.
type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}

// fixedSegmenter returns a canned sentence split.
type fixedSegmenter []string

func (s fixedSegmenter) Segment(string) ([]string, error) {
	return s, nil
}

const testMetaJSON = `{
	"lang": "en",
	"name": "core_web_sm",
	"version": "3.7.1",
	"description": "English test pipeline",
	"pipeline": ["tagger", "senter", "ner"],
	"labels": {"tagger": ["NNP", "NN", "VBZ"], "ner": ["ORG", "GPE"]}
}`

func writeTestBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeBundleFile(t, dir, MetaFileName, testMetaJSON)
	writeBundleFile(t, dir, taggerFile, `{
		"lookup": {"Apple": "NNP", "is": "VBZ", "San": "NNP", "Francisco": "NNP"},
		"tag_map": {"NNP": "PROPN", "VBZ": "VERB", "NN": "NOUN"},
		"default": "NN"
	}`)
	writeBundleFile(t, dir, rulerFile, `{"label": "ORG", "pattern": "Apple"}
{"label": "GPE", "pattern": "San Francisco"}
`)
	writeBundleFile(t, dir, stringsFile, `["Apple", "is", "startup"]`)
	return dir
}

func TestLoadRequiresMeta(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected an error for a bundle without meta.json")
	}
}

func TestLoadComponentsInOrder(t *testing.T) {
	dir := writeTestBundle(t)
	p, err := Load(dir, WithTokenizer(fieldsTokenizer{}), WithSegmenter(fixedSegmenter{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	want := []string{"tagger", "senter", "ner"}
	if !reflect.DeepEqual(p.Components(), want) {
		t.Errorf("expected components %v, got %v", want, p.Components())
	}
	if len(p.Skipped()) != 0 {
		t.Errorf("expected no skipped components, got %v", p.Skipped())
	}
	if p.Dir() != dir {
		t.Errorf("expected dir %s, got %s", dir, p.Dir())
	}
	if p.Meta().FullName() != "en_core_web_sm" {
		t.Errorf("unexpected meta: %s", p.Meta().FullName())
	}
	if p.Vocab().Size() != 3 {
		t.Errorf("expected 3 vocab strings, got %d", p.Vocab().Size())
	}
}

func TestLoadSkipsBrokenComponent(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, MetaFileName, testMetaJSON)
	writeBundleFile(t, dir, rulerFile, `{"label": "ORG", "pattern": "Apple"}`)
	// No tagger artifact and no sentence model.

	p, err := Load(dir, WithTokenizer(fieldsTokenizer{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	if !reflect.DeepEqual(p.Components(), []string{"ner"}) {
		t.Errorf("expected only ner to load, got %v", p.Components())
	}

	var names []string
	for _, s := range p.Skipped() {
		names = append(names, s.Name)
	}
	if !reflect.DeepEqual(names, []string{"tagger", "senter"}) {
		t.Errorf("expected tagger and senter skipped, got %v", names)
	}

	if p.HasComponent("tagger") {
		t.Error("expected HasComponent to be false for a skipped component")
	}
	// The label set survives a broken component via meta.json.
	want := []string{"NN", "NNP", "VBZ"}
	if !reflect.DeepEqual(p.Labels("tagger"), want) {
		t.Errorf("expected meta labels %v, got %v", want, p.Labels("tagger"))
	}
}

func TestLoadWithoutTokenizer(t *testing.T) {
	dir := writeTestBundle(t)
	p, err := Load(dir, WithSegmenter(fixedSegmenter{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	if len(p.Skipped()) != 1 || p.Skipped()[0].Name != "tokenizer" {
		t.Fatalf("expected only the tokenizer to be skipped, got %v", p.Skipped())
	}
	if _, err := p.Process("Some text."); err == nil {
		t.Error("expected Process to fail without a tokenizer")
	}
}

func TestLoadReportsUnsupportedComponent(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, MetaFileName,
		`{"name": "core_web_sm", "version": "3.7.1", "pipeline": ["parser"]}`)

	p, err := Load(dir, WithTokenizer(fieldsTokenizer{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	if len(p.Skipped()) != 1 || p.Skipped()[0].Name != "parser" {
		t.Fatalf("expected parser to be skipped, got %v", p.Skipped())
	}
	if !strings.Contains(p.Skipped()[0].Reason, "unsupported") {
		t.Errorf("expected an unsupported component reason, got %q", p.Skipped()[0].Reason)
	}
}

func TestProcess(t *testing.T) {
	text := "Apple is buying a startup in San Francisco"
	p, err := Load(writeTestBundle(t),
		WithTokenizer(fieldsTokenizer{}),
		WithSegmenter(fixedSegmenter{text}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	doc, err := p.Process(text)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(doc.Tokens) != 8 {
		t.Fatalf("expected 8 tokens, got %d: %v", len(doc.Tokens), doc.TokenTexts())
	}
	if doc.Tokens[0].Tag != "NNP" || doc.Tokens[0].POS != "PROPN" {
		t.Errorf("expected Apple as NNP/PROPN, got %s/%s", doc.Tokens[0].Tag, doc.Tokens[0].POS)
	}
	if doc.Tokens[2].Tag != "NN" {
		t.Errorf("expected the table default NN for buying, got %s", doc.Tokens[2].Tag)
	}
	if doc.Tokens[0].Start != 0 || doc.Tokens[0].End != 5 {
		t.Errorf("unexpected offsets for Apple: %d..%d", doc.Tokens[0].Start, doc.Tokens[0].End)
	}

	if len(doc.Ents) != 2 {
		t.Fatalf("expected 2 entities, got %v", doc.Ents)
	}
	if doc.Ents[0].Label != "ORG" || doc.Ents[0].Text != "Apple" {
		t.Errorf("unexpected first entity: %+v", doc.Ents[0])
	}
	if doc.Ents[1].Label != "GPE" || doc.Ents[1].Text != "San Francisco" {
		t.Errorf("unexpected second entity: %+v", doc.Ents[1])
	}

	if len(doc.Sents) != 1 || doc.Sents[0] != text {
		t.Errorf("unexpected sentences: %v", doc.Sents)
	}
}

func TestProcessAlignsRepeatedWords(t *testing.T) {
	p, err := Load(writeTestBundle(t), WithTokenizer(fieldsTokenizer{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	doc, err := p.Process("go go go")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	starts := []int{doc.Tokens[0].Start, doc.Tokens[1].Start, doc.Tokens[2].Start}
	if !reflect.DeepEqual(starts, []int{0, 3, 6}) {
		t.Errorf("expected starts [0 3 6], got %v", starts)
	}
}

func TestLabelsFromLoadedComponents(t *testing.T) {
	p, err := Load(writeTestBundle(t), WithTokenizer(fieldsTokenizer{}), WithSegmenter(fixedSegmenter{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	if got := p.Labels("ner"); !reflect.DeepEqual(got, []string{"GPE", "ORG"}) {
		t.Errorf("expected ruler labels [GPE ORG], got %v", got)
	}
	// Derived from the lookup table values, sorted.
	if got := p.Labels("tagger"); !reflect.DeepEqual(got, []string{"NNP", "VBZ"}) {
		t.Errorf("unexpected tagger labels: %v", got)
	}
	if got := p.Labels("lemmatizer"); got != nil {
		t.Errorf("expected nil labels for an unknown component, got %v", got)
	}
}
