package pipeline

import (
	"path/filepath"
	"reflect"
	"testing"
)

func writeTagTable(t *testing.T, dir, content string) {
	t.Helper()
	writeBundleFile(t, dir, taggerFile, content)
}

func TestLookupTaggerTag(t *testing.T) {
	dir := t.TempDir()
	writeTagTable(t, dir, `{
		"labels": ["DT", "NN", "NNP", "VBZ"],
		"lookup": {"Apple": "NNP", "the": "DT", "is": "VBZ"},
		"tag_map": {"NNP": "PROPN", "DT": "DET", "VBZ": "VERB"},
		"default": "NN"
	}`)

	tagger, err := newLookupTagger(filepath.Join(dir, taggerFile))
	if err != nil {
		t.Fatalf("newLookupTagger failed: %v", err)
	}

	tests := []struct {
		word string
		want string
	}{
		{"Apple", "NNP"}, // exact form
		{"The", "DT"},    // case folded
		{"blorp", "NN"},  // table default
	}
	for _, tt := range tests {
		if got := tagger.Tag(tt.word); got != tt.want {
			t.Errorf("Tag(%q): expected %s, got %s", tt.word, tt.want, got)
		}
	}
}

func TestLookupTaggerPOS(t *testing.T) {
	dir := t.TempDir()
	writeTagTable(t, dir, `{
		"lookup": {"Apple": "NNP"},
		"tag_map": {"NNP": "PROPN"}
	}`)

	tagger, err := newLookupTagger(filepath.Join(dir, taggerFile))
	if err != nil {
		t.Fatalf("newLookupTagger failed: %v", err)
	}

	if got := tagger.POS("NNP"); got != "PROPN" {
		t.Errorf("expected tag_map hit PROPN, got %s", got)
	}
	if got := tagger.POS("VBZ"); got != "VERB" {
		t.Errorf("expected built-in fallback VERB, got %s", got)
	}
	if got := tagger.POS("???"); got != "X" {
		t.Errorf("expected X for an unknown tag, got %s", got)
	}
}

func TestLookupTaggerDerivesLabels(t *testing.T) {
	dir := t.TempDir()
	writeTagTable(t, dir, `{
		"lookup": {"a": "DT", "cat": "NN", "sat": "VBD", "the": "DT"}
	}`)

	tagger, err := newLookupTagger(filepath.Join(dir, taggerFile))
	if err != nil {
		t.Fatalf("newLookupTagger failed: %v", err)
	}

	want := []string{"DT", "NN", "VBD"}
	if !reflect.DeepEqual(tagger.Labels(), want) {
		t.Errorf("expected derived labels %v, got %v", want, tagger.Labels())
	}
	if got := tagger.Tag("unknown"); got != "NN" {
		t.Errorf("expected NN as the fallback default, got %s", got)
	}
}

func TestLookupTaggerBadTable(t *testing.T) {
	dir := t.TempDir()
	writeTagTable(t, dir, `not json`)

	if _, err := newLookupTagger(filepath.Join(dir, taggerFile)); err == nil {
		t.Fatal("expected an error for a malformed table")
	}
	if _, err := newLookupTagger(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected an error for a missing table")
	}
}
