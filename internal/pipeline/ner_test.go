package pipeline

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestRuler(t *testing.T, patterns string) *patternRuler {
	t.Helper()
	dir := t.TempDir()
	writeBundleFile(t, dir, rulerFile, patterns)
	ruler, err := newPatternRuler(filepath.Join(dir, rulerFile))
	if err != nil {
		t.Fatalf("newPatternRuler failed: %v", err)
	}
	return ruler
}

func TestPatternRulerLongestMatchWins(t *testing.T) {
	ruler := newTestRuler(t, `
{"label": "GPE", "pattern": "San Francisco"}
{"label": "PERSON", "pattern": "San"}
{"label": "ORG", "pattern": "Apple Inc."}
`)

	tokens := strings.Fields("Apple Inc. opened in San Francisco")
	spans := ruler.Apply(tokens)

	want := []Span{
		{Label: "ORG", Start: 0, End: 2},
		{Label: "GPE", Start: 4, End: 6},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("expected spans %v, got %v", want, spans)
	}
}

func TestPatternRulerFoldsCase(t *testing.T) {
	ruler := newTestRuler(t, `{"label": "GPE", "pattern": "san francisco"}`)

	spans := ruler.Apply([]string{"San", "Francisco"})
	if len(spans) != 1 || spans[0].Label != "GPE" {
		t.Fatalf("expected one GPE span, got %v", spans)
	}
}

func TestPatternRulerScansPastMatches(t *testing.T) {
	ruler := newTestRuler(t, `{"label": "ORG", "pattern": "Apple"}`)

	spans := ruler.Apply([]string{"Apple", "bought", "Apple"})
	if len(spans) != 2 {
		t.Fatalf("expected two spans, got %v", spans)
	}
	if spans[0].Start != 0 || spans[1].Start != 2 {
		t.Errorf("expected spans at 0 and 2, got %v", spans)
	}
}

func TestPatternRulerLabelsSorted(t *testing.T) {
	ruler := newTestRuler(t, `
{"label": "ORG", "pattern": "Apple"}
{"label": "GPE", "pattern": "Paris"}
{"label": "ORG", "pattern": "IBM"}
`)

	want := []string{"GPE", "ORG"}
	if !reflect.DeepEqual(ruler.Labels(), want) {
		t.Errorf("expected labels %v, got %v", want, ruler.Labels())
	}
}

func TestPatternRulerRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, rulerFile, `{"label": "ORG", "pattern": "Apple"}
{broken`)

	_, err := newPatternRuler(filepath.Join(dir, rulerFile))
	if err == nil {
		t.Fatal("expected an error for a malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected the error to name line 2, got %v", err)
	}
}
