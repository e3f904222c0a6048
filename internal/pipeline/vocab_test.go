package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBundleFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func TestVocabLookup(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, stringsFile, `["Apple", "banana", "startup"]`)
	writeBundleFile(t, dir, key2rowFile, `{"Apple": 0, "banana": 1}`)
	if err := os.MkdirAll(filepath.Join(dir, "vocab"), 0o755); err != nil {
		t.Fatalf("failed to create vocab dir: %v", err)
	}
	writeVectorsData(t, filepath.Join(dir, vectorsFile), 2, 3, []float32{
		1, 2, 3,
		4, 5, 6,
	})

	v := loadVocab(dir)
	defer v.Close()

	if v.Size() != 3 {
		t.Errorf("expected 3 strings, got %d", v.Size())
	}
	if !v.HasStrings() {
		t.Error("expected a strings store")
	}
	if rows, dims := v.VectorShape(); rows != 2 || dims != 3 {
		t.Errorf("expected shape (2, 3), got (%d, %d)", rows, dims)
	}
	if v.KeyCount() != 2 {
		t.Errorf("expected 2 vector keys, got %d", v.KeyCount())
	}

	if !v.HasVector("banana") {
		t.Error("expected a vector for banana")
	}
	if v.HasVector("startup") {
		t.Error("expected no vector for startup")
	}

	vec, err := v.Vector("banana")
	if err != nil {
		t.Fatalf("Vector failed: %v", err)
	}
	if vec[0] != 4 || vec[2] != 6 {
		t.Errorf("unexpected vector values: %v", vec)
	}
	if _, err := v.Vector("startup"); err == nil {
		t.Error("expected an error for a word without a vector")
	}
}

func TestVocabEmptyBundle(t *testing.T) {
	v := loadVocab(t.TempDir())
	defer v.Close()

	if v.Size() != 0 {
		t.Errorf("expected size 0, got %d", v.Size())
	}
	if v.HasStrings() {
		t.Error("expected no strings store")
	}
	if rows, dims := v.VectorShape(); rows != 0 || dims != 0 {
		t.Errorf("expected shape (0, 0), got (%d, %d)", rows, dims)
	}
	if v.HasVector("anything") {
		t.Error("expected no vectors")
	}
	if _, err := v.Vector("anything"); err == nil {
		t.Error("expected an error without vectors")
	}
	if err := v.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestVocabIgnoresMalformedArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, stringsFile, `{"not": "an array"`)
	writeBundleFile(t, dir, vectorsFile, "too short")

	v := loadVocab(dir)
	defer v.Close()

	if v.Size() != 0 {
		t.Errorf("expected size 0 for a malformed strings store, got %d", v.Size())
	}
	if rows, _ := v.VectorShape(); rows != 0 {
		t.Errorf("expected no vectors for a malformed file, got %d rows", rows)
	}
}

func TestVocabKeyPastTable(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, key2rowFile, `{"ghost": 9}`)
	if err := os.MkdirAll(filepath.Join(dir, "vocab"), 0o755); err != nil {
		t.Fatalf("failed to create vocab dir: %v", err)
	}
	writeVectorsData(t, filepath.Join(dir, vectorsFile), 1, 2, []float32{1, 2})

	v := loadVocab(dir)
	defer v.Close()

	if v.HasVector("ghost") {
		t.Error("expected HasVector to reject a row past the table")
	}
}
