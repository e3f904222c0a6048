package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lfaller/inspect-spacy-model/internal/logging"
)

// Vocabulary artifact paths, relative to the bundle root.
const (
	stringsFile = "vocab/strings.json"
	vectorsFile = "vocab/vectors.bin"
	key2rowFile = "vocab/key2row.json"
)

// Vocab holds a bundle's vocabulary artifacts: the strings store and, for
// models that ship them, static vectors with their key table. Every part
// is optional; a missing artifact leaves the zero behavior (size 0, no
// vectors) rather than failing the load.
type Vocab struct {
	strings     []string
	stringsPath string
	vectors     *VectorTable
	key2row     map[string]int
}

func loadVocab(dir string) *Vocab {
	v := &Vocab{}

	path := filepath.Join(dir, stringsFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var entries []string
		if err := json.Unmarshal(data, &entries); err != nil {
			logging.Warnf("vocab: ignoring malformed %s: %v", stringsFile, err)
		} else {
			v.strings = entries
			v.stringsPath = path
		}
	case !os.IsNotExist(err):
		logging.Warnf("vocab: %v", err)
	}

	vecPath := filepath.Join(dir, vectorsFile)
	if _, err := os.Stat(vecPath); err == nil {
		table, err := OpenVectors(vecPath)
		if err != nil {
			logging.Warnf("vocab: ignoring vectors: %v", err)
		} else {
			v.vectors = table
		}
	}

	if v.vectors != nil {
		data, err := os.ReadFile(filepath.Join(dir, key2rowFile))
		if err == nil {
			var rows map[string]int
			if err := json.Unmarshal(data, &rows); err != nil {
				logging.Warnf("vocab: ignoring malformed %s: %v", key2rowFile, err)
			} else {
				v.key2row = rows
			}
		}
	}

	return v
}

// Size returns the number of entries in the strings store.
func (v *Vocab) Size() int {
	return len(v.strings)
}

// HasStrings reports whether the bundle shipped a strings store.
func (v *Vocab) HasStrings() bool {
	return v.stringsPath != ""
}

// StringsPath returns the path of the loaded strings store, or "".
func (v *Vocab) StringsPath() string {
	return v.stringsPath
}

// Vectors returns the mapped vector table, or nil when the bundle has no
// vectors.
func (v *Vocab) Vectors() *VectorTable {
	return v.vectors
}

// VectorShape returns the vector table shape, or (0, 0) without vectors.
func (v *Vocab) VectorShape() (rows, dims int) {
	if v.vectors == nil {
		return 0, 0
	}
	return v.vectors.Shape()
}

// KeyCount returns the number of tokens mapped onto vector rows.
func (v *Vocab) KeyCount() int {
	return len(v.key2row)
}

// HasVector reports whether word resolves to a vector row.
func (v *Vocab) HasVector(word string) bool {
	if v.vectors == nil {
		return false
	}
	row, ok := v.key2row[word]
	if !ok {
		return false
	}
	rows, _ := v.vectors.Shape()
	return row >= 0 && row < rows
}

// Vector returns the static vector for word.
func (v *Vocab) Vector(word string) ([]float32, error) {
	if v.vectors == nil {
		return nil, fmt.Errorf("vocab: model has no vectors")
	}
	row, ok := v.key2row[word]
	if !ok {
		return nil, fmt.Errorf("vocab: no vector for %q", word)
	}
	return v.vectors.Row(row)
}

// Close releases the mapped vector table.
func (v *Vocab) Close() error {
	if v.vectors == nil {
		return nil
	}
	return v.vectors.Close()
}
