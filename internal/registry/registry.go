package registry

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultModel is the model inspected when no name is given.
const DefaultModel = "en_core_web_sm"

// ModelInfo contains catalog metadata about a downloadable model bundle
type ModelInfo struct {
	Name        string   // Installable name (lang_type_genre_size)
	Lang        string   // ISO language code
	Version     string   // Bundle version published in the catalog
	Pipeline    []string // Processing components in run order
	FileSizeMB  int      // Approximate download size
	VectorDims  int      // Static vector width, 0 if the model has none
	BundleRepo  string   // Hugging Face repository holding the archive
	Filename    string   // Archive filename inside the repository
	SHA256      string   // Checksum for verification
	Recommended bool     // Default pick for the language
	Description string   // Brief description
	Tags        []string // cpu, vectors, accuracy, ...
}

// Registry contains all bundles the tool knows how to fetch
var Registry = []ModelInfo{
	// English
	{
		Name:        "en_core_web_sm",
		Lang:        "en",
		Version:     "3.7.1",
		Pipeline:    []string{"tagger", "senter", "ner"},
		FileSizeMB:  13,
		VectorDims:  0,
		BundleRepo:  "lfaller/spacy-bundles",
		Filename:    "en_core_web_sm-3.7.1.tar.gz",
		SHA256:      "",
		Recommended: true,
		Description: "Small English pipeline optimized for CPU",
		Tags:        []string{"cpu", "fast"},
	},
	{
		Name:        "en_core_web_md",
		Lang:        "en",
		Version:     "3.7.1",
		Pipeline:    []string{"tagger", "senter", "ner"},
		FileSizeMB:  43,
		VectorDims:  300,
		BundleRepo:  "lfaller/spacy-bundles",
		Filename:    "en_core_web_md-3.7.1.tar.gz",
		SHA256:      "",
		Recommended: false,
		Description: "Medium English pipeline with 20k word vectors",
		Tags:        []string{"cpu", "vectors"},
	},
	{
		Name:        "en_core_web_lg",
		Lang:        "en",
		Version:     "3.7.1",
		Pipeline:    []string{"tagger", "senter", "ner"},
		FileSizeMB:  588,
		VectorDims:  300,
		BundleRepo:  "lfaller/spacy-bundles",
		Filename:    "en_core_web_lg-3.7.1.tar.gz",
		SHA256:      "",
		Recommended: false,
		Description: "Large English pipeline with the full vector table",
		Tags:        []string{"vectors", "accuracy", "large"},
	},
	// German
	{
		Name:        "de_core_news_sm",
		Lang:        "de",
		Version:     "3.7.0",
		Pipeline:    []string{"tagger", "senter", "ner"},
		FileSizeMB:  15,
		VectorDims:  0,
		BundleRepo:  "lfaller/spacy-bundles",
		Filename:    "de_core_news_sm-3.7.0.tar.gz",
		SHA256:      "",
		Recommended: true,
		Description: "Small German pipeline trained on news text",
		Tags:        []string{"cpu", "fast"},
	},
}

// GetModelByName returns a catalog entry by its installable name
func GetModelByName(name string) (*ModelInfo, error) {
	for _, model := range Registry {
		if model.Name == name {
			return &model, nil
		}
	}
	return nil, fmt.Errorf("model not found: %s", name)
}

// FilterByLang filters models by their language code
func FilterByLang(models []ModelInfo, lang string) []ModelInfo {
	var filtered []ModelInfo

	for _, model := range models {
		if strings.EqualFold(model.Lang, lang) {
			filtered = append(filtered, model)
		}
	}

	return filtered
}

// FilterRecommended returns only recommended models
func FilterRecommended(models []ModelInfo) []ModelInfo {
	var filtered []ModelInfo

	for _, model := range models {
		if model.Recommended {
			filtered = append(filtered, model)
		}
	}

	return filtered
}

// SortBySize sorts models by download size (ascending)
func SortBySize(models []ModelInfo) []ModelInfo {
	sorted := make([]ModelInfo, len(models))
	copy(sorted, models)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FileSizeMB < sorted[j].FileSizeMB
	})

	return sorted
}

// ListAll returns all models in the registry
func ListAll() []ModelInfo {
	return Registry
}
