package registry

import (
	"fmt"
	"strings"
	"testing"
)

func TestGetModelByName(t *testing.T) {
	model, err := GetModelByName(DefaultModel)
	if err != nil {
		t.Fatalf("GetModelByName failed: %v", err)
	}
	if model.Name != DefaultModel {
		t.Errorf("expected %s, got %s", DefaultModel, model.Name)
	}
	if model.Lang != "en" {
		t.Errorf("expected lang en, got %s", model.Lang)
	}
}

func TestGetModelByNameUnknown(t *testing.T) {
	_, err := GetModelByName("xx_ghost_model")
	if err == nil {
		t.Fatal("expected an error for an unknown model")
	}
	if !strings.Contains(err.Error(), "xx_ghost_model") {
		t.Errorf("expected the error to name the model, got %v", err)
	}
}

func TestFilterByLang(t *testing.T) {
	english := FilterByLang(ListAll(), "en")
	if len(english) == 0 {
		t.Fatal("expected English models in the registry")
	}
	for _, model := range english {
		if model.Lang != "en" {
			t.Errorf("expected only en models, got %s", model.Name)
		}
	}

	if german := FilterByLang(ListAll(), "DE"); len(german) == 0 {
		t.Error("expected the language filter to fold case")
	}
}

func TestFilterRecommended(t *testing.T) {
	recommended := FilterRecommended(ListAll())
	if len(recommended) == 0 {
		t.Fatal("expected at least one recommended model")
	}
	for _, model := range recommended {
		if !model.Recommended {
			t.Errorf("expected only recommended models, got %s", model.Name)
		}
	}
}

func TestSortBySize(t *testing.T) {
	sorted := SortBySize(ListAll())
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].FileSizeMB > sorted[i].FileSizeMB {
			t.Errorf("expected ascending sizes, got %d before %d",
				sorted[i-1].FileSizeMB, sorted[i].FileSizeMB)
		}
	}
}

func TestRegistryEntriesComplete(t *testing.T) {
	for _, model := range ListAll() {
		if model.Name == "" || model.Version == "" || model.BundleRepo == "" {
			t.Errorf("incomplete registry entry: %+v", model)
		}
		want := fmt.Sprintf("%s-%s.tar.gz", model.Name, model.Version)
		if model.Filename != want {
			t.Errorf("expected filename %s, got %s", want, model.Filename)
		}
		if len(model.Pipeline) == 0 {
			t.Errorf("model %s has no pipeline components", model.Name)
		}
	}
}
