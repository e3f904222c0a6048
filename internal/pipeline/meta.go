package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// MetaFileName is the identity file every bundle must carry.
const MetaFileName = "meta.json"

// VectorsMeta mirrors the "vectors" block of meta.json.
type VectorsMeta struct {
	Width   int `json:"width"`
	Vectors int `json:"vectors"`
	Keys    int `json:"keys"`
}

// Meta is the parsed meta.json of a model bundle. The typed fields cover
// what the tool interprets; the original top-level keys are also kept in
// file order so the raw file can be shown without re-sorting it.
type Meta struct {
	Lang         string              `json:"lang"`
	Name         string              `json:"name"`
	Version      string              `json:"version"`
	SpacyVersion string              `json:"spacy_version"`
	Description  string              `json:"description"`
	Author       string              `json:"author"`
	Email        string              `json:"email"`
	URL          string              `json:"url"`
	License      string              `json:"license"`
	Size         string              `json:"size"`
	Pipeline     []string            `json:"pipeline"`
	Labels       map[string][]string `json:"labels"`
	Vectors      VectorsMeta         `json:"vectors"`

	keys []string
	raw  map[string]json.RawMessage
}

// ParseMeta reads and validates a bundle's meta.json.
func ParseMeta(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}

	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse meta: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("parse meta: missing \"name\" key")
	}
	if m.Version == "" {
		return nil, fmt.Errorf("parse meta: missing \"version\" key")
	}

	m.keys, m.raw, err = decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("parse meta: %w", err)
	}

	return &m, nil
}

// FullName returns the installable model name, e.g. "en_core_web_sm" for
// lang "en" and name "core_web_sm". Bundles exported without a language
// prefix keep their name as is.
func (m *Meta) FullName() string {
	if m.Lang == "" {
		return m.Name
	}
	return m.Lang + "_" + m.Name
}

// Keys returns the top-level meta.json keys in file order.
func (m *Meta) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// RawValue renders the value of a top-level key for display. Strings are
// unquoted, everything else is compact JSON; long values are truncated.
func (m *Meta) RawValue(key string) string {
	val, ok := m.raw[key]
	if !ok {
		return ""
	}
	return displayValue(val)
}

// ComponentLabels returns the label set recorded in meta.json for a
// pipeline component, sorted.
func (m *Meta) ComponentLabels(component string) []string {
	labels := m.Labels[component]
	if len(labels) == 0 {
		return nil
	}
	out := make([]string, len(labels))
	copy(out, labels)
	sort.Strings(out)
	return out
}

func decodeOrdered(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("not a JSON object")
	}

	var keys []string
	raw := make(map[string]json.RawMessage)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected key token %v", kt)
		}

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, nil, fmt.Errorf("key %q: %w", key, err)
		}
		if _, seen := raw[key]; !seen {
			keys = append(keys, key)
		}
		raw[key] = val
	}

	return keys, raw, nil
}

const maxDisplayValue = 72

func displayValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return truncateValue(s)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return truncateValue(string(raw))
	}
	return truncateValue(buf.String())
}

func truncateValue(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDisplayValue {
		return s
	}
	return string(runes[:maxDisplayValue]) + "..."
}
