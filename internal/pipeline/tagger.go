package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// taggerFile holds the exported tag table for the tagger component.
const taggerFile = "tagger/tags.json"

// ptbUniversal maps Penn Treebank tags onto universal POS classes. It is
// the fallback for tag tables exported without their own tag_map.
var ptbUniversal = map[string]string{
	"NN": "NOUN", "NNS": "NOUN",
	"NNP": "PROPN", "NNPS": "PROPN",
	"VB": "VERB", "VBD": "VERB", "VBG": "VERB", "VBN": "VERB",
	"VBP": "VERB", "VBZ": "VERB", "MD": "VERB",
	"JJ": "ADJ", "JJR": "ADJ", "JJS": "ADJ",
	"RB": "ADV", "RBR": "ADV", "RBS": "ADV", "WRB": "ADV",
	"IN": "ADP", "DT": "DET", "PDT": "DET", "WDT": "DET",
	"PRP": "PRON", "PRP$": "PRON", "WP": "PRON", "WP$": "PRON", "EX": "PRON",
	"CC": "CCONJ", "CD": "NUM", "UH": "INTJ",
	"POS": "PART", "TO": "PART", "RP": "PART",
	"FW": "X", "LS": "X", "XX": "X", "ADD": "X",
	"SYM": "SYM", "$": "SYM", "#": "SYM",
	".": "PUNCT", ",": "PUNCT", ":": "PUNCT",
	"``": "PUNCT", "''": "PUNCT", "\"\"": "PUNCT",
	"-LRB-": "PUNCT", "-RRB-": "PUNCT", "HYPH": "PUNCT", "NFP": "PUNCT",
	"_SP": "SPACE",
}

// lookupTagger assigns part-of-speech tags from a table exported with the
// model. Words missing from the table get the table's default tag.
type lookupTagger struct {
	labels []string
	lookup map[string]string
	tagMap map[string]string
	defTag string
}

func newLookupTagger(path string) (*lookupTagger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tag table %s: %w", path, err)
	}
	var table struct {
		Labels  []string          `json:"labels"`
		Lookup  map[string]string `json:"lookup"`
		TagMap  map[string]string `json:"tag_map"`
		Default string            `json:"default"`
	}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse tag table %s: %w", path, err)
	}
	if table.Default == "" {
		table.Default = "NN"
	}
	t := &lookupTagger{
		labels: table.Labels,
		lookup: table.Lookup,
		tagMap: table.TagMap,
		defTag: table.Default,
	}
	if len(t.labels) == 0 {
		t.labels = tagsInLookup(t.lookup)
	}
	return t, nil
}

func tagsInLookup(lookup map[string]string) []string {
	seen := make(map[string]struct{}, len(lookup))
	var labels []string
	for _, tag := range lookup {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			labels = append(labels, tag)
		}
	}
	sort.Strings(labels)
	return labels
}

// Labels returns the tag set the table was exported with.
func (t *lookupTagger) Labels() []string {
	return t.labels
}

// Tag resolves the fine-grained tag for word: exact form first, then the
// case-folded form, then the table default.
func (t *lookupTagger) Tag(word string) string {
	if tag, ok := t.lookup[word]; ok {
		return tag
	}
	if tag, ok := t.lookup[strings.ToLower(word)]; ok {
		return tag
	}
	return t.defTag
}

// POS maps a fine-grained tag onto its coarse universal class.
func (t *lookupTagger) POS(tag string) string {
	if pos, ok := t.tagMap[tag]; ok {
		return pos
	}
	if pos, ok := ptbUniversal[tag]; ok {
		return pos
	}
	return "X"
}
