package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// rulerFile holds the phrase patterns for the entity recognizer, one JSON
// object per line.
const rulerFile = "ner/patterns.jsonl"

type rulerPattern struct {
	label  string
	tokens []string
}

// patternRuler marks entity spans by matching token phrases exported with
// the model. At each position the longest matching phrase wins and the
// scan continues after it, so spans never overlap.
type patternRuler struct {
	labels  []string
	byFirst map[string][]rulerPattern
}

func newPatternRuler(path string) (*patternRuler, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load entity patterns %s: %w", path, err)
	}
	defer f.Close()

	r := &patternRuler{byFirst: make(map[string][]rulerPattern)}
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var entry struct {
			Label   string `json:"label"`
			Pattern string `json:"pattern"`
		}
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("parse entity patterns %s line %d: %w", path, line, err)
		}
		tokens := strings.Fields(entry.Pattern)
		if entry.Label == "" || len(tokens) == 0 {
			continue
		}
		first := strings.ToLower(tokens[0])
		r.byFirst[first] = append(r.byFirst[first], rulerPattern{label: entry.Label, tokens: tokens})
		if _, ok := seen[entry.Label]; !ok {
			seen[entry.Label] = struct{}{}
			r.labels = append(r.labels, entry.Label)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read entity patterns %s: %w", path, err)
	}

	// Longest pattern first, so the first match at a position wins.
	for _, patterns := range r.byFirst {
		sort.SliceStable(patterns, func(i, j int) bool {
			return len(patterns[i].tokens) > len(patterns[j].tokens)
		})
	}
	sort.Strings(r.labels)
	return r, nil
}

// Labels returns the entity types the patterns cover, sorted.
func (r *patternRuler) Labels() []string {
	return r.labels
}

// Apply matches the patterns against tokens and returns the entity spans
// in token order.
func (r *patternRuler) Apply(tokens []string) []Span {
	var spans []Span
	i := 0
	for i < len(tokens) {
		matched := false
		for _, p := range r.byFirst[strings.ToLower(tokens[i])] {
			if phraseAt(tokens, i, p.tokens) {
				spans = append(spans, Span{Label: p.label, Start: i, End: i + len(p.tokens)})
				i += len(p.tokens)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return spans
}

func phraseAt(tokens []string, start int, phrase []string) bool {
	if start+len(phrase) > len(tokens) {
		return false
	}
	for j, want := range phrase {
		if !strings.EqualFold(tokens[start+j], want) {
			return false
		}
	}
	return true
}
