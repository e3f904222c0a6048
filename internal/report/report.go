// Package report renders the inspection report for a loaded model: its
// location, metadata, components, label sets, a processed sample sentence
// and the on-disk layout of the bundle.
//
// The report is line oriented. Verbose mode only adds lines, it never
// rewrites the default ones, so the default report is always a subset of
// the verbose report.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/lfaller/inspect-spacy-model/internal/glossary"
	"github.com/lfaller/inspect-spacy-model/internal/pipeline"
)

// SampleText is the sentence run through every inspected model.
const SampleText = "Apple Inc. is looking at buying a startup in San Francisco for $1 billion."

// How many meta.json keys and config.cfg lines the sample section shows.
const (
	metaSampleKeys  = 5
	configSampleLen = 10
	largestFilesLen = 5
	posTagSampleLen = 10
)

// Inspector writes inspection reports.
type Inspector struct {
	out     io.Writer
	verbose bool
}

// New creates an inspector writing to out.
func New(out io.Writer, verbose bool) *Inspector {
	return &Inspector{out: out, verbose: verbose}
}

// Run renders the full report for a loaded pipeline.
func (r *Inspector) Run(p *pipeline.Pipeline) {
	r.printf("✅ Model loaded successfully!\n")

	r.location(p)
	r.metadata(p.Meta())
	r.components(p)
	r.vocabulary(p.Vocab())
	r.entityTypes(p)
	r.posTags(p)
	r.modelTest(p)
	r.fileStructure(p.Dir())
	r.sampleContents(p)
	r.storage(p.Dir())
}

func (r *Inspector) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Inspector) location(p *pipeline.Pipeline) {
	r.printf("\n📍 Model Location:\n")
	r.printf("   %s\n", p.Dir())
}

func (r *Inspector) metadata(meta *pipeline.Meta) {
	r.printf("\n📊 Model Metadata:\n")
	r.printf("   Name: %s\n", meta.Name)
	r.printf("   Version: %s\n", meta.Version)
	r.printf("   Description: %s\n", meta.Description)
	r.printf("   Language: %s\n", meta.Lang)
	r.printf("   Pipeline: %v\n", meta.Pipeline)
	size := meta.Size
	if size == "" {
		size = "Unknown"
	}
	r.printf("   Size: ~%s\n", size)

	if r.verbose {
		if meta.Author != "" {
			r.printf("   Author: %s\n", meta.Author)
		}
		if meta.License != "" {
			r.printf("   License: %s\n", meta.License)
		}
		if meta.SpacyVersion != "" {
			r.printf("   spaCy version: %s\n", meta.SpacyVersion)
		}
	}
}

func (r *Inspector) components(p *pipeline.Pipeline) {
	r.printf("\n🔧 Pipeline Components:\n")

	declared := p.Meta().Pipeline
	if len(declared) == 0 {
		r.printf("   (no components declared)\n")
		return
	}

	skipped := make(map[string]string)
	for _, s := range p.Skipped() {
		skipped[s.Name] = s.Reason
	}

	for _, name := range declared {
		if p.HasComponent(name) {
			r.printf("   - %s: %s\n", name, p.ComponentType(name))
			if r.verbose {
				if n := len(p.Labels(name)); n > 0 {
					r.printf("     labels: %d\n", n)
				}
			}
		} else if reason, ok := skipped[name]; ok {
			r.printf("   - %s: (skipped: %s)\n", name, reason)
		} else {
			r.printf("   - %s: (not loaded)\n", name)
		}
	}
}

func (r *Inspector) vocabulary(vocab *pipeline.Vocab) {
	r.printf("\n📚 Vocabulary:\n")
	r.printf("   Total tokens: %d\n", vocab.Size())

	rows, dims := vocab.VectorShape()
	if rows > 0 {
		r.printf("   Vector dimensions: %d\n", dims)
	} else {
		r.printf("   Vector dimensions: No vectors\n")
	}
	r.printf("   Vectors available: %s\n", humanize.Comma(int64(rows)))

	if r.verbose {
		if vocab.HasStrings() {
			r.printf("   Strings store: %s\n", vocab.StringsPath())
		}
		if table := vocab.Vectors(); table != nil {
			r.printf("   Vectors file: %s\n", table.Path())
		}
		r.printf("   Vector keys: %s\n", humanize.Comma(int64(vocab.KeyCount())))
	}
}

func (r *Inspector) entityTypes(p *pipeline.Pipeline) {
	r.printf("\n🏷️  Named Entity Types:\n")

	labels := p.Labels("ner")
	if len(labels) == 0 {
		r.printf("   (no ner component)\n")
		return
	}
	for _, label := range labels {
		text, ok := glossary.ExplainEntity(label)
		if !ok {
			text = "Named entity type"
		}
		r.printf("   - %s: %s\n", label, text)
	}
}

func (r *Inspector) posTags(p *pipeline.Pipeline) {
	r.printf("\n📝 POS Tags (sample):\n")

	labels := p.Labels("tagger")
	if len(labels) == 0 {
		r.printf("   (no tagger component)\n")
		return
	}

	shown := labels
	if len(shown) > posTagSampleLen {
		shown = shown[:posTagSampleLen]
	}
	for _, tag := range shown {
		text, ok := glossary.ExplainTag(tag)
		if !ok {
			text = "Part-of-speech tag"
		}
		r.printf("   - %s: %s\n", tag, text)
	}
	if len(labels) > posTagSampleLen {
		r.printf("   ... and %d more\n", len(labels)-posTagSampleLen)
	}
}

func (r *Inspector) modelTest(p *pipeline.Pipeline) {
	r.printf("\n🧪 Model Test:\n")
	r.printf("   Input: %s\n", SampleText)

	doc, err := p.Process(SampleText)
	if err != nil {
		r.printf("   (model test skipped: %v)\n", err)
		return
	}

	r.printf("   Tokens: %v\n", doc.TokenTexts())

	ents := make([][2]string, len(doc.Ents))
	for i, ent := range doc.Ents {
		ents[i] = [2]string{ent.Text, ent.Label}
	}
	r.printf("   Entities: %s\n", formatPairs(ents))

	pos := make([][2]string, len(doc.Tokens))
	for i, tok := range doc.Tokens {
		pos[i] = [2]string{tok.Text, tok.POS}
	}
	r.printf("   POS Tags: %s\n", formatPairs(pos))

	if r.verbose {
		fine := make([][2]string, len(doc.Tokens))
		for i, tok := range doc.Tokens {
			fine[i] = [2]string{tok.Text, tok.Tag}
		}
		r.printf("   Fine-grained: %s\n", formatPairs(fine))
		if len(doc.Sents) > 0 {
			r.printf("   Sentences: %v\n", doc.Sents)
		}
		if rows, _ := p.Vocab().VectorShape(); rows > 0 {
			have := 0
			for _, tok := range doc.Tokens {
				if p.Vocab().HasVector(tok.Text) {
					have++
				}
			}
			r.printf("   Vector coverage: %d/%d tokens\n", have, len(doc.Tokens))
		}
	}
}

func (r *Inspector) fileStructure(dir string) {
	r.printf("\n📁 Model File Structure:\n")
	writeTree(r.out, dir, "", 0)
}

func (r *Inspector) sampleContents(p *pipeline.Pipeline) {
	r.printf("\n📄 Sample File Contents:\n")

	meta := p.Meta()
	r.printf("\n   meta.json (first 5 lines):\n")
	for i, key := range meta.Keys() {
		if i >= metaSampleKeys {
			r.printf("        ...\n")
			break
		}
		r.printf("        %s: %s\n", key, meta.RawValue(key))
	}

	r.configSample(p.Dir())
}

func (r *Inspector) configSample(dir string) {
	path := filepath.Join(dir, "config.cfg")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if r.verbose {
			r.printf("\n   (config.cfg not present)\n")
		}
		return
	}
	if err != nil {
		r.printf("\n   (config.cfg unreadable: %v)\n", err)
		return
	}

	r.printf("\n   config.cfg (first 10 lines):\n")
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if i >= configSampleLen {
			r.printf("        ...\n")
			break
		}
		r.printf("        %s\n", strings.TrimRight(line, " \t\r"))
	}

	if r.verbose {
		sections, err := configSections(path)
		if err != nil {
			r.printf("   (config.cfg sections unavailable: %v)\n", err)
		} else if len(sections) > 0 {
			r.printf("   Sections: %v\n", sections)
		}
	}
}

func (r *Inspector) storage(dir string) {
	r.printf("\n💾 Storage Information:\n")

	stats := collectStorage(dir)
	r.printf("   Total model size: %.1f MB\n", float64(stats.Total)/(1024*1024))
	for _, note := range stats.Errs {
		r.printf("   (unreadable: %s)\n", note)
	}

	r.printf("\n   Largest files:\n")
	largest := stats.Largest(largestFilesLen)
	for _, f := range largest {
		r.printf("   - %s: %.1f MB\n", f.Name, float64(f.Size)/(1024*1024))
	}

	if r.verbose {
		r.printf("\n   By extension:\n")
		for _, e := range stats.Extensions() {
			r.printf("   - %s: %s\n", e.Name, humanize.IBytes(uint64(e.Size)))
		}
	}
}

// formatPairs renders (text, label) tuples as [(a, B) (c, D)].
func formatPairs(items [][2]string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%s, %s)", item[0], item[1])
	}
	b.WriteByte(']')
	return b.String()
}

// configSections lists the section names of an INI style config.cfg.
func configSections(path string) ([]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var sections []string
	for _, key := range v.AllKeys() {
		if i := strings.IndexByte(key, '.'); i > 0 {
			sections = append(sections, key[:i])
		}
	}
	return sortedUnique(sections), nil
}

// sortedUnique sorts and deduplicates in place.
func sortedUnique(values []string) []string {
	sort.Strings(values)
	out := values[:0]
	var prev string
	for i, v := range values {
		if i == 0 || v != prev {
			out = append(out, v)
		}
		prev = v
	}
	return out
}
