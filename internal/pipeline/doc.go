package pipeline

// Token is a single token of a processed text.
type Token struct {
	Text  string
	Tag   string // fine grained tag (Penn Treebank for English models)
	POS   string // universal POS tag
	Start int    // rune offset into Doc.Text, -1 if unknown
	End   int    // rune offset past the token, -1 if unknown
}

// Span is a labeled run of tokens, e.g. a named entity.
type Span struct {
	Label string
	Start int // first token index
	End   int // past the last token index
	Text  string
}

// Doc is the result of running a text through the pipeline.
type Doc struct {
	Text   string
	Tokens []Token
	Ents   []Span
	Sents  []string
}

// TokenTexts returns the token strings in order.
func (d *Doc) TokenTexts() []string {
	out := make([]string, len(d.Tokens))
	for i, t := range d.Tokens {
		out[i] = t.Text
	}
	return out
}

// spanText reconstructs the surface text of tokens [start, end). When all
// covered tokens carry character offsets the original text slice is used,
// otherwise the token strings are joined with single spaces.
func (d *Doc) spanText(start, end int) string {
	if start < 0 || end > len(d.Tokens) || start >= end {
		return ""
	}
	first, last := d.Tokens[start], d.Tokens[end-1]
	if first.Start >= 0 && last.End >= first.Start {
		runes := []rune(d.Text)
		if last.End <= len(runes) {
			return string(runes[first.Start:last.End])
		}
	}
	text := d.Tokens[start].Text
	for i := start + 1; i < end; i++ {
		text += " " + d.Tokens[i].Text
	}
	return text
}
