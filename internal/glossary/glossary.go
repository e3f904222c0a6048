package glossary

// Short human-readable descriptions for the label schemes used by the
// bundled English models: OntoNotes 5 entity types, Penn Treebank fine
// grained tags, and Universal POS tags.

var entityTypes = map[string]string{
	"PERSON":      "People, including fictional",
	"NORP":        "Nationalities or religious or political groups",
	"FAC":         "Buildings, airports, highways, bridges, etc.",
	"ORG":         "Companies, agencies, institutions, etc.",
	"GPE":         "Countries, cities, states",
	"LOC":         "Non-GPE locations, mountain ranges, bodies of water",
	"PRODUCT":     "Objects, vehicles, foods, etc. (not services)",
	"EVENT":       "Named hurricanes, battles, wars, sports events, etc.",
	"WORK_OF_ART": "Titles of books, songs, etc.",
	"LAW":         "Named documents made into laws",
	"LANGUAGE":    "Any named language",
	"DATE":        "Absolute or relative dates or periods",
	"TIME":        "Times smaller than a day",
	"PERCENT":     "Percentage, including \"%\"",
	"MONEY":       "Monetary values, including unit",
	"QUANTITY":    "Measurements, as of weight or distance",
	"ORDINAL":     "\"first\", \"second\", etc.",
	"CARDINAL":    "Numerals that do not fall under another type",
}

var treebankTags = map[string]string{
	"CC":    "conjunction, coordinating",
	"CD":    "cardinal number",
	"DT":    "determiner",
	"EX":    "existential there",
	"FW":    "foreign word",
	"IN":    "conjunction, subordinating or preposition",
	"JJ":    "adjective",
	"JJR":   "adjective, comparative",
	"JJS":   "adjective, superlative",
	"LS":    "list item marker",
	"MD":    "verb, modal auxiliary",
	"NN":    "noun, singular or mass",
	"NNP":   "noun, proper singular",
	"NNPS":  "noun, proper plural",
	"NNS":   "noun, plural",
	"PDT":   "predeterminer",
	"POS":   "possessive ending",
	"PRP":   "pronoun, personal",
	"PRP$":  "pronoun, possessive",
	"RB":    "adverb",
	"RBR":   "adverb, comparative",
	"RBS":   "adverb, superlative",
	"RP":    "adverb, particle",
	"SYM":   "symbol",
	"TO":    "infinitival \"to\"",
	"UH":    "interjection",
	"VB":    "verb, base form",
	"VBD":   "verb, past tense",
	"VBG":   "verb, gerund or present participle",
	"VBN":   "verb, past participle",
	"VBP":   "verb, non-3rd person singular present",
	"VBZ":   "verb, 3rd person singular present",
	"WDT":   "wh-determiner",
	"WP":    "wh-pronoun, personal",
	"WP$":   "wh-pronoun, possessive",
	"WRB":   "wh-adverb",
	"$":     "symbol, currency",
	"''":    "closing quotation mark",
	"``":    "opening quotation mark",
	",":     "punctuation mark, comma",
	"-LRB-": "left round bracket",
	"-RRB-": "right round bracket",
	".":     "punctuation mark, sentence closer",
	":":     "punctuation mark, colon or ellipsis",
	"HYPH":  "punctuation mark, hyphen",
	"NFP":   "superfluous punctuation",
	"AFX":   "affix",
	"ADD":   "email",
	"XX":    "unknown",
}

var universalTags = map[string]string{
	"ADJ":   "adjective",
	"ADP":   "adposition",
	"ADV":   "adverb",
	"AUX":   "auxiliary",
	"CONJ":  "conjunction",
	"CCONJ": "coordinating conjunction",
	"DET":   "determiner",
	"INTJ":  "interjection",
	"NOUN":  "noun",
	"NUM":   "numeral",
	"PART":  "particle",
	"PRON":  "pronoun",
	"PROPN": "proper noun",
	"PUNCT": "punctuation",
	"SCONJ": "subordinating conjunction",
	"SYM":   "symbol",
	"VERB":  "verb",
	"X":     "other",
	"SPACE": "space",
}

// Explain returns the description for an entity type, treebank tag, or
// universal POS tag. The second return value reports whether the term is
// known.
func Explain(term string) (string, bool) {
	if desc, ok := entityTypes[term]; ok {
		return desc, true
	}
	if desc, ok := treebankTags[term]; ok {
		return desc, true
	}
	if desc, ok := universalTags[term]; ok {
		return desc, true
	}
	return "", false
}

// ExplainEntity looks up an entity type only.
func ExplainEntity(label string) (string, bool) {
	desc, ok := entityTypes[label]
	return desc, ok
}

// ExplainTag looks up a fine grained or universal POS tag only.
func ExplainTag(tag string) (string, bool) {
	if desc, ok := treebankTags[tag]; ok {
		return desc, true
	}
	desc, ok := universalTags[tag]
	return desc, ok
}
