package pipeline

// Option adjusts how Load assembles a pipeline.
type Option func(*Pipeline)

// WithTokenizer uses t instead of loading the bundle's tokenizer.json.
func WithTokenizer(t Tokenizer) Option {
	return func(p *Pipeline) {
		p.tokenizer = t
	}
}

// WithSegmenter uses s instead of loading the bundle's sentence model.
func WithSegmenter(s Segmenter) Option {
	return func(p *Pipeline) {
		p.segmenter = s
	}
}
