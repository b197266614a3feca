package options

import "log/slog"

// Ranking selects how candidates at the same edit distance are ordered.
type Ranking string

const (
	// RankWeighted orders ties by bigram*BigramWeight + unigram.
	RankWeighted Ranking = "weighted"
	// RankBigramFirst orders ties by bigram score when a previous word exists
	// and any candidate has a nonzero bigram score, else by unigram score.
	RankBigramFirst Ranking = "bigram-first"
)

// IsValid reports whether r is a known ranking policy.
func (r Ranking) IsValid() bool {
	return r == RankWeighted || r == RankBigramFirst
}

var DefaultOptions = CorrectorOptions{
	MaxEditDistance: 2,
	TopK:            5,
	Ranking:         RankWeighted,
	BigramWeight:    1000,
}

type CorrectorOptions struct {
	MaxEditDistance int     // candidates farther than this are discarded
	TopK            int     // size of the ranked pool kept per token
	Ranking         Ranking // tie-break among equal distances
	BigramWeight    float64 // multiplier for bigram scores under RankWeighted
	Logger          *slog.Logger
}

type Options interface {
	Apply(options *CorrectorOptions)
}

type FuncConfig struct {
	ops func(options *CorrectorOptions)
}

func (w FuncConfig) Apply(conf *CorrectorOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *CorrectorOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Build applies opts over DefaultOptions, ignoring out-of-range values.
func Build(opts ...Options) CorrectorOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	if o.MaxEditDistance < 0 {
		o.MaxEditDistance = DefaultOptions.MaxEditDistance
	}
	if o.TopK < 1 {
		o.TopK = DefaultOptions.TopK
	}
	if !o.Ranking.IsValid() {
		o.Ranking = DefaultOptions.Ranking
	}
	if o.BigramWeight <= 0 {
		o.BigramWeight = DefaultOptions.BigramWeight
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func WithMaxEditDistance(maxEditDistance int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.MaxEditDistance = maxEditDistance
	})
}

func WithTopK(topK int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.TopK = topK
	})
}

func WithRanking(ranking Ranking) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.Ranking = ranking
	})
}

func WithBigramWeight(weight float64) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.BigramWeight = weight
	})
}

func WithLogger(logger *slog.Logger) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.Logger = logger
	})
}
