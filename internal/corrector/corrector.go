// Package corrector implements the dictionary and bigram based autocorrect
// engine applied to chat messages.
//
// A sentence is tokenized into words and separators, each word is matched
// against a [lexicon.Lexicon] by edit distance, the candidates are ranked by
// distance and then by bigram/unigram score, and the winner is rendered with
// the original token's case and punctuation. The previous corrected word is
// the bigram context of the next one.
//
// A [SpellCorrector] holds no mutable state and is safe for concurrent use.
package corrector

import (
	"log/slog"
	"strings"

	"autocorrect/internal/lexicon"
	"autocorrect/pkg/options"
)

type SpellCorrector struct {
	config options.CorrectorOptions
	logger *slog.Logger
}

// New returns a corrector configured by opts on top of
// options.DefaultOptions.
func New(opts ...options.Options) *SpellCorrector {
	cfg := options.Build(opts...)
	return &SpellCorrector{config: cfg, logger: cfg.Logger}
}

// Options returns the effective configuration.
func (sc *SpellCorrector) Options() options.CorrectorOptions { return sc.config }

// Correct returns sentence with every correctable word replaced by its best
// candidate. Separators and the sentence's outer whitespace are preserved
// exactly. A nil lexicon leaves the sentence unchanged.
func (sc *SpellCorrector) Correct(sentence string, lex *lexicon.Lexicon) string {
	return sc.CorrectText(sentence, lex).Corrected
}

// CorrectText is Correct plus the per-token decisions and ranked
// alternatives, keyed by segment index.
func (sc *SpellCorrector) CorrectText(sentence string, lex *lexicon.Lexicon) CorrectionResult {
	res := CorrectionResult{
		Original:    sentence,
		Suggestions: make(map[int]SuggestionInfo),
	}
	if lex != nil {
		res.Language = lex.Language()
	}

	toks := Tokenize(sentence)

	var out strings.Builder
	out.Grow(len(sentence))
	out.WriteString(toks.Leading)

	prev := ""
	for idx, seg := range toks.Segments {
		switch {
		case seg.Kind == SegmentSpace:
			out.WriteString(seg.Text)
			continue
		case seg.Kind == SegmentLiteral, isBracketLiteral(seg.Text):
			out.WriteString(seg.Text)
			prev = ""
			continue
		case contextWord(seg.Text) == "":
			out.WriteString(seg.Text)
			prev = ""
			continue
		case isNumeral(seg.Text):
			out.WriteString(seg.Text)
			prev = contextWord(seg.Text)
			res.Suggestions[idx] = SuggestionInfo{Token: seg.Text, Decision: DecisionSkip}
			continue
		}

		cands := sc.Candidates(seg.Text, prev, lex)
		ranked := Rank(cands, prev != "", sc.config)
		best := ranked[0]
		final := Reconstruct(best)
		out.WriteString(final)

		decision := DecisionKeep
		if final != seg.Text {
			decision = DecisionReplace
			res.Replaced++
		}
		if decision == DecisionReplace || len(ranked) > 1 {
			alts := make([]string, 0, len(ranked))
			for _, c := range ranked {
				alts = append(alts, Reconstruct(c))
			}
			res.Suggestions[idx] = SuggestionInfo{Token: seg.Text, Suggestions: alts, Decision: decision}
		}

		sc.logger.Debug("token corrected",
			"token", seg.Text,
			"result", final,
			"decision", decision,
			"distance", best.Distance,
			"candidates", len(cands),
			"context", prev,
		)
		prev = contextWord(final)
	}

	out.WriteString(toks.Trailing)
	res.Corrected = out.String()
	return res
}
