package corrector

import (
	"strings"
	"unicode/utf8"

	"autocorrect/internal/lexicon"
)

// Candidates returns the correction candidates for one token, never empty.
// prev is the previous corrected word in context form (lowercase, no
// punctuation), or "" at the start of a sentence.
//
// Pass-through candidates are returned for punctuation-only tokens, numerals
// and tokens with no vocabulary word within MaxEditDistance. A dictionary word
// yields a single distance-0 candidate. Otherwise the unigram keys and the
// bigram vocabulary are scanned and the union is deduplicated by word.
func (sc *SpellCorrector) Candidates(token, prev string, lex *lexicon.Lexicon) []Candidate {
	punct, core := splitPunctuation(token)
	lower := strings.ToLower(core)

	if lower == "" {
		return []Candidate{{Word: token, Original: token, PassThrough: true}}
	}
	if isNumeral(lower) {
		return []Candidate{{Word: core, Original: token, Punctuation: punct, PassThrough: true}}
	}
	if lex == nil {
		return []Candidate{{Word: core, Original: token, Punctuation: punct, PassThrough: true}}
	}
	if lex.Contains(lower) {
		return []Candidate{{
			Word:        lower,
			Original:    token,
			Unigram:     lex.Unigram(lower),
			Punctuation: punct,
		}}
	}

	maxDist := sc.config.MaxEditDistance
	n := utf8.RuneCountInString(lower)
	found := make(map[string]*Candidate)

	for w := range lex.UnigramWordsNear(n, maxDist) {
		d := Levenshtein(lower, w)
		if d > maxDist {
			continue
		}
		found[w] = &Candidate{
			Word:        w,
			Original:    token,
			Distance:    d,
			Unigram:     lex.Unigram(w),
			Punctuation: punct,
		}
	}

	for w := range lex.BigramWordsNear(n, maxDist) {
		d := Levenshtein(lower, w)
		if d > maxDist {
			continue
		}
		bigram := lex.Bigram(prev, w)
		if c, ok := found[w]; ok {
			c.Distance = min(c.Distance, d)
			c.Bigram = max(c.Bigram, bigram)
			c.Unigram = max(c.Unigram, lex.Unigram(w))
			continue
		}
		found[w] = &Candidate{
			Word:        w,
			Original:    token,
			Distance:    d,
			Unigram:     lex.Unigram(w),
			Bigram:      bigram,
			Punctuation: punct,
		}
	}

	if len(found) == 0 {
		return []Candidate{{Word: core, Original: token, Punctuation: punct, PassThrough: true}}
	}

	out := make([]Candidate, 0, len(found))
	for _, c := range found {
		out = append(out, *c)
	}
	return out
}
