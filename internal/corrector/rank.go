package corrector

import (
	"cmp"
	"slices"

	"autocorrect/pkg/options"
)

// Rank orders candidates best first and keeps at most opts.TopK of them.
//
// Smaller edit distance always wins. Equal distances are broken by the
// configured policy: RankWeighted compares bigram*BigramWeight+unigram;
// RankBigramFirst compares bigram scores when hasPrev is set and some
// candidate has a nonzero bigram score, then unigram scores. Remaining ties
// fall back to the word itself so the order is total.
func Rank(cands []Candidate, hasPrev bool, opts options.CorrectorOptions) []Candidate {
	ranked := slices.Clone(cands)

	useBigram := false
	if hasPrev {
		for _, c := range ranked {
			if c.Bigram != 0 {
				useBigram = true
				break
			}
		}
	}
	weight := opts.BigramWeight

	slices.SortFunc(ranked, func(a, b Candidate) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		switch opts.Ranking {
		case options.RankBigramFirst:
			if useBigram {
				if c := cmp.Compare(b.Bigram, a.Bigram); c != 0 {
					return c
				}
			}
			if c := cmp.Compare(b.Unigram, a.Unigram); c != 0 {
				return c
			}
		default:
			sa := a.Bigram*weight + a.Unigram
			sb := b.Bigram*weight + b.Unigram
			if c := cmp.Compare(sb, sa); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Word, b.Word)
	})

	if opts.TopK > 0 && len(ranked) > opts.TopK {
		ranked = ranked[:opts.TopK]
	}
	return ranked
}

// Select returns the best candidate. cands must not be empty.
func Select(cands []Candidate, hasPrev bool, opts options.CorrectorOptions) Candidate {
	return Rank(cands, hasPrev, opts)[0]
}
