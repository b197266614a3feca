// Package lexicon loads and indexes the per-language word data used by the
// autocorrect engine: a dictionary of known words, a unigram score table and
// an optional bigram score table.
//
// A [Lexicon] is immutable once built and safe for concurrent use by any
// number of goroutines. Hosts should build one per language at startup (see
// [Store]) and share it across requests.
package lexicon

import (
	"iter"
	"sort"
	"strings"
	"unicode/utf8"
)

// CustomWordScore is the unigram score given to words from the custom
// dictionary overlay so that they win frequency ties.
const CustomWordScore = 1_000_000_000

// Lexicon is the dictionary, unigram and bigram data of one language.
type Lexicon struct {
	language       string
	dictionary     map[string]struct{}
	dictionaryList []string
	unigrams       map[string]float64
	bigrams        map[string]float64
	bigramVocab    map[string]struct{}

	// rune length -> sorted words, for the pruned candidate scan
	unigramIndex map[int][]string
	bigramIndex  map[int][]string
}

// Stats summarises the size of a lexicon.
type Stats struct {
	Language         string `json:"language"`
	DictionaryWords  int    `json:"dictionary_words"`
	Unigrams         int    `json:"unigrams"`
	Bigrams          int    `json:"bigrams"`
	BigramVocabulary int    `json:"bigram_vocabulary"`
}

// New builds a lexicon from parsed data. Dictionary words are trimmed and
// lowercased and blank entries dropped; unigram and bigram keys are
// lowercased, keeping the larger score on collision. Bigram keys that do not
// consist of exactly two words stay in the table but add nothing to the
// bigram vocabulary.
func New(language string, dictionary []string, unigrams, bigrams map[string]float64) *Lexicon {
	lex := &Lexicon{
		language:       language,
		dictionary:     make(map[string]struct{}, len(dictionary)),
		dictionaryList: make([]string, 0, len(dictionary)),
		unigrams:       make(map[string]float64, len(unigrams)),
		bigrams:        make(map[string]float64, len(bigrams)),
		bigramVocab:    make(map[string]struct{}),
	}
	for _, w := range dictionary {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		lex.dictionaryList = append(lex.dictionaryList, w)
		lex.dictionary[w] = struct{}{}
	}
	for w, score := range unigrams {
		lw := strings.ToLower(w)
		if prev, ok := lex.unigrams[lw]; ok && prev >= score {
			continue
		}
		lex.unigrams[lw] = score
	}
	for key, score := range bigrams {
		key = strings.ToLower(key)
		if prev, ok := lex.bigrams[key]; ok && prev >= score {
			continue
		}
		lex.bigrams[key] = score
		parts := strings.Fields(key)
		if len(parts) != 2 {
			continue
		}
		lex.bigramVocab[parts[0]] = struct{}{}
		lex.bigramVocab[parts[1]] = struct{}{}
	}

	lex.unigramIndex = buildIndex(keys(lex.unigrams))
	lex.bigramIndex = buildIndex(keys(lex.bigramVocab))
	return lex
}

// withCustomWords returns a copy of lex with words merged into the dictionary
// and the unigram table.
func (l *Lexicon) withCustomWords(words []string) *Lexicon {
	if len(words) == 0 {
		return l
	}
	dict := append([]string(nil), l.dictionaryList...)
	unigrams := make(map[string]float64, len(l.unigrams)+len(words))
	for w, s := range l.unigrams {
		unigrams[w] = s
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := l.dictionary[w]; !ok {
			dict = append(dict, w)
		}
		unigrams[w] = CustomWordScore
	}
	return New(l.language, dict, unigrams, l.bigrams)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func buildIndex(words []string) map[int][]string {
	idx := make(map[int][]string)
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		idx[n] = append(idx[n], w)
	}
	for _, bucket := range idx {
		sort.Strings(bucket)
	}
	return idx
}

// Language returns the language code.
func (l *Lexicon) Language() string { return l.language }

// Contains reports whether the lowercase word is a dictionary word.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.dictionary[word]
	return ok
}

// Words returns a copy of the dictionary in file order.
func (l *Lexicon) Words() []string {
	return append([]string(nil), l.dictionaryList...)
}

// Unigram returns the unigram score of word, 0 when absent.
func (l *Lexicon) Unigram(word string) float64 { return l.unigrams[word] }

// Bigram returns the score of the pair "prev word", 0 when prev is empty or
// the pair is absent.
func (l *Lexicon) Bigram(prev, word string) float64 {
	if prev == "" {
		return 0
	}
	return l.bigrams[prev+" "+word]
}

// InBigramVocabulary reports whether word occurs in any bigram key.
func (l *Lexicon) InBigramVocabulary(word string) bool {
	_, ok := l.bigramVocab[word]
	return ok
}

// UnigramWordsNear yields every unigram key whose rune length is within
// maxDist of length. Words outside that window cannot be within maxDist edits.
func (l *Lexicon) UnigramWordsNear(length, maxDist int) iter.Seq[string] {
	return near(l.unigramIndex, length, maxDist)
}

// BigramWordsNear is [Lexicon.UnigramWordsNear] over the bigram vocabulary.
func (l *Lexicon) BigramWordsNear(length, maxDist int) iter.Seq[string] {
	return near(l.bigramIndex, length, maxDist)
}

func near(idx map[int][]string, length, maxDist int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for n := length - maxDist; n <= length+maxDist; n++ {
			for _, w := range idx[n] {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// Stats reports the table sizes.
func (l *Lexicon) Stats() Stats {
	return Stats{
		Language:         l.language,
		DictionaryWords:  len(l.dictionary),
		Unigrams:         len(l.unigrams),
		Bigrams:          len(l.bigrams),
		BigramVocabulary: len(l.bigramVocab),
	}
}
