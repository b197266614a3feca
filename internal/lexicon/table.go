package lexicon

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind names one of the three per-language resources.
type Kind string

const (
	KindDictionary Kind = "dictionary"
	KindUnigram    Kind = "unigram"
	KindBigram     Kind = "bigram"
)

// Resources locates the data files of one language. Dictionary and Unigram
// are required, Bigram is optional.
type Resources struct {
	Label      string `yaml:"label"`
	Dictionary string `yaml:"dictionary"`
	Unigram    string `yaml:"unigram"`
	Bigram     string `yaml:"bigram"`
}

// Path returns the configured location of the given resource kind.
func (r Resources) Path(kind Kind) string {
	switch kind {
	case KindDictionary:
		return r.Dictionary
	case KindUnigram:
		return r.Unigram
	case KindBigram:
		return r.Bigram
	}
	return ""
}

// Table maps a language code to its resources.
type Table map[string]Resources

// DefaultTable returns the stock English, Indonesian and Spanish table with
// paths relative to the dictionary directory.
func DefaultTable() Table {
	return Table{
		"en": {
			Label:      "English",
			Dictionary: "OID.txt",
			Unigram:    "CorpusEngUnigram.json",
			Bigram:     "BigramKataUmumEng.json",
		},
		"id": {
			Label:      "Indonesia",
			Dictionary: "KBBI.txt",
			Unigram:    "CorpusIndo.json",
			Bigram:     "BigramKataUmum.json",
		},
		"es": {
			Label:      "Spanish",
			Dictionary: "SPANISHTEXT.txt",
			Unigram:    "CorpusSpanUnigram.json",
			Bigram:     "BigramKataUmumSpan.json",
		},
	}
}

// CodeFor resolves a display label ("English") or a code ("en") to a code.
// Labels match case-insensitively.
func (t Table) CodeFor(language string) (string, error) {
	l := strings.TrimSpace(language)
	if _, ok := t[l]; ok && l != "" {
		return l, nil
	}
	for code, res := range t {
		if res.Label != "" && strings.EqualFold(res.Label, l) {
			return code, nil
		}
		if strings.EqualFold(code, l) {
			return code, nil
		}
	}
	return "", &UnsupportedLanguageError{Language: language}
}

// Codes returns the configured codes in sorted order.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Validate checks that every language names its required resources and that
// labels are unique.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.New("lexicon: language table is empty")
	}
	var errs []error
	labels := make(map[string]string, len(t))
	for _, code := range t.Codes() {
		res := t[code]
		if strings.TrimSpace(code) == "" {
			errs = append(errs, errors.New("lexicon: empty language code"))
			continue
		}
		if res.Dictionary == "" {
			errs = append(errs, fmt.Errorf("lexicon: %s.dictionary is required", code))
		}
		if res.Unigram == "" {
			errs = append(errs, fmt.Errorf("lexicon: %s.unigram is required", code))
		}
		if res.Label == "" {
			continue
		}
		key := strings.ToLower(res.Label)
		if prev, ok := labels[key]; ok {
			errs = append(errs, fmt.Errorf("lexicon: %s.label %q duplicates %s", code, res.Label, prev))
		}
		labels[key] = code
	}
	return errors.Join(errs...)
}
