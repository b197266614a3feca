package lexicon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// CustomWords supplies user-added words for a language. Implemented by
// customdict.CustomDict.
type CustomWords interface {
	All(ctx context.Context, code string) ([]string, error)
}

// LoadOption configures [Load].
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
	custom CustomWords
}

// WithLogger sets the logger used for degradation warnings.
func WithLogger(l *slog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = l }
}

// WithCustomWords merges the words returned by src into every loaded lexicon.
func WithCustomWords(src CustomWords) LoadOption {
	return func(c *loadConfig) { c.custom = src }
}

// Load reads and indexes the resources of language code from src.
//
// The dictionary and unigram resources are required: a missing or malformed
// one fails the load with a [*ResourceLoadError]. The bigram resource is
// optional; when it cannot be read or parsed a warning is logged and the
// lexicon is built with an empty bigram table.
func Load(ctx context.Context, code string, src Source, opts ...LoadOption) (*Lexicon, error) {
	cfg := loadConfig{logger: slog.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	if t, ok := src.(Tabled); ok {
		if _, known := t.Table()[code]; !known {
			return nil, &UnsupportedLanguageError{Language: code}
		}
	}

	dictRaw, err := read(ctx, src, code, KindDictionary)
	if err != nil {
		return nil, err
	}
	dictionary, err := parseWordList(dictRaw)
	if err != nil {
		return nil, &ResourceLoadError{Language: code, Resource: KindDictionary, Err: err}
	}

	uniRaw, err := read(ctx, src, code, KindUnigram)
	if err != nil {
		return nil, err
	}
	unigrams, err := parseScores(uniRaw)
	if err != nil {
		return nil, &ResourceLoadError{Language: code, Resource: KindUnigram, Err: err}
	}

	bigrams, err := loadBigrams(ctx, src, code)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		cfg.logger.Warn("bigram table unavailable, using unigram scores only",
			"language", code, "err", errors.Join(ErrBigramUnavailable, err))
		bigrams = nil
	}

	lex := New(code, dictionary, unigrams, bigrams)

	if cfg.custom != nil {
		words, err := cfg.custom.All(ctx, code)
		if err != nil {
			cfg.logger.Warn("custom dictionary unavailable", "language", code, "err", err)
		} else {
			lex = lex.withCustomWords(words)
		}
	}

	st := lex.Stats()
	cfg.logger.Debug("lexicon loaded",
		"language", code,
		"dictionary_words", st.DictionaryWords,
		"unigrams", st.Unigrams,
		"bigrams", st.Bigrams,
		"bigram_vocabulary", st.BigramVocabulary,
	)
	return lex, nil
}

func read(ctx context.Context, src Source, code string, kind Kind) ([]byte, error) {
	raw, err := src.ReadResource(ctx, code, kind)
	if err != nil {
		if IsUnsupportedLanguage(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ResourceLoadError{Language: code, Resource: kind, Err: err}
	}
	return raw, nil
}

func loadBigrams(ctx context.Context, src Source, code string) (map[string]float64, error) {
	raw, err := src.ReadResource(ctx, code, KindBigram)
	if err != nil {
		return nil, err
	}
	return parseScores(raw)
}

// parseWordList splits a newline-delimited word list. Lines are trimmed and
// lowercased by New; here only validity is checked.
func parseWordList(raw []byte) ([]string, error) {
	if !utf8.Valid(raw) {
		return nil, errors.New("word list is not valid UTF-8")
	}
	lines := bytes.Split(raw, []byte("\n"))
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		words = append(words, string(line))
	}
	return words, nil
}

// parseScores decodes a JSON object of string keys to numeric scores.
func parseScores(raw []byte) (map[string]float64, error) {
	var scores map[string]float64
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, fmt.Errorf("decode score table: %w", err)
	}
	if scores == nil {
		return nil, errors.New("decode score table: expected a JSON object")
	}
	return scores, nil
}
