package corrector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"autocorrect/internal/lexicon"
	"autocorrect/internal/observe"
)

// ErrNoCustomDictionary is returned by the custom-word methods of an Engine
// built without a custom dictionary.
var ErrNoCustomDictionary = errors.New("corrector: no custom dictionary configured")

// ErrEmptyWord is returned when a blank custom word is added or removed.
var ErrEmptyWord = errors.New("corrector: word is required")

// CustomDictionary stores user-added words per language.
type CustomDictionary interface {
	Add(ctx context.Context, code, word string) error
	Remove(ctx context.Context, code, word string) error
	All(ctx context.Context, code string) ([]string, error)
}

// Engine is the boundary used by message handlers: it resolves a language
// label, fetches the cached lexicon and runs the corrector.
type Engine struct {
	table   lexicon.Table
	store   *lexicon.Store
	sc      *SpellCorrector
	custom  CustomDictionary
	metrics *observe.Metrics
	logger  *slog.Logger
}

// EngineOption configures an [Engine].
type EngineOption func(*Engine)

// WithMetrics records calls on m.
func WithMetrics(m *observe.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithCustomDictionary enables AddCustomWord and RemoveCustomWord.
func WithCustomDictionary(cd CustomDictionary) EngineOption {
	return func(e *Engine) { e.custom = cd }
}

// WithEngineLogger sets the engine logger.
func WithEngineLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine wires table, store and sc together.
func NewEngine(table lexicon.Table, store *lexicon.Store, sc *SpellCorrector, opts ...EngineOption) *Engine {
	e := &Engine{table: table, store: store, sc: sc, logger: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Languages returns the configured language table.
func (e *Engine) Languages() lexicon.Table { return e.table }

// Correct corrects text in the given language label ("English") or code
// ("en"). It fails only with an UnsupportedLanguageError or a
// ResourceLoadError; no partial correction is returned on failure.
func (e *Engine) Correct(ctx context.Context, text, language string) (string, error) {
	res, err := e.CorrectText(ctx, text, language)
	if err != nil {
		return "", err
	}
	return res.Corrected, nil
}

// CorrectText is Correct with per-token detail.
func (e *Engine) CorrectText(ctx context.Context, text, language string) (CorrectionResult, error) {
	start := time.Now()

	code, err := e.table.CodeFor(language)
	if err != nil {
		e.record(ctx, language, observe.StatusUnsupportedLanguage, start, 0)
		return CorrectionResult{}, err
	}
	lex, err := e.store.Get(ctx, code)
	if err != nil {
		status := observe.StatusError
		switch {
		case lexicon.IsUnsupportedLanguage(err):
			status = observe.StatusUnsupportedLanguage
		case lexicon.IsResourceLoad(err):
			status = observe.StatusResourceError
		}
		e.record(ctx, code, status, start, 0)
		e.logger.Error("lexicon unavailable", "language", code, "err", err)
		return CorrectionResult{}, err
	}

	res := e.sc.CorrectText(text, lex)
	e.record(ctx, code, observe.StatusOK, start, res.Replaced)
	return res, nil
}

func (e *Engine) record(ctx context.Context, language, status string, start time.Time, replaced int) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordCorrection(ctx, language, status, time.Since(start), replaced)
}

// Ready reports whether at least one language can serve corrections. When
// nothing is cached it tries to load every configured language first.
func (e *Engine) Ready(ctx context.Context) error {
	if len(e.store.Cached()) > 0 {
		return nil
	}
	err := e.store.Preload(ctx, e.table.Codes()...)
	if len(e.store.Cached()) > 0 {
		return nil
	}
	if err == nil {
		err = errors.New("no language configured")
	}
	return fmt.Errorf("no lexicon loaded: %w", err)
}

// AddCustomWord stores word for language and reloads the lexicon so the
// next correction sees it.
func (e *Engine) AddCustomWord(ctx context.Context, language, word string) error {
	return e.updateCustom(ctx, language, word, func(code, w string) error {
		return e.custom.Add(ctx, code, w)
	})
}

// RemoveCustomWord deletes word for language and reloads the lexicon.
func (e *Engine) RemoveCustomWord(ctx context.Context, language, word string) error {
	return e.updateCustom(ctx, language, word, func(code, w string) error {
		return e.custom.Remove(ctx, code, w)
	})
}

func (e *Engine) updateCustom(ctx context.Context, language, word string, apply func(code, word string) error) error {
	if e.custom == nil {
		return ErrNoCustomDictionary
	}
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return ErrEmptyWord
	}
	code, err := e.table.CodeFor(language)
	if err != nil {
		return err
	}
	if err := apply(code, w); err != nil {
		return err
	}
	e.store.Invalidate(code)
	e.logger.InfoContext(ctx, "custom dictionary updated", "language", code, "word", w)
	// The word is stored; a failed reload is retried by the next Get.
	if _, err := e.store.Get(ctx, code); err != nil {
		e.logger.WarnContext(ctx, "lexicon reload failed", "language", code, "err", err)
	}
	return nil
}
