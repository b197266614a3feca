package lexicon

import (
	"errors"
	"fmt"
)

// ErrBigramUnavailable is attached to the warning logged when the optional
// bigram resource cannot be used. It is never returned from Load.
var ErrBigramUnavailable = errors.New("lexicon: bigram resource unavailable")

// UnsupportedLanguageError reports a language label or code that is not in
// the configured table.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("lexicon: unsupported language %q", e.Language)
}

// ResourceLoadError reports a required resource (dictionary or unigram table)
// that could not be read or parsed.
type ResourceLoadError struct {
	Language string
	Resource Kind
	Err      error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("lexicon: load %s for %q: %v", e.Resource, e.Language, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// IsUnsupportedLanguage reports whether err is or wraps an
// [UnsupportedLanguageError].
func IsUnsupportedLanguage(err error) bool {
	var target *UnsupportedLanguageError
	return errors.As(err, &target)
}

// IsResourceLoad reports whether err is or wraps a [ResourceLoadError].
func IsResourceLoad(err error) bool {
	var target *ResourceLoadError
	return errors.As(err, &target)
}
