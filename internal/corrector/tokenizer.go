package corrector

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SegmentKind classifies a tokenizer segment.
type SegmentKind int

const (
	// SegmentSpace is a run of whitespace between words.
	SegmentSpace SegmentKind = iota
	// SegmentLiteral contains a bracketed span and is never corrected.
	SegmentLiteral
	// SegmentWord is subject to correction.
	SegmentWord
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentSpace:
		return "space"
	case SegmentLiteral:
		return "literal"
	case SegmentWord:
		return "word"
	}
	return "unknown"
}

type Segment struct {
	Kind SegmentKind
	Text string
}

// Tokens is a tokenized sentence. Leading and Trailing hold the sentence's
// outer whitespace; Segments alternate between words and separators.
type Tokens struct {
	Leading  string
	Trailing string
	Segments []Segment
}

// String reassembles the original sentence.
func (t Tokens) String() string {
	var sb strings.Builder
	sb.WriteString(t.Leading)
	for _, s := range t.Segments {
		sb.WriteString(s.Text)
	}
	sb.WriteString(t.Trailing)
	return sb.String()
}

// Non-nested {…}, (…) and […] spans.
var bracketRe = regexp.MustCompile(`\{[^{}]*\}|\([^()]*\)|\[[^\[\]]*\]`)

var literalRe = regexp.MustCompile(`^\{.*\}$|^\(.*\)$|^\[.*\]$`)

// Tokenize splits sentence into whitespace runs and words. Bracketed spans
// are atomic: whitespace inside them does not split, and the segment holding
// one is a literal.
func Tokenize(sentence string) Tokens {
	left := strings.TrimLeftFunc(sentence, unicode.IsSpace)
	body := strings.TrimRightFunc(left, unicode.IsSpace)
	toks := Tokens{
		Leading:  sentence[:len(sentence)-len(left)],
		Trailing: left[len(body):],
	}
	if body == "" {
		return toks
	}

	spans := bracketRe.FindAllStringIndex(body, -1)

	var word, space strings.Builder
	literal := false
	flushWord := func() {
		if word.Len() == 0 {
			return
		}
		kind := SegmentWord
		if literal {
			kind = SegmentLiteral
		}
		toks.Segments = append(toks.Segments, Segment{Kind: kind, Text: word.String()})
		word.Reset()
		literal = false
	}
	flushSpace := func() {
		if space.Len() == 0 {
			return
		}
		toks.Segments = append(toks.Segments, Segment{Kind: SegmentSpace, Text: space.String()})
		space.Reset()
	}

	for i, si := 0, 0; i < len(body); {
		if si < len(spans) && spans[si][0] == i {
			flushSpace()
			word.WriteString(body[i:spans[si][1]])
			literal = true
			i = spans[si][1]
			si++
			continue
		}
		r, size := utf8.DecodeRuneInString(body[i:])
		if unicode.IsSpace(r) {
			flushWord()
			space.WriteString(body[i : i+size])
		} else {
			flushSpace()
			word.WriteString(body[i : i+size])
		}
		i += size
	}
	flushWord()
	flushSpace()
	return toks
}

// isBracketLiteral reports whether tok is wholly enclosed in one bracket kind.
func isBracketLiteral(tok string) bool { return literalRe.MatchString(tok) }

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isPunct(r rune) bool { return !isWordRune(r) && !unicode.IsSpace(r) }

// splitPunctuation strips leading and trailing punctuation runs from tok.
// A token made only of punctuation yields an empty core.
func splitPunctuation(tok string) (Punctuation, string) {
	core := strings.TrimLeftFunc(tok, isPunct)
	p := Punctuation{Leading: tok[:len(tok)-len(core)]}
	trimmed := strings.TrimRightFunc(core, isPunct)
	p.Trailing = core[len(trimmed):]
	return p, trimmed
}

// isNumeral reports whether tok is digits only once punctuation is stripped.
func isNumeral(tok string) bool {
	_, core := splitPunctuation(tok)
	if core == "" {
		return false
	}
	for _, r := range core {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// contextWord is the lowercase, punctuation-free form of a corrected token,
// used as the left side of a bigram lookup.
func contextWord(tok string) string {
	_, core := splitPunctuation(tok)
	return strings.ToLower(core)
}
