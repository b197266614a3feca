package corrector

import (
	"io"
	"log/slog"
	"slices"
	"testing"

	"autocorrect/internal/lexicon"
	"autocorrect/pkg/options"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestCorrector(opts ...options.Options) *SpellCorrector {
	return New(append([]options.Options{options.WithLogger(quiet)}, opts...)...)
}

func helloWorld() *lexicon.Lexicon {
	return lexicon.New("en",
		[]string{"hello", "world"},
		map[string]float64{"hello": 5, "world": 3},
		nil,
	)
}

func quickFox() *lexicon.Lexicon {
	return lexicon.New("en",
		[]string{"the", "quick", "brown", "fox"},
		map[string]float64{"the": 100, "quick": 10, "brown": 9, "fox": 8},
		map[string]float64{"the quick": 0.4, "quick brown": 0.3, "brown fox": 0.2},
	)
}

func newYork() *lexicon.Lexicon {
	return lexicon.New("en",
		[]string{"new", "york", "yolk", "egg"},
		map[string]float64{"new": 50, "york": 10, "yolk": 100, "egg": 30},
		map[string]float64{"new york": 0.8, "egg yolk": 0.1},
	)
}

// ---------------------------------------------------------------------------
// End-to-end scenarios
// ---------------------------------------------------------------------------

func TestCorrect_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lex   *lexicon.Lexicon
		input string
		want  string
	}{
		{
			name:  "simple misspellings",
			lex:   helloWorld(),
			input: "helo wrld",
			want:  "hello world",
		},
		{
			name:  "outer whitespace, literal and case",
			lex:   quickFox(),
			input: "  Teh quick {do not touch} FOX  ",
			want:  "  The quick {do not touch} FOX  ",
		},
		{
			name:  "all-caps misspelling",
			lex:   quickFox(),
			input: "  Teh quick {do not touch} FXO  ",
			want:  "  The quick {do not touch} FOX  ",
		},
		{
			name:  "numeral and no candidate",
			lex:   helloWorld(),
			input: "123 abc",
			want:  "123 abc",
		},
		{
			name:  "bigram context beats unigram frequency",
			lex:   newYork(),
			input: "new yoqk",
			want:  "new york",
		},
		{
			name:  "unigram frequency without context",
			lex:   newYork(),
			input: "yoqk",
			want:  "yolk",
		},
		{
			name:  "separators preserved",
			lex:   helloWorld(),
			input: "helo \t  wrld",
			want:  "hello \t  world",
		},
		{
			name:  "punctuation reattached",
			lex:   helloWorld(),
			input: "Helo, wrld!",
			want:  "Hello, world!",
		},
		{
			name:  "unbalanced bracket is punctuation",
			lex:   quickFox(),
			input: "(Teh fox",
			want:  "(The fox",
		},
		{
			name:  "empty",
			lex:   helloWorld(),
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			lex:   helloWorld(),
			input: " \n ",
			want:  " \n ",
		},
		{
			name:  "punctuation only token",
			lex:   helloWorld(),
			input: "helo -- wrld",
			want:  "hello -- world",
		},
		{
			name:  "nil lexicon passes through",
			lex:   nil,
			input: "Helo  wrld",
			want:  "Helo  wrld",
		},
		{
			name:  "empty lexicon passes through",
			lex:   lexicon.New("en", nil, nil, nil),
			input: "Helo wrld",
			want:  "Helo wrld",
		},
	}

	sc := newTestCorrector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sc.Correct(tt.input, tt.lex); got != tt.want {
				t.Errorf("Correct(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCorrect_BigramContextUsesCorrectedWord(t *testing.T) {
	t.Parallel()

	// "nwe" is corrected to "new" first; that corrected word, not the typo,
	// must be the bigram context for "yoqk".
	sc := newTestCorrector()
	if got := sc.Correct("nwe yoqk", newYork()); got != "new york" {
		t.Errorf("Correct = %q, want %q", got, "new york")
	}
}

func TestCorrect_LiteralResetsContext(t *testing.T) {
	t.Parallel()

	sc := newTestCorrector()
	if got := sc.Correct("new [x] yoqk", newYork()); got != "new [x] yolk" {
		t.Errorf("Correct = %q, want %q", got, "new [x] yolk")
	}
}

func TestCorrect_Idempotent(t *testing.T) {
	t.Parallel()

	sc := newTestCorrector()
	for _, s := range []string{
		"the quick brown fox",
		"The quick brown FOX",
		" the, quick... brown fox! ",
	} {
		if got := sc.Correct(s, quickFox()); got != s {
			t.Errorf("Correct(%q) = %q, want unchanged", s, got)
		}
	}

	once := sc.Correct("teh quikc brwn fxo", quickFox())
	if once != "the quick brown fox" {
		t.Fatalf("first pass = %q", once)
	}
	if twice := sc.Correct(once, quickFox()); twice != once {
		t.Errorf("second pass changed %q to %q", once, twice)
	}
}

func TestCorrect_PreservesOuterWhitespace(t *testing.T) {
	t.Parallel()

	sc := newTestCorrector()
	for _, s := range []string{"  helo", "wrld\n", "\t helo wrld \r\n", "   "} {
		got := sc.Correct(s, helloWorld())
		in, out := Tokenize(s), Tokenize(got)
		if in.Leading != out.Leading || in.Trailing != out.Trailing {
			t.Errorf("Correct(%q) = %q changed outer whitespace", s, got)
		}
	}
}

func TestCorrect_NumeralsUnchanged(t *testing.T) {
	t.Parallel()

	sc := newTestCorrector()
	for _, s := range []string{"12", "2024,", "\"42\"", "...7!"} {
		if got := sc.Correct(s, helloWorld()); got != s {
			t.Errorf("Correct(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestCorrect_BracketLiteralsUnchanged(t *testing.T) {
	t.Parallel()

	sc := newTestCorrector()
	for _, s := range []string{"{helo, wrld}", "(helo   wrld)", "[helo]", "x{helo}y"} {
		if got := sc.Correct(s, helloWorld()); got != s {
			t.Errorf("Correct(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestCorrect_MaxEditDistance(t *testing.T) {
	t.Parallel()

	strict := newTestCorrector(options.WithMaxEditDistance(1))
	if got := strict.Correct("wordl", helloWorld()); got != "wordl" {
		t.Errorf("distance 1: Correct(wordl) = %q, want unchanged", got)
	}
	loose := newTestCorrector()
	if got := loose.Correct("wordl", helloWorld()); got != "world" {
		t.Errorf("distance 2: Correct(wordl) = %q, want world", got)
	}
}

func TestCorrectText_Report(t *testing.T) {
	t.Parallel()

	sc := newTestCorrector()
	res := sc.CorrectText("helo 12 world", helloWorld())

	if res.Corrected != "hello 12 world" {
		t.Fatalf("Corrected = %q", res.Corrected)
	}
	if res.Language != "en" || res.Original != "helo 12 world" {
		t.Errorf("result header = %+v", res)
	}
	if res.Replaced != 1 {
		t.Errorf("Replaced = %d, want 1", res.Replaced)
	}
	if got := res.Suggestions[0]; got.Decision != DecisionReplace || !slices.Contains(got.Suggestions, "hello") {
		t.Errorf("Suggestions[0] = %+v", got)
	}
	if got := res.Suggestions[2]; got.Decision != DecisionSkip {
		t.Errorf("Suggestions[2] = %+v, want skip for numeral", got)
	}
	if _, ok := res.Suggestions[4]; ok {
		t.Errorf("dictionary word should have no suggestion entry")
	}
}

// ---------------------------------------------------------------------------
// Tokenize
// ---------------------------------------------------------------------------

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		leading  string
		trailing string
		segs     []Segment
	}{
		{
			name: "empty",
			in:   "",
		},
		{
			name:    "whitespace only",
			in:      " \t ",
			leading: " \t ",
		},
		{
			name:     "separators preserved",
			in:       "  a  b\tc ",
			leading:  "  ",
			trailing: " ",
			segs: []Segment{
				{SegmentWord, "a"}, {SegmentSpace, "  "}, {SegmentWord, "b"}, {SegmentSpace, "\t"}, {SegmentWord, "c"},
			},
		},
		{
			name: "bracket span glued to a word",
			in:   "x{a b}y end",
			segs: []Segment{
				{SegmentLiteral, "x{a b}y"}, {SegmentSpace, " "}, {SegmentWord, "end"},
			},
		},
		{
			name: "parenthesised span",
			in:   "see (b  c) now",
			segs: []Segment{
				{SegmentWord, "see"}, {SegmentSpace, " "}, {SegmentLiteral, "(b  c)"}, {SegmentSpace, " "}, {SegmentWord, "now"},
			},
		},
		{
			name: "unclosed bracket is an ordinary word",
			in:   "[a b",
			segs: []Segment{
				{SegmentWord, "[a"}, {SegmentSpace, " "}, {SegmentWord, "b"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Tokenize(tt.in)
			if toks.Leading != tt.leading || toks.Trailing != tt.trailing {
				t.Errorf("outer whitespace = %q/%q, want %q/%q", toks.Leading, toks.Trailing, tt.leading, tt.trailing)
			}
			if !slices.Equal(toks.Segments, tt.segs) {
				t.Errorf("segments = %v, want %v", toks.Segments, tt.segs)
			}
			if got := toks.String(); got != tt.in {
				t.Errorf("String() = %q, want %q", got, tt.in)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Candidates
// ---------------------------------------------------------------------------

func TestCandidates(t *testing.T) {
	t.Parallel()

	sc := newTestCorrector()

	t.Run("dictionary match", func(t *testing.T) {
		got := sc.Candidates("Hello!", "", helloWorld())
		if len(got) != 1 {
			t.Fatalf("got %d candidates, want 1", len(got))
		}
		c := got[0]
		if c.Word != "hello" || c.Distance != 0 || c.Unigram != 5 || c.Bigram != 0 || c.PassThrough {
			t.Errorf("candidate = %+v", c)
		}
		if c.Punctuation != (Punctuation{Trailing: "!"}) {
			t.Errorf("punctuation = %+v", c.Punctuation)
		}
	})

	t.Run("punctuation only", func(t *testing.T) {
		got := sc.Candidates("?!", "", helloWorld())
		if len(got) != 1 || !got[0].PassThrough || got[0].Word != "?!" {
			t.Errorf("candidates = %+v", got)
		}
	})

	t.Run("numeral", func(t *testing.T) {
		got := sc.Candidates("(42", "", helloWorld())
		if len(got) != 1 || !got[0].PassThrough || Reconstruct(got[0]) != "(42" {
			t.Errorf("candidates = %+v", got)
		}
	})

	t.Run("no candidate", func(t *testing.T) {
		got := sc.Candidates("Zzzzz,", "", helloWorld())
		if len(got) != 1 || !got[0].PassThrough || got[0].Word != "Zzzzz" {
			t.Errorf("candidates = %+v", got)
		}
		if Reconstruct(got[0]) != "Zzzzz," {
			t.Errorf("Reconstruct = %q", Reconstruct(got[0]))
		}
	})

	t.Run("union deduplicated with bigram score", func(t *testing.T) {
		got := sc.Candidates("yoqk", "new", newYork())
		byWord := make(map[string]Candidate)
		for _, c := range got {
			if _, dup := byWord[c.Word]; dup {
				t.Fatalf("duplicate candidate %q", c.Word)
			}
			byWord[c.Word] = c
		}
		york, ok := byWord["york"]
		if !ok {
			t.Fatalf("york missing from %+v", got)
		}
		if york.Distance != 1 || york.Bigram != 0.8 || york.Unigram != 10 {
			t.Errorf("york = %+v", york)
		}
		if yolk := byWord["yolk"]; yolk.Bigram != 0 || yolk.Distance != 1 {
			t.Errorf("yolk = %+v", yolk)
		}
	})

	t.Run("bigram-only vocabulary word", func(t *testing.T) {
		lex := lexicon.New("en", []string{"a"}, map[string]float64{"a": 1}, map[string]float64{"good morning": 0.3})
		got := sc.Candidates("mornin", "good", lex)
		if len(got) != 1 || got[0].Word != "morning" || got[0].Bigram != 0.3 || got[0].Unigram != 0 {
			t.Errorf("candidates = %+v", got)
		}
	})
}

// ---------------------------------------------------------------------------
// Rank
// ---------------------------------------------------------------------------

func TestRank(t *testing.T) {
	t.Parallel()

	near := Candidate{Word: "near", Distance: 1, Unigram: 1}
	far := Candidate{Word: "far", Distance: 2, Unigram: 1e6, Bigram: 1}
	contextual := Candidate{Word: "ctx", Distance: 1, Unigram: 5, Bigram: 0.01}
	frequent := Candidate{Word: "freq", Distance: 1, Unigram: 100}

	weighted := options.Build()
	bigramFirst := options.Build(options.WithRanking(options.RankBigramFirst))

	tests := []struct {
		name    string
		cands   []Candidate
		hasPrev bool
		opts    options.CorrectorOptions
		want    []string
	}{
		{
			name:  "distance dominates",
			cands: []Candidate{far, near},
			opts:  weighted,
			want:  []string{"near", "far"},
		},
		{
			name:    "weighted combination",
			cands:   []Candidate{contextual, frequent},
			hasPrev: true,
			opts:    weighted,
			want:    []string{"freq", "ctx"},
		},
		{
			name:    "bigram first with context",
			cands:   []Candidate{frequent, contextual},
			hasPrev: true,
			opts:    bigramFirst,
			want:    []string{"ctx", "freq"},
		},
		{
			name:    "bigram first without context",
			cands:   []Candidate{contextual, frequent},
			hasPrev: false,
			opts:    bigramFirst,
			want:    []string{"freq", "ctx"},
		},
		{
			name:  "word breaks full ties",
			cands: []Candidate{{Word: "b", Distance: 1}, {Word: "a", Distance: 1}},
			opts:  weighted,
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ranked := Rank(tt.cands, tt.hasPrev, tt.opts)
			var got []string
			for _, c := range ranked {
				got = append(got, c.Word)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Rank = %v, want %v", got, tt.want)
			}
			if sel := Select(tt.cands, tt.hasPrev, tt.opts); sel.Word != tt.want[0] {
				t.Errorf("Select = %q, want %q", sel.Word, tt.want[0])
			}
		})
	}
}

func TestRank_TopK(t *testing.T) {
	t.Parallel()

	var cands []Candidate
	for i, w := range []string{"g", "f", "e", "d", "c", "b", "a"} {
		cands = append(cands, Candidate{Word: w, Distance: 1, Unigram: float64(i)})
	}
	ranked := Rank(cands, false, options.Build())
	if len(ranked) != 5 {
		t.Fatalf("len = %d, want 5", len(ranked))
	}
	if ranked[0].Word != "a" {
		t.Errorf("best = %q, want a (highest unigram)", ranked[0].Word)
	}
	if cands[0].Word != "g" {
		t.Error("Rank mutated its input")
	}
	if got := Rank(cands, false, options.Build(options.WithTopK(1))); len(got) != 1 {
		t.Errorf("TopK(1) len = %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Case and punctuation
// ---------------------------------------------------------------------------

func TestApplyCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		original, word, want string
	}{
		{"HELO", "hello", "HELLO"},
		{"Helo", "hello", "Hello"},
		{"helo", "hello", "hello"},
		{"hELO", "Hello", "hello"},
		{"McDnald", "mcdonald", "Mcdonald"},
		{"I", "i", "I"},
		{"ÉCOLE", "école", "ÉCOLE"},
		{"Árbol", "árbol", "Árbol"},
		{"helo", "HELLO", "hello"},
		{"123", "abc", "abc"},
		{"Helo", "", ""},
	}
	for _, tt := range tests {
		if got := ApplyCase(tt.original, tt.word); got != tt.want {
			t.Errorf("ApplyCase(%q, %q) = %q, want %q", tt.original, tt.word, got, tt.want)
		}
	}
}

func TestReconstruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    Candidate
		want string
	}{
		{
			name: "punctuation and title case",
			c:    Candidate{Word: "hello", Original: "\"Helo,", Punctuation: Punctuation{Leading: "\"", Trailing: ","}},
			want: "\"Hello,",
		},
		{
			name: "all caps",
			c:    Candidate{Word: "world", Original: "WRLD!!", Punctuation: Punctuation{Trailing: "!!"}},
			want: "WORLD!!",
		},
		{
			name: "pass-through keeps mixed case",
			c:    Candidate{Word: "iPhne", Original: "iPhne", PassThrough: true},
			want: "iPhne",
		},
		{
			name: "pass-through is not case folded",
			c:    Candidate{Word: "abc", Original: "aBC", PassThrough: true},
			want: "aBC",
		},
		{
			name: "correction lowercases irregular case",
			c:    Candidate{Word: "abc", Original: "aBD"},
			want: "abc",
		},
	}
	for _, tt := range tests {
		if got := Reconstruct(tt.c); got != tt.want {
			t.Errorf("%s: Reconstruct = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSplitPunctuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		p    Punctuation
		core string
	}{
		{"hello", Punctuation{}, "hello"},
		{"hello,", Punctuation{Trailing: ","}, "hello"},
		{"\"hi!\"", Punctuation{Leading: "\"", Trailing: "!\""}, "hi"},
		{"¿qué?", Punctuation{Leading: "¿", Trailing: "?"}, "qué"},
		{"don't", Punctuation{}, "don't"},
		{"snake_case", Punctuation{}, "snake_case"},
		{"...", Punctuation{Leading: "..."}, ""},
	}
	for _, tt := range tests {
		p, core := splitPunctuation(tt.in)
		if p != tt.p || core != tt.core {
			t.Errorf("splitPunctuation(%q) = %+v, %q; want %+v, %q", tt.in, p, core, tt.p, tt.core)
		}
	}
}

func TestIsNumeral(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"123":   true,
		"(123)": true,
		"42.":   true,
		"3.14":  false,
		"12a":   false,
		"":      false,
		"!!":    false,
	} {
		if got := isNumeral(in); got != want {
			t.Errorf("isNumeral(%q) = %v, want %v", in, got, want)
		}
	}
}
