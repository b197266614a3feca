package corrector

// Punctuation is the run of non-word characters stripped from each end of a
// token before lookup and reattached afterwards.
type Punctuation struct {
	Leading  string `json:"leading"`
	Trailing string `json:"trailing"`
}

// Candidate is a proposed replacement for one word token.
type Candidate struct {
	Word        string      `json:"word"`
	Original    string      `json:"original"`
	Distance    int         `json:"distance"`
	Unigram     float64     `json:"unigram"`
	Bigram      float64     `json:"bigram"`
	Punctuation Punctuation `json:"punctuation"`
	// PassThrough marks a candidate that reproduces Original verbatim.
	PassThrough bool `json:"pass_through,omitempty"`
}

// Decision records what happened to a word token.
type Decision string

const (
	DecisionKeep    Decision = "keep"
	DecisionReplace Decision = "replace"
	DecisionSkip    Decision = "skip"
)

type SuggestionInfo struct {
	Token       string   `json:"token"`
	Suggestions []string `json:"suggestions"`
	Decision    Decision `json:"decision"`
}

type CorrectionResult struct {
	Original    string                 `json:"original"`
	Corrected   string                 `json:"corrected"`
	Language    string                 `json:"language,omitempty"`
	Replaced    int                    `json:"replaced"`
	Suggestions map[int]SuggestionInfo `json:"suggestions"`
}
