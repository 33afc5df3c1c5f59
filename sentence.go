package sentiplot

import (
	"regexp"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A Splitter breaks a text blob into sentences.
type Splitter interface {
	Split(text string) []string
}

var terminators = regexp.MustCompile(`[?.!]`)

// TerminatorSplitter splits at every single '?', '.' or '!'.
//
// The terminators are dropped, as are segments that are exactly empty, so
// "A..B" yields "A" and "B". Whitespace is left alone: a leading space stays
// part of the following sentence and whitespace-only segments are kept.
type TerminatorSplitter struct{}

// Split implements Splitter.
func (TerminatorSplitter) Split(text string) []string {
	var out []string
	for _, s := range terminators.Split(text, -1) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitSentences splits text with a TerminatorSplitter.
func SplitSentences(text string) []string {
	return TerminatorSplitter{}.Split(text)
}

// PunktSplitter segments English text with the punkt model, which keeps
// abbreviations and decimals such as "Dr." or "3.5" inside their sentence.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the bundled English punkt model.
func NewPunktSplitter() (*PunktSplitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &PunktSplitter{tokenizer: tokenizer}, nil
}

// Split implements Splitter. Sentences are trimmed; blank ones are dropped.
func (p *PunktSplitter) Split(text string) []string {
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ScoreSentences splits text into sentences and scores each one as its own
// row of a single-column ("text") Frame keyed 0..n-1.
//
// Empty text yields a Frame with no rows.
func ScoreSentences(text string, a Analyzer, opts ...ScoreOpt) (*Frame, error) {
	base := newScoreOpts(opts)

	parts := base.Splitter.Split(text)
	f, err := NewFrame(RangeIndex(len(parts))).WithStrings(TextField, parts)
	if err != nil {
		return nil, err
	}
	return ScoreFrame(f, TextField, a, opts...)
}
