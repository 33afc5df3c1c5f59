// Package vader provides a sentiplot.Analyzer backed by the VADER lexicon.
package vader

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/tsawler/sentiplot"
)

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]*>`)
)

// An Option changes how an Analyzer prepares text.
type Option func(a *Analyzer)

// WithPlainText makes the analyzer render markdown to text and drop links
// before scoring, so that URLs and markup do not count as words.
func WithPlainText() Option {
	return func(a *Analyzer) {
		a.plain = true
	}
}

// Analyzer scores text with VADER. It is safe for concurrent use.
type Analyzer struct {
	sia   *govader.SentimentIntensityAnalyzer
	plain bool
}

// New creates an Analyzer with the bundled VADER lexicon.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{sia: govader.NewSentimentIntensityAnalyzer()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PolarityScores implements sentiplot.Analyzer. It never fails.
func (a *Analyzer) PolarityScores(text string) (sentiplot.Scores, error) {
	if a.plain {
		text = PlainText(text)
	}
	s := a.sia.PolarityScores(text)
	return sentiplot.Scores{
		Neg:      s.Negative,
		Neu:      s.Neutral,
		Pos:      s.Positive,
		Compound: s.Compound,
	}, nil
}

// PlainText renders markdown to text, keeping link labels and dropping URLs.
func PlainText(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	text := html.UnescapeString(htmlTag.ReplaceAllString(string(output), " "))
	text = bareURL.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Label classifies a compound score as "positive", "negative" or "neutral"
// using the ±0.05 thresholds recommended for VADER.
func Label(compound float64) string {
	switch {
	case compound >= 0.05:
		return "positive"
	case compound <= -0.05:
		return "negative"
	}
	return "neutral"
}
