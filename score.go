package sentiplot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// A ScoreOpt represents a setting that changes how texts are scored.
//
// For example, it might score rows on several goroutines:
//
//	scored, err := sentiplot.ScoreFrame(reviews, "review", analyzer, sentiplot.WithConcurrency(8))
type ScoreOpt func(opts *ScoreOpts)

// ScoreOpts controls ScoreFrame and ScoreSentences:
type ScoreOpts struct {
	Concurrency int          // Maximum number of concurrent analyzer calls; <= 1 means sequential
	Logger      *slog.Logger // Receives debug output
	Splitter    Splitter     // Sentence splitter used by ScoreSentences
}

var defaultScoreOpts = ScoreOpts{
	Concurrency: 1,
	Logger:      slog.New(slog.DiscardHandler),
	Splitter:    TerminatorSplitter{},
}

// WithConcurrency lets up to n analyzer calls run at once.
func WithConcurrency(n int) ScoreOpt {
	return func(opts *ScoreOpts) {
		opts.Concurrency = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) ScoreOpt {
	return func(opts *ScoreOpts) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithSplitter sets the sentence splitter used by ScoreSentences.
func WithSplitter(s Splitter) ScoreOpt {
	return func(opts *ScoreOpts) {
		if s != nil {
			opts.Splitter = s
		}
	}
}

func newScoreOpts(opts []ScoreOpt) ScoreOpts {
	base := defaultScoreOpts
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	return base
}

// ScoreFrame returns f with the columns neg, neu, pos and compound appended.
//
// The analyzer is called once per row with the row's textField value. The
// result has the same row keys in the same order as f; f itself is not
// modified. If any call fails no Frame is returned.
func ScoreFrame(f *Frame, textField string, a Analyzer, opts ...ScoreOpt) (*Frame, error) {
	base := newScoreOpts(opts)

	texts, err := f.Strings(textField)
	if err != nil {
		return nil, err
	}
	for _, name := range SentimentFields {
		if f.Has(name) {
			return nil, &DuplicateFieldError{Field: name}
		}
	}

	start := time.Now()
	scores, err := scoreTexts(f.index, texts, a, base.Concurrency)
	if err != nil {
		return nil, err
	}

	sentiment, err := scoresFrame(f.index, scores)
	if err != nil {
		return nil, err
	}
	out, err := f.Concat(sentiment)
	if err != nil {
		return nil, err
	}

	base.Logger.Debug("scored frame",
		"field", textField,
		"rows", f.Len(),
		"concurrency", base.Concurrency,
		"elapsed", time.Since(start))
	return out, nil
}

func scoreTexts(keys, texts []string, a Analyzer, concurrency int) ([]Scores, error) {
	scores := make([]Scores, len(texts))

	if concurrency <= 1 {
		for i, text := range texts {
			s, err := a.PolarityScores(text)
			if err != nil {
				return nil, fmt.Errorf("score row %q: %w", keys[i], err)
			}
			scores[i] = s
		}
		return scores, nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := a.PolarityScores(text)
			if err != nil {
				return fmt.Errorf("score row %q: %w", keys[i], err)
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// scoresFrame lays scores out as the four score columns keyed by index.
func scoresFrame(index []string, scores []Scores) (*Frame, error) {
	cols := make(map[string][]float64, len(SentimentFields))
	for _, name := range SentimentFields {
		cols[name] = make([]float64, len(scores))
	}
	for i, s := range scores {
		cols[NegField][i] = s.Neg
		cols[NeuField][i] = s.Neu
		cols[PosField][i] = s.Pos
		cols[CompoundField][i] = s.Compound
	}

	out := NewFrame(index)
	for _, name := range SentimentFields {
		next, err := out.WithFloats(name, cols[name])
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
