package sentiplot

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// countingAnalyzer returns scores derived from the text length and counts
// its calls.
type countingAnalyzer struct {
	calls atomic.Int64
	mu    sync.Mutex
	seen  []string
	fail  string // Text that makes the call fail
}

var errAnalyzer = errors.New("analyzer exploded")

func (a *countingAnalyzer) PolarityScores(text string) (Scores, error) {
	a.calls.Add(1)
	a.mu.Lock()
	a.seen = append(a.seen, text)
	a.mu.Unlock()
	if a.fail != "" && text == a.fail {
		return Scores{}, errAnalyzer
	}
	return scoresFor(text), nil
}

func scoresFor(text string) Scores {
	n := float64(len(text))
	return Scores{
		Neg:      n / 1000,
		Neu:      1 - 3*n/1000,
		Pos:      2 * n / 1000,
		Compound: n / 100,
	}
}

func reviewFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := NewFrame([]string{"r7", "r3", "r9"}).
		WithStrings(NameField, []string{"Kenya AA", "Huila", "Yirgacheffe"})
	if err == nil {
		f, err = f.WithStrings(RoasterField, []string{"Blue Bottle", "Onyx", "Counter Culture"})
	}
	if err == nil {
		f, err = f.WithStrings("review", []string{
			"Bright and juicy with blackcurrant.",
			"Flat and papery.",
			"Floral, jasmine, lovely tea-like body!",
		})
	}
	if err != nil {
		t.Fatalf("Failed to build review frame: %v", err)
	}
	return f
}

// scoredReviews is reviewFrame scored with a countingAnalyzer.
func scoredReviews(t *testing.T) *Frame {
	t.Helper()
	scored, err := ScoreFrame(reviewFrame(t), "review", &countingAnalyzer{})
	if err != nil {
		t.Fatalf("Failed to score review frame: %v", err)
	}
	return scored
}

func floatsOf(t *testing.T, f *Frame, name string) []float64 {
	t.Helper()
	vals, err := f.Floats(name)
	if err != nil {
		t.Fatalf("Floats(%q): %v", name, err)
	}
	return vals
}

func stringsOf(t *testing.T, f *Frame, name string) []string {
	t.Helper()
	vals, err := f.Strings(name)
	if err != nil {
		t.Fatalf("Strings(%q): %v", name, err)
	}
	return vals
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-12 && d > -1e-12
}
