package sentiplot

import (
	"errors"
	"maps"
	"math"
	"slices"
	"testing"
)

func benchmark(t *testing.T) *Summary {
	t.Helper()
	s, err := NewSummary(SentimentFields...).WithRow(MeanRow, []float64{0.1, 0.7, 0.2, 0.05})
	if err != nil {
		t.Fatalf("Failed to build benchmark: %v", err)
	}
	return s
}

func summaryValue(t *testing.T, s *Summary, row, column string) float64 {
	t.Helper()
	v, err := s.Value(row, column)
	if err != nil {
		t.Fatalf("Value(%q, %q): %v", row, column, err)
	}
	return v
}

func TestSummaryRow(t *testing.T) {
	mean, err := benchmark(t).Row(MeanRow)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{NegField: 0.1, NeuField: 0.7, PosField: 0.2, CompoundField: 0.05}
	if !maps.Equal(mean, want) {
		t.Errorf("Expected %v, got %v", want, mean)
	}
}

func TestSummaryMissingRow(t *testing.T) {
	_, err := benchmark(t).Row(StdRow)

	var missing *MissingRowError
	if !errors.As(err, &missing) || missing.Row != StdRow {
		t.Fatalf("Expected missing std row, got %v", err)
	}
	if !errors.Is(err, ErrMissingRow) {
		t.Errorf("Expected ErrMissingRow, got %v", err)
	}
}

func TestSummaryValue(t *testing.T) {
	s := benchmark(t)

	if v := summaryValue(t, s, MeanRow, NeuField); v != 0.7 {
		t.Errorf("Expected 0.7, got %v", v)
	}
	if _, err := s.Value(MeanRow, "acidity"); !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected ErrMissingField, got %v", err)
	}
}

func TestSummaryWithRowValidates(t *testing.T) {
	tests := []struct {
		row    string
		values []float64
		target error
		desc   string
	}{
		{StdRow, []float64{1}, ErrLengthMismatch, "Wrong width"},
		{MeanRow, []float64{1, 2, 3, 4}, ErrDuplicateField, "Row already present"},
	}

	s := benchmark(t)
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if _, err := s.WithRow(tt.row, tt.values); !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	f, err := NewFrame(RangeIndex(4)).WithFloats("x", []float64{4, 1, 3, 2})
	if err != nil {
		t.Fatal(err)
	}

	s, err := Describe(f, "x")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if !slices.Equal(s.Rows(), DescribeRows) || !slices.Equal(s.Columns(), []string{"x"}) {
		t.Fatalf("Unexpected shape: rows %v, columns %v", s.Rows(), s.Columns())
	}

	get := func(row string) float64 { return summaryValue(t, s, row, "x") }
	if get(CountRow) != 4 || get(MinRow) != 1 || get(MaxRow) != 4 {
		t.Errorf("count/min/max: got %v/%v/%v", get(CountRow), get(MinRow), get(MaxRow))
	}
	if !near(get(MeanRow), 2.5) {
		t.Errorf("Expected mean 2.5, got %v", get(MeanRow))
	}
	if !near(get(StdRow), math.Sqrt(5.0/3.0)) {
		t.Errorf("Expected sample std %v, got %v", math.Sqrt(5.0/3.0), get(StdRow))
	}
	order := []string{MinRow, Q1Row, MedianRow, Q3Row, MaxRow}
	for i := 1; i < len(order); i++ {
		if get(order[i-1]) > get(order[i]) {
			t.Errorf("%s (%v) above %s (%v)", order[i-1], get(order[i-1]), order[i], get(order[i]))
		}
	}

	// Describe sorts a copy, not the frame's column.
	if got := floatsOf(t, f, "x"); !slices.Equal(got, []float64{4, 1, 3, 2}) {
		t.Errorf("Frame column reordered: %v", got)
	}
}

func TestDescribeDefaultsToSentimentFields(t *testing.T) {
	scored := scoredReviews(t)

	s, err := Describe(scored)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if !slices.Equal(s.Columns(), SentimentFields) {
		t.Errorf("Expected score columns, got %v", s.Columns())
	}
	col := floatsOf(t, scored, PosField)
	if got := summaryValue(t, s, MeanRow, PosField); !near(got, (col[0]+col[1]+col[2])/3) {
		t.Errorf("Unexpected pos mean %v for %v", got, col)
	}
}

func TestDescribeEmpty(t *testing.T) {
	f, err := NewFrame(nil).WithFloats("x", nil)
	if err != nil {
		t.Fatal(err)
	}

	s, err := Describe(f, "x")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if count := summaryValue(t, s, CountRow, "x"); count != 0 {
		t.Errorf("Expected count 0, got %v", count)
	}
	if mean := summaryValue(t, s, MeanRow, "x"); !math.IsNaN(mean) {
		t.Errorf("Expected NaN mean, got %v", mean)
	}
}

func TestSummaryFromFrame(t *testing.T) {
	f, err := NewFrame([]string{CountRow, MeanRow}).WithFloats(NegField, []float64{10, 0.12})
	if err == nil {
		f, err = f.WithStrings("note", []string{"a", "b"})
	}
	if err != nil {
		t.Fatal(err)
	}

	s, err := SummaryFromFrame(f)
	if err != nil {
		t.Fatalf("SummaryFromFrame: %v", err)
	}

	if !slices.Equal(s.Columns(), []string{NegField}) || !slices.Equal(s.Rows(), []string{CountRow, MeanRow}) {
		t.Errorf("Unexpected shape: rows %v, columns %v", s.Rows(), s.Columns())
	}
	if v := summaryValue(t, s, MeanRow, NegField); v != 0.12 {
		t.Errorf("Expected 0.12, got %v", v)
	}
}
