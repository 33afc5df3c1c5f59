package sentiplot

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistic row names produced by Describe.
const (
	CountRow  = "count"
	MeanRow   = "mean"
	StdRow    = "std"
	MinRow    = "min"
	Q1Row     = "25%"
	MedianRow = "50%"
	Q3Row     = "75%"
	MaxRow    = "max"
)

// DescribeRows lists the rows of a Describe summary in order.
var DescribeRows = []string{CountRow, MeanRow, StdRow, MinRow, Q1Row, MedianRow, Q3Row, MaxRow}

// A Summary is a table of aggregate statistics: rows are named by statistic
// and columns by field. It is used as the benchmark a chart compares against.
type Summary struct {
	columns []string
	rows    []string
	values  map[string][]float64
}

// NewSummary creates a Summary with the given columns and no rows.
func NewSummary(columns ...string) *Summary {
	return &Summary{
		columns: slices.Clone(columns),
		values:  map[string][]float64{},
	}
}

// WithRow returns a new Summary with a row appended. values holds one entry
// per column, in column order.
func (s *Summary) WithRow(name string, values []float64) (*Summary, error) {
	if len(values) != len(s.columns) {
		return nil, fmt.Errorf("row %q has %d values for %d columns: %w", name, len(values), len(s.columns), ErrLengthMismatch)
	}
	if _, ok := s.values[name]; ok {
		return nil, fmt.Errorf("row %q: %w", name, ErrDuplicateField)
	}
	out := &Summary{
		columns: s.columns,
		rows:    append(slices.Clip(s.rows), name),
		values:  maps.Clone(s.values),
	}
	out.values[name] = slices.Clone(values)
	return out, nil
}

// Columns returns the column names.
func (s *Summary) Columns() []string { return slices.Clone(s.columns) }

// Rows returns the statistic names.
func (s *Summary) Rows() []string { return slices.Clone(s.rows) }

// Row returns the named statistic for every column.
func (s *Summary) Row(name string) (map[string]float64, error) {
	vals, ok := s.values[name]
	if !ok {
		return nil, &MissingRowError{Row: name}
	}
	out := make(map[string]float64, len(s.columns))
	for i, col := range s.columns {
		out[col] = vals[i]
	}
	return out, nil
}

// Value returns a single cell.
func (s *Summary) Value(row, column string) (float64, error) {
	vals, ok := s.values[row]
	if !ok {
		return 0, &MissingRowError{Row: row}
	}
	i := slices.Index(s.columns, column)
	if i < 0 {
		return 0, &MissingFieldError{Field: column}
	}
	return vals[i], nil
}

// Describe summarizes float columns of f the way a benchmark is usually
// built: count, mean, sample standard deviation, min, quartiles and max.
// With no fields given it summarizes SentimentFields.
//
// Statistics other than count are NaN for an empty frame, and std is NaN for
// a single row. Quartiles use gonum's LinInterp estimator.
func Describe(f *Frame, fields ...string) (*Summary, error) {
	if len(fields) == 0 {
		fields = SentimentFields
	}

	stats := make([][]float64, len(DescribeRows))
	for i := range stats {
		stats[i] = make([]float64, len(fields))
	}

	for j, name := range fields {
		xs, err := f.Floats(name)
		if err != nil {
			return nil, err
		}
		for i, v := range describe(xs) {
			stats[i][j] = v
		}
	}

	out := NewSummary(fields...)
	for i, row := range DescribeRows {
		next, err := out.WithRow(row, stats[i])
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// describe returns the DescribeRows statistics of xs, which it sorts in place.
func describe(xs []float64) []float64 {
	n := float64(len(xs))
	if len(xs) == 0 {
		nan := math.NaN()
		return []float64{0, nan, nan, nan, nan, nan, nan, nan}
	}
	slices.Sort(xs)
	return []float64{
		n,
		stat.Mean(xs, nil),
		stat.StdDev(xs, nil),
		floats.Min(xs),
		stat.Quantile(0.25, stat.LinInterp, xs, nil),
		stat.Quantile(0.5, stat.LinInterp, xs, nil),
		stat.Quantile(0.75, stat.LinInterp, xs, nil),
		floats.Max(xs),
	}
}

// SummaryFromFrame reads a Summary out of a Frame whose row keys name the
// statistics, such as a describe table saved to CSV. Only float columns are
// kept.
func SummaryFromFrame(f *Frame) (*Summary, error) {
	var columns []string
	for _, name := range f.Columns() {
		if kind, _ := f.Kind(name); kind == FloatKind {
			columns = append(columns, name)
		}
	}

	values := make([][]float64, len(columns))
	for j, name := range columns {
		vals, err := f.Floats(name)
		if err != nil {
			return nil, err
		}
		values[j] = vals
	}

	out := NewSummary(columns...)
	for i, row := range f.Index() {
		cells := make([]float64, len(columns))
		for j := range columns {
			cells[j] = values[j][i]
		}
		next, err := out.WithRow(row, cells)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
