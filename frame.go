package sentiplot

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// ErrIndexMismatch is returned by Concat when two frames do not share row keys.
var ErrIndexMismatch = errors.New("row keys do not match")

// Kind is the element type of a Frame column.
type Kind int

const (
	StringKind Kind = iota
	FloatKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case FloatKind:
		return "float64"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

type column struct {
	name string
	kind Kind
	strs []string
	nums []float64
}

// A Frame is an ordered table of rows with stable row keys and named,
// typed columns.
//
// Frames are immutable: With* and Concat return a new Frame and leave the
// receiver untouched, so a Frame may be shared between goroutines.
type Frame struct {
	index []string
	cols  []column
	pos   map[string]int
}

// NewFrame creates a column-less Frame whose rows are identified by index.
//
// For example,
//
//	f, err := sentiplot.NewFrame(sentiplot.RangeIndex(2)).
//		WithStrings("text", []string{"Bright and juicy.", "Flat."})
func NewFrame(index []string) *Frame {
	return &Frame{
		index: slices.Clone(index),
		pos:   map[string]int{},
	}
}

// RangeIndex returns the keys "0" through "n-1".
func RangeIndex(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.index) }

// Index returns the row keys in row order.
func (f *Frame) Index() []string { return slices.Clone(f.index) }

// Key returns the key of row i.
func (f *Frame) Key(i int) string { return f.index[i] }

// Columns returns the column names in column order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.name
	}
	return names
}

// Has reports whether the frame has a column called name.
func (f *Frame) Has(name string) bool {
	_, ok := f.pos[name]
	return ok
}

// Kind returns the element type of the named column.
func (f *Frame) Kind(name string) (Kind, bool) {
	i, ok := f.pos[name]
	if !ok {
		return 0, false
	}
	return f.cols[i].kind, true
}

// Strings returns a copy of a string column.
func (f *Frame) Strings(name string) ([]string, error) {
	c, err := f.column(name, StringKind)
	if err != nil {
		return nil, err
	}
	return slices.Clone(c.strs), nil
}

// Floats returns a copy of a float column.
func (f *Frame) Floats(name string) ([]float64, error) {
	c, err := f.column(name, FloatKind)
	if err != nil {
		return nil, err
	}
	return slices.Clone(c.nums), nil
}

// Format returns the value at row i of the named column as text.
func (f *Frame) Format(name string, i int) (string, error) {
	idx, ok := f.pos[name]
	if !ok {
		return "", &MissingFieldError{Field: name}
	}
	c := f.cols[idx]
	if c.kind == StringKind {
		return c.strs[i], nil
	}
	return strconv.FormatFloat(c.nums[i], 'g', -1, 64), nil
}

func (f *Frame) column(name string, want Kind) (*column, error) {
	i, ok := f.pos[name]
	if !ok {
		return nil, &MissingFieldError{Field: name}
	}
	c := &f.cols[i]
	if c.kind != want {
		return nil, &FieldTypeError{Field: name, Want: want, Got: c.kind}
	}
	return c, nil
}

// WithStrings returns a new Frame with a string column appended.
func (f *Frame) WithStrings(name string, values []string) (*Frame, error) {
	return f.with(column{name: name, kind: StringKind, strs: slices.Clone(values)}, len(values))
}

// WithFloats returns a new Frame with a float column appended.
func (f *Frame) WithFloats(name string, values []float64) (*Frame, error) {
	return f.with(column{name: name, kind: FloatKind, nums: slices.Clone(values)}, len(values))
}

func (f *Frame) with(c column, n int) (*Frame, error) {
	if n != f.Len() {
		return nil, fmt.Errorf("column %q has %d values for %d rows: %w", c.name, n, f.Len(), ErrLengthMismatch)
	}
	if f.Has(c.name) {
		return nil, &DuplicateFieldError{Field: c.name}
	}
	out := f.shallowCopy()
	out.pos[c.name] = len(out.cols)
	out.cols = append(out.cols, c)
	return out, nil
}

// shallowCopy shares column storage, which is safe because columns are
// never written after construction.
func (f *Frame) shallowCopy() *Frame {
	out := &Frame{
		index: f.index,
		cols:  make([]column, len(f.cols), len(f.cols)+len(SentimentFields)),
		pos:   make(map[string]int, len(f.pos)),
	}
	copy(out.cols, f.cols)
	for k, v := range f.pos {
		out.pos[k] = v
	}
	return out
}

// Concat appends the columns of other to f, aligning rows by key.
//
// When both frames list the same keys in the same order rows are matched by
// position. Otherwise every key must be unique and present in both frames;
// other's rows are reordered to follow f.
func (f *Frame) Concat(other *Frame) (*Frame, error) {
	if other.Len() != f.Len() {
		return nil, fmt.Errorf("concat %d rows with %d rows: %w", f.Len(), other.Len(), ErrIndexMismatch)
	}

	order, err := alignRows(f.index, other.index)
	if err != nil {
		return nil, err
	}

	out := f
	for _, c := range other.cols {
		var next *Frame
		switch c.kind {
		case StringKind:
			next, err = out.WithStrings(c.name, permute(c.strs, order))
		default:
			next, err = out.WithFloats(c.name, permute(c.nums, order))
		}
		if err != nil {
			return nil, err
		}
		out = next
	}
	if out == f {
		out = f.shallowCopy()
	}
	return out, nil
}

// alignRows returns, for each key in left, the position of that key in right.
// A nil result means the identity mapping.
func alignRows(left, right []string) ([]int, error) {
	if slices.Equal(left, right) {
		return nil, nil
	}
	at := make(map[string]int, len(right))
	for i, k := range right {
		if _, dup := at[k]; dup {
			return nil, fmt.Errorf("key %q repeats: %w", k, ErrIndexMismatch)
		}
		at[k] = i
	}
	order := make([]int, len(left))
	seen := make(map[string]bool, len(left))
	for i, k := range left {
		j, ok := at[k]
		if !ok || seen[k] {
			return nil, fmt.Errorf("key %q: %w", k, ErrIndexMismatch)
		}
		seen[k] = true
		order[i] = j
	}
	return order, nil
}

func permute[T any](values []T, order []int) []T {
	if order == nil {
		return values
	}
	out := make([]T, len(order))
	for i, j := range order {
		out[i] = values[j]
	}
	return out
}
