// Package arrowframe converts between sentiplot frames and Apache Arrow
// records, and reads and writes frames as CSV through Arrow's CSV codec.
package arrowframe

import (
	"bufio"
	enccsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"github.com/tsawler/sentiplot"
)

// ErrSchemaChanged is returned when records of one stream disagree on schema.
var ErrSchemaChanged = errors.New("record schema changed mid-stream")

// accumulator collects the columns of a stream of records.
type accumulator struct {
	keyField string
	firstKey bool // Use the first column for row keys, whatever its name
	keyIndex int  // Column holding row keys, -1 for none
	schema   *arrow.Schema
	keys     []string
	strs     map[string][]string
	nums     map[string][]float64
	rows     int
	infer    map[string]bool // String columns promoted to floats when every cell parses
}

func newAccumulator(keyField string) *accumulator {
	return &accumulator{
		keyField: keyField,
		keyIndex: -1,
		strs:     map[string][]string{},
		nums:     map[string][]float64{},
		infer:    map[string]bool{},
	}
}

func (acc *accumulator) init(schema *arrow.Schema) error {
	acc.schema = schema
	switch {
	case acc.firstKey && schema.NumFields() > 0:
		acc.keyIndex = 0
	case acc.keyField != "":
		idx := schema.FieldIndices(acc.keyField)
		if len(idx) == 0 {
			return &sentiplot.MissingFieldError{Field: acc.keyField}
		}
		acc.keyIndex = idx[0]
	}
	return nil
}

func (acc *accumulator) add(rec arrow.Record) error {
	if acc.schema == nil {
		if err := acc.init(rec.Schema()); err != nil {
			return err
		}
	} else if !acc.schema.Equal(rec.Schema()) {
		return ErrSchemaChanged
	}

	n := int(rec.NumRows())
	for i, field := range acc.schema.Fields() {
		col := rec.Column(i)
		if i == acc.keyIndex {
			for j := 0; j < n; j++ {
				acc.keys = append(acc.keys, col.ValueStr(j))
			}
			continue
		}
		switch col := col.(type) {
		case *array.Float64:
			for j := 0; j < n; j++ {
				v := math.NaN()
				if col.IsValid(j) {
					v = col.Value(j)
				}
				acc.nums[field.Name] = append(acc.nums[field.Name], v)
			}
		case *array.Int64:
			for j := 0; j < n; j++ {
				v := math.NaN()
				if col.IsValid(j) {
					v = float64(col.Value(j))
				}
				acc.nums[field.Name] = append(acc.nums[field.Name], v)
			}
		default:
			for j := 0; j < n; j++ {
				v := ""
				if col.IsValid(j) {
					v = col.ValueStr(j)
				}
				acc.strs[field.Name] = append(acc.strs[field.Name], v)
			}
		}
	}
	acc.rows += n
	return nil
}

func (acc *accumulator) frame() (*sentiplot.Frame, error) {
	index := acc.keys
	if acc.keyIndex < 0 {
		index = sentiplot.RangeIndex(acc.rows)
	}
	f := sentiplot.NewFrame(index)
	if acc.schema == nil {
		return f, nil
	}

	for i, field := range acc.schema.Fields() {
		if i == acc.keyIndex {
			continue
		}
		var (
			next *sentiplot.Frame
			err  error
		)
		strs := pad(acc.strs[field.Name], acc.rows, "")
		nums, ok := acc.nums[field.Name]
		if !ok && acc.infer[field.Name] {
			nums, ok = parseFloats(strs)
		}
		if ok || isNumeric(field.Type) {
			next, err = f.WithFloats(field.Name, pad(nums, acc.rows, math.NaN()))
		} else {
			next, err = f.WithStrings(field.Name, strs)
		}
		if err != nil {
			return nil, err
		}
		f = next
	}
	return f, nil
}

func isNumeric(t arrow.DataType) bool {
	return t.ID() == arrow.FLOAT64 || t.ID() == arrow.INT64
}

// parseFloats converts a string column whose non-empty cells all parse as
// numbers. Empty cells become NaN; a column with no numbers is not converted.
func parseFloats(values []string) ([]float64, bool) {
	out := make([]float64, len(values))
	seen := false
	for i, v := range values {
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = x
		seen = true
	}
	return out, seen
}

// pad covers the zero-row case, where no values were appended.
func pad[T any](values []T, n int, fill T) []T {
	for len(values) < n {
		values = append(values, fill)
	}
	return values
}

// FromRecord converts an Arrow record into a Frame.
//
// Float64 and Int64 columns become float columns (nulls become NaN); any
// other column becomes a string column. If keyField is set, that column
// supplies the row keys and is not copied as a column; otherwise rows are
// keyed 0..n-1.
func FromRecord(rec arrow.Record, keyField string) (*sentiplot.Frame, error) {
	acc := newAccumulator(keyField)
	if err := acc.add(rec); err != nil {
		return nil, err
	}
	return acc.frame()
}

// ToRecord converts f into an Arrow record. When keyField is set the row
// keys are written first under that name. The caller must Release the record.
func ToRecord(f *sentiplot.Frame, keyField string, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	var fields []arrow.Field
	if keyField != "" {
		if f.Has(keyField) {
			return nil, &sentiplot.DuplicateFieldError{Field: keyField}
		}
		fields = append(fields, arrow.Field{Name: keyField, Type: arrow.BinaryTypes.String})
	}
	for _, name := range f.Columns() {
		kind, _ := f.Kind(name)
		typ := arrow.DataType(arrow.BinaryTypes.String)
		if kind == sentiplot.FloatKind {
			typ = arrow.PrimitiveTypes.Float64
		}
		fields = append(fields, arrow.Field{Name: name, Type: typ, Nullable: true})
	}

	b := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer b.Release()

	i := 0
	if keyField != "" {
		b.Field(0).(*array.StringBuilder).AppendValues(f.Index(), nil)
		i = 1
	}
	for _, name := range f.Columns() {
		switch fb := b.Field(i).(type) {
		case *array.Float64Builder:
			vals, err := f.Floats(name)
			if err != nil {
				return nil, err
			}
			fb.AppendValues(vals, nil)
		case *array.StringBuilder:
			vals, err := f.Strings(name)
			if err != nil {
				return nil, err
			}
			fb.AppendValues(vals, nil)
		default:
			return nil, fmt.Errorf("column %q: unexpected builder %T", name, fb)
		}
		i++
	}
	return b.NewRecord(), nil
}

// ReadOpt configures how ReadCSV types the columns it reads.
type ReadOpt func(opts *ReadOpts)

// ReadOpts names columns whose kind is fixed rather than inferred.
type ReadOpts struct {
	Floats  []string // Columns always read as float columns
	Strings []string // Columns always read as string columns
}

var defaultReadOpts = ReadOpts{
	Floats: sentiplot.SentimentFields,
}

// WithFloatColumns reads the named columns as float columns. Empty cells
// become NaN and any other non-numeric cell is an error.
func WithFloatColumns(names ...string) ReadOpt {
	return func(opts *ReadOpts) {
		opts.Floats = append(slices.Clip(opts.Floats), names...)
	}
}

// WithStringColumns reads the named columns as string columns, even when
// every value looks like a number.
func WithStringColumns(names ...string) ReadOpt {
	return func(opts *ReadOpts) {
		opts.Strings = append(slices.Clip(opts.Strings), names...)
	}
}

// ReadCSV reads a CSV document with a header row into a Frame.
//
// The key column and columns named by WithStringColumns are strings. The
// score columns (neg, neu, pos, compound) and columns named by
// WithFloatColumns are floats. Every other column becomes a float column when
// all of its non-empty cells parse as numbers, and a string column otherwise.
func ReadCSV(r io.Reader, keyField string, opts ...ReadOpt) (*sentiplot.Frame, error) {
	base := defaultReadOpts
	for _, applyOpt := range opts {
		applyOpt(&base)
	}

	acc := newAccumulator(keyField)
	return readCSV(r, acc, func(name string) arrow.DataType {
		switch {
		case name == keyField || slices.Contains(base.Strings, name):
			return arrow.BinaryTypes.String
		case slices.Contains(base.Floats, name):
			return arrow.PrimitiveTypes.Float64
		}
		acc.infer[name] = true
		return arrow.BinaryTypes.String
	})
}

// ReadIndexedCSV is like ReadCSV but takes the row keys from the first
// column, whatever its name, and reads every other column as floats. Tables
// written by pandas' describe().to_csv() look like this.
func ReadIndexedCSV(r io.Reader) (*sentiplot.Frame, error) {
	acc := newAccumulator("")
	acc.firstKey = true
	first := true
	return readCSV(r, acc, func(string) arrow.DataType {
		if first {
			first = false
			return arrow.BinaryTypes.String
		}
		return arrow.PrimitiveTypes.Float64
	})
}

// readCSV reads the header itself so that every column gets an explicit type;
// Arrow's inferring reader would type each column from its first row alone.
func readCSV(r io.Reader, acc *accumulator, typeOf func(name string) arrow.DataType) (*sentiplot.Frame, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if strings.TrimSpace(line) == "" {
		return acc.frame()
	}
	header, err := enccsv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	fields := make([]arrow.Field, len(header))
	for i, name := range header {
		fields[i] = arrow.Field{Name: name, Type: typeOf(name), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)
	if err := acc.init(schema); err != nil {
		return nil, err
	}

	reader := csv.NewReader(io.MultiReader(strings.NewReader(line), br), schema,
		csv.WithHeader(true), csv.WithChunk(1024))
	defer reader.Release()

	for reader.Next() {
		if err := acc.add(reader.Record()); err != nil {
			return nil, err
		}
	}
	if err := reader.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return acc.frame()
}

// WriteCSV writes f as CSV with a header row.
func WriteCSV(w io.Writer, f *sentiplot.Frame, keyField string) error {
	rec, err := ToRecord(f, keyField, memory.DefaultAllocator)
	if err != nil {
		return err
	}
	defer rec.Release()

	writer := csv.NewWriter(w, rec.Schema(), csv.WithHeader(true))
	if err := writer.Write(rec); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return writer.Flush()
}
