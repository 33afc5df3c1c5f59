package sentiplot

import (
	"io"
	"slices"
)

// AxisType selects how an axis maps values to positions.
type AxisType string

const (
	CategoryAxis AxisType = "category"
	LinearAxis   AxisType = "linear"
	LogAxis      AxisType = "log"
)

// SeriesKind selects how a series is drawn.
type SeriesKind string

const (
	StripSeries   SeriesKind = "strip"   // Jittered points per category
	ScatterSeries SeriesKind = "scatter" // Points at exact positions
)

// An Axis describes one chart axis.
type Axis struct {
	Title      string
	Type       AxisType
	Categories []string // Category order, for CategoryAxis only
}

// Plottable reports whether v can be placed on the axis. A log axis has no
// position for zero or negative values; renderers skip such points rather
// than clamp them, so a review with neg == 0 simply does not show up there.
func (a Axis) Plottable(v float64) bool {
	return a.Type != LogAxis || v > 0
}

// A Marker describes the symbol drawn for each point of a series.
type Marker struct {
	Size  int    // Zero means the renderer's default
	Color string // CSS color name or hex; empty means the renderer's default
}

// A Point is one plotted value.
type Point struct {
	X         string            // Category on the x axis
	Y         float64           // Value on the y axis
	HoverName string            // Bold heading of the hover label
	HoverData map[string]string // Extra hover label lines
}

// A Series is a named group of points drawn the same way.
type Series struct {
	Name   string
	Kind   SeriesKind
	Marker Marker
	Points []Point
}

// A Chart is a renderer-independent chart description. Building one does
// not draw anything; pass it to a ChartSink for that.
type Chart struct {
	Template string // Style preset name understood by the renderer
	XAxis    Axis
	YAxis    Axis
	Series   []Series
}

// Lookup returns the series called name.
func (c *Chart) Lookup(name string) (Series, bool) {
	for _, s := range c.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// A ChartSink renders a Chart, for example to HTML or to a figure document.
type ChartSink interface {
	Render(w io.Writer, c *Chart) error
}

// A PlotOpt represents a setting that changes chart construction.
type PlotOpt func(opts *PlotOpts)

// PlotOpts controls BuildChart and PlotSentiment:
type PlotOpts struct {
	HoverName       string   // Field used as each point's hover heading
	HoverData       []string // Fields shown as extra hover lines
	ValueFields     []string // Score fields to plot, in category order
	Template        string   // Style preset
	LogY            bool     // Use a logarithmic y axis
	StripName       string   // Name of the per-record series
	BenchmarkRow    string   // Summary row overlaid on the chart
	BenchmarkName   string   // Name of the overlay series
	BenchmarkMarker Marker   // Marker of the overlay series
}

var defaultPlotOpts = PlotOpts{
	HoverName:       NameField,
	HoverData:       []string{RoasterField},
	ValueFields:     SentimentFields,
	Template:        "simple_white",
	LogY:            true,
	StripName:       AmountField,
	BenchmarkRow:    MeanRow,
	BenchmarkName:   "review_average",
	BenchmarkMarker: Marker{Size: 10, Color: "darkorange"},
}

// WithHover sets the hover heading field and any extra hover fields.
func WithHover(name string, data ...string) PlotOpt {
	return func(opts *PlotOpts) {
		opts.HoverName = name
		opts.HoverData = data
	}
}

// WithValueFields sets the score fields that become x-axis categories.
func WithValueFields(fields ...string) PlotOpt {
	return func(opts *PlotOpts) {
		opts.ValueFields = fields
	}
}

// WithTemplate sets the style preset name.
func WithTemplate(name string) PlotOpt {
	return func(opts *PlotOpts) {
		opts.Template = name
	}
}

// WithLogY can enable (the default) or disable the logarithmic y axis.
func WithLogY(include bool) PlotOpt {
	return func(opts *PlotOpts) {
		opts.LogY = include
	}
}

// WithBenchmark selects the summary row to overlay and names its series.
func WithBenchmark(row, name string) PlotOpt {
	return func(opts *PlotOpts) {
		opts.BenchmarkRow = row
		opts.BenchmarkName = name
	}
}

// WithBenchmarkMarker sets the overlay marker.
func WithBenchmarkMarker(m Marker) PlotOpt {
	return func(opts *PlotOpts) {
		opts.BenchmarkMarker = m
	}
}

func newPlotOpts(opts []PlotOpt) PlotOpts {
	base := defaultPlotOpts
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	return base
}

// PlotSentiment melts a scored frame and builds the benchmark comparison
// chart from it.
//
// For example,
//
//	bench, _ := sentiplot.Describe(allReviews)
//	chart, err := sentiplot.PlotSentiment(scored, bench)
func PlotSentiment(scored *Frame, bench *Summary, opts ...PlotOpt) (*Chart, error) {
	base := newPlotOpts(opts)
	if bench == nil {
		return nil, &MissingRowError{Row: base.BenchmarkRow}
	}

	ids := append([]string{base.HoverName}, base.HoverData...)
	records, err := Melt(scored, ids, base.ValueFields)
	if err != nil {
		return nil, err
	}
	return BuildChart(records, bench, opts...)
}

// BuildChart lays out long-form records as a strip chart of amount by
// sentiment type and overlays one marker per benchmark column at that
// column's BenchmarkRow value (the mean by default).
func BuildChart(records []LongRecord, bench *Summary, opts ...PlotOpt) (*Chart, error) {
	base := newPlotOpts(opts)
	if bench == nil {
		return nil, &MissingRowError{Row: base.BenchmarkRow}
	}

	row, err := bench.Row(base.BenchmarkRow)
	if err != nil {
		return nil, err
	}

	var categories []string
	addCategory := func(c string) {
		if !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}

	strip := Series{
		Name:   base.StripName,
		Kind:   StripSeries,
		Points: make([]Point, 0, len(records)),
	}
	for _, rec := range records {
		addCategory(rec.SentimentType)
		p := Point{
			X:         rec.SentimentType,
			Y:         rec.Amount,
			HoverName: rec.ID[base.HoverName],
		}
		if len(base.HoverData) > 0 {
			p.HoverData = make(map[string]string, len(base.HoverData))
			for _, name := range base.HoverData {
				p.HoverData[name] = rec.ID[name]
			}
		}
		strip.Points = append(strip.Points, p)
	}

	overlay := Series{
		Name:   base.BenchmarkName,
		Kind:   ScatterSeries,
		Marker: base.BenchmarkMarker,
	}
	for _, col := range bench.Columns() {
		addCategory(col)
		overlay.Points = append(overlay.Points, Point{X: col, Y: row[col]})
	}

	yType := LinearAxis
	if base.LogY {
		yType = LogAxis
	}

	return &Chart{
		Template: base.Template,
		XAxis:    Axis{Title: SentimentTypeField, Type: CategoryAxis, Categories: categories},
		YAxis:    Axis{Title: AmountField, Type: yType},
		Series:   []Series{strip, overlay},
	}, nil
}
