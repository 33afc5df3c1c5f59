// Package echarts renders sentiplot charts as standalone HTML pages using
// Apache ECharts.
package echarts

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tsawler/sentiplot"
)

// themes maps chart template names onto ECharts themes.
var themes = map[string]string{
	"simple_white": "white",
	"plotly_white": "white",
	"plotly_dark":  "chalk",
}

// Sink is a sentiplot.ChartSink producing an HTML page.
type Sink struct {
	Title  string // Page and chart title
	Width  string // CSS width, e.g. "900px"
	Height string // CSS height
}

// New returns a Sink with a default page size.
func New(title string) *Sink {
	return &Sink{Title: title, Width: "900px", Height: "600px"}
}

// Render implements sentiplot.ChartSink.
//
// Points the y axis cannot place (zero or negative amounts on a log axis)
// are left out of the page.
func (s *Sink) Render(w io.Writer, c *sentiplot.Chart) error {
	scatter, err := s.build(c)
	if err != nil {
		return err
	}
	return scatter.Render(w)
}

func (s *Sink) build(c *sentiplot.Chart) (*charts.Scatter, error) {
	theme, ok := themes[c.Template]
	if !ok {
		theme = c.Template
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: s.Title,
			Theme:     theme,
			Width:     s.Width,
			Height:    s.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "0"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: c.XAxis.Title,
			Type: string(c.XAxis.Type),
			Data: c.XAxis.Categories,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: c.YAxis.Title,
			Type: string(c.YAxis.Type),
		}),
	)
	scatter.SetXAxis(c.XAxis.Categories)

	for _, series := range c.Series {
		switch series.Kind {
		case sentiplot.StripSeries, sentiplot.ScatterSeries:
		default:
			return nil, fmt.Errorf("series %q: unknown kind %q", series.Name, series.Kind)
		}

		data := make([]opts.ScatterData, 0, len(series.Points))
		for _, p := range series.Points {
			if !c.YAxis.Plottable(p.Y) {
				continue
			}
			data = append(data, opts.ScatterData{
				Name:       label(p),
				Value:      []interface{}{p.X, p.Y},
				SymbolSize: series.Marker.Size,
			})
		}

		var seriesOpts []charts.SeriesOpts
		if series.Marker.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: series.Marker.Color}))
		}
		scatter.AddSeries(series.Name, data, seriesOpts...)
	}
	return scatter, nil
}

// label joins a point's hover name and hover data into one tooltip line.
func label(p sentiplot.Point) string {
	if len(p.HoverData) == 0 {
		return p.HoverName
	}
	parts := []string{p.HoverName}
	for _, k := range slices.Sorted(maps.Keys(p.HoverData)) {
		parts = append(parts, k+"="+p.HoverData[k])
	}
	return strings.Join(parts, ", ")
}
