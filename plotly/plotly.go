// Package plotly renders sentiplot charts as plotly.js figure JSON, which can
// be loaded with Plotly.newPlot or plotly.io.from_json.
package plotly

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/tsawler/sentiplot"
)

const (
	transparent = "rgba(255,255,255,0)"
	boxWidth    = 0.8
)

// Sink is a sentiplot.ChartSink producing figure JSON.
type Sink struct {
	Indent bool // Pretty-print the output
}

// New returns a Sink that writes compact JSON.
func New() *Sink {
	return &Sink{}
}

// Render implements sentiplot.ChartSink.
func (s *Sink) Render(w io.Writer, c *sentiplot.Chart) error {
	doc, err := Figure(c)
	if err != nil {
		return err
	}
	if s.Indent {
		doc = pretty.Pretty(doc)
	}
	_, err = w.Write(doc)
	return err
}

// Figure builds the figure document for c.
//
// Strip series become box traces that show only their points, the way
// plotly express draws strip charts; scatter series become marker traces.
// Points a log axis cannot show are kept: plotly.js leaves them out itself.
func Figure(c *sentiplot.Chart) ([]byte, error) {
	doc := []byte(`{"data":[],"layout":{}}`)

	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	for i, series := range c.Series {
		p := "data." + strconv.Itoa(i) + "."
		x, y, hoverText, custom := columns(series)

		set(p+"name", series.Name)
		set(p+"x", x)
		set(p+"y", y)
		set(p+"xaxis", "x")
		set(p+"yaxis", "y")

		switch series.Kind {
		case sentiplot.StripSeries:
			set(p+"type", "box")
			set(p+"boxpoints", "all")
			set(p+"jitter", 1)
			set(p+"pointpos", 0)
			set(p+"width", boxWidth)
			set(p+"fillcolor", transparent)
			set(p+"line.color", transparent)
			set(p+"hoveron", "points")
			set(p+"hovertext", hoverText)
			set(p+"customdata", custom)
			set(p+"hovertemplate", hoverTemplate(c, hoverKeys(series)))
		case sentiplot.ScatterSeries:
			set(p+"type", "scatter")
			set(p+"mode", "markers")
		default:
			return nil, fmt.Errorf("series %q: unknown kind %q", series.Name, series.Kind)
		}

		if series.Marker.Size > 0 {
			set(p+"marker.size", series.Marker.Size)
		}
		if series.Marker.Color != "" {
			set(p+"marker.color", series.Marker.Color)
		}
	}

	set("layout.xaxis.title.text", c.XAxis.Title)
	set("layout.xaxis.type", string(c.XAxis.Type))
	if len(c.XAxis.Categories) > 0 {
		set("layout.xaxis.categoryorder", "array")
		set("layout.xaxis.categoryarray", c.XAxis.Categories)
	}
	set("layout.yaxis.title.text", c.YAxis.Title)
	set("layout.yaxis.type", string(c.YAxis.Type))
	set("layout.boxmode", "group")
	set("layout.legend.tracegrouporder", "reversed")
	if c.Template != "" {
		set("layout.meta.template", c.Template)
	}

	if err != nil {
		return nil, fmt.Errorf("build figure: %w", err)
	}
	return doc, nil
}

// columns splits a series into plotly's column arrays. NaN and infinite
// values become null, which JSON can carry and plotly.js skips.
func columns(s sentiplot.Series) (x []string, y []any, hoverText []string, custom [][]string) {
	keys := hoverKeys(s)
	x = make([]string, 0, len(s.Points))
	y = make([]any, 0, len(s.Points))
	hoverText = make([]string, 0, len(s.Points))
	custom = make([][]string, 0, len(s.Points))
	for _, p := range s.Points {
		x = append(x, p.X)
		if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			y = append(y, nil)
		} else {
			y = append(y, p.Y)
		}
		hoverText = append(hoverText, p.HoverName)
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i] = p.HoverData[k]
		}
		custom = append(custom, row)
	}
	return x, y, hoverText, custom
}

// hoverKeys returns the hover data keys of the first point. BuildChart gives
// every point of a series the same keys.
func hoverKeys(s sentiplot.Series) []string {
	if len(s.Points) == 0 {
		return nil
	}
	var keys []string
	for k := range s.Points[0].HoverData {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func hoverTemplate(c *sentiplot.Chart, keys []string) string {
	t := "<b>%{hovertext}</b><br><br>" +
		c.XAxis.Title + "=%{x}<br>" +
		c.YAxis.Title + "=%{y}"
	for i, k := range keys {
		t += "<br>" + k + "=%{customdata[" + strconv.Itoa(i) + "]}"
	}
	return t + "<extra></extra>"
}
