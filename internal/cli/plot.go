package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/sentiplot"
	"github.com/tsawler/sentiplot/arrowframe"
	"github.com/tsawler/sentiplot/echarts"
	"github.com/tsawler/sentiplot/plotly"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart review sentiment against a benchmark mean",
		Long: `Chart the neg, neu, pos and compound scores of every review as a strip chart
and mark the benchmark mean of each score. Unscored input is scored first.

The benchmark is a describe-style CSV whose first column names the statistic
(count, mean, std, ...). Without one, the statistics of the input are used.`,
		Example: `
  sentiplot plot --input reviews.csv --output chart.html
  sentiplot plot --input scored.csv --benchmark all_reviews_describe.csv --format json`,
		Args: cobra.NoArgs,
		RunE: runPlot,
	}

	flags := cmd.Flags()
	flags.StringP("input", "i", "-", "CSV file to read (- for stdin)")
	flags.StringP("output", "o", "-", "file to write (- for stdout)")
	flags.StringP("benchmark", "b", "", "describe-style benchmark CSV (default: statistics of the input)")
	flags.StringP("format", "f", "html", "output format (html, json)")
	flags.String("title", "Review sentiment", "chart title (html only)")
	flags.String("hover-name", sentiplot.NameField, "column shown as the point label")
	flags.StringSlice("hover-data", []string{sentiplot.RoasterField}, "extra columns shown on hover")
	flags.Bool("linear", false, "use a linear y axis instead of a logarithmic one")
	return cmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	benchPath, _ := cmd.Flags().GetString("benchmark")
	format, _ := cmd.Flags().GetString("format")
	title, _ := cmd.Flags().GetString("title")
	hoverName, _ := cmd.Flags().GetString("hover-name")
	hoverData, _ := cmd.Flags().GetStringSlice("hover-data")
	linear, _ := cmd.Flags().GetBool("linear")

	var sink sentiplot.ChartSink
	switch format {
	case "html":
		sink = echarts.New(title)
	case "json":
		sink = &plotly.Sink{Indent: true}
	default:
		return fmt.Errorf("unknown format %q (want html or json)", format)
	}

	scored, err := readFrame(cmd, input)
	if err != nil {
		return err
	}
	if !scored.Has(sentiplot.CompoundField) {
		scored, err = sentiplot.ScoreFrame(scored, viper.GetString("text-field"), newAnalyzer(), scoreOpts()...)
		if err != nil {
			return fmt.Errorf("score %s: %w", input, err)
		}
	}

	bench, err := loadBenchmark(cmd, benchPath, scored)
	if err != nil {
		return err
	}

	chart, err := sentiplot.PlotSentiment(scored, bench,
		sentiplot.WithHover(hoverName, hoverData...),
		sentiplot.WithLogY(!linear))
	if err != nil {
		return fmt.Errorf("plot %s: %w", input, err)
	}

	w, closeOutput, err := openOutput(cmd, output)
	if err != nil {
		return err
	}
	if err := sink.Render(w, chart); err != nil {
		_ = closeOutput()
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	slog.Info("wrote chart", "format", format, "output", output, "rows", scored.Len())
	return closeOutput()
}

func loadBenchmark(cmd *cobra.Command, path string, scored *sentiplot.Frame) (*sentiplot.Summary, error) {
	if path == "" {
		return sentiplot.Describe(scored)
	}

	r, closeInput, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer closeInput()

	table, err := arrowframe.ReadIndexedCSV(r)
	if err != nil {
		return nil, fmt.Errorf("read benchmark %s: %w", path, err)
	}
	return sentiplot.SummaryFromFrame(table)
}
