package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/sentiplot"
	"github.com/tsawler/sentiplot/arrowframe"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Append sentiment scores to a CSV table",
		Long: `Read a CSV table, score the text column of every row, and write the table
back out with neg, neu, pos and compound columns appended.`,
		Example: `
  sentiplot score --input reviews.csv --text-field review --output scored.csv
  cat reviews.csv | sentiplot score --key-field id`,
		Args: cobra.NoArgs,
		RunE: runScore,
	}
	cmd.Flags().StringP("input", "i", "-", "CSV file to read (- for stdin)")
	cmd.Flags().StringP("output", "o", "-", "CSV file to write (- for stdout)")
	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")

	frame, err := readFrame(cmd, input)
	if err != nil {
		return err
	}

	scored, err := sentiplot.ScoreFrame(frame, viper.GetString("text-field"), newAnalyzer(), scoreOpts()...)
	if err != nil {
		return fmt.Errorf("score %s: %w", input, err)
	}
	slog.Info("scored reviews", "rows", scored.Len(), "input", input)

	return writeFrame(cmd, output, scored)
}

func readFrame(cmd *cobra.Command, path string) (*sentiplot.Frame, error) {
	r, closeInput, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer closeInput()

	// The text column stays text even when its first reviews look like numbers.
	frame, err := arrowframe.ReadCSV(r, viper.GetString("key-field"),
		arrowframe.WithStringColumns(viper.GetString("text-field")))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return frame, nil
}

func writeFrame(cmd *cobra.Command, path string, frame *sentiplot.Frame) error {
	w, closeOutput, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if err := arrowframe.WriteCSV(w, frame, viper.GetString("key-field")); err != nil {
		_ = closeOutput()
		return err
	}
	return closeOutput()
}
