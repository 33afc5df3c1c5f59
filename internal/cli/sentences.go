package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/sentiplot"
	"github.com/tsawler/sentiplot/arrowframe"
	"github.com/tsawler/sentiplot/vader"
)

const labelField = "label"

func newSentencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentences [text]",
		Short: "Score each sentence of a text",
		Long: `Split a text into sentences at '.', '!' and '?' and print one CSV row of
scores per sentence. The text is read from the arguments, or from stdin when
none are given.`,
		Example: `
  sentiplot sentences "Great coffee. Very bright! Is it sour?"
  sentiplot sentences --punkt < review.txt`,
		RunE: runSentences,
	}
	cmd.Flags().Bool("punkt", false, "split with the punkt sentence model instead of at every terminator")
	return cmd
}

func runSentences(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}

	opts := scoreOpts()
	if punkt, _ := cmd.Flags().GetBool("punkt"); punkt {
		splitter, err := sentiplot.NewPunktSplitter()
		if err != nil {
			return fmt.Errorf("load punkt model: %w", err)
		}
		opts = append(opts, sentiplot.WithSplitter(splitter))
	}

	scored, err := sentiplot.ScoreSentences(text, newAnalyzer(), opts...)
	if err != nil {
		return err
	}

	compound, err := scored.Floats(sentiplot.CompoundField)
	if err != nil {
		return err
	}
	labels := make([]string, len(compound))
	for i, c := range compound {
		labels[i] = vader.Label(c)
	}
	labeled, err := scored.WithStrings(labelField, labels)
	if err != nil {
		return err
	}

	return arrowframe.WriteCSV(cmd.OutOrStdout(), labeled, "")
}
