package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/sentiplot"
	"github.com/tsawler/sentiplot/vader"
)

// cfgFile is the --config flag of the command tree being executed.
var cfgFile string

// newRootCmd builds the base command and its subcommands. Each call returns a
// fresh tree with default flag values.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sentiplot",
	Short: "Score review text for sentiment and chart it against a benchmark",
		Long: `sentiplot scores the text column of a CSV table with VADER, appends the
neg, neu, pos and compound scores as new columns, and draws the scores next to
a benchmark mean as an HTML or plotly chart.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sentiplot.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("text-field", "review", "name of the column holding the text to score")
	flags.String("key-field", "", "name of the column holding row keys (default: row number)")
	flags.Int("concurrency", 1, "number of rows scored at once")
	flags.Bool("plain-text", false, "strip markdown and links before scoring")

	// Bind flags to viper
	for _, name := range []string{"log-level", "text-field", "key-field", "concurrency", "plain-text"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newScoreCmd(), newSentencesCmd(), newPlotCmd(), newVersionCmd())
	return rootCmd
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return newRootCmd().Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sentiplot")
	}

	viper.SetEnvPrefix("SENTIPLOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// initLogging installs a tint handler on stderr as the default logger.
func initLogging(cmd *cobra.Command) {
	level := slog.LevelInfo
	switch strings.ToLower(viper.GetString("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

// scoreOpts turns the global flags into scoring options.
func scoreOpts() []sentiplot.ScoreOpt {
	return []sentiplot.ScoreOpt{
		sentiplot.WithConcurrency(viper.GetInt("concurrency")),
		sentiplot.WithLogger(slog.Default()),
	}
}

func newAnalyzer() *vader.Analyzer {
	if viper.GetBool("plain-text") {
		return vader.New(vader.WithPlainText())
	}
	return vader.New()
}

// openInput opens path for reading, with "" or "-" meaning stdin.
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// openOutput creates path for writing, with "" or "-" meaning stdout.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
