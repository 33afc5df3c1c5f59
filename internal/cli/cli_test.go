package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tsawler/sentiplot"
)

const reviewsCSV = `id,name,roaster,review
r1,Kenya AA,Onyx,I love this coffee. Bright and wonderful!
r2,Huila,Blue Bottle,Terrible. Stale and bitter.
`

// executeCommand runs a fresh command tree, so no flag value leaks between
// tests.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sentiplot "+Version)
}

func TestSentencesCommand(t *testing.T) {
	out, err := executeCommand(t, "", "sentences", "Great coffee. Very bright! Is it sour?")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 4)
	assert.Equal(t, "text,neg,neu,pos,compound,label", rows[0])
	assert.True(t, strings.HasPrefix(rows[1], "Great coffee,"))
}

func TestSentencesCommandStdin(t *testing.T) {
	out, err := executeCommand(t, "", "sentences")
	require.NoError(t, err)

	// Empty input scores no sentences.
	assert.Equal(t, []string{"text,neg,neu,pos,compound,label"}, lines(out))
}

func TestScoreCommand(t *testing.T) {
	out, err := executeCommand(t, reviewsCSV,
		"score", "--input", "-", "--output", "-", "--key-field", "id", "--text-field", "review")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 3)
	assert.Equal(t, "id,name,roaster,review,neg,neu,pos,compound", rows[0])
	assert.True(t, strings.HasPrefix(rows[1], "r1,"))
	assert.True(t, strings.HasPrefix(rows[2], "r2,"))
}

func TestScoreCommandMissingTextField(t *testing.T) {
	_, err := executeCommand(t, reviewsCSV,
		"score", "--input", "-", "--output", "-", "--key-field", "id", "--text-field", "body")
	assert.ErrorIs(t, err, sentiplot.ErrMissingField)
}

func TestPlotCommandJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "reviews.csv")
	output := filepath.Join(dir, "chart.json")
	require.NoError(t, os.WriteFile(input, []byte(reviewsCSV), 0o600))

	_, err := executeCommand(t, "",
		"plot", "--input", input, "--output", output, "--format", "json",
		"--key-field", "id", "--text-field", "review")
	require.NoError(t, err)

	doc, err := os.ReadFile(output)
	require.NoError(t, err)
	fig := gjson.ParseBytes(doc)
	assert.Equal(t, int64(8), fig.Get("data.0.x.#").Int())
	assert.Equal(t, "review_average", fig.Get("data.1.name").String())
	assert.Equal(t, int64(4), fig.Get("data.1.x.#").Int())
}

func TestPlotCommandHTMLWithBenchmark(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "reviews.csv")
	bench := filepath.Join(dir, "bench.csv")
	output := filepath.Join(dir, "chart.html")
	require.NoError(t, os.WriteFile(input, []byte(reviewsCSV), 0o600))
	require.NoError(t, os.WriteFile(bench, []byte(",neg,neu,pos,compound\nmean,0.1,0.7,0.2,0.05\n"), 0o600))

	_, err := executeCommand(t, "",
		"plot", "--input", input, "--output", output, "--format", "html", "--benchmark", bench,
		"--key-field", "id", "--text-field", "review")
	require.NoError(t, err)

	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), "review_average")
}

func TestPlotCommandBenchmarkWithoutMean(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "reviews.csv")
	bench := filepath.Join(dir, "bench.csv")
	require.NoError(t, os.WriteFile(input, []byte(reviewsCSV), 0o600))
	require.NoError(t, os.WriteFile(bench, []byte("stat,neg,neu,pos,compound\nstd,0.1,0.1,0.1,0.1\n"), 0o600))

	_, err := executeCommand(t, "",
		"plot", "--input", input, "--output", filepath.Join(dir, "chart.json"), "--format", "json",
		"--benchmark", bench, "--key-field", "id", "--text-field", "review")
	assert.ErrorIs(t, err, sentiplot.ErrMissingRow)
}

func TestPlotCommandUnknownFormat(t *testing.T) {
	_, err := executeCommand(t, "",
		"plot", "--input", "-", "--output", "-", "--format", "svg")
	assert.ErrorContains(t, err, "unknown format")
}

func TestScoreThenPlot(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "reviews.csv")
	scored := filepath.Join(dir, "scored.csv")
	output := filepath.Join(dir, "chart.json")
	require.NoError(t, os.WriteFile(input, []byte(reviewsCSV), 0o600))

	_, err := executeCommand(t, "",
		"score", "--input", input, "--output", scored, "--key-field", "id", "--text-field", "review")
	require.NoError(t, err)

	// The first review scores neg as 0, written as a bare "0".
	doc, err := os.ReadFile(scored)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(lines(string(doc))[1], "r1,Kenya AA,Onyx,I love this coffee. Bright and wonderful!,0,"))

	_, err = executeCommand(t, "",
		"plot", "--input", scored, "--output", output, "--format", "json", "--key-field", "id")
	require.NoError(t, err)

	chart, err := os.ReadFile(output)
	require.NoError(t, err)
	fig := gjson.ParseBytes(chart)
	assert.Equal(t, int64(8), fig.Get("data.0.x.#").Int())
}

func TestScoreNumericLookingText(t *testing.T) {
	doc := `id,name,roaster,review
r1,Kenya AA,Onyx,10
r2,Huila,Blue Bottle,Great body.
`
	out, err := executeCommand(t, doc,
		"score", "--input", "-", "--output", "-", "--key-field", "id", "--text-field", "review")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 3)
	assert.True(t, strings.HasPrefix(rows[2], "r2,Huila,Blue Bottle,Great body.,"))
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	_, err := executeCommand(t, "", "sentences", "--text-field", "body", "Nice.")
	require.NoError(t, err)

	newRootCmd()
	assert.Equal(t, "review", viper.GetString("text-field"))
}
