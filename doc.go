/*
Package sentiplot scores free-text review tables for sentiment and builds
charts that compare the scores against a benchmark.

Scoring is delegated to an Analyzer (see the vader subpackage for one backed
by VADER) and drawing to a ChartSink (see the echarts and plotly
subpackages). The package itself only moves data around:

	scored, err := sentiplot.ScoreFrame(reviews, "review", analyzer)
	bench, err := sentiplot.Describe(scored)
	chart, err := sentiplot.PlotSentiment(scored, bench)
	err = echarts.New().Render(w, chart)

ScoreSentences does the same for the sentences of a single text.
*/
package sentiplot
