// Package charts renders summary artifacts as HTML bar charts with
// go-echarts. Charting consumes the summary table only; it is a
// presentation layer over already-computed scores.
package charts

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/careassist/medeval/internal/models"
)

// RenderSummary writes a grouped bar chart of the pillar and overall
// scores per provider, in the summary's ranked order.
func RenderSummary(w io.Writer, summaries []models.ProviderSummary) error {
	names := make([]string, 0, len(summaries))
	correctness := make([]opts.BarData, 0, len(summaries))
	reasoning := make([]opts.BarData, 0, len(summaries))
	safety := make([]opts.BarData, 0, len(summaries))
	overall := make([]opts.BarData, 0, len(summaries))

	for _, s := range summaries {
		names = append(names, s.Provider)
		correctness = append(correctness, opts.BarData{Value: s.CorrectnessScore})
		reasoning = append(reasoning, opts.BarData{Value: s.ReasoningScore})
		safety = append(safety, opts.BarData{Value: s.SafetyScore})
		overall = append(overall, opts.BarData{Value: s.OverallScore})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Symptom-checker evaluation", Width: "1000px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Provider scores", Subtitle: "ranked by mean overall score"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: "score"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("correctness", correctness).
		AddSeries("reasoning", reasoning).
		AddSeries("safety", safety).
		AddSeries("overall", overall)

	return bar.Render(w)
}

// RenderErrorRates writes a bar chart of per-provider error rates.
func RenderErrorRates(w io.Writer, summaries []models.ProviderSummary) error {
	names := make([]string, 0, len(summaries))
	rates := make([]opts.BarData, 0, len(summaries))
	for _, s := range summaries {
		names = append(names, s.Provider)
		rates = append(rates, opts.BarData{Value: s.ErrorRate})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Symptom-checker evaluation", Width: "1000px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Provider error rates"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: "error rate"}),
	)
	bar.SetXAxis(names).
		AddSeries("error_rate", rates, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))

	return bar.Render(w)
}
