// Package report renders Monte-Carlo validation results as go-echarts
// HTML charts and gonum/plot PNGs.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/validate"
)

// WriteBreakdownPie renders one run's selection breakdown as a pie
// chart, HTML to w.
func WriteBreakdownPie(w io.Writer, b *validate.Breakdown) error {
	items := make([]opts.PieData, 0, len(b.Counts))
	for _, f := range b.Config.Selector.Families {
		items = append(items, opts.PieData{Name: f.String(), Value: b.Counts[f]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Copula selection breakdown", Width: "700px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Reference %v copula", b.Config.Family),
			Subtitle: fmt.Sprintf("tau=%.2f M=%d N=%d trials=%d run=%s", b.Config.Tau, b.Config.SampleSize, b.Config.Dims, b.Config.Trials, b.RunID),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("selections", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie.Render(w)
}

// WriteSweepLine renders the per-candidate selection rates of a
// parametric sweep as a line chart, HTML to w.
func WriteSweepLine(w io.Writer, family copula.Family, points []validate.SweepPoint, candidates []copula.Family) error {
	if len(points) == 0 {
		return fmt.Errorf("report: empty sweep")
	}

	taus := make([]string, len(points))
	for i, p := range points {
		taus[i] = fmt.Sprintf("%.2f", p.Tau)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Copula selection sweep", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%v reference copula: selection rate vs tau", family)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Kendall's tau"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "selection rate", Min: 0, Max: 1}),
	)

	line.SetXAxis(taus)
	for _, cand := range candidates {
		data := make([]opts.LineData, len(points))
		for i, p := range points {
			data[i] = opts.LineData{Value: p.Breakdown.Rate(cand)}
		}
		line.AddSeries(cand.String(), data)
	}
	return line.Render(w)
}
