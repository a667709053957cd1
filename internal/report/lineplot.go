package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/validate"
)

var sweepPalette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 64, G: 64, B: 64, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
}

// SaveSweepPNG writes the sweep's per-candidate selection-rate curves
// to a PNG at path.
func SaveSweepPNG(path string, family copula.Family, points []validate.SweepPoint, candidates []copula.Family) error {
	if len(points) == 0 {
		return fmt.Errorf("report: empty sweep")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%v reference copula", family)
	p.X.Label.Text = "Kendall's tau"
	p.Y.Label.Text = "selection rate"
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	for ci, cand := range candidates {
		pts := make(plotter.XYs, len(points))
		for i, sp := range points {
			pts[i] = plotter.XY{X: sp.Tau, Y: sp.Breakdown.Rate(cand)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("line for %v: %w", cand, err)
		}
		line.Width = vg.Points(1)
		line.Color = sweepPalette[ci%len(sweepPalette)]
		p.Add(line)
		p.Legend.Add(cand.String(), line)
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
