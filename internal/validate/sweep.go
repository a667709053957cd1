package validate

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/banshee-data/copula.report/internal/copula"
)

// SweepPoint pairs one tau value with its run breakdown.
type SweepPoint struct {
	Tau       float64
	Breakdown *Breakdown
}

// TauGrid returns the tau values a parametric sweep uses for a family:
// [-0.9, 0.9) for families that model negative dependence, [0, 0.9)
// for Clayton and Gumbel, stepped by step with a half-open upper end.
func TauGrid(f copula.Family, step float64) []float64 {
	lo := -0.9
	if !f.SupportsNegativeDependence() {
		lo = 0
	}
	var taus []float64
	for i := 0; ; i++ {
		tau := lo + float64(i)*step
		if tau >= 0.9 {
			break
		}
		taus = append(taus, tau)
	}
	return taus
}

// Sweep runs the Monte-Carlo harness across a family's whole tau grid,
// reusing cfg for everything but the tau. Progress is logged per grid
// point since a full sweep is minutes of compute.
func Sweep(cfg TrialConfig, step float64, src rand.Source) ([]SweepPoint, error) {
	if step <= 0 {
		return nil, fmt.Errorf("validate: sweep step %v not positive", step)
	}

	taus := TauGrid(cfg.Family, step)
	points := make([]SweepPoint, 0, len(taus))
	for _, tau := range taus {
		runCfg := cfg
		runCfg.Tau = tau
		b, err := Run(runCfg, src)
		if err != nil {
			return nil, fmt.Errorf("sweep tau=%.2f: %w", tau, err)
		}
		log.Printf("sweep %v tau=%.2f: %d/%d correct", cfg.Family, tau, b.Counts[cfg.Family], cfg.Trials)
		points = append(points, SweepPoint{Tau: tau, Breakdown: b})
	}
	return points, nil
}
