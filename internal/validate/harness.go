// Package validate drives Monte-Carlo selection-accuracy runs: samples
// with a known family and tau are pushed through arbitrary marginals
// and fed to the family selector, and the selections are aggregated
// into per-family breakdowns. It is demonstration scaffolding around
// the engine; the engine never depends on it.
package validate

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/mnsig"
)

// TrialConfig describes one Monte-Carlo run: Trials independent
// datasets of SampleSize rows and Dims columns are generated from
// Family at Kendall's tau Tau, and each is classified by Selector.
type TrialConfig struct {
	Family     copula.Family
	Tau        float64
	SampleSize int
	Dims       int
	Trials     int
	Selector   *mnsig.Selector
}

func (c TrialConfig) validate() error {
	if c.SampleSize < 2 {
		return fmt.Errorf("validate: sample size %d below 2", c.SampleSize)
	}
	if c.Dims < 2 {
		return fmt.Errorf("validate: dimension %d below 2", c.Dims)
	}
	if c.Trials < 1 {
		return fmt.Errorf("validate: trial count %d below 1", c.Trials)
	}
	if c.Selector == nil {
		return fmt.Errorf("validate: nil selector")
	}
	return nil
}

// Breakdown aggregates the selections of one run.
type Breakdown struct {
	RunID  uuid.UUID
	Config TrialConfig
	Counts map[copula.Family]int
}

// Rate returns the fraction of trials that selected f.
func (b *Breakdown) Rate(f copula.Family) float64 {
	return float64(b.Counts[f]) / float64(b.Config.Trials)
}

// Run executes the configured Monte-Carlo trials. Uniform samples from
// the reference copula are mapped through alternating standard-normal
// and standard-exponential marginal quantiles before selection, so the
// selector always sees raw (non-uniform) data, exercising the
// pseudo-observation path. Deterministic for a fixed source.
func Run(cfg TrialConfig, src rand.Source) (*Breakdown, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dep := copula.Kendall(cfg.Tau)
	counts := make(map[copula.Family]int, len(cfg.Selector.Families))
	for trial := 0; trial < cfg.Trials; trial++ {
		u, err := copula.Sample(cfg.Family, cfg.SampleSize, cfg.Dims, dep, src)
		if err != nil {
			return nil, err
		}
		x := applyMarginals(u)

		sel, err := cfg.Selector.Select(x)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}
		counts[sel.Family]++
	}

	return &Breakdown{RunID: uuid.New(), Config: cfg, Counts: counts}, nil
}

// applyMarginals maps uniform columns through marginal quantiles, even
// columns through N(0,1) and odd columns through Exp(1), so trial data
// carries mixed non-uniform marginals.
func applyMarginals(u *mat.Dense) *mat.Dense {
	norm := distuv.UnitNormal
	exp := distuv.Exponential{Rate: 1}

	m, n := u.Dims()
	x := mat.NewDense(m, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			if j%2 == 0 {
				x.Set(i, j, norm.Quantile(u.At(i, j)))
			} else {
				x.Set(i, j, exp.Quantile(u.At(i, j)))
			}
		}
	}
	return x
}
