package validate

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/mnsig"
	"github.com/banshee-data/copula.report/internal/testutil"
)

func baseConfig() TrialConfig {
	return TrialConfig{
		Family:     copula.Gaussian,
		Tau:        0.5,
		SampleSize: 1000,
		Dims:       2,
		Trials:     50,
		Selector:   mnsig.NewSelector(),
	}
}

func TestRun_GaussianMajority(t *testing.T) {
	if testing.Short() {
		t.Skip("Monte-Carlo run")
	}
	b, err := Run(baseConfig(), testutil.Source(1))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, b.RunID)

	total := 0
	for _, n := range b.Counts {
		total += n
	}
	assert.Equal(t, 50, total)
	assert.Greater(t, b.Counts[copula.Gaussian], 25,
		"Gaussian data at tau=0.5 should be identified in the majority of trials")
}

func TestRun_DeterministicCounts(t *testing.T) {
	cfg := baseConfig()
	cfg.Trials = 5
	cfg.SampleSize = 300

	a, err := Run(cfg, testutil.Source(7))
	require.NoError(t, err)
	b, err := Run(cfg, testutil.Source(7))
	require.NoError(t, err)

	assert.Equal(t, a.Counts, b.Counts)
	assert.NotEqual(t, a.RunID, b.RunID, "each run gets its own identifier")
}

func TestRun_ConfigValidation(t *testing.T) {
	cases := map[string]func(*TrialConfig){
		"sample size": func(c *TrialConfig) { c.SampleSize = 1 },
		"dims":        func(c *TrialConfig) { c.Dims = 1 },
		"trials":      func(c *TrialConfig) { c.Trials = 0 },
		"selector":    func(c *TrialConfig) { c.Selector = nil },
	}
	for name, mutate := range cases {
		cfg := baseConfig()
		mutate(&cfg)
		_, err := Run(cfg, testutil.Source(1))
		assert.Error(t, err, name)
	}
}

func TestBreakdownRate(t *testing.T) {
	b := &Breakdown{
		Config: TrialConfig{Trials: 40},
		Counts: map[copula.Family]int{copula.Clayton: 30, copula.Frank: 10},
	}
	assert.InDelta(t, 0.75, b.Rate(copula.Clayton), 1e-15)
	assert.InDelta(t, 0.25, b.Rate(copula.Frank), 1e-15)
	assert.Zero(t, b.Rate(copula.Gaussian))
}

func TestApplyMarginals(t *testing.T) {
	u := mat.NewDense(3, 2, []float64{
		0.1, 0.1,
		0.5, 0.5,
		0.9, 0.9,
	})
	x := applyMarginals(u)

	norm := distuv.UnitNormal
	exp := distuv.Exponential{Rate: 1}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, norm.Quantile(u.At(i, 0)), x.At(i, 0), 1e-15)
		assert.InDelta(t, exp.Quantile(u.At(i, 1)), x.At(i, 1), 1e-15)
	}
	// Exponential marginals are nonnegative, the normal median is 0.
	assert.True(t, x.At(0, 1) >= 0)
	assert.InDelta(t, 0, x.At(1, 0), 1e-15)
	assert.True(t, math.Signbit(x.At(0, 0)), "low quantile of N(0,1) is negative")
}
