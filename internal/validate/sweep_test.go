package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/mnsig"
	"github.com/banshee-data/copula.report/internal/testutil"
)

func TestTauGrid(t *testing.T) {
	full := TauGrid(copula.Gaussian, 0.05)
	require.Len(t, full, 36)
	assert.InDelta(t, -0.9, full[0], 1e-12)
	assert.InDelta(t, 0.85, full[35], 1e-12)

	positive := TauGrid(copula.Clayton, 0.05)
	require.Len(t, positive, 18)
	assert.Zero(t, positive[0])
	assert.InDelta(t, 0.85, positive[17], 1e-12)

	for _, tau := range append(full, positive...) {
		assert.Less(t, tau, 0.9)
	}
}

func TestSweep_Small(t *testing.T) {
	if testing.Short() {
		t.Skip("Monte-Carlo run")
	}
	cfg := TrialConfig{
		Family:     copula.Clayton,
		SampleSize: 200,
		Dims:       2,
		Trials:     5,
		Selector:   mnsig.NewSelector(),
	}
	points, err := Sweep(cfg, 0.45, testutil.Source(3))
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Zero(t, points[0].Tau)
	assert.InDelta(t, 0.45, points[1].Tau, 1e-12)
	for _, p := range points {
		total := 0
		for _, n := range p.Breakdown.Counts {
			total += n
		}
		assert.Equal(t, cfg.Trials, total)
		assert.Equal(t, p.Tau, p.Breakdown.Config.Tau)
	}
}

func TestSweep_RejectsBadStep(t *testing.T) {
	cfg := TrialConfig{
		Family:     copula.Gaussian,
		SampleSize: 100,
		Dims:       2,
		Trials:     1,
		Selector:   mnsig.NewSelector(),
	}
	_, err := Sweep(cfg, 0, testutil.Source(1))
	assert.Error(t, err)
	_, err = Sweep(cfg, -0.1, testutil.Source(1))
	assert.Error(t, err)
}
