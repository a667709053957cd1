package mnsig

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/copula.report/internal/copula"
)

// Defaults for the Selector. The -0.05 tolerance is a policy constant
// with no principled derivation, so it is a field rather than a
// literal buried in the loop.
const (
	DefaultK               = 4
	DefaultNegTauTolerance = -0.05
)

var (
	// ErrNoCandidates is returned when Select is called with an empty
	// candidate family list.
	ErrNoCandidates = errors.New("mnsig: no candidate families")

	// ErrNoAdmissibleFamily is returned when the boundary policy
	// excluded every candidate, so no selection is meaningful.
	ErrNoAdmissibleFamily = errors.New("mnsig: no admissible family for measured tau")
)

// Selector identifies the copula family whose theoretical multinomial
// signature is closest, by Kullback-Leibler divergence, to a sample's
// empirical signature. The zero value is not usable; NewSelector fills
// in the defaults.
type Selector struct {
	// K is the per-axis grid resolution.
	K int

	// NegTauTolerance bounds the boundary policy for families limited
	// to positive dependence: measured tau below it excludes the
	// family, tau between it and zero is clamped to zero for that
	// family's evaluation only.
	NegTauTolerance float64

	// Families are the candidates, scored in order; earlier entries
	// win divergence ties.
	Families []copula.Family
}

// NewSelector returns a Selector with the standard defaults: K=4,
// tolerance -0.05, candidates Gaussian, Clayton, Gumbel, Frank.
func NewSelector() *Selector {
	return &Selector{
		K:               DefaultK,
		NegTauTolerance: DefaultNegTauTolerance,
		Families:        []copula.Family{copula.Gaussian, copula.Clayton, copula.Gumbel, copula.Frank},
	}
}

// Selection is the result of one family-selection call.
type Selection struct {
	// Family is the arg-min candidate.
	Family copula.Family

	// Theta is Family's native dependency parameter, inverted from the
	// measured (unclamped) tau.
	Theta float64

	// Tau is the empirical Kendall's tau the selection used, reported
	// as measured even when a family was evaluated with a clamped
	// value.
	Tau float64

	// Divergences records KL(theoretical || empirical) per candidate;
	// +Inf marks a family excluded by the boundary policy.
	Divergences map[copula.Family]float64
}

// Select runs the full selection procedure on an MxN sample matrix:
// empirical tau and empirical signature from the leading column pair,
// theoretical signature per candidate under the boundary policy, KL
// scoring, and native-parameter inversion for the winner.
func (s *Selector) Select(x *mat.Dense) (*Selection, error) {
	if len(s.Families) == 0 {
		return nil, ErrNoCandidates
	}

	tauHat, err := copula.KendallsTau(x)
	if err != nil {
		return nil, err
	}

	pairs, err := EmpiricalSignature(x, s.K)
	if err != nil {
		return nil, err
	}
	empirical := ReplaceZeros(pairs[0].Sig)

	divergences := make(map[copula.Family]float64, len(s.Families))
	best := copula.Family(-1)
	bestD := math.Inf(1)
	for _, f := range s.Families {
		tau, excluded := s.boundTau(f, tauHat)
		if excluded {
			divergences[f] = math.Inf(1)
			continue
		}

		dep := copula.Kendall(tau)
		theoretical, err := Signature(f, dep, s.K)
		if err != nil {
			return nil, fmt.Errorf("signature for %v: %w", f, err)
		}
		d := stat.KullbackLeibler(ReplaceZeros(theoretical), empirical)
		divergences[f] = d
		if d < bestD {
			best, bestD = f, d
		}
	}

	if math.IsInf(bestD, 1) {
		return nil, ErrNoAdmissibleFamily
	}

	// The reported parameter always comes from the measured tau, not a
	// clamped evaluation value.
	theta, err := copula.InvStat(best, copula.MeasureKendall, tauHat)
	if err != nil {
		return nil, fmt.Errorf("invert parameter for %v: %w", best, err)
	}

	return &Selection{
		Family:      best,
		Theta:       theta,
		Tau:         tauHat,
		Divergences: divergences,
	}, nil
}

// boundTau applies the per-family boundary policy to the measured tau.
// Families restricted to positive dependence are excluded (second
// return true) when tau falls below the tolerance, evaluated at zero
// when slightly negative, and capped just under one. Other families
// pass tau through unchanged.
func (s *Selector) boundTau(f copula.Family, tau float64) (float64, bool) {
	if f.SupportsNegativeDependence() {
		return tau, false
	}
	switch {
	case tau < s.NegTauTolerance:
		return 0, true
	case tau < 0:
		return 0, false
	case tau >= 1:
		return math.Nextafter(1, 0), false
	}
	return tau, false
}

// ReplaceZeros returns a copy of the probability vector with exact
// zeros replaced by the smallest representable positive value, keeping
// downstream log/ratio computations finite. Zero cells are expected
// under finite sampling and are not an error.
func ReplaceZeros(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		if v == 0 {
			out[i] = math.SmallestNonzeroFloat64
		} else {
			out[i] = v
		}
	}
	return out
}
