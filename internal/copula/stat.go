package copula

import (
	"fmt"
	"math"
)

// Stat converts a family's native dependency parameter into the given
// rank-correlation measure.
//
// Closed forms:
//
//	Gaussian/T  tau = 2*asin(rho)/pi     rho_s = 6*asin(rho/2)/pi
//	Clayton     tau = alpha/(alpha+2)
//	Gumbel      tau = 1 - 1/alpha
//	Frank       tau = 1 - (4/alpha)*(1 - D1(alpha))
//	            rho_s = 1 - (12/alpha)*(D1(alpha) - D2(alpha))
//
// Spearman's rho has no closed form for Clayton/Gumbel; those
// conversions are rejected rather than approximated. The Spearman
// relation for the Student-t family uses the Gaussian formula, which is
// the conventional approximation.
func Stat(f Family, m Measure, theta float64) (float64, error) {
	switch m {
	case MeasureKendall:
		return statKendall(f, theta)
	case MeasureSpearman:
		return statSpearman(f, theta)
	}
	return 0, fmt.Errorf("cannot convert native parameter to measure %v", m)
}

func statKendall(f Family, theta float64) (float64, error) {
	switch f {
	case Gaussian, StudentT:
		if theta < -1 || theta > 1 {
			return 0, fmt.Errorf("%v copula: correlation %v outside [-1,1]", f, theta)
		}
		return 2 * math.Asin(theta) / math.Pi, nil
	case Clayton:
		return theta / (theta + 2), nil
	case Gumbel:
		if theta < 1 {
			return 0, fmt.Errorf("Gumbel copula: parameter %v below 1", theta)
		}
		return 1 - 1/theta, nil
	case Frank:
		if theta == 0 {
			return 0, nil
		}
		return 1 - 4/theta*(1-debye(1, theta)), nil
	}
	return 0, fmt.Errorf("unsupported copula family %v", f)
}

func statSpearman(f Family, theta float64) (float64, error) {
	switch f {
	case Gaussian, StudentT:
		if theta < -1 || theta > 1 {
			return 0, fmt.Errorf("%v copula: correlation %v outside [-1,1]", f, theta)
		}
		return 6 * math.Asin(theta/2) / math.Pi, nil
	case Frank:
		if theta == 0 {
			return 0, nil
		}
		return 1 - 12/theta*(debye(1, theta)-debye(2, theta)), nil
	case Clayton, Gumbel:
		return 0, fmt.Errorf("%v copula: no closed-form Spearman relation", f)
	}
	return 0, fmt.Errorf("unsupported copula family %v", f)
}

// InvStat maps a rank-correlation value back to the family's native
// scalar parameter. The Frank inverse has no closed form and is solved
// by bisection on the monotone tau/rho relations.
func InvStat(f Family, m Measure, value float64) (float64, error) {
	if m != MeasureKendall && m != MeasureSpearman {
		return 0, fmt.Errorf("cannot invert measure %v", m)
	}
	if value < -1 || value > 1 {
		return 0, fmt.Errorf("rank correlation %v outside [-1,1]", value)
	}

	switch f {
	case Gaussian, StudentT:
		if m == MeasureKendall {
			return math.Sin(value * math.Pi / 2), nil
		}
		return 2 * math.Sin(value*math.Pi/6), nil
	case Clayton:
		if m != MeasureKendall {
			return 0, fmt.Errorf("Clayton copula: no closed-form inverse for %v", m)
		}
		if value >= 1 {
			return math.Inf(1), nil
		}
		return 2 * value / (1 - value), nil
	case Gumbel:
		if m != MeasureKendall {
			return 0, fmt.Errorf("Gumbel copula: no closed-form inverse for %v", m)
		}
		if value < 0 {
			return 0, fmt.Errorf("Gumbel copula: tau %v is negative", value)
		}
		if value >= 1 {
			return math.Inf(1), nil
		}
		return 1 / (1 - value), nil
	case Frank:
		if value == 0 {
			return 0, nil
		}
		target := func(alpha float64) float64 {
			v, _ := Stat(Frank, m, alpha)
			return v
		}
		return bisectMonotone(target, value, -frankAlphaLimit, frankAlphaLimit), nil
	}
	return 0, fmt.Errorf("unsupported copula family %v", f)
}

// frankAlphaLimit bounds the Frank parameter search; tau(500) is within
// float tolerance of 1, so the bracket covers every attainable rank
// correlation.
const frankAlphaLimit = 500.0

// bisectMonotone solves f(x) = target for a monotone increasing f on
// [lo, hi], returning the nearer endpoint when the target lies outside
// the bracket.
func bisectMonotone(f func(float64) float64, target, lo, hi float64) float64 {
	if f(lo) >= target {
		return lo
	}
	if f(hi) <= target {
		return hi
	}
	for i := 0; i < 200 && hi-lo > 1e-13; i++ {
		mid := (lo + hi) / 2
		if f(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
