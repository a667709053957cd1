package copula

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// bvtCDF computes P(T1 <= h, T2 <= k) for a standard bivariate
// Student-t pair with nu degrees of freedom and correlation rho.
//
// It uses the conditional representation: given T1 = x, the scaled
// residual (T2 - rho*x) * sqrt((nu+1) / ((nu+x^2)(1-rho^2))) follows a
// t distribution with nu+1 degrees of freedom. As in bvnCDF the outer
// integral runs over the quantile-transformed coordinate so the domain
// is bounded despite the heavy tails.
func bvtCDF(h, k, rho float64, nu float64) float64 {
	tOuter := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
	tInner := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu + 1}

	switch {
	case math.IsInf(h, -1) || math.IsInf(k, -1):
		return 0
	case math.IsInf(h, 1):
		return tOuter.CDF(k)
	case math.IsInf(k, 1):
		return tOuter.CDF(h)
	case rho >= 1-1e-14:
		return tOuter.CDF(math.Min(h, k))
	case rho <= -1+1e-14:
		return math.Max(0, tOuter.CDF(h)+tOuter.CDF(k)-1)
	}

	s := math.Sqrt(1 - rho*rho)
	upper := tOuter.CDF(h)
	f := func(u float64) float64 {
		x := tOuter.Quantile(u)
		scale := math.Sqrt((nu + 1) / ((nu + x*x) * (s * s)))
		return tInner.CDF((k - rho*x) * scale)
	}
	p := quad.Fixed(f, 0, upper, bvnNodes, nil, 0)
	return clampProb(p)
}
