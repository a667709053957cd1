package copula

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// bvnNodes is the Gauss-Legendre order used for the bivariate CDF
// quadratures. The integrands are smooth on the open interval, so this
// order holds the error well below the 1e-6 mass tolerances used by
// the signature checks.
const bvnNodes = 128

// bvnCDF computes P(X <= h, Y <= k) for a standard bivariate normal
// pair with correlation rho, by integrating the conditional CDF over
// the quantile-transformed first coordinate:
//
//	Phi2(h,k;rho) = Integral[0,Phi(h)] Phi((k - rho*InvPhi(u)) / sqrt(1-rho^2)) du
//
// The transform keeps the integration domain bounded and the integrand
// smooth, after the degenerate |rho| ~ 1 cases are split off.
func bvnCDF(h, k, rho float64) float64 {
	n := distuv.UnitNormal

	switch {
	case math.IsInf(h, -1) || math.IsInf(k, -1):
		return 0
	case math.IsInf(h, 1):
		return n.CDF(k)
	case math.IsInf(k, 1):
		return n.CDF(h)
	case rho >= 1-1e-14:
		// Comonotone limit.
		return n.CDF(math.Min(h, k))
	case rho <= -1+1e-14:
		// Countermonotone limit.
		return math.Max(0, n.CDF(h)+n.CDF(k)-1)
	case rho == 0:
		return n.CDF(h) * n.CDF(k)
	}

	s := math.Sqrt(1 - rho*rho)
	upper := n.CDF(h)
	f := func(u float64) float64 {
		x := n.Quantile(u)
		return n.CDF((k - rho*x) / s)
	}
	p := quad.Fixed(f, 0, upper, bvnNodes, nil, 0)
	return clampProb(p)
}

func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
