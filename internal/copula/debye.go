package copula

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// debye computes the Debye function
//
//	D_n(x) = (n / x^n) * Integral[0,x] t^n / (e^t - 1) dt
//
// used by the Frank copula's tau and rho relations. Negative arguments
// follow the reflection identity D_n(-x) = D_n(x) + n*x/(n+1).
func debye(n int, x float64) float64 {
	if x == 0 {
		return 1
	}
	if x < 0 {
		return debye(n, -x) + float64(n)*x/float64(n+1)
	}

	integrand := func(t float64) float64 {
		if t < 1e-12 {
			// t^n/(e^t-1) -> t^(n-1) as t -> 0.
			return math.Pow(t, float64(n-1))
		}
		return math.Pow(t, float64(n)) / math.Expm1(t)
	}
	v := quad.Fixed(integrand, 0, x, 96, nil, 0)
	return float64(n) / math.Pow(x, float64(n)) * v
}
