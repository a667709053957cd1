package copula

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// archZeroTol is the threshold below which an Archimedean parameter is
// treated as the independence limit; the closed forms degenerate to 0/0
// at exactly zero.
const archZeroTol = 1e-12

// CDF evaluates the copula distribution function C(u,v) for the family
// at the resolved scalar parameter. Inputs must lie in [0,1].
func CDF(f Family, u, v float64, dep Dependence) (float64, error) {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, fmt.Errorf("copula CDF: point (%v,%v) outside the unit square", u, v)
	}
	theta, err := dep.theta(f)
	if err != nil {
		return 0, err
	}

	switch f {
	case Gaussian:
		return gaussianCDF(u, v, theta)
	case StudentT:
		if dep.DF < 1 {
			return 0, fmt.Errorf("T copula: degrees of freedom %d below 1", dep.DF)
		}
		return studentTCDF(u, v, theta, dep.DF)
	case Clayton:
		return claytonCDF(u, v, theta)
	case Frank:
		return frankCDF(u, v, theta), nil
	case Gumbel:
		return gumbelCDF(u, v, theta)
	}
	return 0, fmt.Errorf("unsupported copula family %v", f)
}

func gaussianCDF(u, v, rho float64) (float64, error) {
	if rho < -1 || rho > 1 {
		return 0, fmt.Errorf("Gaussian copula: correlation %v outside [-1,1]", rho)
	}
	if u == 0 || v == 0 {
		return 0, nil
	}
	n := distuv.UnitNormal
	return bvnCDF(n.Quantile(u), n.Quantile(v), rho), nil
}

func studentTCDF(u, v, rho float64, df int) (float64, error) {
	if rho < -1 || rho > 1 {
		return 0, fmt.Errorf("T copula: correlation %v outside [-1,1]", rho)
	}
	if u == 0 || v == 0 {
		return 0, nil
	}
	if u == 1 {
		return v, nil
	}
	if v == 1 {
		return u, nil
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return bvtCDF(t.Quantile(u), t.Quantile(v), rho, float64(df)), nil
}

func claytonCDF(u, v, alpha float64) (float64, error) {
	if alpha < 0 {
		return 0, fmt.Errorf("Clayton copula: parameter %v is negative", alpha)
	}
	if alpha < archZeroTol {
		return u * v, nil
	}
	if u == 0 || v == 0 {
		return 0, nil
	}
	base := math.Pow(u, -alpha) + math.Pow(v, -alpha) - 1
	if base <= 0 {
		return 0, nil
	}
	return math.Pow(base, -1/alpha), nil
}

func frankCDF(u, v, alpha float64) float64 {
	if math.Abs(alpha) < archZeroTol {
		return u * v
	}
	// -(1/a) * log(1 + (e^{-au}-1)(e^{-av}-1)/(e^{-a}-1)), written with
	// expm1/log1p to stay accurate for small arguments.
	return -math.Log1p(math.Expm1(-alpha*u)*math.Expm1(-alpha*v)/math.Expm1(-alpha)) / alpha
}

func gumbelCDF(u, v, alpha float64) (float64, error) {
	if alpha < 1 {
		return 0, fmt.Errorf("Gumbel copula: parameter %v below 1", alpha)
	}
	if u == 0 || v == 0 {
		return 0, nil
	}
	lu := -math.Log(u)
	lv := -math.Log(v)
	return math.Exp(-math.Pow(math.Pow(lu, alpha)+math.Pow(lv, alpha), 1/alpha)), nil
}
