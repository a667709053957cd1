package copula

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sample draws m rows from an n-dimensional copula of the given family,
// returning an m x n matrix of uniform-margin observations. The
// elliptical families use an equicorrelation matrix built from the
// resolved pairwise parameter unless dep carries an explicit
// correlation matrix; the Archimedean families use their scalar
// parameter and (for n > 2) frailty constructions, which restrict Frank
// to nonnegative parameters beyond the bivariate case.
//
// Used by the Monte-Carlo validation harness and tests, not by the
// selection engine.
func Sample(f Family, m, n int, dep Dependence, src rand.Source) (*mat.Dense, error) {
	if m < 1 {
		return nil, fmt.Errorf("copula sample: row count %d below 1", m)
	}
	if n < 2 {
		return nil, fmt.Errorf("copula sample: dimension %d below 2", n)
	}
	theta, err := dep.theta(f)
	if err != nil {
		return nil, err
	}

	switch f {
	case Gaussian:
		return sampleGaussian(m, n, theta, dep.Corr, src)
	case StudentT:
		if dep.DF < 1 {
			return nil, fmt.Errorf("T copula sample: degrees of freedom %d below 1", dep.DF)
		}
		return sampleStudentT(m, n, theta, dep.Corr, dep.DF, src)
	case Clayton:
		return sampleClayton(m, n, theta, src)
	case Frank:
		return sampleFrank(m, n, theta, src)
	case Gumbel:
		return sampleGumbel(m, n, theta, src)
	}
	return nil, fmt.Errorf("unsupported copula family %v", f)
}

// equicorrelation builds an n x n correlation matrix with constant
// off-diagonal rho.
func equicorrelation(n int, rho float64) *mat.SymDense {
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		s.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			s.SetSym(i, j, rho)
		}
	}
	return s
}

func ellipticalCorr(n int, rho float64, corr *mat.SymDense) (*mat.SymDense, error) {
	if corr == nil {
		return equicorrelation(n, rho), nil
	}
	r, _ := corr.Dims()
	if r != n {
		return nil, fmt.Errorf("copula sample: correlation matrix is %dx%d, want %dx%d", r, r, n, n)
	}
	return corr, nil
}

func sampleGaussian(m, n int, rho float64, corr *mat.SymDense, src rand.Source) (*mat.Dense, error) {
	sigma, err := ellipticalCorr(n, rho, corr)
	if err != nil {
		return nil, err
	}
	norm, ok := distmv.NewNormal(make([]float64, n), sigma, src)
	if !ok {
		return nil, fmt.Errorf("copula sample: correlation matrix is not positive definite")
	}

	u := mat.NewDense(m, n, nil)
	z := make([]float64, n)
	for i := 0; i < m; i++ {
		norm.Rand(z)
		for j := 0; j < n; j++ {
			u.Set(i, j, distuv.UnitNormal.CDF(z[j]))
		}
	}
	return u, nil
}

func sampleStudentT(m, n int, rho float64, corr *mat.SymDense, df int, src rand.Source) (*mat.Dense, error) {
	sigma, err := ellipticalCorr(n, rho, corr)
	if err != nil {
		return nil, err
	}
	norm, ok := distmv.NewNormal(make([]float64, n), sigma, src)
	if !ok {
		return nil, fmt.Errorf("copula sample: correlation matrix is not positive definite")
	}

	nu := float64(df)
	chi2 := distuv.ChiSquared{K: nu, Src: src}
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}

	u := mat.NewDense(m, n, nil)
	z := make([]float64, n)
	for i := 0; i < m; i++ {
		norm.Rand(z)
		scale := math.Sqrt(nu / chi2.Rand())
		for j := 0; j < n; j++ {
			u.Set(i, j, tdist.CDF(z[j]*scale))
		}
	}
	return u, nil
}

func sampleClayton(m, n int, alpha float64, src rand.Source) (*mat.Dense, error) {
	if alpha < 0 {
		return nil, fmt.Errorf("Clayton copula sample: parameter %v is negative", alpha)
	}
	rng := rand.New(src)
	u := mat.NewDense(m, n, nil)
	if alpha < archZeroTol {
		fillUniform(u, rng)
		return u, nil
	}

	// Marshall-Olkin: gamma frailty V with shape 1/alpha, then
	// U_j = (1 + E_j/V)^(-1/alpha) with E_j standard exponential.
	gamma := distuv.Gamma{Alpha: 1 / alpha, Beta: 1, Src: src}
	exp := distuv.Exponential{Rate: 1, Src: src}
	for i := 0; i < m; i++ {
		v := gamma.Rand()
		for j := 0; j < n; j++ {
			u.Set(i, j, math.Pow(1+exp.Rand()/v, -1/alpha))
		}
	}
	return u, nil
}

func sampleGumbel(m, n int, alpha float64, src rand.Source) (*mat.Dense, error) {
	if alpha < 1 {
		return nil, fmt.Errorf("Gumbel copula sample: parameter %v below 1", alpha)
	}
	rng := rand.New(src)
	u := mat.NewDense(m, n, nil)
	if alpha-1 < archZeroTol {
		fillUniform(u, rng)
		return u, nil
	}

	// Marshall-Olkin with a positive alpha-stable frailty of index
	// 1/alpha, drawn by the Chambers-Mallows-Stuck construction.
	b := 1 / alpha
	exp := distuv.Exponential{Rate: 1, Src: src}
	for i := 0; i < m; i++ {
		theta := math.Pi * rng.Float64()
		w := exp.Rand()
		s := math.Sin(b*theta) / math.Pow(math.Sin(theta), 1/b) *
			math.Pow(math.Sin((1-b)*theta)/w, (1-b)/b)
		for j := 0; j < n; j++ {
			u.Set(i, j, math.Exp(-math.Pow(exp.Rand()/s, b)))
		}
	}
	return u, nil
}

func sampleFrank(m, n int, alpha float64, src rand.Source) (*mat.Dense, error) {
	rng := rand.New(src)
	u := mat.NewDense(m, n, nil)
	if math.Abs(alpha) < archZeroTol {
		fillUniform(u, rng)
		return u, nil
	}

	if n == 2 {
		// Conditional inversion handles both signs of the parameter.
		for i := 0; i < m; i++ {
			u1 := rng.Float64()
			p := rng.Float64()
			a := p * math.Expm1(-alpha) / (math.Exp(-alpha*u1)*(1-p) + p)
			u.Set(i, 0, u1)
			u.Set(i, 1, -math.Log1p(a)/alpha)
		}
		return u, nil
	}

	if alpha < 0 {
		return nil, fmt.Errorf("Frank copula sample: negative parameter %v only supported for 2 dimensions", alpha)
	}

	// Logarithmic-series frailty for n > 2.
	p := -math.Expm1(-alpha)
	exp := distuv.Exponential{Rate: 1, Src: src}
	for i := 0; i < m; i++ {
		v := logarithmicRand(p, rng)
		for j := 0; j < n; j++ {
			u.Set(i, j, -math.Log1p(-p*math.Exp(-exp.Rand()/v))/alpha)
		}
	}
	return u, nil
}

// logarithmicRand draws from the logarithmic-series distribution with
// parameter p in (0,1) using Kemp's LS inversion.
func logarithmicRand(p float64, rng *rand.Rand) float64 {
	u2 := rng.Float64()
	if u2 > p {
		return 1
	}
	q := -math.Expm1(u2 * math.Log1p(-p)) // 1 - (1-p)^u2
	u1 := rng.Float64()
	switch {
	case u1 < q*q:
		return math.Floor(1 + math.Log(u1)/math.Log(q))
	case u1 > q:
		return 1
	default:
		return 2
	}
}

func fillUniform(u *mat.Dense, rng *rand.Rand) {
	m, n := u.Dims()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			u.Set(i, j, rng.Float64())
		}
	}
}
