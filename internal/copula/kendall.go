package copula

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// KendallsTau estimates Kendall's tau from the leading two columns of
// the sample matrix. Family selection is bivariate per call, so only
// the first pair is consumed; callers fitting wider structures loop
// over pairs themselves.
func KendallsTau(x *mat.Dense) (float64, error) {
	m, n := x.Dims()
	if n < 2 {
		return 0, fmt.Errorf("kendall's tau: need at least 2 columns, got %d", n)
	}
	if m < 2 {
		return 0, fmt.Errorf("kendall's tau: need at least 2 rows, got %d", m)
	}

	a := make([]float64, m)
	b := make([]float64, m)
	mat.Col(a, 0, x)
	mat.Col(b, 1, x)
	return stat.Kendall(a, b, nil), nil
}
