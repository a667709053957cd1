package mnsig

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/copula.report/internal/copula"
)

// PairSignature is the empirical multinomial signature for one
// unordered pair of sample columns. RV1 and RV2 are 1-based column
// identifiers with RV1 < RV2.
type PairSignature struct {
	RV1, RV2 int
	Sig      []float64
}

// EmpiricalSignature estimates the multinomial signature of every
// column pair of an MxN sample matrix: the matrix is transformed to
// uniform-margin pseudo-observations, then each pair's observations
// are binned into the K x K grid, each row contributing 1/M to the
// single half-open cell containing it.
//
// Cells are indexed exactly as in Partition, so the vectors compare
// element-wise against theoretical signatures. Rows landing outside
// every cell (possible only on the shaved outer boundary) are dropped,
// matching an in-order first-match scan.
func EmpiricalSignature(x *mat.Dense, k int) ([]PairSignature, error) {
	if k < 1 {
		return nil, fmt.Errorf("empirical signature: resolution %d below 1", k)
	}
	breaks := gridBreaks(k)
	m, n := x.Dims()
	if n < 2 {
		return nil, fmt.Errorf("empirical signature: need at least 2 columns, got %d", n)
	}

	u, err := copula.PseudoObservations(x)
	if err != nil {
		return nil, err
	}

	weight := 1 / float64(m)
	pairs := make([]PairSignature, 0, n*(n-1)/2)
	for dim1 := 0; dim1 < n-1; dim1++ {
		for dim2 := dim1 + 1; dim2 < n; dim2++ {
			sig := make([]float64, k*k)
			for row := 0; row < m; row++ {
				i, ok1 := bucket(u.At(row, dim1), breaks)
				j, ok2 := bucket(u.At(row, dim2), breaks)
				if !ok1 || !ok2 {
					continue
				}
				sig[i*k+j] += weight
			}
			pairs = append(pairs, PairSignature{RV1: dim1 + 1, RV2: dim2 + 1, Sig: sig})
		}
	}
	return pairs, nil
}

// bucket maps a value to its axis interval index under the half-open
// convention [breaks[i], breaks[i+1]). The candidate index comes from a
// direct rescale and is then verified against the actual break points,
// nudging by one either way when float rounding lands the candidate in
// a neighbouring interval. This reproduces the result of scanning the
// cells in order and taking the first match.
func bucket(v float64, breaks []float64) (int, bool) {
	k := len(breaks) - 1
	width := (breaks[k] - breaks[0]) / float64(k)
	i := int(math.Floor((v - breaks[0]) / width))
	for _, c := range [3]int{i, i - 1, i + 1} {
		if c >= 0 && c < k && v >= breaks[c] && v < breaks[c+1] {
			return c, true
		}
	}
	return 0, false
}
