package copula

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// PseudoObservations applies the probability integral transform to an
// MxN sample matrix: each column is independently mapped through its
// own empirical distribution function, producing uniform-margin
// pseudo-observations.
//
// Ranks are averaged over ties and scaled by 1/(M+1), so every output
// lies strictly inside (0,1) as the downstream grid binning requires.
func PseudoObservations(x *mat.Dense) (*mat.Dense, error) {
	m, n := x.Dims()
	if m < 1 {
		return nil, fmt.Errorf("pseudo-observations: empty sample matrix")
	}

	u := mat.NewDense(m, n, nil)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, x)
		ranks := averageRanks(col)
		for i := 0; i < m; i++ {
			u.Set(i, j, ranks[i]/float64(m+1))
		}
	}
	return u, nil
}

// averageRanks returns 1-based ranks of xs with ties assigned the
// average of the ranks they span.
func averageRanks(xs []float64) []float64 {
	m := len(xs)
	idx := make([]int, m)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	ranks := make([]float64, m)
	for lo := 0; lo < m; {
		hi := lo + 1
		for hi < m && xs[idx[hi]] == xs[idx[lo]] {
			hi++
		}
		// Ranks lo+1..hi averaged across the tie group.
		avg := float64(lo+1+hi) / 2
		for k := lo; k < hi; k++ {
			ranks[idx[k]] = avg
		}
		lo = hi
	}
	return ranks
}
