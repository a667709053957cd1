package mnsig

import (
	"github.com/banshee-data/copula.report/internal/copula"
)

// Signature computes the multinomial signature of a copula family at a
// given dependency: the vector of C-volumes of every grid cell, in
// partition order. For a valid family/parameter pair the entries sum
// to 1 up to float tolerance, a property of the volume primitive that
// tests assert rather than this function enforcing it.
func Signature(f copula.Family, dep copula.Dependence, k int) ([]float64, error) {
	cells, err := Partition(k)
	if err != nil {
		return nil, err
	}
	return buildSignature(cells, func(c Cell) (float64, error) {
		return copula.Volume(f, c.LL, c.UL, c.LR, c.UR, dep)
	})
}

// buildSignature evaluates vol over every cell in order. Split out so
// tests can drive the cell ordering with synthetic volume functions.
func buildSignature(cells []Cell, vol func(Cell) (float64, error)) ([]float64, error) {
	sig := make([]float64, len(cells))
	for i, c := range cells {
		v, err := vol(c)
		if err != nil {
			return nil, err
		}
		sig[i] = v
	}
	return sig, nil
}
