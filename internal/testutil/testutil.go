// Package testutil provides shared test fixtures: deterministic sample
// matrices and probability-vector assertions used across the engine's
// test files.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Matrix builds a dense matrix from rows. Rows must be rectangular.
func Matrix(t *testing.T, rows [][]float64) *mat.Dense {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("empty matrix fixture")
	}
	n := len(rows[0])
	x := mat.NewDense(len(rows), n, nil)
	for i, row := range rows {
		if len(row) != n {
			t.Fatalf("ragged matrix fixture: row %d has %d values, want %d", i, len(row), n)
		}
		x.SetRow(i, row)
	}
	return x
}

// Source returns a seeded PRNG source for reproducible sampling tests.
func Source(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// AssertSumsTo checks that the vector sums to want within tol.
func AssertSumsTo(t *testing.T, vec []float64, want, tol float64) {
	t.Helper()
	sum := 0.0
	for _, v := range vec {
		sum += v
	}
	if math.Abs(sum-want) > tol {
		t.Errorf("vector sum = %v, want %v (tol %v)", sum, want, tol)
	}
}

// AssertProbabilityVector checks that every entry lies in [0,1].
func AssertProbabilityVector(t *testing.T, vec []float64) {
	t.Helper()
	for i, v := range vec {
		if v < 0 || v > 1 {
			t.Errorf("entry %d = %v outside [0,1]", i, v)
		}
	}
}

// AssertInDelta checks |got-want| <= tol.
func AssertInDelta(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (tol %v)", got, want, tol)
	}
}
