package mnsig

import (
	"math"
	"testing"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/testutil"
)

func TestEmpiricalSignature_Comonotone(t *testing.T) {
	// Four perfectly concordant rows: pseudo-observations land at
	// 0.2, 0.4, 0.6, 0.8 on both axes, so a 2x2 grid gets half the
	// mass in the bottom-left cell and half in the top-right.
	x := testutil.Matrix(t, [][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
		{4, 40},
	})
	pairs, err := EmpiricalSignature(x, 2)
	if err != nil {
		t.Fatalf("EmpiricalSignature: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	want := []float64{0.5, 0, 0, 0.5}
	for i, v := range pairs[0].Sig {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("cell %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestEmpiricalSignature_AntiMonotone(t *testing.T) {
	x := testutil.Matrix(t, [][]float64{
		{1, 40},
		{2, 30},
		{3, 20},
		{4, 10},
	})
	pairs, err := EmpiricalSignature(x, 2)
	if err != nil {
		t.Fatalf("EmpiricalSignature: %v", err)
	}
	want := []float64{0, 0.5, 0.5, 0}
	for i, v := range pairs[0].Sig {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("cell %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestEmpiricalSignature_MassConservationAllPairs(t *testing.T) {
	u, err := copula.Sample(copula.Clayton, 97, 3, copula.Kendall(0.4), testutil.Source(5))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	pairs, err := EmpiricalSignature(u, 4)
	if err != nil {
		t.Fatalf("EmpiricalSignature: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(pairs))
	}
	wantPairs := [][2]int{{1, 2}, {1, 3}, {2, 3}}
	for i, p := range pairs {
		if p.RV1 != wantPairs[i][0] || p.RV2 != wantPairs[i][1] {
			t.Errorf("pair %d labelled (%d,%d), want (%d,%d)", i, p.RV1, p.RV2, wantPairs[i][0], wantPairs[i][1])
		}
		if len(p.Sig) != 16 {
			t.Fatalf("pair %d: %d cells, want 16", i, len(p.Sig))
		}
		testutil.AssertProbabilityVector(t, p.Sig)
		testutil.AssertSumsTo(t, p.Sig, 1, 1e-9)
	}
}

func TestEmpiricalSignature_SingleRow(t *testing.T) {
	x := testutil.Matrix(t, [][]float64{{3, 7}})
	pairs, err := EmpiricalSignature(x, 4)
	if err != nil {
		t.Fatalf("EmpiricalSignature: %v", err)
	}
	nonzero := 0
	for _, v := range pairs[0].Sig {
		if v != 0 {
			nonzero++
		}
	}
	if nonzero != 1 {
		t.Errorf("single row spread over %d cells, want 1", nonzero)
	}
	testutil.AssertSumsTo(t, pairs[0].Sig, 1, 1e-12)
}

func TestEmpiricalSignature_Errors(t *testing.T) {
	x := testutil.Matrix(t, [][]float64{{1, 2}, {3, 4}})
	if _, err := EmpiricalSignature(x, 0); err == nil {
		t.Error("expected error for K=0")
	}
	narrow := testutil.Matrix(t, [][]float64{{1}, {2}})
	if _, err := EmpiricalSignature(narrow, 4); err == nil {
		t.Error("expected error for single-column matrix")
	}
}

func TestBucket_HalfOpenIntervals(t *testing.T) {
	breaks := gridBreaks(4)
	// An interior break belongs to the interval above it.
	i, ok := bucket(breaks[2], breaks)
	if !ok || i != 2 {
		t.Errorf("bucket(breaks[2]) = (%d,%v), want (2,true)", i, ok)
	}
	// Just below a break stays in the interval beneath.
	i, ok = bucket(math.Nextafter(breaks[2], 0), breaks)
	if !ok || i != 1 {
		t.Errorf("bucket(breaks[2]-) = (%d,%v), want (1,true)", i, ok)
	}
	// The upper boundary itself is outside every half-open interval.
	if _, ok := bucket(breaks[4], breaks); ok {
		t.Error("bucket(breaks[4]) matched a cell, want outside")
	}
	if _, ok := bucket(0, breaks); ok {
		t.Error("bucket(0) matched a cell, want outside")
	}
}
