// Package mnsig implements the copula multinomial-signature engine
// from "Highly Efficient Learning of Mixed Copula Networks" (Elidan):
// a K x K partition of the unit square, theoretical and empirical
// per-cell probability vectors over it, and Kullback-Leibler scoring
// of candidate copula families against an observed sample.
package mnsig

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/copula.report/internal/copula"
)

// gridEps pulls the outer break points inside the open unit square so
// no family CDF is ever evaluated exactly on the boundary.
var gridEps = math.Nextafter(1, 2) - 1

// Cell is one sub-rectangle of the grid partition, identified by its
// four corners. The half-open convention [U, U+w) x [V, V+h) applies
// when binning samples.
type Cell struct {
	LL copula.Point // lower-left  (u1,v1)
	UL copula.Point // upper-left  (u1,v2)
	LR copula.Point // lower-right (u2,v1)
	UR copula.Point // upper-right (u2,v2)
}

var (
	partitionMu    sync.RWMutex
	partitionCache = map[int][]Cell{}
)

// Partition tiles [0,1]^2 with K^2 cells built from K+1 equally spaced
// break points on [eps, 1-eps] per axis. Cells are numbered column by
// column, bottom to top: for a 4 x 4 grid,
//
//	___________________
//	| 4 | 8 | 12 | 16 |
//	|---|---|----|----|
//	| 3 | 7 | 11 | 15 |
//	|-----------------|
//	| 2 | 6 | 10 | 14 |
//	|-----------------|
//	| 1 | 5 |  9 | 13 |
//	|___|___|____|____|
//
// so index 1 is bottom-left and the index increases upward, then
// rightward. The same ordering is shared by the theoretical and the
// empirical signature, which are compared element-wise.
//
// Partitions are deterministic per K and cached; callers must not
// mutate the returned slice.
func Partition(k int) ([]Cell, error) {
	if k < 1 {
		return nil, fmt.Errorf("grid partition: resolution %d below 1", k)
	}

	partitionMu.RLock()
	cells, ok := partitionCache[k]
	partitionMu.RUnlock()
	if ok {
		return cells, nil
	}

	breaks := floats.Span(make([]float64, k+1), gridEps, 1-gridEps)
	cells = make([]Cell, 0, k*k)
	for i := 0; i < k; i++ {
		u1, u2 := breaks[i], breaks[i+1]
		for j := 0; j < k; j++ {
			v1, v2 := breaks[j], breaks[j+1]
			cells = append(cells, Cell{
				LL: copula.Point{U: u1, V: v1},
				UL: copula.Point{U: u1, V: v2},
				LR: copula.Point{U: u2, V: v1},
				UR: copula.Point{U: u2, V: v2},
			})
		}
	}

	partitionMu.Lock()
	partitionCache[k] = cells
	partitionMu.Unlock()
	return cells, nil
}

// gridBreaks returns the K+1 break points for one axis.
func gridBreaks(k int) []float64 {
	return floats.Span(make([]float64, k+1), gridEps, 1-gridEps)
}
