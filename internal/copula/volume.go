package copula

import "fmt"

// Point is a location in the unit square.
type Point struct {
	U, V float64
}

// Volume computes the C-volume of the axis-aligned rectangle described
// by its four corners: the probability a sample from the family's
// distribution falls inside it, via inclusion-exclusion over the
// copula CDF:
//
//	C(u2,v2) - C(u2,v1) - C(u1,v2) + C(u1,v1)
//
// The corners follow the grid cell convention: ll=(u1,v1), ul=(u1,v2),
// lr=(u2,v1), ur=(u2,v2).
func Volume(f Family, ll, ul, lr, ur Point, dep Dependence) (float64, error) {
	if ll.U >= lr.U || ll.V >= ul.V {
		return 0, fmt.Errorf("copula volume: degenerate rectangle (%v,%v)-(%v,%v)", ll.U, ll.V, ur.U, ur.V)
	}

	c22, err := CDF(f, ur.U, ur.V, dep)
	if err != nil {
		return 0, err
	}
	c21, err := CDF(f, lr.U, lr.V, dep)
	if err != nil {
		return 0, err
	}
	c12, err := CDF(f, ul.U, ul.V, dep)
	if err != nil {
		return 0, err
	}
	c11, err := CDF(f, ll.U, ll.V, dep)
	if err != nil {
		return 0, err
	}

	vol := c22 - c21 - c12 + c11
	if vol < 0 {
		// Inclusion-exclusion of nearly equal CDF values can land a
		// hair below zero; a copula volume never is.
		vol = 0
	}
	return vol, nil
}
