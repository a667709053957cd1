// Package copula implements bivariate copula families and the numeric
// primitives the signature engine builds on: rectangle probabilities
// (C-volumes), conversions between rank-correlation measures and native
// dependency parameters, pseudo-observation transforms, and random
// sample generation for validation runs.
package copula

import (
	"fmt"
	"strings"
)

// Family identifies a supported parametric copula family.
type Family int

const (
	Gaussian Family = iota
	StudentT
	Clayton
	Frank
	Gumbel
)

// Families returns all supported families in declaration order.
func Families() []Family {
	return []Family{Gaussian, StudentT, Clayton, Frank, Gumbel}
}

func (f Family) String() string {
	switch f {
	case Gaussian:
		return "Gaussian"
	case StudentT:
		return "T"
	case Clayton:
		return "Clayton"
	case Frank:
		return "Frank"
	case Gumbel:
		return "Gumbel"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily parses a family name, case-insensitively. Both "T" and
// "StudentT" name the Student-t family.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gaussian", "normal":
		return Gaussian, nil
	case "t", "studentt", "student-t":
		return StudentT, nil
	case "clayton":
		return Clayton, nil
	case "frank":
		return Frank, nil
	case "gumbel":
		return Gumbel, nil
	}
	return 0, fmt.Errorf("unsupported copula family %q", name)
}

// SupportsNegativeDependence reports whether the family can model
// negative concordance. Clayton and Gumbel capture only positive
// dependence, so selection applies a boundary policy to them when the
// measured tau is negative.
func (f Family) SupportsNegativeDependence() bool {
	switch f {
	case Clayton, Gumbel:
		return false
	}
	return true
}
