package copula

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Measure names the kind of dependency value carried by a Dependence.
type Measure int

const (
	// MeasureKendall marks a Kendall's tau rank correlation in [-1,1].
	MeasureKendall Measure = iota
	// MeasureSpearman marks a Spearman's rho rank correlation in [-1,1].
	MeasureSpearman
	// MeasureNative marks the family's own dependency parameter:
	// a scalar for Clayton/Frank/Gumbel, a correlation matrix for
	// Gaussian, and a correlation matrix plus degrees of freedom for
	// the Student-t family.
	MeasureNative
)

func (m Measure) String() string {
	switch m {
	case MeasureKendall:
		return "kendall"
	case MeasureSpearman:
		return "spearman"
	case MeasureNative:
		return "native"
	}
	return fmt.Sprintf("Measure(%d)", int(m))
}

// Dependence is the tagged dependency specification accepted by the
// volume primitive and the signature builder.
type Dependence struct {
	Measure Measure

	// Value is the rank-correlation value for kendall/spearman, or the
	// native scalar parameter for Clayton/Frank/Gumbel.
	Value float64

	// Corr is the native correlation matrix for Gaussian/Student-t.
	// When nil, Value is taken as the off-diagonal correlation.
	Corr *mat.SymDense

	// DF is the Student-t degrees of freedom. Required whenever the
	// family is Student-t, regardless of measure.
	DF int
}

// Kendall builds a Kendall's-tau dependency specification.
func Kendall(tau float64) Dependence {
	return Dependence{Measure: MeasureKendall, Value: tau}
}

// KendallT builds a Kendall's-tau specification for the Student-t
// family, which additionally needs degrees of freedom.
func KendallT(tau float64, df int) Dependence {
	return Dependence{Measure: MeasureKendall, Value: tau, DF: df}
}

// Spearman builds a Spearman's-rho dependency specification.
func Spearman(rho float64) Dependence {
	return Dependence{Measure: MeasureSpearman, Value: rho}
}

// NativeScalar builds a native-parameter specification for the
// Archimedean families (Clayton, Frank, Gumbel).
func NativeScalar(theta float64) Dependence {
	return Dependence{Measure: MeasureNative, Value: theta}
}

// NativeGaussian builds a native specification from a correlation
// matrix for the Gaussian family.
func NativeGaussian(corr *mat.SymDense) Dependence {
	return Dependence{Measure: MeasureNative, Corr: corr}
}

// NativeStudentT builds a native specification from a correlation
// matrix and degrees of freedom for the Student-t family.
func NativeStudentT(corr *mat.SymDense, df int) Dependence {
	return Dependence{Measure: MeasureNative, Corr: corr, DF: df}
}

// theta resolves the specification to the family's scalar dependency
// parameter for bivariate evaluation: the correlation coefficient for
// Gaussian/Student-t, the Archimedean parameter otherwise.
func (d Dependence) theta(f Family) (float64, error) {
	switch d.Measure {
	case MeasureNative:
		if d.Corr != nil {
			if f != Gaussian && f != StudentT {
				return 0, fmt.Errorf("%v copula: native parameter is a scalar, not a correlation matrix", f)
			}
			r, c := d.Corr.Dims()
			if r < 2 || c < 2 {
				return 0, fmt.Errorf("%v copula: correlation matrix must be at least 2x2, got %dx%d", f, r, c)
			}
			return d.Corr.At(0, 1), nil
		}
		return d.Value, nil
	case MeasureKendall, MeasureSpearman:
		return InvStat(f, d.Measure, d.Value)
	}
	return 0, fmt.Errorf("unsupported dependency measure %v", d.Measure)
}
