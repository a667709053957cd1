package copula

import (
	"math"
	"testing"
)

func TestStatKendall_KnownValues(t *testing.T) {
	cases := []struct {
		family Family
		theta  float64
		want   float64
	}{
		{Gaussian, math.Sin(math.Pi / 4), 0.5},
		{Gaussian, 0, 0},
		{StudentT, math.Sin(math.Pi / 4), 0.5},
		{Clayton, 2, 0.5},
		{Clayton, 0, 0},
		{Gumbel, 2, 0.5},
		{Gumbel, 1, 0},
		{Frank, 0, 0},
	}
	for _, c := range cases {
		got, err := Stat(c.family, MeasureKendall, c.theta)
		if err != nil {
			t.Errorf("Stat(%v, kendall, %v): %v", c.family, c.theta, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Stat(%v, kendall, %v) = %v, want %v", c.family, c.theta, got, c.want)
		}
	}
}

func TestInvStat_KendallRoundtrip(t *testing.T) {
	cases := []struct {
		family Family
		taus   []float64
	}{
		{Gaussian, []float64{-0.9, -0.3, 0, 0.3, 0.9}},
		{StudentT, []float64{-0.5, 0.5}},
		{Clayton, []float64{0.05, 0.3, 0.8}},
		{Gumbel, []float64{0, 0.3, 0.8}},
		{Frank, []float64{-0.8, -0.3, 0, 0.05, 0.3, 0.8}},
	}
	for _, c := range cases {
		for _, tau := range c.taus {
			theta, err := InvStat(c.family, MeasureKendall, tau)
			if err != nil {
				t.Fatalf("InvStat(%v, kendall, %v): %v", c.family, tau, err)
			}
			back, err := Stat(c.family, MeasureKendall, theta)
			if err != nil {
				t.Fatalf("Stat(%v, kendall, %v): %v", c.family, theta, err)
			}
			if math.Abs(back-tau) > 1e-9 {
				t.Errorf("%v roundtrip: tau %v -> theta %v -> tau %v", c.family, tau, theta, back)
			}
		}
	}
}

func TestInvStat_SpearmanRoundtrip(t *testing.T) {
	for _, rho := range []float64{-0.7, -0.2, 0.2, 0.7} {
		theta, err := InvStat(Gaussian, MeasureSpearman, rho)
		if err != nil {
			t.Fatalf("InvStat(Gaussian, spearman, %v): %v", rho, err)
		}
		back, err := Stat(Gaussian, MeasureSpearman, theta)
		if err != nil {
			t.Fatalf("Stat: %v", err)
		}
		if math.Abs(back-rho) > 1e-9 {
			t.Errorf("Gaussian spearman roundtrip: %v -> %v -> %v", rho, theta, back)
		}
	}

	theta, err := InvStat(Frank, MeasureSpearman, 0.5)
	if err != nil {
		t.Fatalf("InvStat(Frank, spearman, 0.5): %v", err)
	}
	back, err := Stat(Frank, MeasureSpearman, theta)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if math.Abs(back-0.5) > 1e-9 {
		t.Errorf("Frank spearman roundtrip: 0.5 -> %v -> %v", theta, back)
	}
}

func TestInvStat_Unsupported(t *testing.T) {
	if _, err := InvStat(Clayton, MeasureSpearman, 0.5); err == nil {
		t.Error("expected error for Clayton spearman inversion")
	}
	if _, err := InvStat(Gumbel, MeasureSpearman, 0.5); err == nil {
		t.Error("expected error for Gumbel spearman inversion")
	}
	if _, err := InvStat(Gumbel, MeasureKendall, -0.1); err == nil {
		t.Error("expected error for negative Gumbel tau")
	}
	if _, err := InvStat(Gaussian, MeasureKendall, 1.5); err == nil {
		t.Error("expected error for tau outside [-1,1]")
	}
	if _, err := Stat(Gumbel, MeasureKendall, 0.5); err == nil {
		t.Error("expected error for Gumbel parameter below 1")
	}
}

func TestInvStat_ClaytonLimit(t *testing.T) {
	theta, err := InvStat(Clayton, MeasureKendall, 1)
	if err != nil {
		t.Fatalf("InvStat(Clayton, kendall, 1): %v", err)
	}
	if !math.IsInf(theta, 1) {
		t.Errorf("Clayton theta at tau=1 = %v, want +Inf", theta)
	}
}

func TestDebye(t *testing.T) {
	// D1(0) is the series limit.
	if got := debye(1, 0); got != 1 {
		t.Errorf("debye(1, 0) = %v, want 1", got)
	}

	// D1(1) = integral of t/(e^t-1) over [0,1] ~ 0.777505.
	if got := debye(1, 1); math.Abs(got-0.7775) > 1e-4 {
		t.Errorf("debye(1, 1) = %v, want ~0.7775", got)
	}

	// Reflection: D_n(-x) = D_n(x) + n*x/(n+1).
	for _, x := range []float64{0.5, 2, 10} {
		want := debye(1, x) + x/2
		if got := debye(1, -x); math.Abs(got-want) > 1e-10 {
			t.Errorf("debye(1, %v) = %v, want %v", -x, got, want)
		}
		want = debye(2, x) + 2*x/3
		if got := debye(2, -x); math.Abs(got-want) > 1e-10 {
			t.Errorf("debye(2, %v) = %v, want %v", -x, got, want)
		}
	}

	// Monotone decreasing on the positive axis.
	if !(debye(1, 0.1) > debye(1, 1) && debye(1, 1) > debye(1, 10)) {
		t.Error("debye(1, x) not decreasing in x")
	}
}

func TestParseFamily(t *testing.T) {
	for _, f := range Families() {
		got, err := ParseFamily(f.String())
		if err != nil {
			t.Errorf("ParseFamily(%q): %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseFamily(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if _, err := ParseFamily("copulon"); err == nil {
		t.Error("expected error for unknown family")
	}
	if f, err := ParseFamily("gaussian"); err != nil || f != Gaussian {
		t.Errorf("ParseFamily(\"gaussian\") = %v, %v", f, err)
	}
}

func TestSupportsNegativeDependence(t *testing.T) {
	for _, f := range []Family{Gaussian, StudentT, Frank} {
		if !f.SupportsNegativeDependence() {
			t.Errorf("%v should support negative dependence", f)
		}
	}
	for _, f := range []Family{Clayton, Gumbel} {
		if f.SupportsNegativeDependence() {
			t.Errorf("%v should not support negative dependence", f)
		}
	}
}
