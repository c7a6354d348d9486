package numeric

import (
	"math"
	"testing"
)

func TestNormCDFReferenceValues(t *testing.T) {
	cases := []struct {
		x    float64
		want float64
	}{
		{0, 0.5},
		{1, 0.8413447460685429},
		{-1, 0.15865525393145707},
		{1.96, 0.9750021048517795},
		{-2.5, 0.006209665325776132},
		{3, 0.9986501019683699},
	}

	for _, tc := range cases {
		got := NormCDF(tc.x)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("NormCDF(%v) = %.16f, want %.16f", tc.x, got, tc.want)
		}
	}
}

func TestNormCDFSymmetry(t *testing.T) {
	for _, x := range []float64{0.1, 0.5, 1.3, 2.7, 4.2} {
		if sum := NormCDF(x) + NormCDF(-x); math.Abs(sum-1) > 1e-14 {
			t.Errorf("N(%v) + N(-%v) = %.16f, want 1", x, x, sum)
		}
	}
}

func TestNormCDFTails(t *testing.T) {
	if got := NormCDF(math.Inf(1)); got != 1 {
		t.Errorf("NormCDF(+Inf) = %v, want 1", got)
	}
	if got := NormCDF(math.Inf(-1)); got != 0 {
		t.Errorf("NormCDF(-Inf) = %v, want 0", got)
	}
}

func TestNormPDF(t *testing.T) {
	if got := NormPDF(0); math.Abs(got-InvSqrt2Pi) > 1e-15 {
		t.Errorf("NormPDF(0) = %.16f, want %.16f", got, InvSqrt2Pi)
	}

	for _, x := range []float64{-3, -1.2, 0.4, 2} {
		want := math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
		if got := NormPDF(x); math.Abs(got-want) > 1e-15 {
			t.Errorf("NormPDF(%v) = %.16f, want %.16f", x, got, want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) || !IsFinite(-0.0) {
		t.Error("finite values reported as non-finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Error("non-finite values reported as finite")
	}
}
