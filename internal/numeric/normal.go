// Package numeric holds the standard normal distribution shared by the
// pricing formulas.
package numeric

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// InvSqrt2Pi is 1/sqrt(2*pi), the peak of the standard normal density.
const InvSqrt2Pi = 0.3989422804014327

// NormCDF returns the standard normal cumulative distribution N(x).
func NormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormPDF returns the standard normal density n(x) = exp(-x^2/2)/sqrt(2*pi).
func NormPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
