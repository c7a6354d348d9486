// Package indicator computes the Exponential Moving Average of a price series,
// either over a whole series at once or one value at a time.
//
// Both modes seed with the simple mean of the first period values and then
// apply ema = x*k + prev*(1-k) with k = 2/(period+1). Fed the same values in
// the same order they produce bit-identical output.
package indicator

import (
	"github.com/jwaldner/finengine/calcerr"
)

// Multiplier returns the smoothing factor 2/(period+1).
func Multiplier(period int) float64 {
	return 2.0 / (float64(period) + 1.0)
}

func checkPeriod(period int) error {
	if period < 1 {
		return calcerr.InvalidParameter("period must be at least 1, got %d", period)
	}
	return nil
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func step(prev, x, k float64) float64 {
	return x*k + prev*(1-k)
}

// Calculate returns the EMA of series for the given period.
//
// Output element j corresponds to series[j+period-1]; the first element is
// the seed, so len(result) == len(series)-period+1. A period below 1 fails
// with calcerr.ErrInvalidParameter, a series shorter than period with
// calcerr.ErrInsufficientData.
func Calculate(series []float64, period int) ([]float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	if len(series) < period {
		return nil, calcerr.InsufficientData("need at least %d data points, got %d", period, len(series))
	}

	k := Multiplier(period)
	out := make([]float64, 0, len(series)-period+1)

	ema := mean(series[:period])
	out = append(out, ema)
	for _, x := range series[period:] {
		ema = step(ema, x, k)
		out = append(out, ema)
	}
	return out, nil
}
