// Package pricing implements the Black-Scholes-Merton model for European
// options without dividends: a theoretical price plus delta, gamma, theta,
// vega and rho, all in closed form.
//
// Price is a pure function of its arguments and is safe for concurrent use.
package pricing

import (
	"math"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/internal/numeric"
)

// DaysPerYear is the calendar convention behind Result.ThetaPerDay.
const DaysPerYear = 365.0

// Price values an option of the given type. Parameters are validated before
// any arithmetic; a violation returns an error wrapping
// calcerr.ErrInvalidParameter and a zero Result.
func Price(optionType OptionType, params OptionParams) (Result, error) {
	if !optionType.Valid() {
		return Result{}, calcerr.InvalidParameter("unknown option type %v", optionType)
	}
	if err := params.Validate(); err != nil {
		return Result{}, err
	}

	S, K := params.Spot, params.Strike
	T, r, vol := params.TimeToExpiry, params.RiskFreeRate, params.Volatility

	sqrtT := math.Sqrt(T)
	volSqrtT := vol * sqrtT
	d1 := (math.Log(S/K) + (r+vol*vol/2)*T) / volSqrtT
	d2 := d1 - volSqrtT

	discount := math.Exp(-r * T)
	pdfD1 := numeric.NormPDF(d1)

	res := Result{
		Gamma: pdfD1 / (S * volSqrtT),
		Vega:  S * pdfD1 * sqrtT,
	}
	decay := -(S * pdfD1 * vol) / (2 * sqrtT)

	switch optionType {
	case Call:
		nd1 := numeric.NormCDF(d1)
		nd2 := numeric.NormCDF(d2)
		res.Price = S*nd1 - K*discount*nd2
		res.Delta = nd1
		res.Theta = decay - r*K*discount*nd2
		res.Rho = K * T * discount * nd2
	case Put:
		nNegD1 := numeric.NormCDF(-d1)
		nNegD2 := numeric.NormCDF(-d2)
		res.Price = K*discount*nNegD2 - S*nNegD1
		res.Delta = numeric.NormCDF(d1) - 1
		res.Theta = decay + r*K*discount*nNegD2
		res.Rho = -K * T * discount * nNegD2
	}

	if !res.finite() {
		return Result{}, calcerr.InvalidParameter("parameters %+v produce a non-finite result", params)
	}
	return res, nil
}

// PriceCall is Price(Call, params).
func PriceCall(params OptionParams) (Result, error) {
	return Price(Call, params)
}

// PricePut is Price(Put, params).
func PricePut(params OptionParams) (Result, error) {
	return Price(Put, params)
}

// ParityGap returns C - P - (S - K*exp(-rT)) for a call and put priced on the
// same parameters. It is zero up to floating-point error.
func ParityGap(call, put Result, params OptionParams) float64 {
	forward := params.Spot - params.Strike*math.Exp(-params.RiskFreeRate*params.TimeToExpiry)
	return call.Price - put.Price - forward
}
