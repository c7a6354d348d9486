package pricing

import (
	"fmt"
	"strings"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/internal/numeric"
)

// OptionType is the closed set of European option kinds the engine prices.
// The zero value is not a valid type.
type OptionType int

const (
	Call OptionType = iota + 1
	Put
)

func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// Valid reports whether t is Call or Put.
func (t OptionType) Valid() bool {
	return t == Call || t == Put
}

// ParseOptionType accepts "call", "put", "c" or "p" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	default:
		return 0, calcerr.InvalidParameter("option type must be 'call' or 'put', got %q", s)
	}
}

// OptionParams describes one European option contract and its market.
type OptionParams struct {
	Spot         float64 // current underlying price
	Strike       float64 // exercise price
	TimeToExpiry float64 // years
	RiskFreeRate float64 // annualized, continuously compounded; may be negative
	Volatility   float64 // annualized standard deviation of log returns
}

// Validate checks the structural invariants the formulas depend on.
func (p OptionParams) Validate() error {
	if !numeric.IsFinite(p.Spot) || p.Spot <= 0 {
		return calcerr.InvalidParameter("spot price must be positive, got %v", p.Spot)
	}
	if !numeric.IsFinite(p.Strike) || p.Strike <= 0 {
		return calcerr.InvalidParameter("strike price must be positive, got %v", p.Strike)
	}
	if !numeric.IsFinite(p.TimeToExpiry) || p.TimeToExpiry <= 0 {
		return calcerr.InvalidParameter("time to expiry must be positive, got %v", p.TimeToExpiry)
	}
	if !numeric.IsFinite(p.Volatility) || p.Volatility <= 0 {
		return calcerr.InvalidParameter("volatility must be positive, got %v", p.Volatility)
	}
	if !numeric.IsFinite(p.RiskFreeRate) {
		return calcerr.InvalidParameter("risk-free rate must be finite, got %v", p.RiskFreeRate)
	}
	return nil
}

// Result is the theoretical price and closed-form Greeks of one option.
//
// Units are fixed: Theta is per year of calendar time (use ThetaPerDay for
// the per-day figure), Vega is per 1.00 change in volatility and Rho is per
// 1.00 change in the rate. Nothing is rounded.
type Result struct {
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// ThetaPerDay rescales the annual theta to a single calendar day.
func (r Result) ThetaPerDay() float64 {
	return r.Theta / DaysPerYear
}

// Map returns the result keyed by field name.
func (r Result) Map() map[string]float64 {
	return map[string]float64{
		"price": r.Price,
		"delta": r.Delta,
		"gamma": r.Gamma,
		"theta": r.Theta,
		"vega":  r.Vega,
		"rho":   r.Rho,
	}
}

func (r Result) finite() bool {
	for _, v := range [...]float64{r.Price, r.Delta, r.Gamma, r.Theta, r.Vega, r.Rho} {
		if !numeric.IsFinite(v) {
			return false
		}
	}
	return true
}
