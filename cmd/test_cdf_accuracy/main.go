package main

import (
	"fmt"
	"math"
	"os"

	"github.com/jwaldner/finengine/internal/numeric"
	"github.com/jwaldner/finengine/pricing"
)

type check struct {
	name     string
	got      float64
	expected float64
	tol      float64
	err      error
}

// failed reports whether the check is out of tolerance or could not run.
func (c check) failed() bool {
	return c.err != nil || math.IsNaN(c.got) || math.Abs(c.got-c.expected) > c.tol
}

// priceCheck prices params and compares the result to expected. A pricing
// error is kept on the check so it is reported as a failure.
func priceCheck(name string, price func(pricing.OptionParams) (pricing.Result, error), params pricing.OptionParams, expected, tol float64) check {
	r, err := price(params)
	if err != nil {
		return check{name: name, got: math.NaN(), expected: expected, tol: tol, err: err}
	}
	return check{name: name, got: r.Price, expected: expected, tol: tol}
}

// Checks the normal CDF and the pricer against independently computed
// reference values. Exits non-zero if anything is out of tolerance.
func main() {
	fmt.Println("Testing CDF and Black-Scholes accuracy")
	fmt.Println("======================================")

	var checks []check

	// Standard normal CDF
	for _, ref := range []struct{ x, cdf float64 }{
		{0, 0.5},
		{1, 0.8413447460685429},
		{-1, 0.15865525393145707},
		{1.96, 0.9750021048517795},
		{-3, 0.0013498980316301},
		{5, 0.9999997133484281},
	} {
		checks = append(checks, check{name: fmt.Sprintf("N(%g)", ref.x), got: numeric.NormCDF(ref.x), expected: ref.cdf, tol: 1e-12})
	}

	// S=100 K=105 T=1 r=5% vol=20%
	call, err := pricing.PriceCall(pricing.OptionParams{Spot: 100, Strike: 105, TimeToExpiry: 1, RiskFreeRate: 0.05, Volatility: 0.2})
	if err != nil {
		fmt.Printf("❌ call pricing failed: %v\n", err)
		os.Exit(1)
	}
	checks = append(checks,
		check{name: "call price", got: call.Price, expected: 8.021352235, tol: 1e-6},
		check{name: "call delta", got: call.Delta, expected: 0.5422283336, tol: 1e-6},
		check{name: "call gamma", got: call.Gamma, expected: 0.0198352619, tol: 1e-6},
	)

	// S=100 K=95 T=0.5 r=3% vol=25%
	putParams := pricing.OptionParams{Spot: 100, Strike: 95, TimeToExpiry: 0.5, RiskFreeRate: 0.03, Volatility: 0.25}
	put, err := pricing.PricePut(putParams)
	if err != nil {
		fmt.Printf("❌ put pricing failed: %v\n", err)
		os.Exit(1)
	}
	checks = append(checks,
		check{name: "put price", got: put.Price, expected: 4.0825096, tol: 1e-6},
		check{name: "put delta", got: put.Delta, expected: -0.3215389, tol: 1e-6},
	)

	// Near-zero volatility collapses to discounted intrinsic value
	lowVol := pricing.OptionParams{Spot: 110, Strike: 100, TimeToExpiry: 0.5, RiskFreeRate: 0.04, Volatility: 1e-6}
	intrinsic := lowVol.Spot - lowVol.Strike*math.Exp(-lowVol.RiskFreeRate*lowVol.TimeToExpiry)
	checks = append(checks, priceCheck("low-vol call", pricing.PriceCall, lowVol, intrinsic, 1e-6))

	failed := 0
	for _, c := range checks {
		status := "✅"
		if c.failed() {
			status = "❌"
			failed++
		}
		if c.err != nil {
			fmt.Printf("%s %-14s error: %v\n", status, c.name, c.err)
			continue
		}
		fmt.Printf("%s %-14s got %.10f expected %.10f (diff %.2e)\n", status, c.name, c.got, c.expected, math.Abs(c.got-c.expected))
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("⚠️  %d of %d checks out of tolerance\n", failed, len(checks))
		os.Exit(1)
	}
	fmt.Printf("✅ All %d checks within tolerance\n", len(checks))
}
