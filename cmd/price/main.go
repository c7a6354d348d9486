package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jwaldner/finengine/internal/config"
	"github.com/jwaldner/finengine/internal/logger"
	"github.com/jwaldner/finengine/internal/utils"
	"github.com/jwaldner/finengine/pricing"
)

type example struct {
	title      string
	optionType pricing.OptionType
	params     pricing.OptionParams
}

var examples = []example{
	{"Call Option Pricing", pricing.Call, pricing.OptionParams{Spot: 100, Strike: 105, TimeToExpiry: 1, RiskFreeRate: 0.05, Volatility: 0.2}},
	{"Put Option Pricing", pricing.Put, pricing.OptionParams{Spot: 100, Strike: 95, TimeToExpiry: 0.5, RiskFreeRate: 0.03, Volatility: 0.25}},
	{"At-The-Money Call", pricing.Call, pricing.OptionParams{Spot: 100, Strike: 100, TimeToExpiry: 0.25, RiskFreeRate: 0.04, Volatility: 0.3}},
	{"At-The-Money Put", pricing.Put, pricing.OptionParams{Spot: 100, Strike: 100, TimeToExpiry: 0.25, RiskFreeRate: 0.04, Volatility: 0.3}},
}

func main() {
	cfg := config.Load()
	logger.InitWithWriter(cfg.Logging.LogLevel, os.Stderr)

	optType := flag.String("type", "call", "option type: call or put")
	spot := flag.Float64("spot", 0, "spot price of the underlying")
	strike := flag.Float64("strike", 0, "strike price")
	years := flag.Float64("t", 0, "time to expiry in years (overrides -exp)")
	exp := flag.String("exp", "", "expiration date YYYY-MM-DD (default: next monthly expiration)")
	rate := flag.Float64("rate", cfg.Pricing.DefaultRiskFree, "annual risk-free rate, continuous compounding")
	vol := flag.Float64("vol", 0, "annual volatility")
	parity := flag.Bool("parity", false, "price both call and put and report the parity residual")
	asJSON := flag.Bool("json", false, "print JSON instead of a table")
	showExamples := flag.Bool("examples", false, "print the worked examples and exit")
	flag.Parse()

	if *showExamples {
		printExamples()
		return
	}

	params := pricing.OptionParams{
		Spot:         *spot,
		Strike:       *strike,
		TimeToExpiry: *years,
		RiskFreeRate: *rate,
		Volatility:   *vol,
	}
	if params.TimeToExpiry == 0 {
		date := *exp
		if date == "" {
			date = utils.NextMonthlyExpiration(time.Now())
		}
		t, err := utils.YearsToExpiration(date, time.Now(), cfg.Pricing.DaysPerYear)
		if err != nil {
			fail(err)
		}
		logger.Info.Printf("expiration %s -> T=%.6f years", date, t)
		params.TimeToExpiry = t
	}

	if *parity {
		call, err := pricing.PriceCall(params)
		if err != nil {
			fail(err)
		}
		put, err := pricing.PricePut(params)
		if err != nil {
			fail(err)
		}
		gap := pricing.ParityGap(call, put, params)
		if *asJSON {
			printJSON(map[string]interface{}{"call": call.Map(), "put": put.Map(), "parity_gap": gap})
			return
		}
		printInputs(params)
		printResult("Call", call)
		printResult("Put", put)
		fmt.Printf("\nParity residual C - P - (S - K*e^(-rT)): %.3e\n", gap)
		return
	}

	optionType, err := pricing.ParseOptionType(*optType)
	if err != nil {
		fail(err)
	}
	result, err := pricing.Price(optionType, params)
	if err != nil {
		fail(err)
	}

	if *asJSON {
		out := result.Map()
		out["theta_per_day"] = result.ThetaPerDay()
		printJSON(out)
		return
	}
	printInputs(params)
	name := optionType.String()
	printResult(strings.ToUpper(name[:1])+name[1:], result)
}

func printExamples() {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Option Pricing Examples")
	fmt.Println(strings.Repeat("=", 60))

	for i, ex := range examples {
		fmt.Printf("\n%d. %s:\n", i+1, ex.title)
		fmt.Println(strings.Repeat("-", 60))
		result, err := pricing.Price(ex.optionType, ex.params)
		if err != nil {
			fail(err)
		}
		printInputs(ex.params)
		printResult("Results", result)
	}
	fmt.Println("\n" + strings.Repeat("=", 60))
}

func printInputs(p pricing.OptionParams) {
	fmt.Printf("Spot Price:      $%.2f\n", p.Spot)
	fmt.Printf("Strike Price:    $%.2f\n", p.Strike)
	fmt.Printf("Time to Expiry:  %.4f years\n", p.TimeToExpiry)
	fmt.Printf("Risk-Free Rate:  %.2f%%\n", p.RiskFreeRate*100)
	fmt.Printf("Volatility:      %.2f%%\n", p.Volatility*100)
}

func printResult(label string, r pricing.Result) {
	fmt.Printf("\n%s:\n", label)
	fmt.Printf("  Option Price: $%.4f\n", r.Price)
	fmt.Printf("  Delta:  %.4f\n", r.Delta)
	fmt.Printf("  Gamma:  %.4f\n", r.Gamma)
	fmt.Printf("  Theta:  %.4f per year (%.4f per day)\n", r.Theta, r.ThetaPerDay())
	fmt.Printf("  Vega:   %.4f\n", r.Vega)
	fmt.Printf("  Rho:    %.4f\n", r.Rho)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "price: %v\n", err)
	os.Exit(1)
}
