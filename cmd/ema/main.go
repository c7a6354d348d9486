package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/indicator"
	"github.com/jwaldner/finengine/internal/config"
	"github.com/jwaldner/finengine/internal/logger"
	"github.com/jwaldner/finengine/internal/services"
)

func main() {
	cfg := config.Load()
	logger.InitWithWriter(cfg.Logging.LogLevel, os.Stderr)

	period := flag.Int("period", cfg.Indicator.DefaultPeriod, "EMA period")
	stream := flag.Bool("stream", false, "feed prices one at a time and print each update")
	compare := flag.String("compare", "", "comma-separated periods to print side by side, e.g. 3,5,10")
	trend := flag.String("trend", "", "fast,slow periods for a crossover signal, e.g. 3,5")
	flag.Parse()

	prices, err := readPrices(flag.Args(), os.Stdin)
	if err != nil {
		fail(err)
	}

	switch {
	case *stream:
		runStream(prices, *period)
	case *compare != "":
		periods, err := parsePeriods(*compare)
		if err != nil {
			fail(err)
		}
		runCompare(prices, periods)
	case *trend != "":
		periods, err := parsePeriods(*trend)
		if err != nil {
			fail(err)
		}
		if len(periods) != 2 {
			fail(calcerr.InvalidParameter("-trend needs exactly two periods, got %d", len(periods)))
		}
		runTrend(prices, periods[0], periods[1])
	default:
		runBatch(prices, *period)
	}
}

func runBatch(prices []float64, period int) {
	values, err := indicator.Calculate(prices, period)
	if err != nil {
		fail(err)
	}
	aligned := services.Align(values, len(prices))

	fmt.Printf("Period: %d\nNumber of prices: %d\n\n", period, len(prices))
	fmt.Println("Price  | EMA")
	fmt.Println(strings.Repeat("-", 20))
	for i, price := range prices {
		if aligned[i] == nil {
			fmt.Printf("%6.2f | N/A (warming up)\n", price)
			continue
		}
		fmt.Printf("%6.2f | %6.2f\n", price, *aligned[i])
	}
}

func runStream(prices []float64, period int) {
	ema, err := indicator.NewEMA(period)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Period: %d\nAlpha (smoothing factor): %.4f\n\n", period, ema.Multiplier())
	fmt.Println("Price  | Updated EMA")
	fmt.Println(strings.Repeat("-", 25))
	for _, price := range prices {
		value, err := ema.Update(price)
		switch {
		case errors.Is(err, calcerr.ErrNotReady):
			fmt.Printf("%6.2f | warming up (%d more)\n", price, ema.Pending())
		case err != nil:
			fail(err)
		default:
			fmt.Printf("%6.2f | %6.2f\n", price, value)
		}
	}

	if value, ok := ema.Value(); ok {
		fmt.Printf("\nFinal EMA: %.2f\n", value)
	} else {
		fmt.Printf("\nNot enough prices for a seed (%d of %d)\n", ema.Count(), period)
	}
}

func runCompare(prices []float64, periods []int) {
	columns := make([][]*float64, len(periods))
	header := "Price "
	for i, p := range periods {
		values, err := indicator.Calculate(prices, p)
		if err != nil {
			fail(fmt.Errorf("EMA-%d: %w", p, err))
		}
		columns[i] = services.Align(values, len(prices))
		header += fmt.Sprintf(" | %-6s", fmt.Sprintf("EMA-%d", p))
	}

	fmt.Println(header)
	fmt.Println(strings.Repeat("-", len(header)))
	for row, price := range prices {
		line := fmt.Sprintf("%6.2f", price)
		for _, col := range columns {
			line += " | " + cell(col[row], 6)
		}
		fmt.Println(line)
	}
}

func runTrend(prices []float64, fast, slow int) {
	fastValues, err := indicator.Calculate(prices, fast)
	if err != nil {
		fail(err)
	}
	slowValues, err := indicator.Calculate(prices, slow)
	if err != nil {
		fail(err)
	}
	fastCol := services.Align(fastValues, len(prices))
	slowCol := services.Align(slowValues, len(prices))

	fmt.Printf("Fast EMA: %d-period\nSlow EMA: %d-period\n\n", fast, slow)
	fmt.Println("Price  | Fast EMA | Slow EMA | Signal")
	fmt.Println(strings.Repeat("-", 50))
	for i, price := range prices {
		if fastCol[i] == nil || slowCol[i] == nil {
			fmt.Printf("%6.2f |     N/A  |     N/A  | Warming up...\n", price)
			continue
		}
		fmt.Printf("%6.2f | %8.2f | %8.2f | %s\n", price, *fastCol[i], *slowCol[i], signal(*fastCol[i], *slowCol[i]))
	}
}

func signal(fast, slow float64) string {
	switch {
	case fast > slow:
		return "BULLISH"
	case fast < slow:
		return "BEARISH"
	default:
		return "NEUTRAL"
	}
}

func cell(v *float64, width int) string {
	if v == nil {
		return fmt.Sprintf("%*s", width, "N/A")
	}
	return fmt.Sprintf("%*.2f", width, *v)
}

// readPrices takes prices from args, or from r (whitespace or comma
// separated) when there are none.
func readPrices(args []string, r io.Reader) ([]float64, error) {
	var fields []string
	if len(args) > 0 {
		fields = args
	} else {
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			fields = append(fields, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading prices: %w", err)
		}
	}

	var prices []float64
	for _, field := range fields {
		for _, part := range strings.Split(field, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, calcerr.InvalidParameter("not a price: %q", part)
			}
			prices = append(prices, v)
		}
	}
	return prices, nil
}

func parsePeriods(s string) ([]int, error) {
	var periods []int
	for _, part := range strings.Split(s, ",") {
		p, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, calcerr.InvalidParameter("not a period: %q", part)
		}
		periods = append(periods, p)
	}
	return periods, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "ema: %v\n", err)
	os.Exit(1)
}
