package models

import "time"

// PriceResponse represents a priced option with its Greeks
type PriceResponse struct {
	OptionType   string  `json:"option_type"`
	Price        float64 `json:"price"`
	Delta        float64 `json:"delta"`
	Gamma        float64 `json:"gamma"`
	Theta        float64 `json:"theta"`         // per year
	ThetaPerDay  float64 `json:"theta_per_day"` // theta / 365
	Vega         float64 `json:"vega"`          // per 1.00 of volatility
	Rho          float64 `json:"rho"`           // per 1.00 of rate
	TimeToExpiry float64 `json:"time_to_expiry"`
	RiskFreeRate float64 `json:"risk_free_rate"`
}

// ParityResponse holds a call/put pair priced on the same inputs.
// ParityGap is C - P - (S - K*e^(-rT)) and should be ~0.
type ParityResponse struct {
	Call      PriceResponse `json:"call"`
	Put       PriceResponse `json:"put"`
	ParityGap float64       `json:"parity_gap"`
}

// EMAResponse represents a batch EMA result.
// Values has len(prices)-period+1 entries; Values[0] is the seed and lines
// up with prices[period-1]. Aligned, when requested, has one entry per
// price with nil for the warm-up slots.
type EMAResponse struct {
	Period     int        `json:"period"`
	Multiplier float64    `json:"multiplier"`
	Count      int        `json:"count"`
	Values     []float64  `json:"values"`
	Aligned    []*float64 `json:"aligned,omitempty"`
}

// StreamState is a snapshot of a streaming EMA
type StreamState struct {
	ID         string    `json:"id"`
	Period     int       `json:"period"`
	Multiplier float64   `json:"multiplier"`
	Count      int       `json:"count"`
	Pending    int       `json:"pending"`
	Ready      bool      `json:"ready"`
	Value      *float64  `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PerformanceStats summarizes request timings since startup
type PerformanceStats struct {
	TotalRequests int64   `json:"total_requests"`
	AverageMs     float64 `json:"average_ms"`
	TotalMs       float64 `json:"total_ms"`
	SlowRequests  int64   `json:"slow_requests"`
	SlowPercent   float64 `json:"slow_percent"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status      string           `json:"status"`
	Uptime      float64          `json:"uptime_seconds"`
	Streams     int              `json:"streams"`
	Performance PerformanceStats `json:"performance"`
}
