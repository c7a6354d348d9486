package dto

// PriceRequest represents a single option pricing request.
// Exactly one of TimeToExpiry or ExpirationDate must be set. A nil
// RiskFreeRate falls back to the configured default.
type PriceRequest struct {
	OptionType     string   `json:"option_type"` // "call" or "put"; ignored by parity
	Spot           float64  `json:"spot"`
	Strike         float64  `json:"strike"`
	TimeToExpiry   *float64 `json:"time_to_expiry,omitempty"`  // years
	ExpirationDate string   `json:"expiration_date,omitempty"` // YYYY-MM-DD
	RiskFreeRate   *float64 `json:"risk_free_rate,omitempty"`
	Volatility     float64  `json:"volatility"`
}

// EMARequest represents a batch EMA request
type EMARequest struct {
	Prices  []float64 `json:"prices"`
	Period  *int      `json:"period,omitempty"`  // nil = configured default
	Aligned bool      `json:"aligned,omitempty"` // one output slot per input, null during warm-up
}

// StreamCreateRequest opens a streaming EMA
type StreamCreateRequest struct {
	Period *int `json:"period,omitempty"`
}

// StreamUpdateRequest feeds one value into a stream
type StreamUpdateRequest struct {
	Value *float64 `json:"value"`
}
