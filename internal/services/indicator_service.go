package services

import (
	"context"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/indicator"
	"github.com/jwaldner/finengine/internal/config"
	"github.com/jwaldner/finengine/internal/dto"
	"github.com/jwaldner/finengine/internal/logger"
	"github.com/jwaldner/finengine/internal/models"
	"github.com/jwaldner/finengine/internal/numeric"
)

// IndicatorService runs batch EMA calculations
type IndicatorService struct {
	cfg config.IndicatorConfig
}

// NewIndicatorService creates an indicator service with the given limits
func NewIndicatorService(cfg config.IndicatorConfig) *IndicatorService {
	return &IndicatorService{cfg: cfg}
}

// EMA computes the exponential moving average of req.Prices.
func (s *IndicatorService) EMA(ctx context.Context, req *dto.EMARequest) (*models.EMAResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	period := s.cfg.DefaultPeriod
	if req.Period != nil {
		period = *req.Period
	}
	if limit := s.cfg.MaxSeriesLength; limit > 0 && len(req.Prices) > limit {
		return nil, calcerr.InvalidParameter("series has %d values, limit is %d", len(req.Prices), limit)
	}
	if err := checkSeries(req.Prices); err != nil {
		return nil, err
	}

	values, err := indicator.Calculate(req.Prices, period)
	if err != nil {
		return nil, err
	}

	resp := &models.EMAResponse{
		Period:     period,
		Multiplier: indicator.Multiplier(period),
		Count:      len(values),
		Values:     values,
	}
	if req.Aligned {
		resp.Aligned = Align(values, len(req.Prices))
	}

	logger.Debug.Printf("EMA period=%d over %d prices -> %d values", period, len(req.Prices), len(values))
	return resp, nil
}

// Align pads values on the left with nils so that it has n entries and
// values[i] sits at the index of the input it was computed from.
func Align(values []float64, n int) []*float64 {
	aligned := make([]*float64, n)
	offset := n - len(values)
	for i := range values {
		aligned[offset+i] = &values[i]
	}
	return aligned
}

func checkSeries(prices []float64) error {
	for i, p := range prices {
		if !numeric.IsFinite(p) {
			return calcerr.InvalidParameter("prices[%d] must be finite, got %v", i, p)
		}
	}
	return nil
}
