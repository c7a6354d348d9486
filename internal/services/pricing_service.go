package services

import (
	"context"
	"time"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/internal/config"
	"github.com/jwaldner/finengine/internal/dto"
	"github.com/jwaldner/finengine/internal/logger"
	"github.com/jwaldner/finengine/internal/models"
	"github.com/jwaldner/finengine/internal/utils"
	"github.com/jwaldner/finengine/pricing"
)

// PricingService turns API requests into Black-Scholes valuations
type PricingService struct {
	cfg config.PricingConfig
	now func() time.Time
}

// NewPricingService creates a pricing service with the given defaults
func NewPricingService(cfg config.PricingConfig) *PricingService {
	return &PricingService{cfg: cfg, now: time.Now}
}

// Price values a single call or put.
func (s *PricingService) Price(ctx context.Context, req *dto.PriceRequest) (*models.PriceResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	optionType, err := pricing.ParseOptionType(req.OptionType)
	if err != nil {
		return nil, err
	}
	params, err := s.resolveParams(req)
	if err != nil {
		return nil, err
	}

	result, err := pricing.Price(optionType, params)
	if err != nil {
		return nil, err
	}

	logger.Debug.Printf("priced %s S=%.4f K=%.4f T=%.6f r=%.4f vol=%.4f -> %.6f",
		optionType, params.Spot, params.Strike, params.TimeToExpiry, params.RiskFreeRate, params.Volatility, result.Price)

	resp := toResponse(optionType, params, result)
	return &resp, nil
}

// Parity prices the call and put on the same inputs and reports the
// put-call parity residual. The request's option type is ignored.
func (s *PricingService) Parity(ctx context.Context, req *dto.PriceRequest) (*models.ParityResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, err := s.resolveParams(req)
	if err != nil {
		return nil, err
	}

	call, err := pricing.PriceCall(params)
	if err != nil {
		return nil, err
	}
	put, err := pricing.PricePut(params)
	if err != nil {
		return nil, err
	}

	gap := pricing.ParityGap(call, put, params)
	logger.Debug.Printf("parity S=%.4f K=%.4f T=%.6f gap=%.3e", params.Spot, params.Strike, params.TimeToExpiry, gap)

	return &models.ParityResponse{
		Call:      toResponse(pricing.Call, params, call),
		Put:       toResponse(pricing.Put, params, put),
		ParityGap: gap,
	}, nil
}

func (s *PricingService) resolveParams(req *dto.PriceRequest) (pricing.OptionParams, error) {
	params := pricing.OptionParams{
		Spot:       req.Spot,
		Strike:     req.Strike,
		Volatility: req.Volatility,
	}

	switch {
	case req.TimeToExpiry != nil && req.ExpirationDate != "":
		return params, calcerr.InvalidParameter("set only one of time_to_expiry and expiration_date")
	case req.TimeToExpiry != nil:
		params.TimeToExpiry = *req.TimeToExpiry
	case req.ExpirationDate != "":
		years, err := utils.YearsToExpiration(req.ExpirationDate, s.now(), s.cfg.DaysPerYear)
		if err != nil {
			return params, err
		}
		params.TimeToExpiry = years
	default:
		return params, calcerr.InvalidParameter("time_to_expiry or expiration_date is required")
	}

	switch {
	case req.RiskFreeRate != nil:
		params.RiskFreeRate = *req.RiskFreeRate
	case s.cfg.RequireRiskFree:
		return params, calcerr.InvalidParameter("risk_free_rate is required")
	default:
		params.RiskFreeRate = s.cfg.DefaultRiskFree
	}

	return params, params.Validate()
}

func toResponse(optionType pricing.OptionType, params pricing.OptionParams, r pricing.Result) models.PriceResponse {
	return models.PriceResponse{
		OptionType:   optionType.String(),
		Price:        r.Price,
		Delta:        r.Delta,
		Gamma:        r.Gamma,
		Theta:        r.Theta,
		ThetaPerDay:  r.ThetaPerDay(),
		Vega:         r.Vega,
		Rho:          r.Rho,
		TimeToExpiry: params.TimeToExpiry,
		RiskFreeRate: params.RiskFreeRate,
	}
}
