package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/internal/config"
	"github.com/jwaldner/finengine/internal/dto"
)

func floatPtr(v float64) *float64 { return &v }

func newTestPricingService(cfg config.PricingConfig) *PricingService {
	s := NewPricingService(cfg)
	s.now = func() time.Time { return time.Date(2025, 12, 16, 10, 0, 0, 0, time.UTC) }
	return s
}

func referenceRequest() *dto.PriceRequest {
	return &dto.PriceRequest{
		OptionType:   "call",
		Spot:         100,
		Strike:       105,
		TimeToExpiry: floatPtr(1),
		RiskFreeRate: floatPtr(0.05),
		Volatility:   0.2,
	}
}

func TestPriceReferenceCall(t *testing.T) {
	s := newTestPricingService(config.Default().Pricing)

	resp, err := s.Price(context.Background(), referenceRequest())
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}
	if resp.OptionType != "call" {
		t.Errorf("OptionType = %q", resp.OptionType)
	}
	if math.Abs(resp.Price-8.021352235) > 1e-6 {
		t.Errorf("Price = %v, want 8.0214", resp.Price)
	}
	if math.Abs(resp.ThetaPerDay-resp.Theta/365) > 1e-12 {
		t.Errorf("ThetaPerDay = %v, want theta/365", resp.ThetaPerDay)
	}
	if resp.TimeToExpiry != 1 || resp.RiskFreeRate != 0.05 {
		t.Errorf("resolved inputs not echoed: %+v", resp)
	}
}

func TestPriceFromExpirationDate(t *testing.T) {
	s := newTestPricingService(config.Default().Pricing)
	req := referenceRequest()
	req.TimeToExpiry = nil
	req.ExpirationDate = "2026-01-16"

	resp, err := s.Price(context.Background(), req)
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}
	if want := 31.0 / 365.0; math.Abs(resp.TimeToExpiry-want) > 1e-12 {
		t.Errorf("TimeToExpiry = %v, want %v", resp.TimeToExpiry, want)
	}
}

func TestPriceTimeInputs(t *testing.T) {
	s := newTestPricingService(config.Default().Pricing)

	both := referenceRequest()
	both.ExpirationDate = "2026-01-16"
	if _, err := s.Price(context.Background(), both); !errors.Is(err, calcerr.ErrInvalidParameter) {
		t.Errorf("both time inputs: expected ErrInvalidParameter, got %v", err)
	}

	neither := referenceRequest()
	neither.TimeToExpiry = nil
	if _, err := s.Price(context.Background(), neither); !errors.Is(err, calcerr.ErrInvalidParameter) {
		t.Errorf("no time input: expected ErrInvalidParameter, got %v", err)
	}

	expired := referenceRequest()
	expired.TimeToExpiry = nil
	expired.ExpirationDate = "2025-12-01"
	if _, err := s.Price(context.Background(), expired); !errors.Is(err, calcerr.ErrInvalidParameter) {
		t.Errorf("past expiration: expected ErrInvalidParameter, got %v", err)
	}
}

func TestPriceRiskFreeDefaults(t *testing.T) {
	cfg := config.Default().Pricing
	cfg.DefaultRiskFree = 0.04
	s := newTestPricingService(cfg)

	req := referenceRequest()
	req.RiskFreeRate = nil
	resp, err := s.Price(context.Background(), req)
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}
	if resp.RiskFreeRate != 0.04 {
		t.Errorf("RiskFreeRate = %v, want configured default 0.04", resp.RiskFreeRate)
	}

	cfg.RequireRiskFree = true
	strict := newTestPricingService(cfg)
	if _, err := strict.Price(context.Background(), req); !errors.Is(err, calcerr.ErrInvalidParameter) {
		t.Errorf("missing rate with RequireRiskFree: expected ErrInvalidParameter, got %v", err)
	}
}

func TestPriceRejectsBadInputs(t *testing.T) {
	s := newTestPricingService(config.Default().Pricing)

	badType := referenceRequest()
	badType.OptionType = "straddle"
	if _, err := s.Price(context.Background(), badType); !errors.Is(err, calcerr.ErrInvalidParameter) {
		t.Errorf("bad option type: expected ErrInvalidParameter, got %v", err)
	}

	badVol := referenceRequest()
	badVol.Volatility = 0
	if _, err := s.Price(context.Background(), badVol); !errors.Is(err, calcerr.ErrInvalidParameter) {
		t.Errorf("zero volatility: expected ErrInvalidParameter, got %v", err)
	}
}

func TestPriceCancelledContext(t *testing.T) {
	s := newTestPricingService(config.Default().Pricing)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Price(ctx, referenceRequest()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParity(t *testing.T) {
	s := newTestPricingService(config.Default().Pricing)
	req := referenceRequest()
	req.OptionType = ""

	resp, err := s.Parity(context.Background(), req)
	if err != nil {
		t.Fatalf("Parity failed: %v", err)
	}
	if resp.Call.OptionType != "call" || resp.Put.OptionType != "put" {
		t.Errorf("unexpected legs: %s / %s", resp.Call.OptionType, resp.Put.OptionType)
	}
	if math.Abs(resp.ParityGap) > 1e-9 {
		t.Errorf("ParityGap = %v, want ~0", resp.ParityGap)
	}
	if resp.Call.Gamma != resp.Put.Gamma {
		t.Errorf("call and put gamma differ: %v vs %v", resp.Call.Gamma, resp.Put.Gamma)
	}
}
