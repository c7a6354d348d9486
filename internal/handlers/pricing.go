package handlers

import (
	"net/http"

	"github.com/jwaldner/finengine/internal/services"
)

// PricingHandler serves the Black-Scholes endpoints - HTTP layer only
type PricingHandler struct {
	requests *services.RequestService
	pricing  *services.PricingService
}

// NewPricingHandler creates a pricing handler
func NewPricingHandler(requests *services.RequestService, pricing *services.PricingService) *PricingHandler {
	return &PricingHandler{requests: requests, pricing: pricing}
}

// PriceHandler prices one call or put
func (h *PricingHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.ParsePriceRequest(r)
	if err != nil {
		sendFailure(w, r, err)
		return
	}

	resp, err := h.pricing.Price(r.Context(), req)
	if err != nil {
		sendFailure(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, resp, "")
}

// ParityHandler prices the call/put pair and the parity residual
func (h *PricingHandler) ParityHandler(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.ParsePriceRequest(r)
	if err != nil {
		sendFailure(w, r, err)
		return
	}

	resp, err := h.pricing.Parity(r.Context(), req)
	if err != nil {
		sendFailure(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, resp, "")
}
