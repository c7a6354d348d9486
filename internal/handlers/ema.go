package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/internal/services"
)

// EMAHandler serves batch and streaming EMA endpoints
type EMAHandler struct {
	requests   *services.RequestService
	indicators *services.IndicatorService
	streams    *services.StreamRegistry
}

// NewEMAHandler creates an EMA handler
func NewEMAHandler(requests *services.RequestService, indicators *services.IndicatorService, streams *services.StreamRegistry) *EMAHandler {
	return &EMAHandler{requests: requests, indicators: indicators, streams: streams}
}

// CalculateHandler runs a batch EMA
func (h *EMAHandler) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.ParseEMARequest(r)
	if err != nil {
		sendFailure(w, r, err)
		return
	}

	resp, err := h.indicators.EMA(r.Context(), req)
	if err != nil {
		sendFailure(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, resp, "")
}

// CreateStreamHandler opens a streaming EMA
func (h *EMAHandler) CreateStreamHandler(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.ParseStreamCreateRequest(r)
	if err != nil {
		sendFailure(w, r, err)
		return
	}

	state, err := h.streams.Create(req.Period)
	if err != nil {
		sendFailure(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/ema/streams/"+state.ID)
	sendSuccess(w, http.StatusCreated, state, "Stream created")
}

// GetStreamHandler returns a stream snapshot
func (h *EMAHandler) GetStreamHandler(w http.ResponseWriter, r *http.Request) {
	state, err := h.streams.Get(mux.Vars(r)["id"])
	if err != nil {
		sendFailure(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, state, "")
}

// DeleteStreamHandler closes a stream
func (h *EMAHandler) DeleteStreamHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.streams.Delete(mux.Vars(r)["id"]); err != nil {
		sendFailure(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, nil, "Stream deleted")
}

// UpdateStreamHandler feeds one value. During warm-up it answers 202 with
// the stream state and ready=false.
func (h *EMAHandler) UpdateStreamHandler(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.ParseStreamUpdateRequest(r)
	if err != nil {
		sendFailure(w, r, err)
		return
	}

	state, err := h.streams.Update(mux.Vars(r)["id"], *req.Value)
	switch {
	case errors.Is(err, calcerr.ErrNotReady):
		sendSuccess(w, http.StatusAccepted, state, err.Error())
	case err != nil:
		sendFailure(w, r, err)
	default:
		sendSuccess(w, http.StatusOK, state, "")
	}
}
