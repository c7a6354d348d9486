package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jwaldner/finengine/internal/config"
	"github.com/jwaldner/finengine/internal/models"
	"github.com/jwaldner/finengine/internal/services"
)

// NewRouter wires every API route onto a mux router. Requests are timed
// by perf.
func NewRouter(cfg *config.Config, perf *PerformanceMonitor) *mux.Router {
	requests := services.NewRequestService()
	streams := services.NewStreamRegistry(cfg.Indicator)

	pricingHandler := NewPricingHandler(requests, services.NewPricingService(cfg.Pricing))
	emaHandler := NewEMAHandler(requests, services.NewIndicatorService(cfg.Indicator), streams)

	r := mux.NewRouter()
	r.Use(RequestIDMiddleware, LoggingMiddleware, perf.Middleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", healthHandler(time.Now(), streams, perf)).Methods("GET")

	// Black-Scholes
	api.HandleFunc("/price", pricingHandler.PriceHandler).Methods("POST")
	api.HandleFunc("/price/parity", pricingHandler.ParityHandler).Methods("POST")

	// EMA, batch and streaming
	api.HandleFunc("/ema", emaHandler.CalculateHandler).Methods("POST")
	api.HandleFunc("/ema/streams", emaHandler.CreateStreamHandler).Methods("POST")
	api.HandleFunc("/ema/streams/{id}", emaHandler.GetStreamHandler).Methods("GET")
	api.HandleFunc("/ema/streams/{id}", emaHandler.DeleteStreamHandler).Methods("DELETE")
	api.HandleFunc("/ema/streams/{id}/update", emaHandler.UpdateStreamHandler).Methods("POST")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		sendError(w, http.StatusNotFound, "Resource not found", req.URL.Path+" not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed", req.Method+" "+req.URL.Path)
	})

	return r
}

func healthHandler(started time.Time, streams *services.StreamRegistry, perf *PerformanceMonitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendSuccess(w, http.StatusOK, models.HealthResponse{
			Status:      "ok",
			Uptime:      time.Since(started).Seconds(),
			Streams:     streams.Len(),
			Performance: perf.Stats(),
		}, "")
	}
}
