package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/internal/logger"
	"github.com/jwaldner/finengine/internal/services"
)

// Response is the envelope for every API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func sendSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	respond(w, status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func sendError(w http.ResponseWriter, status int, errorMsg, message string) {
	respond(w, status, Response{
		Success: false,
		Message: message,
		Error:   errorMsg,
	})
}

// sendFailure maps a service error onto a status code.
func sendFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error.Printf("%s %s [%s]: %v", r.Method, r.URL.Path, RequestID(r.Context()), err)
		sendError(w, status, "An internal server error occurred", message)
		return
	}
	logger.Debug.Printf("%s %s [%s]: %v", r.Method, r.URL.Path, RequestID(r.Context()), err)
	sendError(w, status, err.Error(), message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrBadRequest):
		return http.StatusBadRequest, "Malformed request"
	case errors.Is(err, calcerr.ErrInvalidParameter):
		return http.StatusUnprocessableEntity, "Validation failed"
	case errors.Is(err, calcerr.ErrInsufficientData):
		return http.StatusUnprocessableEntity, "Insufficient data"
	case errors.Is(err, services.ErrStreamNotFound):
		return http.StatusNotFound, "Stream not found"
	case errors.Is(err, services.ErrStreamLimit):
		return http.StatusTooManyRequests, "Too many open streams"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Request cancelled"
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

func respond(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error.Printf("encoding response: %v", err)
	}
}
