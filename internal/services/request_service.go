package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jwaldner/finengine/internal/dto"
)

// ErrBadRequest marks bodies that could not be decoded at all.
var ErrBadRequest = errors.New("bad request")

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 8 << 20

// RequestService handles HTTP request parsing
type RequestService struct {
	maxBodyBytes int64
}

// NewRequestService creates a new request service
func NewRequestService() *RequestService {
	return &RequestService{maxBodyBytes: DefaultMaxBodyBytes}
}

// ParsePriceRequest parses an HTTP request into a PriceRequest
func (s *RequestService) ParsePriceRequest(r *http.Request) (*dto.PriceRequest, error) {
	var req dto.PriceRequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	normalizePrice(&req)
	return &req, nil
}

// ParseEMARequest parses a batch EMA request
func (s *RequestService) ParseEMARequest(r *http.Request) (*dto.EMARequest, error) {
	var req dto.EMARequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	if req.Prices == nil {
		return nil, fmt.Errorf("%w: prices are required", ErrBadRequest)
	}
	return &req, nil
}

// ParseStreamCreateRequest parses a stream creation request. An empty body
// is allowed and selects the default period.
func (s *RequestService) ParseStreamCreateRequest(r *http.Request) (*dto.StreamCreateRequest, error) {
	var req dto.StreamCreateRequest
	if err := s.decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &req, nil
}

// ParseStreamUpdateRequest parses a single stream value
func (s *RequestService) ParseStreamUpdateRequest(r *http.Request) (*dto.StreamUpdateRequest, error) {
	var req dto.StreamUpdateRequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	if req.Value == nil {
		return nil, fmt.Errorf("%w: value is required", ErrBadRequest)
	}
	return &req, nil
}

func (s *RequestService) decode(r *http.Request, v interface{}) error {
	if r.Method != http.MethodPost {
		return fmt.Errorf("%w: method not allowed: %s", ErrBadRequest, r.Method)
	}
	if r.Body == nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, io.EOF)
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body: %w", ErrBadRequest, err)
		}
		return fmt.Errorf("%w: failed to decode request: %v", ErrBadRequest, err)
	}
	return nil
}

func normalizePrice(req *dto.PriceRequest) {
	req.OptionType = strings.ToLower(strings.TrimSpace(req.OptionType))
	req.ExpirationDate = strings.TrimSpace(req.ExpirationDate)
}
