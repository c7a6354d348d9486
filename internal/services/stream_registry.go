package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/indicator"
	"github.com/jwaldner/finengine/internal/config"
	"github.com/jwaldner/finengine/internal/logger"
	"github.com/jwaldner/finengine/internal/models"
	"github.com/jwaldner/finengine/internal/numeric"
)

var (
	// ErrStreamNotFound is returned for unknown stream ids.
	ErrStreamNotFound = errors.New("stream not found")
	// ErrStreamLimit is returned when max_streams streams are open.
	ErrStreamLimit = errors.New("stream limit reached")
)

type stream struct {
	mu      sync.Mutex
	id      string
	ema     *indicator.EMA
	created time.Time
	updated time.Time
}

func (s *stream) snapshot() *models.StreamState {
	state := &models.StreamState{
		ID:         s.id,
		Period:     s.ema.Period(),
		Multiplier: s.ema.Multiplier(),
		Count:      s.ema.Count(),
		Pending:    s.ema.Pending(),
		Ready:      s.ema.Ready(),
		CreatedAt:  s.created,
		UpdatedAt:  s.updated,
	}
	if v, ok := s.ema.Value(); ok {
		state.Value = &v
	}
	return state
}

// StreamRegistry owns the open streaming EMAs. Each stream has its own lock
// so updates to different streams do not contend.
type StreamRegistry struct {
	mu            sync.RWMutex
	streams       map[string]*stream
	defaultPeriod int
	maxStreams    int // 0 = unlimited
	now           func() time.Time
}

// NewStreamRegistry creates an empty registry
func NewStreamRegistry(cfg config.IndicatorConfig) *StreamRegistry {
	return &StreamRegistry{
		streams:       make(map[string]*stream),
		defaultPeriod: cfg.DefaultPeriod,
		maxStreams:    cfg.MaxStreams,
		now:           time.Now,
	}
}

// Create opens a new unseeded stream. A nil period selects the default.
func (r *StreamRegistry) Create(period *int) (*models.StreamState, error) {
	p := r.defaultPeriod
	if period != nil {
		p = *period
	}
	ema, err := indicator.NewEMA(p)
	if err != nil {
		return nil, err
	}

	now := r.now()
	s := &stream{id: uuid.New().String(), ema: ema, created: now, updated: now}
	state := s.snapshot()

	r.mu.Lock()
	if r.maxStreams > 0 && len(r.streams) >= r.maxStreams {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %d open", ErrStreamLimit, r.maxStreams)
	}
	r.streams[s.id] = s
	r.mu.Unlock()

	logger.Info.Printf("stream %s opened with %s", s.id, ema)
	return state, nil
}

// Update feeds one value into a stream. While the stream is still warming
// up the returned state is valid and the error wraps calcerr.ErrNotReady.
func (r *StreamRegistry) Update(id string, value float64) (*models.StreamState, error) {
	if !numeric.IsFinite(value) {
		return nil, calcerr.InvalidParameter("value must be finite, got %v", value)
	}
	s, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, updateErr := s.ema.Update(value)
	s.updated = r.now()
	state := s.snapshot()

	if logger.Verbose.Enabled() {
		logger.Verbose.WithFields(logrus.Fields{
			"stream": id,
			"count":  state.Count,
			"ready":  state.Ready,
		}).Trace("stream update")
	}
	return state, updateErr
}

// Get returns a snapshot of a stream.
func (r *StreamRegistry) Get(id string) (*models.StreamState, error) {
	s, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Delete closes a stream.
func (r *StreamRegistry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.streams[id]; !ok {
		return fmt.Errorf("%w: %s", ErrStreamNotFound, id)
	}
	delete(r.streams, id)
	logger.Info.Printf("stream %s closed", id)
	return nil
}

// Len returns the number of open streams.
func (r *StreamRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.streams)
}

func (r *StreamRegistry) lookup(id string) (*stream, error) {
	r.mu.RLock()
	s, ok := r.streams[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStreamNotFound, id)
	}
	return s, nil
}
