package services

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/jwaldner/finengine/calcerr"
	"github.com/jwaldner/finengine/indicator"
	"github.com/jwaldner/finengine/internal/config"
)

func TestStreamLifecycle(t *testing.T) {
	r := NewStreamRegistry(config.Default().Indicator)

	state, err := r.Create(intPtr(4))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if state.ID == "" || state.Ready || state.Pending != 4 || state.Value != nil {
		t.Fatalf("unexpected initial state: %+v", state)
	}

	for i, v := range []float64{10, 20, 30} {
		got, err := r.Update(state.ID, v)
		if !errors.Is(err, calcerr.ErrNotReady) {
			t.Fatalf("update %d: expected ErrNotReady, got %v", i, err)
		}
		if got == nil || got.Count != i+1 || got.Pending != 3-i {
			t.Fatalf("update %d: unexpected state %+v", i, got)
		}
	}

	got, err := r.Update(state.ID, 40)
	if err != nil {
		t.Fatalf("seeding update failed: %v", err)
	}
	if !got.Ready || got.Value == nil || *got.Value != 25 {
		t.Fatalf("expected seed 25, got %+v", got)
	}

	snap, err := r.Get(state.ID)
	if err != nil || *snap.Value != 25 {
		t.Fatalf("Get = %+v, %v", snap, err)
	}

	if err := r.Delete(state.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := r.Get(state.ID); !errors.Is(err, ErrStreamNotFound) {
		t.Errorf("expected ErrStreamNotFound after delete, got %v", err)
	}
	if err := r.Delete(state.ID); !errors.Is(err, ErrStreamNotFound) {
		t.Errorf("second delete: expected ErrStreamNotFound, got %v", err)
	}
}

func TestStreamMatchesBatch(t *testing.T) {
	r := NewStreamRegistry(config.Default().Indicator)
	series := []float64{44.1, 44.3, 44.0, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1}

	batch, err := indicator.Calculate(series, 3)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	state, _ := r.Create(intPtr(3))
	var streamed []float64
	for _, v := range series {
		got, err := r.Update(state.ID, v)
		if errors.Is(err, calcerr.ErrNotReady) {
			continue
		}
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		streamed = append(streamed, *got.Value)
	}

	if len(streamed) != len(batch) {
		t.Fatalf("streamed %d values, batch %d", len(streamed), len(batch))
	}
	for i := range batch {
		if streamed[i] != batch[i] {
			t.Errorf("value %d: stream %v != batch %v", i, streamed[i], batch[i])
		}
	}
}

func TestStreamErrors(t *testing.T) {
	cfg := config.Default().Indicator
	cfg.MaxStreams = 1
	r := NewStreamRegistry(cfg)

	if _, err := r.Create(intPtr(0)); !errors.Is(err, calcerr.ErrInvalidParameter) {
		t.Errorf("period 0: expected ErrInvalidParameter, got %v", err)
	}

	state, err := r.Create(nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if state.Period != cfg.DefaultPeriod {
		t.Errorf("nil period should use default %d, got %d", cfg.DefaultPeriod, state.Period)
	}
	if _, err := r.Create(nil); !errors.Is(err, ErrStreamLimit) {
		t.Errorf("expected ErrStreamLimit, got %v", err)
	}

	if _, err := r.Update(state.ID, math.Inf(1)); !errors.Is(err, calcerr.ErrInvalidParameter) {
		t.Errorf("infinite value: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := r.Update("missing", 1); !errors.Is(err, ErrStreamNotFound) {
		t.Errorf("unknown id: expected ErrStreamNotFound, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestStreamConcurrentUpdates(t *testing.T) {
	r := NewStreamRegistry(config.Default().Indicator)
	state, _ := r.Create(intPtr(5))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Update(state.ID, 100)
		}()
	}
	wg.Wait()

	snap, err := r.Get(state.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if snap.Count != 50 {
		t.Errorf("Count = %d, want 50", snap.Count)
	}
	if snap.Value == nil || math.Abs(*snap.Value-100) > 1e-9 {
		t.Errorf("constant input should give 100, got %v", snap.Value)
	}
}
