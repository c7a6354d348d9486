package indicator

import (
	"fmt"

	"github.com/jwaldner/finengine/calcerr"
)

type phase int

const (
	unseeded phase = iota
	seeded
)

// EMA is a streaming accumulator for one price stream.
//
// It starts unseeded, buffering raw values. The period-th value produces the
// seed (the buffer mean) and moves it to seeded, where every further value
// applies the recurrence. It never returns to unseeded.
//
// An EMA has a single owner; concurrent Update calls need external locking.
type EMA struct {
	period     int
	multiplier float64

	phase   phase
	buffer  []float64 // unseeded only
	current float64   // seeded only
	count   int
}

// NewEMA creates an unseeded accumulator.
func NewEMA(period int) (*EMA, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	return &EMA{
		period:     period,
		multiplier: Multiplier(period),
		phase:      unseeded,
		buffer:     make([]float64, 0, period),
	}, nil
}

// Update consumes one value. Until period values have arrived it returns an
// error wrapping calcerr.ErrNotReady; the period-th call returns the seed and
// each later call returns the updated average.
func (e *EMA) Update(value float64) (float64, error) {
	e.count++

	switch e.phase {
	case unseeded:
		e.buffer = append(e.buffer, value)
		if len(e.buffer) < e.period {
			return 0, calcerr.NotReady("%d of %d values buffered", len(e.buffer), e.period)
		}
		e.current = mean(e.buffer)
		e.buffer = nil
		e.phase = seeded
	case seeded:
		e.current = step(e.current, value, e.multiplier)
	}
	return e.current, nil
}

// Value returns the current average and whether the accumulator is seeded.
func (e *EMA) Value() (float64, bool) {
	if e.phase != seeded {
		return 0, false
	}
	return e.current, true
}

// Ready reports whether the seed has been produced.
func (e *EMA) Ready() bool { return e.phase == seeded }

// Period returns the smoothing period.
func (e *EMA) Period() int { return e.period }

// Multiplier returns the smoothing factor 2/(period+1).
func (e *EMA) Multiplier() float64 { return e.multiplier }

// Count returns how many values have been consumed.
func (e *EMA) Count() int { return e.count }

// Pending returns how many more values are needed before the seed.
func (e *EMA) Pending() int {
	if e.phase == seeded {
		return 0
	}
	return e.period - len(e.buffer)
}

func (e *EMA) String() string {
	return fmt.Sprintf("EMA(period=%d)", e.period)
}
