// Package calcerr defines the failure values shared by the pricing and
// indicator engines. Every engine error wraps exactly one of these sentinels,
// so callers branch with errors.Is and read the wrapped message for detail.
package calcerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter reports a violated structural precondition on an
	// input: a non-positive price, time, volatility or period.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData reports a batch calculation over a series shorter
	// than the requested period.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNotReady reports a streaming accumulator that has not yet consumed
	// enough values to produce its first output.
	ErrNotReady = errors.New("not ready")
)

// InvalidParameter wraps ErrInvalidParameter with a formatted message.
func InvalidParameter(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// InsufficientData wraps ErrInsufficientData with a formatted message.
func InsufficientData(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInsufficientData, fmt.Sprintf(format, args...))
}

// NotReady wraps ErrNotReady with a formatted message.
func NotReady(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotReady, fmt.Sprintf(format, args...))
}
