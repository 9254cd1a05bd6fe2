package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Sample construction errors
	ErrInvalidSample = errors.New("invalid binned sample")

	// Joint computation errors
	ErrShapeMismatch    = errors.New("bin edges mismatch")
	ErrDegenerateSample = errors.New("degenerate sample")
	ErrInsufficientDOF  = errors.New("insufficient degrees of freedom")
)

// Error constructors with context

// NewInvalidSampleError reports a violated sample invariant. Pass index < 0
// when the violation is not tied to a specific bin.
func NewInvalidSampleError(sample string, index int, reason string) error {
	if index < 0 {
		return fmt.Errorf("%w: sample %q: %s", ErrInvalidSample, sample, reason)
	}
	return fmt.Errorf("%w: sample %q at index %d: %s", ErrInvalidSample, sample, index, reason)
}

func NewShapeMismatchError(a, b, detail string) error {
	return fmt.Errorf("%w: samples %q and %q: %s", ErrShapeMismatch, a, b, detail)
}

func NewDegenerateSampleError(sample string) error {
	return fmt.Errorf("%w: sample %q has zero total count", ErrDegenerateSample, sample)
}

func NewInsufficientDOFError(binsUsed, freeParams int) error {
	return fmt.Errorf("%w: %d free parameters exceed %d usable bins", ErrInsufficientDOF, freeParams, binsUsed)
}

// Error checking helpers
func IsInvalidSample(err error) bool {
	return errors.Is(err, ErrInvalidSample)
}

func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

func IsDegenerateSample(err error) bool {
	return errors.Is(err, ErrDegenerateSample)
}

func IsInsufficientDOF(err error) bool {
	return errors.Is(err, ErrInsufficientDOF)
}
