package errors

import (
	"errors"
)

// define error kinds for the time value layer
var (
	ErrOverflow         = errors.New("overflow")
	ErrUnderflow        = errors.New("underflow")
	ErrNegativeDuration = errors.New("negative duration")
	ErrClockSkew        = errors.New("clock skew detected")
	ErrInvalidDate      = errors.New("invalid date")
)

// IsOverflow verifies error
func IsOverflow(err error) bool {
	return errors.Is(err, ErrOverflow)
}

// IsUnderflow verifies error
func IsUnderflow(err error) bool {
	return errors.Is(err, ErrUnderflow)
}

// IsNegativeDuration verifies error
func IsNegativeDuration(err error) bool {
	return errors.Is(err, ErrNegativeDuration)
}

// IsClockSkew verifies error
func IsClockSkew(err error) bool {
	return errors.Is(err, ErrClockSkew)
}

// IsInvalidDate verifies error
func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}
