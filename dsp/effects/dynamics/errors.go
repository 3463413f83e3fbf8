package dynamics

import "errors"

var (
	// ErrInvalidThreshold is returned for thresholds that are negative or not finite.
	ErrInvalidThreshold = errors.New("dynamics: threshold must be finite and >= 0")
	// ErrInvalidRatio is returned for ratios below 1 or not finite.
	ErrInvalidRatio = errors.New("dynamics: ratio must be finite and >= 1")
	// ErrInvalidCoefficient is returned for smoothing coefficients outside (0, 1].
	ErrInvalidCoefficient = errors.New("dynamics: smoothing coefficient must be in (0, 1]")
	// ErrInvalidBands is returned for empty or non-contiguous band layouts.
	ErrInvalidBands = errors.New("dynamics: invalid band layout")
	// ErrStateSize is returned when restored state does not match the band count.
	ErrStateSize = errors.New("dynamics: state length mismatch")
)
