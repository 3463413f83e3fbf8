package crossover

import "errors"

var (
	// ErrInvalidOrder is returned for orders that are not positive even integers.
	ErrInvalidOrder = errors.New("crossover: order must be a positive even integer")
	// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
	ErrInvalidSampleRate = errors.New("crossover: sample rate must be positive and finite")
	// ErrInvalidFrequency is returned for cutoffs outside (0, Nyquist).
	ErrInvalidFrequency = errors.New("crossover: frequency out of range")
	// ErrNoFrequencies is returned when a multi-way network gets no cutoffs.
	ErrNoFrequencies = errors.New("crossover: at least one frequency is required")
	// ErrNotAscending is returned when cutoffs are not strictly ascending.
	ErrNotAscending = errors.New("crossover: frequencies must be strictly ascending")
)
