package denoise

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	// DefaultNoiseLevel is the amplitude treated as the noise floor.
	DefaultNoiseLevel = 0.1
	// DefaultOverSubtraction scales the noise level before subtracting it.
	DefaultOverSubtraction = 2.0
	// DefaultResidual is the fraction of the input kept when subtraction
	// overshoots zero.
	DefaultResidual = 0.1
)

var (
	// ErrInvalidNoiseLevel is returned for negative or non-finite noise levels.
	ErrInvalidNoiseLevel = errors.New("denoise: noise level must be finite and >= 0")
	// ErrInvalidOverSubtraction is returned for negative or non-finite factors.
	ErrInvalidOverSubtraction = errors.New("denoise: over-subtraction must be finite and >= 0")
	// ErrInvalidResidual is returned for residuals outside [0, 1].
	ErrInvalidResidual = errors.New("denoise: residual must be in [0, 1]")
)

// Params configures the noise reducer.
type Params struct {
	NoiseLevel      float64 `json:"noiseLevel"`
	OverSubtraction float64 `json:"overSubtraction"`
	Residual        float64 `json:"residual"`
}

// DefaultParams returns noise level 0.1, over-subtraction 2 and residual 0.1.
func DefaultParams() Params {
	return Params{
		NoiseLevel:      DefaultNoiseLevel,
		OverSubtraction: DefaultOverSubtraction,
		Residual:        DefaultResidual,
	}
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	if p.NoiseLevel < 0 || !core.IsFinite(p.NoiseLevel) {
		return fmt.Errorf("%w: %v", ErrInvalidNoiseLevel, p.NoiseLevel)
	}

	if p.OverSubtraction < 0 || !core.IsFinite(p.OverSubtraction) {
		return fmt.Errorf("%w: %v", ErrInvalidOverSubtraction, p.OverSubtraction)
	}

	if p.Residual < 0 || p.Residual > 1 || math.IsNaN(p.Residual) {
		return fmt.Errorf("%w: %v", ErrInvalidResidual, p.Residual)
	}

	return nil
}

// ReduceSample applies the noise rule to a single sample:
//
//	|x| <= level:                   x
//	|x| - over·level > 0:           sign(x)·(|x| - over·level)
//	otherwise:                      residual·x
//
// The result is not clamped.
func ReduceSample(x float64, p Params) float64 {
	m := math.Abs(x)
	if m <= p.NoiseLevel {
		return x
	}

	reduced := m - p.OverSubtraction*p.NoiseLevel
	if reduced > 0 {
		return reduced * core.Sign(x)
	}

	return x * p.Residual
}

// Reduce applies [ReduceSample] to every sample of audio and clamps the
// result to [-1, 1]. The returned buffer is newly allocated and has the
// length of audio.
func Reduce(audio []float64, p Params) []float64 {
	out := make([]float64, len(audio))
	for i, x := range audio {
		out[i] = core.ClampSample(ReduceSample(x, p))
	}

	return out
}

// ReduceLevel is [Reduce] with the default over-subtraction and residual
// and the given noise level.
func ReduceLevel(audio []float64, noiseLevel float64) []float64 {
	p := DefaultParams()
	p.NoiseLevel = noiseLevel

	return Reduce(audio, p)
}
