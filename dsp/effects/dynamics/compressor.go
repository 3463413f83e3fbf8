package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	// DefaultThreshold is the level above which compression starts.
	DefaultThreshold = 0.7
	// DefaultRatio is the default compression ratio (4:1).
	DefaultRatio = 4.0
)

// Params configures the static compressor.
type Params struct {
	Threshold float64 `json:"threshold"`
	Ratio     float64 `json:"ratio"`
}

// DefaultParams returns threshold 0.7 and ratio 4.
func DefaultParams() Params {
	return Params{Threshold: DefaultThreshold, Ratio: DefaultRatio}
}

// Validate reports the first invalid field.
func (p Params) Validate() error {
	return validateCurve(p.Threshold, p.Ratio)
}

func validateCurve(threshold, ratio float64) error {
	if threshold < 0 || !core.IsFinite(threshold) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}

	if ratio < 1 || !core.IsFinite(ratio) {
		return fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	return nil
}

// StaticCurve maps an input level to the compressed output level:
// threshold + (level-threshold)/ratio above threshold, level otherwise.
func StaticCurve(level float64, p Params) float64 {
	if level > p.Threshold {
		return p.Threshold + (level-p.Threshold)/p.Ratio
	}

	return level
}

// CompressSample compresses the magnitude of x along [StaticCurve] and keeps
// its sign.
func CompressSample(x float64, p Params) float64 {
	m := math.Abs(x)
	if m <= p.Threshold {
		return x
	}

	return StaticCurve(m, p) * core.Sign(x)
}

// Compress applies [CompressSample] with the given threshold and ratio to
// every sample and clamps the result to [-1, 1].
func Compress(audio []float64, threshold, ratio float64) []float64 {
	return CompressParams(audio, Params{Threshold: threshold, Ratio: ratio})
}

// CompressParams is [Compress] taking a [Params] value.
func CompressParams(audio []float64, p Params) []float64 {
	out := make([]float64, len(audio))
	for i, x := range audio {
		out[i] = core.ClampSample(CompressSample(x, p))
	}

	return out
}
