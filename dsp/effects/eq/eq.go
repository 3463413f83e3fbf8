package eq

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultBands is the number of equalizer bands in the standard layout.
	DefaultBands = 10
	// BaseFrequency is the centre frequency of band 0 in Hz.
	BaseFrequency = 31.25
)

// Gains holds one gain per band, ordered by ascending centre frequency.
// The slice may have any length; an empty Gains is the identity.
type Gains []float64

// Flat returns n zero gains.
func Flat(n int) Gains {
	if n < 0 {
		n = 0
	}

	return make(Gains, n)
}

// Factor returns the combined linear factor Π(1 + g/100) that [Apply]
// multiplies every sample by.
func (g Gains) Factor() float64 {
	f := 1.0
	for _, v := range g {
		f *= 1 + v/100
	}

	return f
}

// Apply scales every sample by (1 + g/100) for each band gain g, in band
// order, and clamps the result to [-1, 1]. The returned buffer has the
// length of audio and never aliases it.
func Apply(audio []float64, gains Gains) []float64 {
	out := make([]float64, len(audio))
	copy(out, audio)

	for _, g := range gains {
		vecmath.ScaleBlock(out, out, 1+g/100)
	}

	core.ClampBlockInPlace(out)

	return out
}

// BandCenter returns the centre frequency of band i in Hz: 31.25·2^i.
func BandCenter(i int) float64 {
	return BaseFrequency * math.Exp2(float64(i))
}

// BandCenters returns the centre frequencies of bands 0..n-1.
func BandCenters(n int) []float64 {
	if n < 0 {
		n = 0
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = BandCenter(i)
	}

	return out
}
