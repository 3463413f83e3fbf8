package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const minAnalysisSize = 16

// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
var ErrInvalidSampleRate = errors.New("spectrum: sample rate must be positive and finite")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}

	buf.data = buf.data[:2*n]

	return buf.data[:n], buf.data[n:], buf
}

func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return re, im, buf
}

// Magnitude returns |X[k]| for each bin. Scratch buffers are pooled, so in
// steady state this allocates only the output slice.
func Magnitude(in []complex128) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}

	re, im, buf := split(in)
	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}

// Power returns |X[k]|² for each bin.
func Power(in []complex128) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}

	re, im, buf := split(in)
	vecmath.Power(out, re, im)
	scratchPool.Put(buf)

	return out
}

// Analysis is the one-sided power spectrum of a real signal.
type Analysis struct {
	// Power holds |X[k]|² for k = 0..N/2.
	Power []float64
	// Size is the transform length N, a power of two ≥ max(len(signal), 16).
	Size int
	// SampleRate is the rate the bins are scaled by.
	SampleRate float64
}

// Analyze zero-pads signal to the next power of two and transforms it.
// An empty signal yields an empty analysis.
func Analyze(signal []float64, sampleRate float64) (*Analysis, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if len(signal) == 0 {
		return &Analysis{SampleRate: sampleRate}, nil
	}

	n := max(nextPowerOfTwo(len(signal)), minAnalysisSize)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	bins := make([]complex128, n)
	for i, x := range signal {
		bins[i] = complex(x, 0)
	}

	if err := plan.Forward(bins, bins); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return &Analysis{
		Power:      Power(bins[:n/2+1]),
		Size:       n,
		SampleRate: sampleRate,
	}, nil
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (a *Analysis) BinFrequency(k int) float64 {
	if a.Size == 0 {
		return 0
	}

	return float64(k) * a.SampleRate / float64(a.Size)
}

// BandEnergy returns the signal energy Σx² carried by bins with frequency in
// [lo, hi). A hi at or above Nyquist includes the Nyquist bin. By Parseval,
// BandEnergy(0, SampleRate/2) equals the total energy of the signal.
func (a *Analysis) BandEnergy(lo, hi float64) float64 {
	if a.Size == 0 {
		return 0
	}

	nyquist := a.SampleRate / 2
	half := a.Size / 2
	energy := 0.0

	for k, p := range a.Power {
		f := a.BinFrequency(k)
		inside := f >= lo && f < hi
		if k == half && hi >= nyquist {
			inside = f >= lo
		}

		if !inside {
			continue
		}

		if k == 0 || k == half {
			energy += p
		} else {
			energy += 2 * p
		}
	}

	return energy / float64(a.Size)
}

// BandEnergies returns the energy between consecutive edges; edges must be
// ascending. len(edges)-1 values are returned.
func (a *Analysis) BandEnergies(edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}

	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = a.BandEnergy(edges[i], edges[i+1])
	}

	return out
}

// BandEnergy is a one-shot helper for [Analyze] followed by
// [Analysis.BandEnergy].
func BandEnergy(signal []float64, sampleRate, lo, hi float64) (float64, error) {
	a, err := Analyze(signal, sampleRate)
	if err != nil {
		return 0, err
	}

	return a.BandEnergy(lo, hi), nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
