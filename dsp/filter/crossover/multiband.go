package crossover

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// MultiBand is a multi-way crossover network built from cascaded two-way
// Linkwitz-Riley crossovers. It splits an input signal into N+1 bands for
// N crossover frequencies, ordered from lowest to highest.
//
// Each stage's highpass output feeds the next stage. Every lower band is
// then passed through the allpass (LP + HP) of each later stage, so all bands
// share the same phase response and their sum is the single allpass
// AP₁·AP₂·…·APₙ applied to the input.
type MultiBand struct {
	stages []*Crossover
	comp   [][]*Crossover
	bands  int
	freqs  []float64

	degenerate int

	remainder, hi, lo, hiComp []float64
}

// NewMultiBand creates a multi-way crossover from the given cutoffs and
// order. Frequencies must be strictly ascending and inside (0, sampleRate/2).
func NewMultiBand(freqs []float64, order int, sampleRate float64) (*MultiBand, error) {
	if err := validateLayout(freqs, order); err != nil {
		return nil, err
	}

	active := usableCount(freqs, sampleRate)
	if active < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSampleRate, sampleRate)
	}

	if active < len(freqs) {
		return nil, fmt.Errorf("%w: stage %d: %v not in (0, %v)", ErrInvalidFrequency, active, freqs[active], sampleRate/2)
	}

	return newMultiBand(freqs, active, order, sampleRate)
}

func newMultiBand(freqs []float64, active, order int, sampleRate float64) (*MultiBand, error) {
	m := &MultiBand{
		bands: len(freqs) + 1,
		freqs: append([]float64(nil), freqs...),
	}

	if active < 0 {
		m.degenerate = len(freqs) / 2
		return m, nil
	}

	m.stages = make([]*Crossover, active)
	for i := range active {
		xo, err := New(freqs[i], order, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("crossover: stage %d: %w", i, err)
		}
		m.stages[i] = xo
	}

	// comp[i] holds private copies of stages i+1 … active-1 for band i.
	m.comp = make([][]*Crossover, active)
	for i := range active {
		for j := i + 1; j < active; j++ {
			xo, err := New(freqs[j], order, sampleRate)
			if err != nil {
				return nil, fmt.Errorf("crossover: compensation %d/%d: %w", i, j, err)
			}
			m.comp[i] = append(m.comp[i], xo)
		}
	}

	return m, nil
}

// NumBands returns the number of output bands.
func (m *MultiBand) NumBands() int { return m.bands }

// Stages returns the realised two-way crossover stages.
func (m *MultiBand) Stages() []*Crossover { return m.stages }

// ProcessSample filters one input sample and returns per-band outputs.
func (m *MultiBand) ProcessSample(x float64) []float64 {
	out := make([]float64, m.bands)
	if m.stages == nil {
		out[m.degenerate] = x
		return out
	}

	remainder := x
	for i, stage := range m.stages {
		lo, hi := stage.ProcessSample(remainder)
		for _, ap := range m.comp[i] {
			l, h := ap.ProcessSample(lo)
			lo = l + h
		}
		out[i] = lo
		remainder = hi
	}
	out[len(m.stages)] = remainder

	return out
}

// ProcessBlock filters a block and returns per-band outputs, each the same
// length as input.
func (m *MultiBand) ProcessBlock(input []float64) [][]float64 {
	if m.stages == nil {
		return splitDegenerate(input, m.bands, m.degenerate)
	}

	n := len(input)
	out := allocBands(m.bands, n)
	if n == 0 {
		return out
	}

	m.remainder = grow(m.remainder, n)
	m.hi = grow(m.hi, n)
	m.lo = grow(m.lo, n)
	m.hiComp = grow(m.hiComp, n)

	copy(m.remainder, input)

	for i, stage := range m.stages {
		stage.ProcessBlock(m.remainder, out[i], m.hi)

		for _, ap := range m.comp[i] {
			copy(m.lo, out[i])
			ap.ProcessBlock(m.lo, out[i], m.hiComp)
			vecmath.AddBlockInPlace(out[i], m.hiComp)
		}

		copy(m.remainder, m.hi)
	}

	copy(out[len(m.stages)], m.remainder)

	return out
}

// Split implements [Splitter].
func (m *MultiBand) Split(input []float64) [][]float64 { return m.ProcessBlock(input) }

// Reset clears all internal filter states.
func (m *MultiBand) Reset() {
	for i, s := range m.stages {
		s.Reset()
		for _, ap := range m.comp[i] {
			ap.Reset()
		}
	}
}

func grow(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}

	return buf[:n]
}
