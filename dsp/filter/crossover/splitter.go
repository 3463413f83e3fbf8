package crossover

import (
	"fmt"
	"math"
)

// Splitter divides a signal into complementary frequency bands ordered
// from lowest to highest. The bands of one Split call sum to the input,
// either exactly or through a magnitude-flat allpass, depending on the
// implementation.
//
// A Splitter carries filter state between calls, so consecutive Split
// calls process a continuous stream. It is not safe for concurrent use.
type Splitter interface {
	// NumBands returns the number of bands produced by Split.
	NumBands() int
	// Split filters input and returns NumBands freshly allocated buffers,
	// each len(input) samples long.
	Split(input []float64) [][]float64
	// Reset clears all filter state.
	Reset()
}

// Topology selects the band splitter implementation.
type Topology int

const (
	// TopologyComplementary builds bands by subtraction so their sum is
	// exactly the input.
	TopologyComplementary Topology = iota
	// TopologyTree cascades two-way crossovers with allpass phase
	// compensation so the band sum is a single allpass.
	TopologyTree
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case TopologyComplementary:
		return "complementary"
	case TopologyTree:
		return "tree"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// NewSplitterForRate builds a splitter with len(freqs)+1 bands that accepts
// any sample rate.
//
// Cutoffs at or above Nyquist are dropped and the bands above the highest
// remaining cutoff stay silent. A sample rate that is not positive and finite
// leaves the signal unsplit in the centre band (index len(freqs)/2).
// Errors are returned only for structural problems: an empty or
// non-ascending cutoff list, non-positive cutoffs or an invalid order.
func NewSplitterForRate(topology Topology, freqs []float64, order int, sampleRate float64) (Splitter, error) {
	if err := validateLayout(freqs, order); err != nil {
		return nil, err
	}

	active := usableCount(freqs, sampleRate)

	switch topology {
	case TopologyComplementary:
		return newComplementary(freqs, active, order, sampleRate)
	case TopologyTree:
		return newMultiBand(freqs, active, order, sampleRate)
	default:
		return nil, fmt.Errorf("crossover: unknown topology %v", topology)
	}
}

func validateLayout(freqs []float64, order int) error {
	if len(freqs) == 0 {
		return ErrNoFrequencies
	}

	if order <= 0 || order%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}

	for i, f := range freqs {
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: cutoff %d is %v", ErrInvalidFrequency, i, f)
		}

		if i > 0 && f <= freqs[i-1] {
			return fmt.Errorf("%w: %.1f after %.1f", ErrNotAscending, f, freqs[i-1])
		}
	}

	return nil
}

// usableCount returns how many leading cutoffs lie below Nyquist, or -1 when
// the sample rate itself is unusable.
func usableCount(freqs []float64, sampleRate float64) int {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return -1
	}

	n := 0
	for _, f := range freqs {
		if !usable(f, sampleRate) {
			break
		}
		n++
	}

	return n
}

func allocBands(bands, n int) [][]float64 {
	out := make([][]float64, bands)
	for i := range out {
		out[i] = make([]float64, n)
	}

	return out
}

// splitDegenerate handles layouts without any realisable cutoff: the input
// is copied into band idx and all other bands stay silent.
func splitDegenerate(input []float64, bands, idx int) [][]float64 {
	out := allocBands(bands, len(input))
	copy(out[idx], input)

	return out
}
