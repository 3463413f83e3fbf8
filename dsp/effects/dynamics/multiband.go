package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/crossover"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultCrossoverOrder is the Linkwitz-Riley order of the band splitter.
	DefaultCrossoverOrder = 4

	maxMultibandBands = 8
)

// BandParams describes one band of the multiband compressor. High is the
// upper edge in Hz; zero means Nyquist and is only valid for the last band.
type BandParams struct {
	Name     string         `json:"name"`
	Low      float64        `json:"lowHz"`
	High     float64        `json:"highHz"`
	Envelope EnvelopeParams `json:"envelope"`
}

// DefaultBands returns the standard three-band layout:
//
//	low   0–200 Hz        threshold 0.6, ratio 3
//	mid   200–2000 Hz     threshold 0.7, ratio 4
//	high  2000 Hz–Nyquist threshold 0.8, ratio 2
//
// All bands use attack 0.003 and release 0.1.
func DefaultBands() []BandParams {
	band := func(name string, lo, hi, th, ratio float64) BandParams {
		return BandParams{
			Name: name,
			Low:  lo,
			High: hi,
			Envelope: EnvelopeParams{
				Threshold: th,
				Ratio:     ratio,
				Attack:    DefaultAttack,
				Release:   DefaultRelease,
			},
		}
	}

	return []BandParams{
		band("low", 0, 200, 0.6, 3),
		band("mid", 200, 2000, 0.7, 4),
		band("high", 2000, 0, 0.8, 2),
	}
}

// ValidateBands checks that bands are contiguous, ascending and carry valid
// envelope parameters, and returns the crossover frequencies between them.
func ValidateBands(bands []BandParams) ([]float64, error) {
	if len(bands) < 2 || len(bands) > maxMultibandBands {
		return nil, fmt.Errorf("%w: need 2..%d bands, got %d", ErrInvalidBands, maxMultibandBands, len(bands))
	}

	if bands[0].Low != 0 {
		return nil, fmt.Errorf("%w: first band must start at 0 Hz, got %v", ErrInvalidBands, bands[0].Low)
	}

	if last := bands[len(bands)-1]; last.High != 0 {
		return nil, fmt.Errorf("%w: last band must end at Nyquist (0), got %v", ErrInvalidBands, last.High)
	}

	freqs := make([]float64, 0, len(bands)-1)
	for i, b := range bands {
		if err := b.Envelope.Validate(); err != nil {
			return nil, fmt.Errorf("dynamics: band %d (%s): %w", i, b.Name, err)
		}

		if i == len(bands)-1 {
			break
		}

		if b.High <= b.Low || !core.IsFinite(b.High) {
			return nil, fmt.Errorf("%w: band %d edges %v..%v", ErrInvalidBands, i, b.Low, b.High)
		}

		if next := bands[i+1]; next.Low != b.High {
			return nil, fmt.Errorf("%w: band %d ends at %v but band %d starts at %v", ErrInvalidBands, i, b.High, i+1, next.Low)
		}

		freqs = append(freqs, b.High)
	}

	return freqs, nil
}

// MultiBandCompress splits audio into the [DefaultBands], compresses each
// band with [CompressEnvelope] from a zero envelope and returns the sum of
// the compressed bands. The sum is not clamped and may leave [-1, 1].
//
// Crossovers that do not fit below Nyquist are dropped; a non-positive
// sample rate compresses the unsplit signal with the mid-band parameters.
func MultiBandCompress(audio []float64, sampleRate int) []float64 {
	mc, err := NewMultibandCompressor(float64(sampleRate))
	if err != nil {
		// Unreachable with the default layout.
		return core.Clone(audio)
	}

	return mc.Process(audio)
}

type multibandConfig struct {
	bands    []BandParams
	order    int
	topology crossover.Topology
	clamp    bool
}

// MultibandOption configures a [MultibandCompressor].
type MultibandOption func(*multibandConfig) error

// WithBands replaces the band layout (default [DefaultBands]).
func WithBands(bands []BandParams) MultibandOption {
	return func(c *multibandConfig) error {
		if _, err := ValidateBands(bands); err != nil {
			return err
		}
		c.bands = append([]BandParams(nil), bands...)
		return nil
	}
}

// WithCrossoverOrder sets the Linkwitz-Riley order (default 4).
func WithCrossoverOrder(order int) MultibandOption {
	return func(c *multibandConfig) error {
		if order <= 0 || order%2 != 0 {
			return fmt.Errorf("%w: got %d", crossover.ErrInvalidOrder, order)
		}
		c.order = order
		return nil
	}
}

// WithTopology selects the band splitter (default [crossover.TopologyTree]).
func WithTopology(t crossover.Topology) MultibandOption {
	return func(c *multibandConfig) error {
		c.topology = t
		return nil
	}
}

// WithOutputClamp clamps the summed output to [-1, 1] (default off).
func WithOutputClamp(enabled bool) MultibandOption {
	return func(c *multibandConfig) error {
		c.clamp = enabled
		return nil
	}
}

// MultibandCompressor splits its input with a [crossover.Splitter],
// compresses each band with its own envelope follower and sums the bands.
//
// Signal flow:
//
//	input → splitter → [band 0 envelope compressor] → ╲
//	                 → [band 1 envelope compressor] →  + → output
//	                 → [band N envelope compressor] → ╱
//
// Filter and envelope state persist across Process calls, so a stream can
// be fed in chunks. The compressor is not safe for concurrent use; create
// one per stream.
type MultibandCompressor struct {
	splitter   crossover.Splitter
	bands      []BandParams
	states     []EnvelopeState
	freqs      []float64
	order      int
	topology   crossover.Topology
	sampleRate float64
	clamp      bool
}

// NewMultibandCompressor creates a multiband compressor for sampleRate.
// Any sample rate is accepted; see [MultiBandCompress] for how unusable
// rates and crossovers are handled.
func NewMultibandCompressor(sampleRate float64, opts ...MultibandOption) (*MultibandCompressor, error) {
	cfg := multibandConfig{
		bands:    DefaultBands(),
		order:    DefaultCrossoverOrder,
		topology: crossover.TopologyTree,
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	freqs, err := ValidateBands(cfg.bands)
	if err != nil {
		return nil, err
	}

	splitter, err := crossover.NewSplitterForRate(cfg.topology, freqs, cfg.order, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("dynamics: multiband splitter: %w", err)
	}

	return &MultibandCompressor{
		splitter:   splitter,
		bands:      cfg.bands,
		states:     make([]EnvelopeState, len(cfg.bands)),
		freqs:      freqs,
		order:      cfg.order,
		topology:   cfg.topology,
		sampleRate: sampleRate,
		clamp:      cfg.clamp,
	}, nil
}

// NumBands returns the number of bands.
func (mc *MultibandCompressor) NumBands() int { return len(mc.bands) }

// Bands returns a copy of the band layout.
func (mc *MultibandCompressor) Bands() []BandParams { return append([]BandParams(nil), mc.bands...) }

// CrossoverFreqs returns a copy of the crossover frequencies in Hz.
func (mc *MultibandCompressor) CrossoverFreqs() []float64 { return append([]float64(nil), mc.freqs...) }

// CrossoverOrder returns the Linkwitz-Riley order.
func (mc *MultibandCompressor) CrossoverOrder() int { return mc.order }

// Topology returns the splitter topology.
func (mc *MultibandCompressor) Topology() crossover.Topology { return mc.topology }

// SampleRate returns the sample rate in Hz.
func (mc *MultibandCompressor) SampleRate() float64 { return mc.sampleRate }

// ProcessMulti splits and compresses audio and returns the compressed bands,
// ordered from low to high.
func (mc *MultibandCompressor) ProcessMulti(audio []float64) [][]float64 {
	bands := mc.splitter.Split(audio)
	for i, b := range bands {
		bands[i], mc.states[i] = CompressEnvelope(b, mc.bands[i].Envelope, mc.states[i])
	}

	return bands
}

// Process compresses audio and returns the sum of the compressed bands.
func (mc *MultibandCompressor) Process(audio []float64) []float64 {
	out := make([]float64, len(audio))
	if len(audio) == 0 {
		return out
	}

	for _, b := range mc.ProcessMulti(audio) {
		vecmath.AddBlockInPlace(out, b)
	}

	if mc.clamp {
		core.ClampBlockInPlace(out)
	}

	return out
}

// State returns a copy of the per-band envelope state.
func (mc *MultibandCompressor) State() []EnvelopeState {
	return append([]EnvelopeState(nil), mc.states...)
}

// SetState restores per-band envelope state captured with
// [MultibandCompressor.State].
func (mc *MultibandCompressor) SetState(states []EnvelopeState) error {
	if len(states) != len(mc.states) {
		return fmt.Errorf("%w: got %d, want %d", ErrStateSize, len(states), len(mc.states))
	}

	copy(mc.states, states)

	return nil
}

// Reset clears filter and envelope state.
func (mc *MultibandCompressor) Reset() {
	mc.splitter.Reset()
	clear(mc.states)
}
