package eq

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

// DefaultQ gives each peaking band roughly one octave of bandwidth.
const DefaultQ = math.Sqrt2

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("eq: sample rate must be positive and finite")
	// ErrInvalidBands is returned for a band count below 1.
	ErrInvalidBands = errors.New("eq: band count must be at least 1")
	// ErrInvalidQ is returned for non-positive or non-finite Q values.
	ErrInvalidQ = errors.New("eq: Q must be positive and finite")
	// ErrInvalidGain is returned for non-finite gains.
	ErrInvalidGain = errors.New("eq: gain must be finite")
)

type graphicConfig struct {
	bands int
	q     float64
}

// GraphicOption configures a [Graphic] equalizer.
type GraphicOption func(*graphicConfig) error

// WithBands sets the number of bands (default [DefaultBands]).
func WithBands(n int) GraphicOption {
	return func(c *graphicConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidBands, n)
		}
		c.bands = n
		return nil
	}
}

// WithQ sets the quality factor shared by all bands (default [DefaultQ]).
func WithQ(q float64) GraphicOption {
	return func(c *graphicConfig) error {
		if q <= 0 || !core.IsFinite(q) {
			return fmt.Errorf("%w: %v", ErrInvalidQ, q)
		}
		c.q = q
		return nil
	}
}

// Graphic is a frequency-selective graphic equalizer with one RBJ peaking
// biquad per band centre. Gains are in dB. Bands whose centre lies at or
// above Nyquist are bypassed.
//
// Graphic carries filter state across Process calls and is not safe for
// concurrent use.
type Graphic struct {
	sampleRate float64
	q          float64
	centers    []float64
	gains      Gains
	chain      *biquad.Chain
}

// NewGraphic creates a graphic equalizer with all gains at 0 dB.
func NewGraphic(sampleRate float64, opts ...GraphicOption) (*Graphic, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := graphicConfig{bands: DefaultBands, q: DefaultQ}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	g := &Graphic{
		sampleRate: sampleRate,
		q:          cfg.q,
		centers:    BandCenters(cfg.bands),
		gains:      Flat(cfg.bands),
	}
	g.rebuild()

	return g, nil
}

// SetGains replaces the band gains in dB. Missing trailing bands are set to
// 0 dB and extra gains are ignored. Filter state is kept so a running stream
// does not click.
func (g *Graphic) SetGains(gains Gains) error {
	next := Flat(len(g.centers))
	for i := range min(len(gains), len(next)) {
		if !core.IsFinite(gains[i]) {
			return fmt.Errorf("%w: band %d is %v", ErrInvalidGain, i, gains[i])
		}
		next[i] = gains[i]
	}

	var state [][2]float64
	if g.chain != nil {
		state = g.chain.State()
	}

	g.gains = next
	g.rebuild()

	if state != nil {
		g.chain.SetState(state)
	}

	return nil
}

// Gains returns a copy of the current gains in dB.
func (g *Graphic) Gains() Gains { return append(Gains(nil), g.gains...) }

// Centers returns the band centre frequencies in Hz.
func (g *Graphic) Centers() []float64 { return append([]float64(nil), g.centers...) }

// Process filters audio and returns a new buffer clamped to [-1, 1].
func (g *Graphic) Process(audio []float64) []float64 {
	out := make([]float64, len(audio))
	g.chain.ProcessBlockTo(out, audio)
	core.ClampBlockInPlace(out)

	return out
}

// ResponseDB returns the combined magnitude response at freq in dB.
func (g *Graphic) ResponseDB(freq float64) float64 {
	return g.chain.MagnitudeDB(freq, g.sampleRate)
}

// Reset clears the filter state.
func (g *Graphic) Reset() { g.chain.Reset() }

func (g *Graphic) rebuild() {
	coeffs := make([]biquad.Coefficients, len(g.centers))
	for i, fc := range g.centers {
		coeffs[i] = design.Peak(fc, g.gains[i], g.q, g.sampleRate)
	}

	g.chain = biquad.NewChain(coeffs)
}
