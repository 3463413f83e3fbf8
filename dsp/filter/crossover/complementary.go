package crossover

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Complementary splits a signal into len(freqs)+1 bands whose sum equals
// the input exactly, up to floating-point rounding.
//
// For cutoffs f₀ < f₁ < … < fₙ₋₁ the bands are
//
//	band 0       = LR-LP(f₀)
//	band k       = LR-LP(fₖ) − LR-LP(fₖ₋₁)   for 0 < k < n-1
//	band n       = LR-HP(fₙ₋₁)
//	band n-1     = input − Σ other bands
//
// With a single cutoff, band 1 is input − LR-LP(f₀). The three-band layout
// is therefore low = LP(f₀), high = HP(f₁) and mid = input − low − high.
type Complementary struct {
	freqs  []float64
	order  int
	sr     float64
	bands  int
	active int

	lp []*biquad.Chain
	hp *biquad.Chain

	sum []float64
}

// NewComplementary creates a complementary splitter. All cutoffs must be
// strictly ascending and inside (0, sampleRate/2). Use [NewSplitterForRate]
// for a constructor that tolerates cutoffs above Nyquist.
func NewComplementary(freqs []float64, order int, sampleRate float64) (*Complementary, error) {
	if err := validateLayout(freqs, order); err != nil {
		return nil, err
	}

	active := usableCount(freqs, sampleRate)
	if active < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSampleRate, sampleRate)
	}

	if active < len(freqs) {
		return nil, fmt.Errorf("%w: %v not in (0, %v)", ErrInvalidFrequency, freqs[active], sampleRate/2)
	}

	return newComplementary(freqs, active, order, sampleRate)
}

func newComplementary(freqs []float64, active, order int, sampleRate float64) (*Complementary, error) {
	c := &Complementary{
		freqs:  append([]float64(nil), freqs...),
		order:  order,
		sr:     sampleRate,
		bands:  len(freqs) + 1,
		active: active,
	}

	switch {
	case active <= 0:
		return c, nil
	case active == 1:
		c.lp = []*biquad.Chain{biquad.NewChain(design.LinkwitzRileyLP(freqs[0], order, sampleRate))}
		return c, nil
	}

	c.lp = make([]*biquad.Chain, active-1)
	for i := range c.lp {
		c.lp[i] = biquad.NewChain(design.LinkwitzRileyLP(freqs[i], order, sampleRate))
	}

	top := freqs[active-1]
	if design.LinkwitzRileyNeedsHPInvert(order) {
		c.hp = biquad.NewChain(design.LinkwitzRileyHPInverted(top, order, sampleRate))
	} else {
		c.hp = biquad.NewChain(design.LinkwitzRileyHP(top, order, sampleRate))
	}

	return c, nil
}

// NumBands returns len(freqs)+1.
func (c *Complementary) NumBands() int { return c.bands }

// Freqs returns a copy of the configured cutoffs.
func (c *Complementary) Freqs() []float64 { return append([]float64(nil), c.freqs...) }

// ActiveCutoffs returns how many cutoffs are realised at the sample rate.
func (c *Complementary) ActiveCutoffs() int { return max(c.active, 0) }

// Split implements [Splitter].
func (c *Complementary) Split(input []float64) [][]float64 {
	n := len(input)

	switch {
	case c.active < 0:
		return splitDegenerate(input, c.bands, len(c.freqs)/2)
	case c.active == 0:
		return splitDegenerate(input, c.bands, 0)
	}

	out := allocBands(c.bands, n)
	if n == 0 {
		return out
	}

	remainder := c.active - 1
	if c.active == 1 {
		remainder = 1
	}

	for i, chain := range c.lp {
		chain.ProcessBlockTo(out[i], input)
	}

	// Turn cumulative lowpasses into band-pass differences, top down.
	for k := len(c.lp) - 1; k >= 1; k-- {
		cur, prev := out[k], out[k-1]
		for i := range cur {
			cur[i] -= prev[i]
		}
	}

	if c.hp != nil {
		c.hp.ProcessBlockTo(out[c.active], input)
	}

	if cap(c.sum) < n {
		c.sum = make([]float64, n)
	}

	sum := c.sum[:n]
	clear(sum)

	for b := range out {
		if b != remainder {
			vecmath.AddBlockInPlace(sum, out[b])
		}
	}

	rem := out[remainder]
	for i, x := range input {
		rem[i] = x - sum[i]
	}

	return out
}

// Reset implements [Splitter].
func (c *Complementary) Reset() {
	for _, chain := range c.lp {
		chain.Reset()
	}

	if c.hp != nil {
		c.hp.Reset()
	}
}
