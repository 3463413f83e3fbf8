package design

import "github.com/cwbudde/algo-audiofx/dsp/filter/biquad"

// LinkwitzRileyLP designs a lowpass Linkwitz-Riley cascade of the given order.
//
// An LR filter of order 2N cascades two order-N Butterworth filters, giving
// -6.02 dB at the crossover frequency. The order must be a positive even
// integer; anything else, or an invalid frequency, returns nil.
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	return squared(ButterworthLP(freq, order/2, sampleRate))
}

// LinkwitzRileyHP designs a highpass Linkwitz-Riley cascade of the given order.
//
// For orders ≡ 2 mod 4 the highpass is 180° out of phase with the lowpass at
// the crossover; see [LinkwitzRileyNeedsHPInvert].
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	return squared(ButterworthHP(freq, order/2, sampleRate))
}

// LinkwitzRileyHPInverted is [LinkwitzRileyHP] with inverted output polarity,
// so that LP + HP is allpass for orders ≡ 2 mod 4.
func LinkwitzRileyHPInverted(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	sections := LinkwitzRileyHP(freq, order, sampleRate)
	if sections == nil {
		return nil
	}

	// One negated section flips the polarity of the whole cascade.
	sections[0] = sections[0].Negate()

	return sections
}

// LinkwitzRileyNeedsHPInvert reports whether the given order requires HP
// polarity inversion for allpass summation (orders ≡ 2 mod 4).
func LinkwitzRileyNeedsHPInvert(order int) bool {
	return order > 0 && order%4 == 2
}

func squared(bw []biquad.Coefficients) []biquad.Coefficients {
	if bw == nil {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, 2*len(bw))
	sections = append(sections, bw...)
	sections = append(sections, bw...)

	return sections
}
