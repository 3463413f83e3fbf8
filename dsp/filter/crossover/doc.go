// Package crossover splits audio into frequency bands with Linkwitz-Riley
// networks.
//
// [Crossover] is a two-way LR crossover of any even order whose lowpass and
// highpass outputs sum to an allpass. Multi-way splitting goes through the
// [Splitter] interface, which has two implementations:
//
//   - [MultiBand] cascades two-way stages and phase-compensates the lower
//     bands, so the band sum is a magnitude-flat allpass of the input and
//     each band is well separated.
//   - [Complementary] derives one band by subtraction, so the bands sum to
//     the input exactly. The subtracted band carries phase-leakage from its
//     neighbours.
//
// [NewSplitterForRate] builds either topology for any sample rate, dropping
// cutoffs that do not fit below Nyquist.
//
// Example:
//
//	s, _ := crossover.NewSplitterForRate(crossover.TopologyTree, []float64{200, 2000}, 4, 44100)
//	bands := s.Split(samples) // low, mid, high
package crossover
