// Package effects groups the audio effects applied by the processing
// pipeline.
//
// Subpackages:
//   - github.com/cwbudde/algo-audiofx/dsp/effects/eq: flat band gain and a
//     peaking graphic equalizer
//   - github.com/cwbudde/algo-audiofx/dsp/effects/denoise: amplitude gating
//     and STFT spectral subtraction
//   - github.com/cwbudde/algo-audiofx/dsp/effects/dynamics: static, envelope
//     and multiband compression
//
// Effects never retain the caller's buffer and never fail on finite input.
package effects
