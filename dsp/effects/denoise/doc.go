// Package denoise reduces background noise in sample buffers.
//
// [Reduce] is a per-sample gate: samples whose magnitude exceeds the noise
// level are pulled towards zero by OverSubtraction times the noise level,
// over-subtracted samples fall back to a small residual of the input, and
// samples at or below the noise level pass through unchanged.
//
// [Spectral] applies the same subtraction rule per frequency bin of a
// Hann-windowed short-time Fourier transform, keeping the phase of each bin.
package denoise
