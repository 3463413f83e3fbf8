// Package eq provides the band equalizer.
//
// [Apply] is the flat equalizer: every band gain g scales the whole buffer
// by (1 + g/100) regardless of frequency content, and the result is clamped
// to [-1, 1]. Band centre frequencies (31.25·2^i Hz) are reported by
// [BandCenter] but are not used by [Apply].
//
// [Graphic] is a frequency-selective alternative that places one peaking
// biquad at each band centre and interprets gains as decibels.
package eq
