// Package biquad provides the second-order IIR runtime used by the band
// splitter and the graphic equalizer.
//
// A [Section] runs Direct Form II Transposed processing for one set of
// [Coefficients]. A [Chain] cascades sections for higher-order filters such
// as Linkwitz-Riley crossovers. Coefficient design lives in dsp/filter/design.
package biquad
