// Package design provides biquad coefficient designers for the band
// splitter and the graphic equalizer.
//
// RBJ cookbook sections ([Lowpass], [Highpass], [Peak]) are the building
// blocks. [ButterworthLP]/[ButterworthHP] cascade them into maximally flat
// filters, and [LinkwitzRileyLP]/[LinkwitzRileyHP] square a Butterworth
// response so that the lowpass and highpass halves sum to an allpass.
package design
