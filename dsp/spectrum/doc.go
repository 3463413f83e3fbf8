// Package spectrum provides spectrum-domain analysis helpers.
//
// [Magnitude] and [Power] convert complex bins to real values. [Analyze]
// transforms a real signal with algo-fft and [Analysis.BandEnergy] measures
// how much of the signal's energy falls inside a frequency range, which is
// how band splits and equalizer settings are checked.
package spectrum
