// Package level measures signal levels: peak, RMS, crest factor and the
// number of samples sitting at or beyond full scale.
//
// It is used to compare a buffer before and after the effects chain, e.g.
// to check how much a compressor reduced the peaks or whether the
// multiband stage pushed samples past [-1, 1].
package level

import "math"

// FullScale is the magnitude at which a sample counts as clipped.
const FullScale = 1.0

// Levels holds level measurements of one buffer. dB fields are -Inf for
// silent input.
type Levels struct {
	Length      int
	Peak        float64
	PeakDB      float64
	RMS         float64
	RMSDB       float64
	CrestFactor float64 // Peak / RMS, 0 for silence
	Clipped     int     // samples with |x| >= FullScale
}

// Measure computes all levels in one pass.
func Measure(signal []float64) Levels {
	var m Meter
	m.Update(signal)

	return m.Result()
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// CrestFactor returns Peak/RMS, or 0 for a silent signal.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// Clipped counts samples whose magnitude reaches FullScale.
func Clipped(signal []float64) int {
	var n int
	for _, x := range signal {
		if math.Abs(x) >= FullScale {
			n++
		}
	}

	return n
}

// Meter accumulates levels across chunks of a stream. The zero value is
// ready to use.
type Meter struct {
	n       int
	sumSq   float64
	peak    float64
	clipped int
}

// Update adds samples to the running measurement.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
		}

		if a >= FullScale {
			m.clipped++
		}

		m.sumSq += x * x
	}

	m.n += len(samples)
}

// Result returns the levels of everything seen since the last Reset.
func (m *Meter) Result() Levels {
	l := Levels{
		Length:  m.n,
		Peak:    m.peak,
		PeakDB:  ampToDB(m.peak),
		Clipped: m.clipped,
		RMSDB:   math.Inf(-1),
	}

	if m.n == 0 {
		return l
	}

	l.RMS = math.Sqrt(m.sumSq / float64(m.n))
	l.RMSDB = ampToDB(l.RMS)

	if l.RMS > 0 {
		l.CrestFactor = l.Peak / l.RMS
	}

	return l
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}

func ampToDB(v float64) float64 {
	if v == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}
