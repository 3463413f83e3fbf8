package dynamics

import (
	"fmt"
	"math"
)

const (
	// DefaultAttack is the per-sample smoothing coefficient used while the
	// input magnitude rises above the envelope.
	DefaultAttack = 0.003
	// DefaultRelease is the per-sample smoothing coefficient used otherwise.
	DefaultRelease = 0.1
	// EnvelopeFloor bounds the gain divisor away from zero.
	EnvelopeFloor = 0.001
)

// EnvelopeParams configures the envelope-following compressor. Attack and
// Release are per-sample smoothing coefficients in (0, 1]; see
// [CoeffFromTime] to derive them from time constants.
type EnvelopeParams struct {
	Threshold float64 `json:"threshold"`
	Ratio     float64 `json:"ratio"`
	Attack    float64 `json:"attack"`
	Release   float64 `json:"release"`
}

// DefaultEnvelopeParams returns threshold 0.7, ratio 4, attack 0.003 and
// release 0.1.
func DefaultEnvelopeParams() EnvelopeParams {
	return EnvelopeParams{
		Threshold: DefaultThreshold,
		Ratio:     DefaultRatio,
		Attack:    DefaultAttack,
		Release:   DefaultRelease,
	}
}

// Validate reports the first invalid field.
func (p EnvelopeParams) Validate() error {
	if err := validateCurve(p.Threshold, p.Ratio); err != nil {
		return err
	}

	for _, c := range []float64{p.Attack, p.Release} {
		if !(c > 0 && c <= 1) {
			return fmt.Errorf("%w: %v", ErrInvalidCoefficient, c)
		}
	}

	return nil
}

// EnvelopeState is the envelope follower value carried between calls. The
// zero value starts from silence.
type EnvelopeState struct {
	Envelope float64 `json:"envelope"`
}

// EnvelopeGain returns the gain applied for envelope value env:
//
//	env > threshold: (threshold + (env-threshold)/ratio) / max(env, 0.001)
//	otherwise:       env / max(env, 0.001)
//
// The second branch is 1 for envelopes at or above the floor and env/0.001
// below it, which fades in signals that start from silence.
func EnvelopeGain(env float64, p EnvelopeParams) float64 {
	denom := math.Max(env, EnvelopeFloor)
	if env > p.Threshold {
		return (p.Threshold + (env-p.Threshold)/p.Ratio) / denom
	}

	return env / denom
}

// CompressEnvelope runs the envelope compressor over audio starting from
// state and returns the output together with the final state.
//
// For every sample the envelope moves towards |x| with the attack
// coefficient when |x| exceeds it and the release coefficient otherwise,
// then x is scaled by [EnvelopeGain]. Passing the zero state on every call
// gives independent per-call behavior; passing the returned state into the
// next call continues a chunked stream seamlessly. The output is not
// clamped, but with valid parameters no output sample exceeds its input in
// magnitude.
func CompressEnvelope(audio []float64, p EnvelopeParams, state EnvelopeState) ([]float64, EnvelopeState) {
	out := make([]float64, len(audio))
	env := state.Envelope

	for i, x := range audio {
		m := math.Abs(x)

		coeff := p.Release
		if m > env {
			coeff = p.Attack
		}

		env += (m - env) * coeff
		out[i] = x * EnvelopeGain(env, p)
	}

	return out, EnvelopeState{Envelope: env}
}

// CoeffFromTime converts a time constant in milliseconds to a per-sample
// one-pole smoothing coefficient 1 - exp(-1/(t·fs)). Non-positive times or
// sample rates yield 1 (no smoothing).
func CoeffFromTime(ms, sampleRate float64) float64 {
	if ms <= 0 || sampleRate <= 0 || math.IsNaN(ms) || math.IsNaN(sampleRate) {
		return 1
	}

	return 1 - math.Exp(-1/(ms*0.001*sampleRate))
}
