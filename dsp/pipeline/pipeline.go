package pipeline

import (
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effects/denoise"
	"github.com/cwbudde/algo-audiofx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-audiofx/dsp/effects/eq"
)

// Process runs audio through the enabled stages of s and returns a new
// buffer of the same length. Every call starts from fresh compressor state.
// An error is returned only for invalid settings.
func Process(audio []float64, s Settings) ([]float64, error) {
	st, err := NewStream(s)
	if err != nil {
		return nil, err
	}

	return st.Process(audio), nil
}

// Stream applies one [Settings] value to consecutive chunks of a single
// stream, carrying envelope and crossover state between chunks. Create one
// Stream per stream; it is not safe for concurrent use.
type Stream struct {
	settings  Settings
	envelope  dynamics.EnvelopeState
	multiband *dynamics.MultibandCompressor
}

// NewStream validates s and prepares the stateful stages.
func NewStream(s Settings) (*Stream, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	s.Equalizer.Gains = append(eq.Gains(nil), s.Equalizer.Gains...)
	s.Compression.Bands = append([]dynamics.BandParams(nil), s.Compression.Bands...)

	st := &Stream{settings: s}

	if s.Compression.Enabled && s.Compression.Mode == ModeMultiband {
		var opts []dynamics.MultibandOption
		if len(s.Compression.Bands) > 0 {
			opts = append(opts, dynamics.WithBands(s.Compression.Bands))
		}

		mc, err := dynamics.NewMultibandCompressor(float64(s.SampleRate), opts...)
		if err != nil {
			return nil, err
		}
		st.multiband = mc
	}

	return st, nil
}

// Settings returns the settings the stream was built with.
func (st *Stream) Settings() Settings { return st.settings }

// Process runs one chunk through the chain.
func (st *Stream) Process(audio []float64) []float64 {
	s := st.settings
	out := core.Clone(audio)

	if s.Equalizer.Enabled {
		out = eq.Apply(out, s.Equalizer.Gains)
	}

	if s.NoiseReduction.Enabled {
		out = denoise.Reduce(out, s.NoiseReduction.Params)
	}

	if s.Compression.Enabled {
		switch s.Compression.Mode {
		case ModeSingle:
			out = dynamics.CompressParams(out, s.Compression.Params)
		case ModeEnvelope:
			out, st.envelope = dynamics.CompressEnvelope(out, s.Compression.Envelope, st.envelope)
		case ModeMultiband:
			out = st.multiband.Process(out)
		}
	}

	if s.ClampOutput {
		core.ClampBlockInPlace(out)
	}

	return out
}

// Reset clears compressor state so the next chunk starts a new stream.
func (st *Stream) Reset() {
	st.envelope = dynamics.EnvelopeState{}
	if st.multiband != nil {
		st.multiband.Reset()
	}
}
