package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effects/denoise"
	"github.com/cwbudde/algo-audiofx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-audiofx/dsp/effects/eq"
)

// DefaultSampleRate is the sample rate assumed by [DefaultSettings].
const DefaultSampleRate = 44100

// CompressionMode selects the compressor used by the compression stage.
type CompressionMode string

const (
	// ModeSingle is the static threshold/ratio compressor.
	ModeSingle CompressionMode = "single"
	// ModeEnvelope is the single-band envelope-following compressor.
	ModeEnvelope CompressionMode = "envelope"
	// ModeMultiband splits into bands and compresses each separately.
	ModeMultiband CompressionMode = "multiband"
)

var (
	// ErrUnknownMode is returned for an unrecognised compression mode.
	ErrUnknownMode = errors.New("pipeline: unknown compression mode")
	// ErrInvalidGain is returned for non-finite equalizer gains.
	ErrInvalidGain = errors.New("pipeline: equalizer gain must be finite")
)

// EqualizerSettings configures the flat band equalizer.
type EqualizerSettings struct {
	Enabled bool     `json:"enabled"`
	Gains   eq.Gains `json:"gains"`
}

// NoiseReductionSettings configures the noise reducer.
type NoiseReductionSettings struct {
	Enabled bool           `json:"enabled"`
	Params  denoise.Params `json:"params"`
}

// CompressionSettings configures the compression stage. Params is used by
// [ModeSingle], Envelope by [ModeEnvelope] and Bands by [ModeMultiband]; nil
// Bands selects [dynamics.DefaultBands].
type CompressionSettings struct {
	Enabled  bool                    `json:"enabled"`
	Mode     CompressionMode         `json:"mode"`
	Params   dynamics.Params         `json:"params"`
	Envelope dynamics.EnvelopeParams `json:"envelope"`
	Bands    []dynamics.BandParams   `json:"bands,omitempty"`
}

// Settings is the per-invocation configuration of the chain.
type Settings struct {
	SampleRate     int                    `json:"sampleRate"`
	Equalizer      EqualizerSettings      `json:"equalizer"`
	NoiseReduction NoiseReductionSettings `json:"noiseReduction"`
	Compression    CompressionSettings    `json:"compression"`
	// ClampOutput coerces the final output to [-1, 1]. Only the multiband
	// compressor can leave that range.
	ClampOutput bool `json:"clampOutput"`
}

// DefaultSettings returns settings with every stage disabled and default
// parameters filled in. The equalizer has ten flat bands and output
// clamping is on.
func DefaultSettings() Settings {
	return Settings{
		SampleRate: DefaultSampleRate,
		Equalizer: EqualizerSettings{
			Gains: eq.Flat(eq.DefaultBands),
		},
		NoiseReduction: NoiseReductionSettings{
			Params: denoise.DefaultParams(),
		},
		Compression: CompressionSettings{
			Mode:     ModeSingle,
			Params:   dynamics.DefaultParams(),
			Envelope: dynamics.DefaultEnvelopeParams(),
		},
		ClampOutput: true,
	}
}

// Validate checks the parameters of every enabled stage. Disabled stages
// are not inspected. The sample rate is never rejected: the multiband
// compressor handles any rate.
func (s Settings) Validate() error {
	if s.Equalizer.Enabled {
		for i, g := range s.Equalizer.Gains {
			if !core.IsFinite(g) {
				return fmt.Errorf("%w: band %d is %v", ErrInvalidGain, i, g)
			}
		}
	}

	if s.NoiseReduction.Enabled {
		if err := s.NoiseReduction.Params.Validate(); err != nil {
			return fmt.Errorf("pipeline: noise reduction: %w", err)
		}
	}

	if !s.Compression.Enabled {
		return nil
	}

	var err error

	switch s.Compression.Mode {
	case ModeSingle:
		err = s.Compression.Params.Validate()
	case ModeEnvelope:
		err = s.Compression.Envelope.Validate()
	case ModeMultiband:
		if s.Compression.Bands != nil {
			_, err = dynamics.ValidateBands(s.Compression.Bands)
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, s.Compression.Mode)
	}

	if err != nil {
		return fmt.Errorf("pipeline: compression: %w", err)
	}

	return nil
}

// LoadSettings decodes JSON settings on top of [DefaultSettings] and
// validates them. Unknown fields are rejected.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("pipeline: invalid settings json: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Save writes s as indented JSON.
func (s Settings) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("pipeline: encode settings: %w", err)
	}

	return nil
}
