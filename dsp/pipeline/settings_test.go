package pipeline

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/effects/dynamics"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}

	if s.Equalizer.Enabled || s.NoiseReduction.Enabled || s.Compression.Enabled {
		t.Fatalf("stages should default to disabled: %+v", s)
	}

	if len(s.Equalizer.Gains) != 10 || !s.ClampOutput || s.Compression.Mode != ModeSingle {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   error
	}{
		{"nan gain", func(s *Settings) {
			s.Equalizer.Enabled = true
			s.Equalizer.Gains[2] = math.NaN()
		}, ErrInvalidGain},
		{"unknown mode", func(s *Settings) {
			s.Compression.Enabled = true
			s.Compression.Mode = "loud"
		}, ErrUnknownMode},
		{"bad ratio", func(s *Settings) {
			s.Compression.Enabled = true
			s.Compression.Params.Ratio = 0
		}, dynamics.ErrInvalidRatio},
		{"bad envelope", func(s *Settings) {
			s.Compression.Enabled = true
			s.Compression.Mode = ModeEnvelope
			s.Compression.Envelope.Attack = 2
		}, dynamics.ErrInvalidCoefficient},
		{"bad bands", func(s *Settings) {
			s.Compression.Enabled = true
			s.Compression.Mode = ModeMultiband
			s.Compression.Bands = dynamics.DefaultBands()[:1]
		}, dynamics.ErrInvalidBands},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			if err := s.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateIgnoresDisabledStages(t *testing.T) {
	s := DefaultSettings()
	s.Compression.Mode = "bogus"
	s.NoiseReduction.Params.Residual = 5

	if err := s.Validate(); err != nil {
		t.Fatalf("disabled stages validated: %v", err)
	}
}

func TestLoadSettings(t *testing.T) {
	raw := `{
		"sampleRate": 48000,
		"equalizer": {"enabled": true, "gains": [3, -3]},
		"compression": {"enabled": true, "mode": "multiband"}
	}`

	s, err := LoadSettings(strings.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}

	if s.SampleRate != 48000 || !s.Equalizer.Enabled || len(s.Equalizer.Gains) != 2 {
		t.Fatalf("decoded %+v", s)
	}

	// Unset fields keep their defaults.
	if s.NoiseReduction.Params.NoiseLevel != 0.1 || !s.ClampOutput {
		t.Fatalf("defaults lost: %+v", s)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	for _, raw := range []string{
		`{"unknown": 1}`,
		`{"compression": {"enabled": true, "mode": "nope"}}`,
		`not json`,
	} {
		if _, err := LoadSettings(strings.NewReader(raw)); err == nil {
			t.Errorf("LoadSettings(%q) succeeded", raw)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Compression.Enabled = true
	s.Compression.Mode = ModeMultiband
	s.Compression.Bands = dynamics.DefaultBands()

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSettings(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Compression.Bands) != 3 || got.Compression.Bands[1].Name != "mid" {
		t.Fatalf("bands = %+v", got.Compression.Bands)
	}
}
