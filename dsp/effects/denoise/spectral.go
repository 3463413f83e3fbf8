package denoise

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/window"
	algofft "github.com/MeKo-Christian/algo-fft"
)

const (
	defaultSpectralFrameSize = 1024
	defaultSpectralHopSize   = 256
	minSpectralFrameSize     = 16
	spectralNormFloor        = 1e-9
)

var (
	// ErrInvalidFrameSize is returned for frame sizes that are not powers of
	// two of at least 16.
	ErrInvalidFrameSize = errors.New("denoise: frame size must be a power of two >= 16")
	// ErrInvalidHopSize is returned for hops outside [1, frameSize).
	ErrInvalidHopSize = errors.New("denoise: hop size out of range")
	// ErrInvalidNoiseFrames is returned for negative noise frame counts.
	ErrInvalidNoiseFrames = errors.New("denoise: noise frame count must be >= 0")
	// ErrProfileSize is returned when a noise profile does not match the
	// number of bins.
	ErrProfileSize = errors.New("denoise: noise profile length mismatch")
)

type spectralConfig struct {
	frameSize   int
	hopSize     int
	params      Params
	noiseFrames int
}

// SpectralOption configures a [Spectral] reducer.
type SpectralOption func(*spectralConfig) error

// WithFrameSize sets the STFT frame size (power of two, default 1024).
func WithFrameSize(n int) SpectralOption {
	return func(c *spectralConfig) error {
		if n < minSpectralFrameSize || bits.OnesCount(uint(n)) != 1 {
			return fmt.Errorf("%w: %d", ErrInvalidFrameSize, n)
		}
		c.frameSize = n
		return nil
	}
}

// WithHopSize sets the STFT hop size (default 256). It is checked against the
// frame size when the reducer is built.
func WithHopSize(n int) SpectralOption {
	return func(c *spectralConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidHopSize, n)
		}
		c.hopSize = n
		return nil
	}
}

// WithParams sets the subtraction parameters. NoiseLevel is interpreted as
// the amplitude of a flat (white) noise floor.
func WithParams(p Params) SpectralOption {
	return func(c *spectralConfig) error {
		if err := p.Validate(); err != nil {
			return err
		}
		c.params = p
		return nil
	}
}

// WithNoiseFrames estimates the noise profile from the first n frames of
// each processed buffer instead of the flat NoiseLevel floor. Zero restores
// the flat floor.
func WithNoiseFrames(n int) SpectralOption {
	return func(c *spectralConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidNoiseFrames, n)
		}
		c.noiseFrames = n
		return nil
	}
}

// Spectral is an STFT spectral-subtraction noise reducer.
//
// Each frame is windowed with a periodic Hann window and transformed. For
// every bin with magnitude m and noise magnitude n the reducer keeps the
// phase and replaces the magnitude with m - over·n, or residual·m when that
// is not positive. Frames are overlap-added with squared-window
// normalisation, so a zero noise profile reproduces the input.
//
// A Spectral reuses scratch buffers and is not safe for concurrent use.
type Spectral struct {
	frameSize   int
	hopSize     int
	params      Params
	noiseFrames int

	plan    *algofft.Plan[complex128]
	window  []float64
	profile []float64
	learned bool

	spectrum  []complex128
	timeFrame []complex128
	mags      []float64
}

// NewSpectral creates a spectral reducer with [DefaultParams], a 1024-sample
// frame and a 256-sample hop.
func NewSpectral(opts ...SpectralOption) (*Spectral, error) {
	cfg := spectralConfig{
		frameSize: defaultSpectralFrameSize,
		hopSize:   defaultSpectralHopSize,
		params:    DefaultParams(),
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.hopSize >= cfg.frameSize {
		return nil, fmt.Errorf("%w: %d not in [1, %d)", ErrInvalidHopSize, cfg.hopSize, cfg.frameSize)
	}

	plan, err := algofft.NewPlan64(cfg.frameSize)
	if err != nil {
		return nil, fmt.Errorf("denoise: failed to create FFT plan: %w", err)
	}

	s := &Spectral{
		frameSize:   cfg.frameSize,
		hopSize:     cfg.hopSize,
		params:      cfg.params,
		noiseFrames: cfg.noiseFrames,
		plan:        plan,
		window:      window.Generate(window.TypeHann, cfg.frameSize, window.WithPeriodic()),
		spectrum:    make([]complex128, cfg.frameSize),
		timeFrame:   make([]complex128, cfg.frameSize),
		mags:        make([]float64, cfg.frameSize/2+1),
	}
	s.profile = s.flatProfile()

	return s, nil
}

// FrameSize returns the STFT frame size in samples.
func (s *Spectral) FrameSize() int { return s.frameSize }

// HopSize returns the STFT hop size in samples.
func (s *Spectral) HopSize() int { return s.hopSize }

// Params returns the subtraction parameters.
func (s *Spectral) Params() Params { return s.params }

// Bins returns the number of non-negative frequency bins (frameSize/2+1).
func (s *Spectral) Bins() int { return s.frameSize/2 + 1 }

// NoiseProfile returns a copy of the current per-bin noise magnitudes.
func (s *Spectral) NoiseProfile() []float64 { return append([]float64(nil), s.profile...) }

// SetNoiseProfile installs per-bin noise magnitudes, overriding both the flat
// floor and per-buffer estimation until [Spectral.ResetProfile].
func (s *Spectral) SetNoiseProfile(profile []float64) error {
	if len(profile) != s.Bins() {
		return fmt.Errorf("%w: got %d, want %d", ErrProfileSize, len(profile), s.Bins())
	}

	for i, v := range profile {
		if v < 0 || !core.IsFinite(v) {
			return fmt.Errorf("denoise: noise profile bin %d is %v", i, v)
		}
	}

	copy(s.profile, profile)
	s.learned = true

	return nil
}

// LearnNoise averages the bin magnitudes of a noise-only recording and
// installs the result as the noise profile. Recordings shorter than one
// frame are zero-padded.
func (s *Spectral) LearnNoise(noise []float64) error {
	if len(noise) == 0 {
		return errors.New("denoise: empty noise recording")
	}

	profile := make([]float64, s.Bins())
	frames := 0

	for pos := 0; pos == 0 || pos+s.frameSize <= len(noise); pos += s.hopSize {
		if err := s.analyze(noise, pos); err != nil {
			return err
		}

		for k, m := range s.mags {
			profile[k] += m
		}
		frames++
	}

	for k := range profile {
		profile[k] /= float64(frames)
	}

	return s.SetNoiseProfile(profile)
}

// ResetProfile discards a learned or installed profile.
func (s *Spectral) ResetProfile() {
	s.profile = s.flatProfile()
	s.learned = false
}

// Process reduces noise in audio and returns a new buffer of the same length
// clamped to [-1, 1]. If the transform fails the clamped input is returned.
func (s *Spectral) Process(audio []float64) []float64 {
	out, err := s.ProcessWithError(audio)
	if err != nil {
		return core.ClampBlock(audio)
	}

	return out
}

// ProcessWithError is [Spectral.Process] with transform errors reported.
func (s *Spectral) ProcessWithError(audio []float64) ([]float64, error) {
	if len(audio) == 0 {
		return []float64{}, nil
	}

	// Padding on both ends gives every input sample full overlap coverage.
	pad := s.frameSize - s.hopSize
	padded := make([]float64, 2*pad+len(audio))
	copy(padded[pad:], audio)

	frameCount := 1
	if extra := len(padded) - s.frameSize; extra > 0 {
		frameCount += (extra + s.hopSize - 1) / s.hopSize
	}

	outLen := (frameCount-1)*s.hopSize + s.frameSize
	wet := make([]float64, outLen)
	norm := make([]float64, outLen)

	profile := s.profile
	if !s.learned && s.noiseFrames > 0 {
		est, err := s.estimate(padded, pad, min(s.noiseFrames, frameCount))
		if err != nil {
			return nil, err
		}
		profile = est
	}

	half := s.frameSize / 2

	for frame := range frameCount {
		pos := frame * s.hopSize

		if err := s.analyze(padded, pos); err != nil {
			return nil, err
		}

		for k := 0; k <= half; k++ {
			m := s.mags[k]

			gain := s.params.Residual
			if reduced := m - s.params.OverSubtraction*profile[k]; reduced > 0 {
				gain = reduced / m
			}

			s.spectrum[k] *= complex(gain, 0)
		}

		for k := 1; k < half; k++ {
			v := s.spectrum[k]
			s.spectrum[s.frameSize-k] = complex(real(v), -imag(v))
		}

		if err := s.plan.Inverse(s.timeFrame, s.spectrum); err != nil {
			return nil, fmt.Errorf("denoise: inverse FFT failed: %w", err)
		}

		for i := range s.frameSize {
			w := s.window[i]
			wet[pos+i] += real(s.timeFrame[i]) * w
			norm[pos+i] += w * w
		}
	}

	out := make([]float64, len(audio))
	for i := range out {
		j := pad + i

		sample := wet[j]
		if norm[j] > spectralNormFloor {
			sample /= norm[j]
		}

		out[i] = core.ClampSample(sample)
	}

	return out, nil
}

// analyze windows src[pos:pos+frameSize] (zero-padded), transforms it into
// s.spectrum and fills s.mags.
func (s *Spectral) analyze(src []float64, pos int) error {
	for i := range s.frameSize {
		x := 0.0
		if idx := pos + i; idx < len(src) {
			x = src[idx]
		}

		s.spectrum[i] = complex(x*s.window[i], 0)
	}

	if err := s.plan.Forward(s.spectrum, s.spectrum); err != nil {
		return fmt.Errorf("denoise: forward FFT failed: %w", err)
	}

	for k := range s.mags {
		s.mags[k] = math.Hypot(real(s.spectrum[k]), imag(s.spectrum[k]))
	}

	return nil
}

// estimate averages the magnitudes of the first n frames that start at or
// after the padding, where the signal is fully covered.
func (s *Spectral) estimate(padded []float64, pad, n int) ([]float64, error) {
	profile := make([]float64, s.Bins())
	if n <= 0 {
		return profile, nil
	}

	for f := range n {
		if err := s.analyze(padded, pad+f*s.hopSize); err != nil {
			return nil, err
		}

		for k, m := range s.mags {
			profile[k] += m
		}
	}

	for k := range profile {
		profile[k] /= float64(n)
	}

	return profile, nil
}

// flatProfile converts the white-noise amplitude NoiseLevel into the
// expected per-bin magnitude of a windowed frame: level·sqrt(Σw²).
func (s *Spectral) flatProfile() []float64 {
	energy := 0.0
	for _, w := range s.window {
		energy += w * w
	}

	level := s.params.NoiseLevel * math.Sqrt(energy)

	profile := make([]float64, s.Bins())
	for k := range profile {
		profile[k] = level
	}

	return profile
}
