package pcm

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	goaudio "github.com/go-audio/audio"
)

const defaultBitDepth = 16

var (
	// ErrNilBuffer is returned for nil buffers or buffers without a format.
	ErrNilBuffer = errors.New("pcm: buffer or format is nil")
	// ErrInvalidChannels is returned for channel counts below 1.
	ErrInvalidChannels = errors.New("pcm: channel count must be at least 1")
	// ErrLengthMismatch is returned when samples do not divide into whole
	// frames or channels differ in length.
	ErrLengthMismatch = errors.New("pcm: sample count does not match channel layout")
	// ErrBitDepth is returned for bit depths outside 2..32.
	ErrBitDepth = errors.New("pcm: bit depth must be in [2, 32]")
)

// Deinterleave splits interleaved frames into one buffer per channel.
func Deinterleave(data []float64, channels int) ([][]float64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrLengthMismatch, len(data), channels)
	}

	frames := len(data) / channels

	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
	}

	for i, x := range data {
		out[i%channels][i/channels] = x
	}

	return out, nil
}

// Interleave merges equally long channel buffers into interleaved frames.
func Interleave(channels [][]float64) ([]float64, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: 0", ErrInvalidChannels)
	}

	frames := len(channels[0])
	for c, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrLengthMismatch, c, len(ch), frames)
		}
	}

	n := len(channels)
	out := make([]float64, frames*n)

	for c, ch := range channels {
		for i, x := range ch {
			out[i*n+c] = x
		}
	}

	return out, nil
}

// FromFloatBuffer splits a float buffer into channels. Samples are copied
// unchanged; see [core.ClampBlock] to enforce the [-1, 1] range.
func FromFloatBuffer(buf *goaudio.FloatBuffer) ([][]float64, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNilBuffer
	}

	return Deinterleave(buf.Data, buf.Format.NumChannels)
}

// ToFloatBuffer interleaves channels into a float buffer at sampleRate.
func ToFloatBuffer(channels [][]float64, sampleRate int) (*goaudio.FloatBuffer, error) {
	data, err := Interleave(channels)
	if err != nil {
		return nil, err
	}

	return &goaudio.FloatBuffer{
		Format: &goaudio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:   data,
	}, nil
}

// FromIntBuffer splits an integer buffer into channels scaled to [-1, 1].
// The full-scale value is 2^(bitDepth-1) with bitDepth taken from
// SourceBitDepth, or 16 when unset.
func FromIntBuffer(buf *goaudio.IntBuffer) ([][]float64, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNilBuffer
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = defaultBitDepth
	}

	scale, err := fullScale(depth)
	if err != nil {
		return nil, err
	}

	data := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = float64(v) / scale
	}

	return Deinterleave(data, buf.Format.NumChannels)
}

// ToIntBuffer clamps channels to [-1, 1], scales them to bitDepth integer
// PCM and interleaves them.
func ToIntBuffer(channels [][]float64, sampleRate, bitDepth int) (*goaudio.IntBuffer, error) {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	data, err := Interleave(channels)
	if err != nil {
		return nil, err
	}

	maxInt := int(scale) - 1
	ints := make([]int, len(data))

	for i, x := range data {
		v := int(roundHalfAway(core.ClampSample(x) * scale))
		ints[i] = min(max(v, -int(scale)), maxInt)
	}

	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: bitDepth,
	}, nil
}

func fullScale(bitDepth int) (float64, error) {
	if bitDepth < 2 || bitDepth > 32 {
		return 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}

	return float64(int64(1) << (bitDepth - 1)), nil
}

func roundHalfAway(x float64) float64 {
	if x < 0 {
		return -float64(int64(-x + 0.5))
	}

	return float64(int64(x + 0.5))
}
