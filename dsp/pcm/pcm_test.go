package pcm

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiofx/internal/testutil"
	goaudio "github.com/go-audio/audio"
)

func TestDeinterleaveInterleave(t *testing.T) {
	data := []float64{1, -1, 2, -2, 3, -3}

	ch, err := Deinterleave(data, 2)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, ch[0], []float64{1, 2, 3}, 0)
	testutil.RequireSliceNearlyEqual(t, ch[1], []float64{-1, -2, -3}, 0)

	back, err := Interleave(ch)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, back, data, 0)
}

func TestDeinterleaveErrors(t *testing.T) {
	if _, err := Deinterleave([]float64{1, 2, 3}, 2); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("odd samples: %v", err)
	}
	if _, err := Deinterleave(nil, 0); !errors.Is(err, ErrInvalidChannels) {
		t.Fatalf("zero channels: %v", err)
	}
	if _, err := Interleave([][]float64{{1, 2}, {1}}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("ragged: %v", err)
	}
	if _, err := Interleave(nil); !errors.Is(err, ErrInvalidChannels) {
		t.Fatalf("no channels: %v", err)
	}
}

func TestFloatBufferRoundTrip(t *testing.T) {
	buf := &goaudio.FloatBuffer{
		Format: &goaudio.Format{NumChannels: 2, SampleRate: 48000},
		Data:   []float64{0.1, 0.2, 0.3, 0.4},
	}

	ch, err := FromFloatBuffer(buf)
	if err != nil {
		t.Fatal(err)
	}

	out, err := ToFloatBuffer(ch, 48000)
	if err != nil {
		t.Fatal(err)
	}

	if out.Format.NumChannels != 2 || out.Format.SampleRate != 48000 {
		t.Fatalf("format = %+v", out.Format)
	}
	testutil.RequireSliceNearlyEqual(t, out.Data, buf.Data, 0)

	if _, err := FromFloatBuffer(&goaudio.FloatBuffer{}); !errors.Is(err, ErrNilBuffer) {
		t.Fatalf("nil format: %v", err)
	}
}

func TestIntBufferConversion(t *testing.T) {
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{0, 16384, -32768, 32767},
		SourceBitDepth: 16,
	}

	ch, err := FromIntBuffer(buf)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, ch[0], []float64{0, 0.5, -1, 32767.0 / 32768}, 1e-15)

	out, err := ToIntBuffer([][]float64{{0, 0.5, -1, 1, 2, -0.25}}, 8000, 16)
	if err != nil {
		t.Fatal(err)
	}

	want := []int{0, 16384, -32768, 32767, 32767, -8192}
	for i, v := range want {
		if out.Data[i] != v {
			t.Fatalf("Data[%d] = %d, want %d", i, out.Data[i], v)
		}
	}

	if out.SourceBitDepth != 16 {
		t.Fatalf("bit depth = %d", out.SourceBitDepth)
	}
}

func TestIntBufferDefaultsTo16Bit(t *testing.T) {
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		Data:   []int{8192},
	}

	ch, err := FromIntBuffer(buf)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, ch[0], []float64{0.25}, 0)
}

func TestBitDepthErrors(t *testing.T) {
	if _, err := ToIntBuffer([][]float64{{0}}, 8000, 40); !errors.Is(err, ErrBitDepth) {
		t.Fatalf("40 bits: %v", err)
	}

	buf := &goaudio.IntBuffer{Format: &goaudio.Format{NumChannels: 1}, SourceBitDepth: 1}
	if _, err := FromIntBuffer(buf); !errors.Is(err, ErrBitDepth) {
		t.Fatalf("1 bit: %v", err)
	}
}
