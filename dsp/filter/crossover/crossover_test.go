package crossover

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestNewRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		freq  float64
		order int
		sr    float64
		want  error
	}{
		{"odd order", 1000, 3, 48000, ErrInvalidOrder},
		{"zero order", 1000, 0, 48000, ErrInvalidOrder},
		{"zero freq", 0, 4, 48000, ErrInvalidFrequency},
		{"freq at nyquist", 24000, 4, 48000, ErrInvalidFrequency},
		{"nan freq", math.NaN(), 4, 48000, ErrInvalidFrequency},
		{"zero sample rate", 1000, 4, 0, ErrInvalidSampleRate},
		{"inf sample rate", 1000, 4, math.Inf(1), ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.freq, tt.order, tt.sr)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New(%v, %d, %v) error = %v, want %v", tt.freq, tt.order, tt.sr, err, tt.want)
			}
		})
	}
}

func TestCrossoverAccessors(t *testing.T) {
	xo, err := New(800, 6, 44100)
	if err != nil {
		t.Fatal(err)
	}

	if xo.Freq() != 800 || xo.Order() != 6 || xo.SampleRate() != 44100 {
		t.Fatalf("accessors = %v %d %v", xo.Freq(), xo.Order(), xo.SampleRate())
	}

	if got := xo.LP().NumSections(); got != 4 {
		t.Fatalf("LR6 LP sections = %d, want 4", got)
	}
}

func TestCrossoverSumIsAllpass(t *testing.T) {
	const sr = 48000.0

	for _, order := range []int{2, 4, 6, 8} {
		xo, err := New(1000, order, sr)
		if err != nil {
			t.Fatalf("LR%d: %v", order, err)
		}

		for _, f := range []float64{20, 200, 1000, 5000, 20000} {
			sum := xo.LP().Response(f, sr) + xo.HP().Response(f, sr)
			if db := 20 * math.Log10(cmplx.Abs(sum)); math.Abs(db) > 1e-6 {
				t.Fatalf("LR%d |LP+HP| at %v Hz = %.8f dB", order, f, db)
			}
		}
	}
}

func TestCrossoverBlockMatchesSample(t *testing.T) {
	a, _ := New(1000, 4, 48000)
	b, _ := New(1000, 4, 48000)

	input := testutil.DeterministicNoise(7, 0.5, 256)
	lo := make([]float64, len(input))
	hi := make([]float64, len(input))
	b.ProcessBlock(input, lo, hi)

	for i, x := range input {
		l, h := a.ProcessSample(x)
		if math.Abs(l-lo[i]) > 1e-12 || math.Abs(h-hi[i]) > 1e-12 {
			t.Fatalf("sample %d: sample=(%v,%v) block=(%v,%v)", i, l, h, lo[i], hi[i])
		}
	}

	// Empty blocks are a no-op.
	b.ProcessBlock(nil, nil, nil)
}

func TestCrossoverResetMatchesFresh(t *testing.T) {
	xo, _ := New(1000, 4, 48000)
	xo.ProcessSample(1)
	xo.ProcessSample(-0.5)
	xo.Reset()

	fresh, _ := New(1000, 4, 48000)
	l1, h1 := xo.ProcessSample(1)
	l2, h2 := fresh.ProcessSample(1)

	if l1 != l2 || h1 != h2 {
		t.Fatalf("after reset (%v,%v), fresh (%v,%v)", l1, h1, l2, h2)
	}
}
