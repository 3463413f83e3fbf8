package crossover

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestNewMultiBandErrors(t *testing.T) {
	tests := []struct {
		name  string
		freqs []float64
		order int
		sr    float64
	}{
		{"empty freqs", nil, 4, 48000},
		{"non-ascending", []float64{5000, 500}, 4, 48000},
		{"duplicate", []float64{1000, 1000}, 4, 48000},
		{"odd order", []float64{1000}, 3, 48000},
		{"freq at nyquist", []float64{200, 24000}, 4, 48000},
		{"zero sample rate", []float64{200}, 4, 0},
	}

	for _, tt := range tests {
		if _, err := NewMultiBand(tt.freqs, tt.order, tt.sr); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

// bandSumImpulse splits a unit impulse and returns the per-sample band sum.
func bandSumImpulse(s Splitter, n int) []float64 {
	bands := s.Split(testutil.Impulse(n, 0))
	sum := make([]float64, n)
	for _, b := range bands {
		for i, v := range b {
			sum[i] += v
		}
	}
	return sum
}

func dftMagnitude(h []float64, freq, sampleRate float64) float64 {
	var acc complex128
	for n, v := range h {
		acc += complex(v, 0) * cmplx.Exp(complex(0, -2*math.Pi*freq*float64(n)/sampleRate))
	}
	return cmplx.Abs(acc)
}

func TestMultiBandSumIsAllpass(t *testing.T) {
	const sr = 48000.0

	layouts := [][]float64{
		{1000},
		{200, 2000},
		{500, 5000},
		{200, 2000, 10000},
	}

	for _, freqs := range layouts {
		mb, err := NewMultiBand(freqs, 4, sr)
		if err != nil {
			t.Fatal(err)
		}

		sum := bandSumImpulse(mb, 16384)

		energy := 0.0
		for _, v := range sum {
			energy += v * v
		}
		if math.Abs(energy-1) > 1e-4 {
			t.Fatalf("%v: impulse energy = %v, want 1", freqs, energy)
		}

		for _, f := range []float64{50, 300, 1000, 3000, 12000} {
			if mag := dftMagnitude(sum, f, sr); math.Abs(mag-1) > 1e-3 {
				t.Fatalf("%v: |sum| at %v Hz = %.6f, want 1", freqs, f, mag)
			}
		}
	}
}

func TestMultiBandBlockMatchesSample(t *testing.T) {
	freqs := []float64{200, 2000, 8000}
	a, _ := NewMultiBand(freqs, 4, 48000)
	b, _ := NewMultiBand(freqs, 4, 48000)

	input := testutil.DeterministicNoise(3, 0.8, 300)
	block := b.ProcessBlock(input)

	for i, x := range input {
		bands := a.ProcessSample(x)
		for k := range bands {
			if math.Abs(bands[k]-block[k][i]) > 1e-12 {
				t.Fatalf("band %d sample %d: sample=%v block=%v", k, i, bands[k], block[k][i])
			}
		}
	}
}

func TestMultiBandBlocksAreContinuous(t *testing.T) {
	freqs := []float64{200, 2000}
	whole, _ := NewMultiBand(freqs, 4, 44100)
	chunked, _ := NewMultiBand(freqs, 4, 44100)

	input := testutil.DeterministicNoise(11, 0.5, 512)
	want := whole.Split(input)

	first := chunked.Split(input[:200])
	second := chunked.Split(input[200:])

	for k := range want {
		got := append(append([]float64(nil), first[k]...), second[k]...)
		testutil.RequireSliceNearlyEqual(t, got, want[k], 1e-12)
	}
}

func TestMultiBandReset(t *testing.T) {
	mb, _ := NewMultiBand([]float64{500, 5000}, 4, 48000)
	mb.Split([]float64{1, 0.5, -0.25})
	mb.Reset()

	fresh, _ := NewMultiBand([]float64{500, 5000}, 4, 48000)

	got := mb.ProcessSample(1)
	want := fresh.ProcessSample(1)
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestMultiBandFourWayBandsAreFinite(t *testing.T) {
	mb, err := NewMultiBand([]float64{200, 2000, 10000}, 4, 48000)
	if err != nil {
		t.Fatal(err)
	}

	if mb.NumBands() != 4 || len(mb.Stages()) != 3 {
		t.Fatalf("bands=%d stages=%d", mb.NumBands(), len(mb.Stages()))
	}

	for _, b := range mb.Split(testutil.DeterministicSine(440, 48000, 1, 1024)) {
		testutil.RequireFinite(t, b)
	}
}
