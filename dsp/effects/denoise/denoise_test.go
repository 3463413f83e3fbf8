package denoise

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestReduceDefaultScenario(t *testing.T) {
	got := Reduce([]float64{0.05, 0.5, -0.5}, DefaultParams())
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.05, 0.3, -0.3}, 1e-12)
}

func TestReduceSample(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"silence", 0, 0},
		{"below level", 0.08, 0.08},
		{"at level passes", 0.1, 0.1},
		{"over-subtracted keeps residual", 0.15, 0.015},
		{"exactly cancelled keeps residual", -0.2, -0.02},
		{"above", 0.9, 0.7},
		{"negative above", -0.9, -0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReduceSample(tt.in, p); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("ReduceSample(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestReduceClampsAndPreservesLength(t *testing.T) {
	in := []float64{1.5, -3, math.NaN(), 0.01}
	got := Reduce(in, DefaultParams())

	testutil.RequireLen(t, got, len(in))
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, -1, 0, 0.01}, 1e-12)
}

func TestReduceEmpty(t *testing.T) {
	if got := Reduce(nil, DefaultParams()); got == nil || len(got) != 0 {
		t.Fatalf("Reduce(nil) = %#v", got)
	}
}

func TestReduceLevel(t *testing.T) {
	got := ReduceLevel([]float64{0.5, 0.2}, 0.05)
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.4, 0.1}, 1e-12)

	// Zero noise level is the identity.
	in := testutil.DeterministicNoise(3, 0.9, 64)
	testutil.RequireSliceNearlyEqual(t, ReduceLevel(in, 0), in, 0)
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name string
		p    Params
		want error
	}{
		{"negative level", Params{NoiseLevel: -1, OverSubtraction: 2, Residual: 0.1}, ErrInvalidNoiseLevel},
		{"nan over", Params{NoiseLevel: 0.1, OverSubtraction: math.NaN(), Residual: 0.1}, ErrInvalidOverSubtraction},
		{"residual above one", Params{NoiseLevel: 0.1, OverSubtraction: 2, Residual: 1.5}, ErrInvalidResidual},
	}

	for _, tt := range tests {
		if err := tt.p.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: %v, want %v", tt.name, err, tt.want)
		}
	}
}
