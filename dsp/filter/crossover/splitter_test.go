package crossover

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

var (
	_ Splitter = (*Complementary)(nil)
	_ Splitter = (*MultiBand)(nil)
)

func TestNewSplitterForRateDropsCutoffsAboveNyquist(t *testing.T) {
	input := testutil.DeterministicNoise(1, 0.5, 512)

	for _, topo := range []Topology{TopologyComplementary, TopologyTree} {
		t.Run(topo.String(), func(t *testing.T) {
			// Nyquist 1500 Hz: the 2000 Hz cutoff is dropped.
			s, err := NewSplitterForRate(topo, []float64{200, 2000}, 4, 3000)
			if err != nil {
				t.Fatal(err)
			}

			bands := s.Split(input)
			if len(bands) != 3 {
				t.Fatalf("got %d bands", len(bands))
			}

			testutil.RequireSliceNearlyEqual(t, bands[2], make([]float64, len(input)), 0)

			if testutil.RMS(bands[0]) == 0 || testutil.RMS(bands[1]) == 0 {
				t.Fatal("low and mid bands should carry signal")
			}
		})
	}
}

func TestNewSplitterForRateAllCutoffsDropped(t *testing.T) {
	input := []float64{0.1, -0.2, 0.3}

	for _, topo := range []Topology{TopologyComplementary, TopologyTree} {
		s, err := NewSplitterForRate(topo, []float64{200, 2000}, 4, 300)
		if err != nil {
			t.Fatal(err)
		}

		bands := s.Split(input)
		testutil.RequireSliceNearlyEqual(t, bands[0], input, 0)
		testutil.RequireSliceNearlyEqual(t, bands[1], []float64{0, 0, 0}, 0)
		testutil.RequireSliceNearlyEqual(t, bands[2], []float64{0, 0, 0}, 0)
	}
}

func TestNewSplitterForRateUnknownRate(t *testing.T) {
	input := []float64{0.5, 0.9, -0.9}

	for _, sr := range []float64{0, -44100} {
		for _, topo := range []Topology{TopologyComplementary, TopologyTree} {
			s, err := NewSplitterForRate(topo, []float64{200, 2000}, 4, sr)
			if err != nil {
				t.Fatal(err)
			}

			bands := s.Split(input)
			testutil.RequireSliceNearlyEqual(t, bands[0], []float64{0, 0, 0}, 0)
			testutil.RequireSliceNearlyEqual(t, bands[1], input, 0)
			testutil.RequireSliceNearlyEqual(t, bands[2], []float64{0, 0, 0}, 0)
		}
	}
}

func TestNewSplitterForRateStructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		freqs []float64
		order int
		want  error
	}{
		{"no cutoffs", nil, 4, ErrNoFrequencies},
		{"odd order", []float64{200}, 5, ErrInvalidOrder},
		{"negative cutoff", []float64{-200, 2000}, 4, ErrInvalidFrequency},
		{"descending", []float64{2000, 200}, 4, ErrNotAscending},
	}

	for _, tt := range tests {
		_, err := NewSplitterForRate(TopologyComplementary, tt.freqs, tt.order, 48000)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}

	if _, err := NewSplitterForRate(Topology(9), []float64{200}, 4, 48000); err == nil {
		t.Error("unknown topology should fail")
	}
}

func TestTopologyString(t *testing.T) {
	if TopologyTree.String() != "tree" || Topology(7).String() != "Topology(7)" {
		t.Fatalf("unexpected names %q %q", TopologyTree, Topology(7))
	}
}
