// Command fxchain runs the audio effects pipeline over raw PCM.
//
// Input and output are little-endian float32 mono samples. Without -in the
// samples are read from stdin; without -out they are written to stdout.
//
// Usage:
//
//	fxchain [flags]
//
// Examples:
//
//	fxchain -in voice.f32 -out clean.f32 -nr -compress multiband
//	fxchain -settings chain.json < in.f32 > out.f32
//	fxchain -eq 10,0,-20 -analyze -in voice.f32 -out /dev/null
//	fxchain -bands
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-audiofx/dsp/effects/denoise"
	"github.com/cwbudde/algo-audiofx/dsp/effects/eq"
	"github.com/cwbudde/algo-audiofx/dsp/pipeline"
	"github.com/cwbudde/algo-audiofx/dsp/spectrum"
	"github.com/cwbudde/algo-audiofx/stats/level"
)

func main() {
	in := flag.String("in", "", "input file of float32 LE samples (default stdin)")
	out := flag.String("out", "", "output file (default stdout)")
	rate := flag.Int("rate", 0, "sample rate in Hz (overrides the settings file)")
	settingsPath := flag.String("settings", "", "JSON settings file")
	eqGains := flag.String("eq", "", "comma-separated equalizer gains in percent")
	nr := flag.Bool("nr", false, "enable noise reduction")
	noiseLevel := flag.Float64("noise", denoise.DefaultNoiseLevel, "noise level for -nr")
	compress := flag.String("compress", "", "compression mode: single, envelope or multiband")
	analyze := flag.Bool("analyze", false, "print band energies before and after processing to stderr")
	bands := flag.Bool("bands", false, "print equalizer band centres and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fxchain [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Applies equalizer, noise reduction and compression to raw float32 mono PCM.\n")
		fmt.Fprintf(os.Stderr, "Flags override values loaded with -settings.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fxchain -in voice.f32 -out clean.f32 -nr -compress multiband\n")
		fmt.Fprintf(os.Stderr, "  fxchain -settings chain.json < in.f32 > out.f32\n")
		fmt.Fprintf(os.Stderr, "  fxchain -bands\n")
	}
	flag.Parse()

	if *bands {
		printBands(os.Stdout, eq.DefaultBands)
		return
	}

	s, err := buildSettings(*settingsPath, *rate, *eqGains, *nr, *noiseLevel, *compress)
	if err != nil {
		fail(err)
	}

	samples, err := readInput(*in)
	if err != nil {
		fail(err)
	}

	processed, err := pipeline.Process(samples, s)
	if err != nil {
		fail(err)
	}

	if *analyze {
		if err := printAnalysis(os.Stderr, samples, processed, float64(s.SampleRate)); err != nil {
			fail(err)
		}
	}

	if err := writeOutput(*out, processed); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// buildSettings starts from the defaults or a settings file and applies
// the command-line overrides.
func buildSettings(path string, rate int, gains string, nr bool, noise float64, mode string) (pipeline.Settings, error) {
	s := pipeline.DefaultSettings()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return s, err
		}
		defer f.Close()

		s, err = pipeline.LoadSettings(f)
		if err != nil {
			return s, fmt.Errorf("%s: %w", path, err)
		}
	}

	if rate != 0 {
		s.SampleRate = rate
	}

	if gains != "" {
		g, err := parseGains(gains)
		if err != nil {
			return s, err
		}

		s.Equalizer.Enabled = true
		s.Equalizer.Gains = g
	}

	if nr {
		s.NoiseReduction.Enabled = true
		s.NoiseReduction.Params.NoiseLevel = noise
	}

	if mode != "" {
		s.Compression.Enabled = true
		s.Compression.Mode = pipeline.CompressionMode(strings.ToLower(mode))
	}

	return s, s.Validate()
}

func parseGains(list string) (eq.Gains, error) {
	fields := strings.Split(list, ",")
	gains := make(eq.Gains, 0, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}

		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid gain %q: %w", f, err)
		}

		gains = append(gains, v)
	}

	return gains, nil
}

func readInput(path string) ([]float64, error) {
	if path == "" {
		return readFloat32(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readFloat32(f)
}

func writeOutput(path string, samples []float64) error {
	if path == "" {
		return writeFloat32(os.Stdout, samples)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeFloat32(f, samples); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func printBands(w io.Writer, n int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Band\tCentre [Hz]\n")
	_, _ = fmt.Fprintf(tw, "----\t-----------\n")

	for i, c := range eq.BandCenters(n) {
		_, _ = fmt.Fprintf(tw, "%d\t%.2f\n", i, c)
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// analysisEdges are the default multiband compressor band edges. The last
// edge is replaced by Nyquist.
var analysisEdges = []float64{0, 200, 2000, 0}

func printAnalysis(w io.Writer, before, after []float64, sampleRate float64) error {
	if len(before) == 0 {
		_, err := fmt.Fprintf(w, "no samples\n")
		return err
	}

	edges := append([]float64(nil), analysisEdges...)
	edges[len(edges)-1] = sampleRate / 2

	a, err := spectrum.Analyze(before, sampleRate)
	if err != nil {
		return err
	}

	b, err := spectrum.Analyze(after, sampleRate)
	if err != nil {
		return err
	}

	eb := a.BandEnergies(edges)
	ea := b.BandEnergies(edges)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Band [Hz]\tBefore\tAfter\tChange [dB]\n")
	_, _ = fmt.Fprintf(tw, "---------\t------\t-----\t-----------\n")

	for i := range eb {
		_, _ = fmt.Fprintf(tw, "%.0f-%.0f\t%.4g\t%.4g\t%s\n",
			edges[i], edges[i+1], eb[i], ea[i], changeDB(eb[i], ea[i]))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	lb, la := level.Measure(before), level.Measure(after)
	_, err = fmt.Fprintf(w, "\npeak %.2f dB -> %.2f dB, rms %.2f dB -> %.2f dB, clipped %d -> %d\n",
		lb.PeakDB, la.PeakDB, lb.RMSDB, la.RMSDB, lb.Clipped, la.Clipped)

	return err
}

func changeDB(before, after float64) string {
	if before <= 0 || after <= 0 {
		return "-"
	}

	return strconv.FormatFloat(10*math.Log10(after/before), 'f', 2, 64)
}
