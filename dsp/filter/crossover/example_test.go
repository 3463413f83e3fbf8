package crossover_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/filter/crossover"
)

func ExampleNew() {
	xo, _ := crossover.New(1000, 4, 48000) // LR4 at 1 kHz

	fmt.Printf("order=%d freq=%.0f Hz\n", xo.Order(), xo.Freq())
	fmt.Printf("LP at 1000 Hz: %.2f dB\n", xo.LP().MagnitudeDB(1000, 48000))
	fmt.Printf("HP at 1000 Hz: %.2f dB\n", xo.HP().MagnitudeDB(1000, 48000))
	// Output:
	// order=4 freq=1000 Hz
	// LP at 1000 Hz: -6.02 dB
	// HP at 1000 Hz: -6.02 dB
}

func ExampleComplementary_Split() {
	c, _ := crossover.NewComplementary([]float64{200, 2000}, 4, 44100)

	input := []float64{0.5, -0.25, 0.125, 0.75}
	bands := c.Split(input)

	for i := range input {
		fmt.Printf("%.3f ", bands[0][i]+bands[1][i]+bands[2][i])
	}
	fmt.Println()
	// Output:
	// 0.500 -0.250 0.125 0.750
}
