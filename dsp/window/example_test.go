package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleApplyHann() {
	out := ApplyHann([]float64{1, 1, 1, 1, 1})
	fmt.Printf("%.2f %.2f %.2f %.2f %.2f\n", out[0], out[1], out[2], out[3], out[4])
	// Output:
	// 0.00 0.50 1.00 0.50 0.00
}

func ExampleInfo() {
	m := Info(TypeHann)
	fmt.Printf("%s %.1f\n", m.Name, m.ENBW)
	// Output:
	// Hann 1.5
}
