package spectral_test

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/dsp/spectral"
)

func ExampleForward() {
	re := []float64{1, 0, 0, 0}
	im := make([]float64, 4)
	sr, _, _ := spectral.Forward(re, im)
	fmt.Printf("%.1f\n", sr)
	fmt.Println(spectral.FrequencyAxis(5, 1000))
	// Output:
	// [1.0 1.0 1.0 1.0]
	// [-500 -250 0 250 500]
}
