package fidelity_test

import (
	"fmt"

	"github.com/cwbudde/modscope/measure/fidelity"
)

func ExampleSliceBits() {
	// One bit per two samples: high, low, high.
	wave := []float64{1, 1, 0, 0, 1, 1}

	bits, err := fidelity.SliceBits(wave, 2)
	if err != nil {
		panic(err)
	}

	fmt.Println(bits)
	// Output:
	// [1 0 1]
}

func ExampleBitErrorRate() {
	sent := []int{1, 0, 1, 1}
	received := []int{1, 0, 0, 1}

	ber, err := fidelity.BitErrorRate(sent, received)
	if err != nil {
		panic(err)
	}

	fmt.Printf("BER: %.2f\n", ber)
	// Output:
	// BER: 0.25
}
