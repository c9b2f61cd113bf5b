package residual_test

import (
	"fmt"

	"github.com/cwbudde/algo-mocap/stats/residual"
)

func ExampleCalculate() {
	s := residual.Calculate([]int16{0, 85, 85, 85})
	fmt.Printf("sse=%d peak=%d bits=%d entropy=%.3f\n", s.SumSquares, s.Peak, s.MinBits, s.Entropy)

	// Output:
	// sse=21675 peak=85 bits=8 entropy=0.811
}
