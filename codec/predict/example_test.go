package predict_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-mocap/codec/predict"
)

func ExampleEncodeDelta() {
	s, err := predict.EncodeDelta([]uint16{0, 85, 170, 255})
	if err != nil {
		panic(err)
	}

	codes, err := predict.Decode(s)
	if err != nil {
		panic(err)
	}

	fmt.Println(s.Kind, s.Residuals, codes)
	// Output: delta [0 85 85 85] [0 85 170 255]
}

func ExampleSearcher_Search() {
	s, err := predict.NewSearcher(1, 8)
	if err != nil {
		panic(err)
	}

	res, err := s.Search(context.Background(), []uint16{0, 85, 170, 255})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%v %d %.4f\n", res.Coefficients, res.SumSquares, predict.Real(res.Coefficients[0], 8))
	// Output: [127] 22190 0.9922
}

func ExampleSearchSpace() {
	bits, n := predict.SearchSpace(2, 8)
	fmt.Println(bits, n)
	// Output: 16 65536
}
