package predict

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-mocap/internal/testutil"
)

func BenchmarkSearchExhaustive(b *testing.B) {
	codes := testutil.RandomCodes(1, 12, 256)

	s, err := NewSearcher(2, 6)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		_, _ = s.Search(context.Background(), codes)
	}
}

func BenchmarkSearchAutocorrelation(b *testing.B) {
	codes := testutil.RandomCodes(1, 12, 4096)

	s, err := NewSearcher(16, 8, WithStrategy(StrategyAutocorrelation))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		_, _ = s.Search(context.Background(), codes)
	}
}

func BenchmarkDecode(b *testing.B) {
	codes := testutil.RandomCodes(2, 12, 4096)

	stream, err := Encode(context.Background(), codes, 1, 8)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		_, _ = Decode(stream)
	}
}
