package evaluator

import (
	"testing"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/randutil"
)

// BenchmarkEvaluate_RandomHands benchmarks 7-card evaluation over random hands
func BenchmarkEvaluate_RandomHands(b *testing.B) {
	residual, err := deck.NewResidual()
	if err != nil {
		b.Fatal(err)
	}
	rng := randutil.New(42) // fixed seed for repeatability
	hands := make([][]deck.Card, 10000)
	scratch := make([]deck.Card, residual.Size())
	for i := range hands {
		copy(scratch, residual.Cards())
		deck.SampleInto(scratch, 7, rng)
		hands[i] = append([]deck.Card(nil), scratch[:7]...)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = Evaluate(hands[i%len(hands)])
	}
}

// BenchmarkEvaluate_Categories benchmarks each evaluation branch separately
func BenchmarkEvaluate_Categories(b *testing.B) {
	cases := []struct {
		name  string
		cards []deck.Card
	}{
		{"RoyalFlush", deck.MustParseCards("AsKsQsJsTs2h3d")},
		{"StraightFlush", deck.MustParseCards("9h8h7h6h5h2s3d")},
		{"FourOfAKind", deck.MustParseCards("AsAhAdAcKs2h3d")},
		{"FullHouse", deck.MustParseCards("KsKhKdQcQs2h3d")},
		{"Flush", deck.MustParseCards("AcJc9c7c5c2h3d")},
		{"Straight", deck.MustParseCards("Ts9h8d7c6s2h3d")},
		{"WheelStraight", deck.MustParseCards("As5h4d3c2s8h9d")},
		{"ThreeOfAKind", deck.MustParseCards("JsJhJd9c7s2h3d")},
		{"TwoPair", deck.MustParseCards("KsKhTdTc5s2h3d")},
		{"OnePair", deck.MustParseCards("8s8hAdKc4s2h3d")},
		{"HighCard", deck.MustParseCards("AsKhQdJc9s2h3d")},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = Evaluate(tc.cards)
			}
		})
	}
}
