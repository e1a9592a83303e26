package equity

import (
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
)

func seeded(s int64) *int64 { return &s }

func TestSimulateValidation(t *testing.T) {
	aces := deck.MustParseCards("AsAh")

	tests := []struct {
		name  string
		hero  []deck.Card
		board []deck.Card
		cfg   Config
		want  error
	}{
		{
			name: "one card hand",
			hero: deck.MustParseCards("As"),
			cfg:  Config{Opponents: 1, Iterations: 100},
			want: ErrInvalidHandSize,
		},
		{
			name: "three card hand",
			hero: deck.MustParseCards("AsAhAd"),
			cfg:  Config{Opponents: 1, Iterations: 100},
			want: ErrInvalidHandSize,
		},
		{
			name: "same card twice in hand",
			hero: []deck.Card{deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Spades, deck.Ace)},
			cfg:  Config{Opponents: 1, Iterations: 100},
			want: deck.ErrDuplicateCard,
		},
		{
			name:  "two card board",
			hero:  aces,
			board: deck.MustParseCards("5c3c"),
			cfg:   Config{Opponents: 1, Iterations: 100},
			want:  ErrInvalidBoardLength,
		},
		{
			name:  "six card board",
			hero:  aces,
			board: deck.MustParseCards("5c3c3s7h9d2c"),
			cfg:   Config{Opponents: 1, Iterations: 100},
			want:  ErrInvalidBoardLength,
		},
		{
			name: "zero opponents",
			hero: aces,
			cfg:  Config{Opponents: 0, Iterations: 100},
			want: ErrInvalidOpponents,
		},
		{
			name: "zero iterations",
			hero: aces,
			cfg:  Config{Opponents: 1, Iterations: 0},
			want: ErrZeroIterations,
		},
		{
			name:  "card shared between hand and board",
			hero:  aces,
			board: deck.MustParseCards("As5c3c"),
			cfg:   Config{Opponents: 1, Iterations: 100},
			want:  deck.ErrDuplicateCard,
		},
		{
			name: "too many opponents for the deck",
			hero: aces,
			cfg:  Config{Opponents: 23, Iterations: 100},
			want: deck.ErrInsufficientDeck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simulate(tt.hero, tt.board, tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestSimulateMaxOpponents(t *testing.T) {
	// 22 opponents plus a full runout consume 49 of the 50 unseen cards.
	hero := deck.MustParseCards("AsAh")
	result, err := Simulate(hero, nil, Config{Opponents: 22, Iterations: 500, Seed: seeded(1)})
	require.NoError(t, err)
	assert.Equal(t, 500, result.Iterations)
}

func TestSimulateDeterministic(t *testing.T) {
	// A paired board multiway is tie-heavy, so the fractional tie
	// credits stress the float accumulation: any order-dependent
	// grouping of the additions shows up in the low bits here.
	hero := deck.MustParseCards("Jd4h")
	board := deck.MustParseCards("5c3c3s")

	base := Config{Opponents: 5, Iterations: 30000, Seed: seeded(99), Workers: 8}
	first, err := Simulate(hero, board, base)
	require.NoError(t, err)

	// Repeated runs of the identical config must be bit-identical;
	// block claim order varies with scheduling, the result must not.
	for run := 0; run < 5; run++ {
		got, err := Simulate(hero, board, base)
		require.NoError(t, err)
		assert.Equal(t, first, got, "run %d", run)
	}

	// And bit-identical regardless of worker count.
	for _, workers := range []int{1, 3, 16} {
		cfg := base
		cfg.Workers = workers
		got, err := Simulate(hero, board, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, got, "workers=%d", workers)
	}
}

func TestSimulateDifferentSeedsDiffer(t *testing.T) {
	hero := deck.MustParseCards("KhQh")

	a, err := Simulate(hero, nil, Config{Opponents: 1, Iterations: 10000, Seed: seeded(1)})
	require.NoError(t, err)
	b, err := Simulate(hero, nil, Config{Opponents: 1, Iterations: 10000, Seed: seeded(2)})
	require.NoError(t, err)

	assert.NotEqual(t, a.EquityPct, b.EquityPct)
}

func TestSimulatePercentagesSum(t *testing.T) {
	hero := deck.MustParseCards("7h2c")
	result, err := Simulate(hero, nil, Config{Opponents: 3, Iterations: 10000, Seed: seeded(7)})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.WinPct+result.TiePct+result.LossPct, 1e-9)
	assert.Equal(t, 10000, result.Iterations)
	assert.False(t, result.Degraded)
}

func TestSimulateAcesHeadsUp(t *testing.T) {
	// Pocket aces preflop heads-up is roughly 85% equity.
	hero := deck.MustParseCards("AsAh")
	result, err := Simulate(hero, nil, Config{Opponents: 1, Iterations: 100000, Seed: seeded(99)})
	require.NoError(t, err)

	assert.InDelta(t, 85.0, result.EquityPct, 1.5)
	assert.Less(t, result.MarginOfError, 0.5)
}

func TestSimulateWeakHandMultiway(t *testing.T) {
	// J4 offsuit on a paired low flop against five random hands has
	// around 5.9% equity.
	hero := deck.MustParseCards("Jh4c")
	board := deck.MustParseCards("5c3c3s")
	result, err := Simulate(hero, board, Config{Opponents: 5, Iterations: 100000, Seed: seeded(123)})
	require.NoError(t, err)

	assert.InDelta(t, 5.9, result.EquityPct, 1.5)
}

func TestSimulateOpponentMonotonicity(t *testing.T) {
	hero := deck.MustParseCards("AsAh")

	var prev float64 = 101
	for _, opponents := range []int{1, 3, 6} {
		result, err := Simulate(hero, nil, Config{Opponents: opponents, Iterations: 50000, Seed: seeded(5)})
		require.NoError(t, err)
		assert.Less(t, result.EquityPct, prev, "equity should fall as opponents are added")
		prev = result.EquityPct
	}
}

func TestSimulateCompleteBoardNuts(t *testing.T) {
	// Hero holds the royal flush on a complete board: unbeatable and
	// untieable, so the estimate is exact whatever the seed.
	hero := deck.MustParseCards("AsKs")
	board := deck.MustParseCards("QsJsTs2d7h")
	result, err := Simulate(hero, board, Config{Opponents: 4, Iterations: 2000, Seed: seeded(3)})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.WinPct, 1e-9)
	assert.InDelta(t, 100.0, result.EquityPct, 1e-9)
	assert.Zero(t, result.TiePct)
	assert.Zero(t, result.LossPct)
	assert.InDelta(t, 0.0, result.MarginOfError, 1e-9)
}

func TestSimulateGuaranteedTie(t *testing.T) {
	// The board plays for everyone: every iteration is a tie and each
	// of hero plus one opponent gets half the pot.
	hero := deck.MustParseCards("2s2d")
	board := deck.MustParseCards("AsKsQsJsTs")
	result, err := Simulate(hero, board, Config{Opponents: 1, Iterations: 2000, Seed: seeded(3)})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.TiePct, 1e-9)
	assert.InDelta(t, 50.0, result.EquityPct, 1e-9)
	assert.Zero(t, result.WinPct)
}

func TestSimulateTimeBudgetDegrades(t *testing.T) {
	mock := quartz.NewMock(t)
	hero := deck.MustParseCards("AsAh")

	cfg := Config{
		Opponents:  1,
		Iterations: 50000,
		Seed:       seeded(11),
		Workers:    1,
		TimeBudget: time.Second,
		Clock:      mock,
		Progress: func(completed, total int) {
			// Burn the budget after the first block completes.
			mock.Advance(2 * time.Second)
		},
	}

	result, err := Simulate(hero, nil, cfg)
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Less(t, result.Iterations, 50000)
	assert.Greater(t, result.Iterations, 0, "in-flight block runs to completion")
}

func TestSimulateNoBudgetNeverDegrades(t *testing.T) {
	hero := deck.MustParseCards("AsAh")
	result, err := Simulate(hero, nil, Config{Opponents: 1, Iterations: 5000, Seed: seeded(11)})
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Equal(t, 5000, result.Iterations)
}

func TestSimulateProgress(t *testing.T) {
	hero := deck.MustParseCards("AsAh")

	var calls []int
	cfg := Config{
		Opponents:  1,
		Iterations: 10000,
		Seed:       seeded(1),
		Workers:    1,
		Progress: func(completed, total int) {
			assert.Equal(t, 10000, total)
			calls = append(calls, completed)
		},
	}

	_, err := Simulate(hero, nil, cfg)
	require.NoError(t, err)

	require.NotEmpty(t, calls)
	for i := 1; i < len(calls); i++ {
		assert.Greater(t, calls[i], calls[i-1])
	}
	assert.Equal(t, 10000, calls[len(calls)-1])
}
