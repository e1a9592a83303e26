package equity

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/randutil"
)

const (
	// DefaultIterations gives a sub-half-point margin of error at
	// typical equities.
	DefaultIterations = 100000

	// DefaultConfidence is the 95% z multiplier.
	DefaultConfidence = 1.96

	// blockSize is the number of iterations per work unit. Each block
	// owns an RNG stream derived from (seed, block index), so the
	// aggregate is bit-identical for a fixed seed no matter how many
	// workers claim blocks.
	blockSize = 4096
)

// Config drives a single equity computation. The zero value of every
// optional field selects a sensible default.
type Config struct {
	Opponents  int
	Iterations int
	Seed       *int64        // nil: seeded from the wall clock
	TimeBudget time.Duration // 0: no budget
	Workers    int           // 0: runtime.NumCPU()
	Confidence float64       // z multiplier for the margin of error, 0: 1.96
	Clock      quartz.Clock  // nil: real clock; injectable for tests
	Logger     *log.Logger   // nil: discard

	// Progress, when set, is called after every completed block with the
	// cumulative iteration counts. Calls are serialized.
	Progress func(completed, total int)
}

// Simulate estimates hero's equity against cfg.Opponents uniformly
// random opponents by Monte Carlo completion of the unknown cards.
// All input validation happens before any simulation work; a time-budget
// expiry is not an error and instead yields a degraded-precision result.
func Simulate(hero, board []deck.Card, cfg Config) (Result, error) {
	if len(hero) != 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidHandSize, len(hero))
	}
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidBoardLength, len(board))
	}
	if cfg.Opponents < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidOpponents, cfg.Opponents)
	}
	if cfg.Iterations <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrZeroIterations, cfg.Iterations)
	}

	residual, err := deck.NewResidual(hero, board)
	if err != nil {
		return Result{}, err
	}

	// Cards dealt per iteration: two per opponent plus the board runout.
	need := 2*cfg.Opponents + (5 - len(board))
	if need > residual.Size() {
		return Result{}, fmt.Errorf("%w: %d opponents and %d board cards need %d of %d unseen cards",
			deck.ErrInsufficientDeck, cfg.Opponents, 5-len(board), need, residual.Size())
	}

	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var seed int64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = clock.Now().UnixNano()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	numBlocks := (cfg.Iterations + blockSize - 1) / blockSize
	if workers > numBlocks {
		workers = numBlocks
	}

	confidence := cfg.Confidence
	if confidence == 0 {
		confidence = DefaultConfidence
	}

	var deadline time.Time
	if cfg.TimeBudget > 0 {
		deadline = clock.Now().Add(cfg.TimeBudget)
	}

	run := runState{
		hero:      hero,
		board:     board,
		base:      residual.Cards(),
		opponents: cfg.Opponents,
		need:      need,
	}

	start := clock.Now()
	tallies := make([]Tally, numBlocks)
	var nextBlock atomic.Int64
	var completed atomic.Int64
	var progressMu sync.Mutex

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			scratch := make([]deck.Card, len(run.base))
			for {
				// The budget stops further blocks from launching;
				// in-flight blocks always run to completion.
				if !deadline.IsZero() && clock.Now().After(deadline) {
					return nil
				}
				idx := int(nextBlock.Add(1)) - 1
				if idx >= numBlocks {
					return nil
				}

				size := blockSize
				if rem := cfg.Iterations - idx*blockSize; rem < size {
					size = rem
				}
				run.block(&tallies[idx], scratch, randutil.Stream(seed, idx), size)

				done := int(completed.Add(int64(size)))
				if cfg.Progress != nil {
					progressMu.Lock()
					cfg.Progress(done, cfg.Iterations)
					progressMu.Unlock()
				}
			}
		})
	}

	// Workers never fail; Wait is only the single merge point.
	_ = g.Wait()

	// Merge in block-index order. WinCredit is a float sum, so a
	// scheduler-dependent merge order would perturb the low bits and
	// break bit-identical reproducibility.
	var total Tally
	for _, t := range tallies {
		total.Merge(t)
	}

	degraded := total.Iterations < cfg.Iterations
	if degraded {
		logger.Debug("time budget expired before iteration budget",
			"ran", total.Iterations, "requested", cfg.Iterations)
	}
	logger.Debug("simulation complete",
		"iterations", total.Iterations,
		"elapsed", clock.Since(start),
		"seed", seed,
		"workers", workers)

	return total.Result(confidence, degraded), nil
}

// runState is the per-call immutable context shared by all workers.
type runState struct {
	hero      []deck.Card
	board     []deck.Card
	base      []deck.Card // residual deck, read-only
	opponents int
	need      int
}

// block runs size iterations with the block's own RNG stream, booking
// outcomes into the worker-local tally. No shared state is touched.
func (r *runState) block(tally *Tally, scratch []deck.Card, rng *rand.Rand, size int) {
	var hand [7]deck.Card

	for i := 0; i < size; i++ {
		// One shrinking residual per iteration: opponents draw first,
		// then the board runout, all collision-free by construction.
		copy(scratch, r.base)
		deck.SampleInto(scratch, r.need, rng)
		draw := scratch[:r.need]
		opponents := draw[:2*r.opponents]
		runout := draw[2*r.opponents:]

		copy(hand[:2], r.hero)
		copy(hand[2:], r.board)
		copy(hand[2+len(r.board):], runout)
		heroRank := evaluator.Evaluate(hand[:])

		// outcome: 1 hero strictly best so far, 0 tied at best, -1 beaten
		outcome := 1
		tiedAtBest := 1
		for o := 0; o < r.opponents; o++ {
			copy(hand[:2], opponents[2*o:2*o+2])
			cmp := evaluator.Evaluate(hand[:]).Compare(heroRank)
			if cmp > 0 {
				outcome = -1
				break
			}
			if cmp == 0 {
				outcome = 0
				tiedAtBest++
			}
		}

		tally.record(outcome, tiedAtBest)
	}
}
