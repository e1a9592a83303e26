package equity

import "math"

// Tally accumulates the raw outcome counts of simulation iterations.
// Each block owns a private Tally; Merge folds them together in block
// order after the workers finish. The integer fields merge the same in
// any order, but WinCredit is a float sum whose low bits depend on the
// grouping, so reproducibility requires a fixed merge order.
type Tally struct {
	Wins       int     // iterations hero strictly beat every opponent
	Ties       int     // iterations hero shared the best hand
	Losses     int     // iterations at least one opponent beat hero
	WinCredit  float64 // wins plus 1/k pot shares from k-way ties
	Iterations int
}

// Merge folds another tally into t.
func (t *Tally) Merge(other Tally) {
	t.Wins += other.Wins
	t.Ties += other.Ties
	t.Losses += other.Losses
	t.WinCredit += other.WinCredit
	t.Iterations += other.Iterations
}

// record books the outcome of one iteration. tiedAtBest is the number of
// parties (hero included) sharing the best hand when the hero tied.
func (t *Tally) record(outcome int, tiedAtBest int) {
	t.Iterations++
	switch {
	case outcome > 0:
		t.Wins++
		t.WinCredit += 1.0
	case outcome == 0:
		t.Ties++
		t.WinCredit += 1.0 / float64(tiedAtBest)
	default:
		t.Losses++
	}
}

// Result is the immutable outcome of one equity computation.
// WinPct, TiePct and LossPct are the raw outcome proportions and sum to
// 100 within floating tolerance. EquityPct additionally credits the hero
// 1/k of each k-way tie, which is the number a pot-share decision cares
// about. MarginOfError is the half-width of the confidence interval on
// EquityPct, in percentage points.
type Result struct {
	WinPct        float64
	TiePct        float64
	LossPct       float64
	EquityPct     float64
	Iterations    int
	MarginOfError float64
	Degraded      bool // a time budget cut the run short of the requested iterations
}

// Result reduces the tally to percentages with a margin of error at the
// given confidence multiplier (1.96 for 95%). degraded marks runs cut
// short by a time budget; the margin already reflects the smaller N.
func (t Tally) Result(confidence float64, degraded bool) Result {
	if t.Iterations == 0 {
		return Result{Degraded: degraded}
	}

	n := float64(t.Iterations)
	p := t.WinCredit / n

	return Result{
		WinPct:        float64(t.Wins) / n * 100,
		TiePct:        float64(t.Ties) / n * 100,
		LossPct:       float64(t.Losses) / n * 100,
		EquityPct:     p * 100,
		Iterations:    t.Iterations,
		MarginOfError: confidence * math.Sqrt(p*(1-p)/n) * 100,
		Degraded:      degraded,
	}
}
