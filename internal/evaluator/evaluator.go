package evaluator

import (
	"fmt"
	"math/bits"

	"github.com/lox/holdem-equity/internal/deck"
)

// Rank-count and suit-mask based evaluator. For 7-card input the counting
// method yields the exact best 5-card hand without enumerating the 21
// subsets: multiplicity groups, the straight masks and the flush-suit
// mask each already describe the optimal selection.

const aceLowBit = 1 << 1 // wheel: ace doubles as rank 1

// Evaluate maps 5 to 7 cards to the HandRank of the best 5-card hand.
// Callers must supply distinct cards; a card count outside 5-7 is a
// programming error and panics.
func Evaluate(cards []deck.Card) HandRank {
	if len(cards) < 5 || len(cards) > 7 {
		panic(fmt.Sprintf("evaluator: need 5-7 cards, got %d", len(cards)))
	}

	var rankCounts [15]int // indexed by deck.Rank, 2..14
	var suitCounts [4]int
	var suitMasks [4]uint16 // bit r set when rank r present in that suit
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		suitMasks[c.Suit] |= 1 << uint(c.Rank)
	}
	rankMask := suitMasks[0] | suitMasks[1] | suitMasks[2] | suitMasks[3]

	flushSuit := -1
	for s := 0; s < 4; s++ {
		if suitCounts[s] >= 5 {
			flushSuit = s
			break
		}
	}

	// Straight flush: the straight must live entirely inside the flush suit
	if flushSuit >= 0 {
		if high := straightHigh(suitMasks[flushSuit]); high != 0 {
			return HandRank{Category: StraightFlush, Tiebreaks: tiebreaks(high)}
		}
	}

	// Distinct present ranks, descending, grouped by multiplicity
	var present, trips, pairs []deck.Rank
	var quad deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		switch rankCounts[r] {
		case 0:
			continue
		case 4:
			quad = r
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		}
		present = append(present, r)
	}

	if quad != 0 {
		kicker := highestExcluding(present, quad, 0)
		return HandRank{Category: FourOfAKind, Tiebreaks: tiebreaks(quad, kicker)}
	}

	if len(trips) > 0 && (len(trips) > 1 || len(pairs) > 0) {
		pairRank := deck.Rank(0)
		if len(trips) > 1 {
			pairRank = trips[1] // lower trip plays as the pair
		}
		if len(pairs) > 0 && pairs[0] > pairRank {
			pairRank = pairs[0]
		}
		return HandRank{Category: FullHouse, Tiebreaks: tiebreaks(trips[0], pairRank)}
	}

	if flushSuit >= 0 {
		return HandRank{Category: Flush, Tiebreaks: topRanks(suitMasks[flushSuit], 5)}
	}

	if high := straightHigh(rankMask); high != 0 {
		return HandRank{Category: Straight, Tiebreaks: tiebreaks(high)}
	}

	if len(trips) > 0 {
		k1 := highestExcluding(present, trips[0], 0)
		k2 := highestExcluding(present, trips[0], k1)
		return HandRank{Category: ThreeOfAKind, Tiebreaks: tiebreaks(trips[0], k1, k2)}
	}

	if len(pairs) >= 2 {
		kicker := highestExcluding(present, pairs[0], pairs[1])
		return HandRank{Category: TwoPair, Tiebreaks: tiebreaks(pairs[0], pairs[1], kicker)}
	}

	if len(pairs) == 1 {
		var tb [5]deck.Rank
		tb[0] = pairs[0]
		n := 1
		for _, r := range present {
			if r == pairs[0] || n == 4 {
				continue
			}
			tb[n] = r
			n++
		}
		return HandRank{Category: Pair, Tiebreaks: tb}
	}

	var tb [5]deck.Rank
	copy(tb[:], present[:5])
	return HandRank{Category: HighCard, Tiebreaks: tb}
}

// straightHigh returns the high card of the best straight contained in a
// rank mask, or 0 if there is none. An Ace also seeds the wheel as the
// low end, so A-2-3-4-5 reports a 5-high straight, never Ace-high.
func straightHigh(mask uint16) deck.Rank {
	if mask&(1<<uint(deck.Ace)) != 0 {
		mask |= aceLowBit
	}
	for high := deck.Ace; high >= deck.Five; high-- {
		need := uint16(0x1F) << (uint(high) - 4)
		if mask&need == need {
			return high
		}
	}
	return 0
}

// topRanks collects the n highest set ranks of a mask as tiebreaks.
func topRanks(mask uint16, n int) [5]deck.Rank {
	var tb [5]deck.Rank
	i := 0
	for mask != 0 && i < n {
		r := 15 - bits.LeadingZeros16(mask)
		tb[i] = deck.Rank(r)
		mask &^= 1 << uint(r)
		i++
	}
	return tb
}

// highestExcluding returns the highest present rank not equal to either
// exclusion, or 0 if none remains.
func highestExcluding(present []deck.Rank, a, b deck.Rank) deck.Rank {
	for _, r := range present {
		if r != a && r != b {
			return r
		}
	}
	return 0
}
