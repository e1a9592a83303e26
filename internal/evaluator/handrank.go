package evaluator

import "github.com/lox/holdem-equity/internal/deck"

// Category is the primary class of a poker hand. Higher is stronger.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case StraightFlush:
		return "Straight Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a Kind"
	case TwoPair:
		return "Two Pair"
	case Pair:
		return "One Pair"
	case HighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// HandRank is the total-ordered strength of a best 5-card hand: the
// category, then up to five tiebreak ranks in descending significance.
// Unused trailing tiebreak slots are zero. Equal HandRanks are a tie.
type HandRank struct {
	Category  Category
	Tiebreaks [5]deck.Rank
}

// Compare returns 1 if h is stronger than other, -1 if weaker, 0 on a tie.
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := range h.Tiebreaks {
		if h.Tiebreaks[i] != other.Tiebreaks[i] {
			if h.Tiebreaks[i] > other.Tiebreaks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns the readable name of the hand
func (h HandRank) String() string {
	return h.Category.String()
}

func tiebreaks(ranks ...deck.Rank) [5]deck.Rank {
	var tb [5]deck.Rank
	copy(tb[:], ranks)
	return tb
}
