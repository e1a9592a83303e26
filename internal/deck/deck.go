package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

var (
	// ErrDuplicateCard is returned when the same card is claimed twice
	// among the known cards (hero hand, board, dealt opponents).
	ErrDuplicateCard = errors.New("duplicate card")

	// ErrInsufficientDeck is returned when a draw asks for more cards
	// than remain unseen.
	ErrInsufficientDeck = errors.New("not enough cards remaining in deck")
)

// Deck is the unseen remainder of the 52-card universe. It is a value:
// Sample returns the drawn cards together with a new, reduced Deck and
// never mutates the receiver, so one Deck can seed many independent
// simulation iterations.
type Deck struct {
	cards []Card
}

// NewResidual builds the 52-card deck minus every known card. Known
// cards may be passed in any number of groups (hero hand, board, dealt
// opponent hands); a card appearing twice across the groups yields
// ErrDuplicateCard.
func NewResidual(known ...[]Card) (Deck, error) {
	var seen CardSet
	for _, group := range known {
		for _, card := range group {
			if seen.Contains(card) {
				return Deck{}, fmt.Errorf("%w: %s", ErrDuplicateCard, card)
			}
			seen.Add(card)
		}
	}

	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := Card{Suit: suit, Rank: rank}
			if !seen.Contains(card) {
				cards = append(cards, card)
			}
		}
	}

	return Deck{cards: cards}, nil
}

// Size returns the number of unseen cards remaining.
func (d Deck) Size() int {
	return len(d.cards)
}

// Cards exposes the remaining cards. The slice is the deck's backing
// store and must not be modified by the caller.
func (d Deck) Cards() []Card {
	return d.cards
}

// Sample draws n distinct cards uniformly at random without replacement
// and returns them along with the reduced deck. The draw is a partial
// Fisher-Yates shuffle over a private copy, so every n-subset of the
// deck is equally likely and the receiver is left untouched.
func (d Deck) Sample(n int, rng *rand.Rand) ([]Card, Deck, error) {
	if n < 0 {
		return nil, d, fmt.Errorf("negative sample size %d", n)
	}
	if n > len(d.cards) {
		return nil, d, fmt.Errorf("%w: want %d, have %d", ErrInsufficientDeck, n, len(d.cards))
	}

	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	SampleInto(cards, n, rng)

	return cards[:n], Deck{cards: cards[n:]}, nil
}

// SampleInto performs a partial Fisher-Yates shuffle in place, moving n
// uniformly chosen distinct cards to cards[:n]. It is the allocation-free
// primitive the simulation hot loop uses on a worker-local scratch slice.
// Callers must have validated n against the slice; asking for more cards
// than exist is a programming error and panics.
func SampleInto(cards []Card, n int, rng *rand.Rand) {
	if n > len(cards) {
		panic(fmt.Sprintf("deck: sample of %d from %d cards", n, len(cards)))
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(cards)-i)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
