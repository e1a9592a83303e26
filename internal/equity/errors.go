package equity

import "errors"

// Input-shape errors. All are detected synchronously before any
// simulation work begins; malformed input is never clamped or corrected.
var (
	// ErrInvalidHandSize is returned when the hero hand is not exactly
	// two cards. A repeated card is deck.ErrDuplicateCard instead.
	ErrInvalidHandSize = errors.New("hero hand must be exactly 2 cards")

	// ErrInvalidBoardLength is returned for board sizes outside
	// {0, 3, 4, 5}.
	ErrInvalidBoardLength = errors.New("board must contain 0, 3, 4 or 5 cards")

	// ErrInvalidOpponents is returned for opponent counts below 1.
	ErrInvalidOpponents = errors.New("opponent count must be at least 1")

	// ErrZeroIterations is returned for iteration budgets of zero or less.
	ErrZeroIterations = errors.New("iterations must be greater than zero")
)
