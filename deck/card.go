package deck

import (
	"errors"
	"fmt"
)

var (
	ErrNotAWild         = errors.New("card is not a wild card")
	ErrWildAlreadyBound = errors.New("wild card is already bound")
	ErrNotASkipCard     = errors.New("card is not a skip card")
)

// CardID identifies a card within a single round. IDs are assigned once at
// deck construction (or when a wild is minted mid-round) and never reused.
type CardID int

// Color represents a card color
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
)

// Colors returns all card colors in canonical order
func Colors() []Color {
	return []Color{Red, Blue, Green, Yellow}
}

// Number represents a number card's face value
type Number int

const (
	MinNumber Number = 1
	MaxNumber Number = 12
)

// Kind discriminates the card variants
type Kind string

const (
	KindNumber Kind = "number"
	KindWild   Kind = "wild"
	KindSkip   Kind = "skip"
)

// Card represents a single card. Identity is immutable; the only mutable
// state is a wild's binding and a skip's target player.
type Card struct {
	ID   CardID `json:"id"`
	Kind Kind   `json:"kind"`

	// Number cards only
	Number Number `json:"number,omitempty"`

	// Number cards and the cosmetic color printed on a wild
	Color Color `json:"color,omitempty"`

	// Wild cards: what the wild counts as once laid down. At most one is set.
	UsedAsNumber *Number `json:"used_as_number,omitempty"`
	UsedAsColor  *Color  `json:"used_as_color,omitempty"`

	// Skip cards: the player who will lose a turn when this is discarded
	SkipTarget string `json:"skip_target,omitempty"`
}

// NewNumberCard constructs a number card
func NewNumberCard(id CardID, number Number, color Color) Card {
	return Card{ID: id, Kind: KindNumber, Number: number, Color: color}
}

// NewWildCard constructs an unbound wild card
func NewWildCard(id CardID, color Color) Card {
	return Card{ID: id, Kind: KindWild, Color: color}
}

// NewSkipCard constructs a skip card with no target
func NewSkipCard(id CardID) Card {
	return Card{ID: id, Kind: KindSkip}
}

func (c Card) IsNumber() bool {
	return c.Kind == KindNumber
}

func (c Card) IsWild() bool {
	return c.Kind == KindWild
}

func (c Card) IsSkip() bool {
	return c.Kind == KindSkip
}

// IsBound reports whether a wild has been committed to a number or color
func (c Card) IsBound() bool {
	return c.UsedAsNumber != nil || c.UsedAsColor != nil
}

// BindAsNumber commits a wild card to count as the given number.
// A wild binds at most once; rebinding fails.
func (c *Card) BindAsNumber(number Number) error {
	if !c.IsWild() {
		return ErrNotAWild
	}
	if c.IsBound() {
		return ErrWildAlreadyBound
	}
	c.UsedAsNumber = &number
	return nil
}

// BindAsColor commits a wild card to count as the given color
func (c *Card) BindAsColor(color Color) error {
	if !c.IsWild() {
		return ErrNotAWild
	}
	if c.IsBound() {
		return ErrWildAlreadyBound
	}
	c.UsedAsColor = &color
	return nil
}

// BindSkipTarget records which player this skip card will skip.
// Self-targeting is checked by the round, which knows the players.
func (c *Card) BindSkipTarget(playerID string) error {
	if !c.IsSkip() {
		return ErrNotASkipCard
	}
	c.SkipTarget = playerID
	return nil
}

// ResolvedNumber returns the number this card counts as, projecting a wild
// through its binding. The second return is false for skips and unbound wilds.
func (c Card) ResolvedNumber() (Number, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Number, true
	case KindWild:
		if c.UsedAsNumber != nil {
			return *c.UsedAsNumber, true
		}
	}
	return 0, false
}

// ResolvedColor returns the color this card counts as. An unbound wild
// falls back to its cosmetic color.
func (c Card) ResolvedColor() (Color, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Color, true
	case KindWild:
		if c.UsedAsColor != nil {
			return *c.UsedAsColor, true
		}
		return c.Color, true
	}
	return "", false
}

// Points returns the card's score value when left in a hand at round end
func (c Card) Points() int {
	switch c.Kind {
	case KindWild, KindSkip:
		return 25
	default:
		if c.Number >= 10 {
			return 10
		}
		return 5
	}
}

func (c Card) String() string {
	switch c.Kind {
	case KindSkip:
		return "skip"
	case KindWild:
		if n, ok := c.ResolvedNumber(); ok {
			return fmt.Sprintf("wild(%d)", n)
		}
		if c.UsedAsColor != nil {
			return fmt.Sprintf("wild(%s)", *c.UsedAsColor)
		}
		return "wild"
	default:
		return fmt.Sprintf("%s %d", c.Color, c.Number)
	}
}
