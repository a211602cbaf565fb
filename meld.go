package stageten

import (
	"sort"

	"github.com/minaorangina/stageten/deck"
)

const (
	MinRunLength = 4
	MaxRunLength = 9
)

// AddPosition says which end of a run a card should join
type AddPosition string

const (
	Beginning AddPosition = "beginning"
	End       AddPosition = "end"
)

// MeldKind discriminates the completed meld variants
type MeldKind string

const (
	NumberSetMeld MeldKind = "number_set"
	ColorSetMeld  MeldKind = "color_set"
	RunMeld       MeldKind = "run"
)

// CompletedMeld is a laid-down group of cards satisfying one stage
// requirement. Created once at lay-down and thereafter only extended.
// Card order is meaningful for runs only (ascending).
type CompletedMeld struct {
	ID             string        `json:"id"`
	Kind           MeldKind      `json:"kind"`
	Number         deck.Number   `json:"number,omitempty"`
	Color          deck.Color    `json:"color,omitempty"`
	RequiredCount  int           `json:"required_count,omitempty"`
	RequiredLength int           `json:"required_length,omitempty"`
	CardIDs        []deck.CardID `json:"card_ids"`
}

// Requirement returns the stage requirement this meld satisfies
func (m CompletedMeld) Requirement() Requirement {
	switch m.Kind {
	case RunMeld:
		return RunOf(m.RequiredLength)
	case ColorSetMeld:
		return ColorSetOf(m.RequiredCount)
	default:
		return SetOf(m.RequiredCount)
	}
}

// NumberSet validates a group of cards that all count as one number
type NumberSet struct {
	RequiredCount int
	Number        deck.Number
	Cards         []deck.Card
}

// NewNumberSet builds a number set from candidate cards. Skip cards fail the
// whole set; cards that cannot count as the set's number are left out, and a
// shortfall after filtering fails with SetNotBigEnoughError.
func NewNumberSet(requiredCount int, number deck.Number, cards []deck.Card) (*NumberSet, error) {
	if len(cards) < requiredCount {
		return nil, ErrInsufficientCards
	}
	s := &NumberSet{RequiredCount: requiredCount, Number: number}
	for _, card := range cards {
		if card.IsSkip() {
			return nil, ErrInvalidCard
		}
		if err := s.Add(card); err != nil {
			continue
		}
	}
	if len(s.Cards) < requiredCount {
		return nil, SetNotBigEnoughError{Needed: requiredCount - len(s.Cards)}
	}
	return s, nil
}

// Add appends one card, binding an unbound wild to the set's number
func (s *NumberSet) Add(card deck.Card) error {
	switch {
	case card.IsSkip():
		return ErrInvalidCard
	case card.IsWild():
		if card.IsBound() {
			n, ok := card.ResolvedNumber()
			if !ok || n != s.Number {
				return ErrInvalidCard
			}
		} else if err := card.BindAsNumber(s.Number); err != nil {
			return err
		}
	default:
		if card.Number != s.Number {
			return ErrInvalidCard
		}
	}
	s.Cards = append(s.Cards, card)
	return nil
}

// ColorSet validates a group of cards that all count as one color
type ColorSet struct {
	RequiredCount int
	Color         deck.Color
	Cards         []deck.Card
}

// NewColorSet builds a color set from candidate cards, with the same
// filtering policy as NewNumberSet.
func NewColorSet(requiredCount int, color deck.Color, cards []deck.Card) (*ColorSet, error) {
	if len(cards) < requiredCount {
		return nil, ErrInsufficientCards
	}
	s := &ColorSet{RequiredCount: requiredCount, Color: color}
	for _, card := range cards {
		if card.IsSkip() {
			return nil, ErrInvalidCard
		}
		if err := s.Add(card); err != nil {
			continue
		}
	}
	if len(s.Cards) < requiredCount {
		return nil, SetNotBigEnoughError{Needed: requiredCount - len(s.Cards)}
	}
	return s, nil
}

// Add appends one card, binding an unbound wild to the set's color
func (s *ColorSet) Add(card deck.Card) error {
	switch {
	case card.IsSkip():
		return ErrInvalidCard
	case card.IsWild():
		if card.IsBound() {
			if card.UsedAsColor == nil || *card.UsedAsColor != s.Color {
				return ErrInvalidCard
			}
		} else if err := card.BindAsColor(s.Color); err != nil {
			return err
		}
	default:
		if card.Color != s.Color {
			return ErrInvalidCard
		}
	}
	s.Cards = append(s.Cards, card)
	return nil
}

// Run validates a strictly consecutive ascending sequence of numbers
type Run struct {
	RequiredLength int
	Cards          []deck.Card
}

// NewRun builds a run from candidate cards. The length bounds are fixed game
// constants and checked before any card is inspected. Unbound wilds take the
// number implied by their position.
func NewRun(requiredLength int, cards []deck.Card) (*Run, error) {
	if requiredLength < MinRunLength {
		return nil, ErrRunLengthBelowMin
	}
	if requiredLength > MaxRunLength {
		return nil, ErrRunLengthAboveMax
	}
	if len(cards) < requiredLength {
		return nil, ErrInsufficientCards
	}

	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return runSortKey(sorted[i]) < runSortKey(sorted[j])
	})

	if sorted[0].IsSkip() {
		return nil, ErrInvalidCard
	}
	r := &Run{RequiredLength: requiredLength, Cards: []deck.Card{sorted[0]}}
	for _, card := range sorted[1:] {
		if err := r.Add(card, End); err != nil {
			// a gap or duplicate surfaces as a boundary mismatch
			if err == ErrNotValidNextCard || err == ErrRunReachedEnd || err == ErrCardsDoNotMakeRun {
				return nil, ErrCardsDoNotMakeRun
			}
			return nil, err
		}
	}
	return r, nil
}

// Add extends the run at one end. A wild must already be bound to the
// boundary number, or becomes bound to it as part of the add.
func (r *Run) Add(card deck.Card, position AddPosition) error {
	if card.IsSkip() {
		return ErrInvalidCard
	}
	want, err := r.boundary(position)
	if err != nil {
		return err
	}
	if card.IsWild() {
		if card.IsBound() {
			n, ok := card.ResolvedNumber()
			if !ok || n != want {
				return ErrInvalidCard
			}
		} else if err := card.BindAsNumber(want); err != nil {
			return err
		}
	} else if card.Number != want {
		return ErrNotValidNextCard
	}

	if position == Beginning {
		r.Cards = append([]deck.Card{card}, r.Cards...)
	} else {
		r.Cards = append(r.Cards, card)
	}
	return nil
}

func (r *Run) boundary(position AddPosition) (deck.Number, error) {
	if len(r.Cards) == 0 {
		return 0, ErrCardsDoNotMakeRun
	}
	var edge deck.Card
	if position == Beginning {
		edge = r.Cards[0]
	} else {
		edge = r.Cards[len(r.Cards)-1]
	}
	n, ok := edge.ResolvedNumber()
	if !ok {
		return 0, ErrCardsDoNotMakeRun
	}
	if position == Beginning {
		if n <= deck.MinNumber {
			return 0, ErrRunReachedEnd
		}
		return n - 1, nil
	}
	if n >= deck.MaxNumber {
		return 0, ErrRunReachedEnd
	}
	return n + 1, nil
}

func runSortKey(c deck.Card) int {
	if n, ok := c.ResolvedNumber(); ok {
		return int(n)
	}
	return int(deck.MaxNumber) + 1
}

// inferSetNumber works out which number a completion attempt's set is keyed
// on: the first number card or bound wild decides.
func inferSetNumber(cards []deck.Card) (deck.Number, error) {
	for _, card := range cards {
		if card.IsNumber() {
			return card.Number, nil
		}
		if card.IsWild() && card.UsedAsNumber != nil {
			return *card.UsedAsNumber, nil
		}
	}
	return 0, ErrInvalidCard
}

func inferSetColor(cards []deck.Card) (deck.Color, error) {
	for _, card := range cards {
		if card.IsNumber() {
			return card.Color, nil
		}
		if card.IsWild() && card.UsedAsColor != nil {
			return *card.UsedAsColor, nil
		}
	}
	return "", ErrInvalidCard
}
