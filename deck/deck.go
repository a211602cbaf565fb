package deck

import (
	"math/rand"
	"time"
)

// Size is the number of cards in a canonical deck: two copies of each
// (number, color) pair, two wilds per color and four skips.
const Size = 108

const (
	numSkips        = 4
	wildsPerColor   = 2
	copiesPerNumber = 2
)

// Deck represents an ordered pile of cards. The tail is the top: drawing
// removes from the end.
type Deck []Card

// New creates the canonical 108-card deck. Each card gets a unique id drawn
// from a random permutation of [0, Size) so that an id value never reveals
// which card it names.
func New() Deck {
	ids := rand.Perm(Size)
	next := func() CardID {
		id := ids[len(ids)-1]
		ids = ids[:len(ids)-1]
		return CardID(id)
	}

	cards := make(Deck, 0, Size)
	for dup := 0; dup < copiesPerNumber; dup++ {
		for _, color := range Colors() {
			for n := MinNumber; n <= MaxNumber; n++ {
				cards = append(cards, NewNumberCard(next(), n, color))
			}
		}
	}
	for dup := 0; dup < wildsPerColor; dup++ {
		for _, color := range Colors() {
			cards = append(cards, NewWildCard(next(), color))
		}
	}
	for i := 0; i < numSkips; i++ {
		cards = append(cards, NewSkipCard(next()))
	}
	return cards
}

// AllSkips creates a cooked deck of n unbound skip cards
func AllSkips(n int) Deck {
	cards := make(Deck, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, NewSkipCard(CardID(i)))
	}
	return cards
}

// Shuffle shuffles the deck of cards
func (d Deck) Shuffle() {
	rand.Seed(time.Now().UnixNano())
	for i := len(d) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Deal deals n cards from the top of the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := (*d)[startingIndex:numCardsInDeck]
	*d = (*d)[:startingIndex]
	return subSlice
}

// Reversed returns a copy of the deck in reverse order, for deterministic
// test deals.
func (d Deck) Reversed() Deck {
	out := make(Deck, len(d))
	for i, c := range d {
		out[len(d)-1-i] = c
	}
	return out
}

// TotalPoints sums the score value of every card in the deck
func (d Deck) TotalPoints() int {
	total := 0
	for _, c := range d {
		total += c.Points()
	}
	return total
}
