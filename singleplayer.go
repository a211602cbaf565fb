package stageten

import (
	"github.com/minaorangina/stageten/deck"
)

// ExchangeForWild trades any card in the player's hand for a freshly minted
// unbound wild. The traded card goes to the bottom of the discard pile so
// the exchange never sets up a useful pickup for anyone else.
func (r *Round) ExchangeForWild(cardID deck.CardID, playerID string) error {
	idx := r.handIndex(playerID)
	if idx < 0 {
		return ErrCardNotInHand
	}
	cardPos := r.Hands[idx].indexOfCard(cardID)
	if cardPos < 0 {
		return ErrCardNotInHand
	}

	r.Hands[idx].Cards = append(r.Hands[idx].Cards[:cardPos], r.Hands[idx].Cards[cardPos+1:]...)
	r.DiscardPile = append([]deck.CardID{cardID}, r.DiscardPile...)

	wild := deck.NewWildCard(r.nextCardID(), deck.Blue)
	r.Cards[wild.ID] = wild
	r.Hands[idx].Cards = append(r.Hands[idx].Cards, wild.ID)
	return nil
}

// nextCardID allocates an id no existing card holds
func (r *Round) nextCardID() deck.CardID {
	max := deck.CardID(-1)
	for id := range r.Cards {
		if id > max {
			max = id
		}
	}
	return max + 1
}
