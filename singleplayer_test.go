package stageten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/stageten/deck"
	utils "github.com/minaorangina/stageten/internal"
)

func TestExchangeForWild(t *testing.T) {
	newRound := func(t *testing.T) *Round {
		t.Helper()
		round, err := NewRoundWithOpts(twoPlayers(), RoundOpts{CookedDeck: deck.New().Reversed()})
		require.NoError(t, err)
		return round
	}

	t.Run("trades a hand card for a fresh wild", func(t *testing.T) {
		round := newRound(t)
		traded := round.Hands[0].Cards[0]
		require.NoError(t, round.ExchangeForWild(traded, "1"))

		utils.AssertEqual(t, len(round.Hands[0].Cards), 10)
		utils.AssertEqual(t, round.Hands[0].indexOfCard(traded), -1)

		wildID := round.Hands[0].Cards[len(round.Hands[0].Cards)-1]
		wild := round.Cards[wildID]
		utils.AssertTrue(t, wild.IsWild())
		utils.AssertEqual(t, wild.Color, deck.Blue)
		utils.AssertEqual(t, wild.IsBound(), false)
	})

	t.Run("the traded card goes to the bottom of the discard pile", func(t *testing.T) {
		round := newRound(t)
		top := round.DiscardPile[len(round.DiscardPile)-1]
		traded := round.Hands[0].Cards[0]
		require.NoError(t, round.ExchangeForWild(traded, "1"))

		utils.AssertEqual(t, len(round.DiscardPile), 2)
		utils.AssertEqual(t, round.DiscardPile[0], traded)
		utils.AssertEqual(t, round.DiscardPile[len(round.DiscardPile)-1], top)

		// the traded card keeps its identity in the arena
		utils.AssertEqual(t, round.Cards[traded].Number, deck.Number(10))
	})

	t.Run("minted wilds get ids no card has held", func(t *testing.T) {
		round := newRound(t)
		seen := map[deck.CardID]bool{}
		for id := range round.Cards {
			seen[id] = true
		}
		for i := 0; i < 3; i++ {
			require.NoError(t, round.ExchangeForWild(round.Hands[0].Cards[0], "1"))
			wildID := round.Hands[0].Cards[len(round.Hands[0].Cards)-1]
			if seen[wildID] {
				t.Fatalf("wild id %d already in use", wildID)
			}
			seen[wildID] = true
		}
		utils.AssertEqual(t, len(round.Cards), deck.Size+3)
		assertConservation(t, round)
	})

	t.Run("rejects unknown players and cards", func(t *testing.T) {
		round := newRound(t)
		assert.Equal(t, ErrCardNotInHand, round.ExchangeForWild(round.Hands[0].Cards[0], "missing"))
		assert.Equal(t, ErrCardNotInHand, round.ExchangeForWild(99999, "1"))
		// player 2 does not hold player 1's cards
		assert.Equal(t, ErrCardNotInHand, round.ExchangeForWild(round.Hands[0].Cards[0], "2"))
	})
}
