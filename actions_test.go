package stageten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/stageten/deck"
	utils "github.com/minaorangina/stageten/internal"
)

func TestPickUpAndDiscard(t *testing.T) {
	round, err := NewRoundWithOpts(twoPlayers(), RoundOpts{CookedDeck: deck.New().Reversed()})
	require.NoError(t, err)

	require.NoError(t, round.PickUpCard(false))
	firstCard := round.Hands[0].Cards[0]
	require.NoError(t, round.Discard(firstCard))

	utils.AssertEqual(t, len(round.Hands[0].Cards), 10)
	utils.AssertEqual(t, len(round.Deck), 86)
	utils.AssertEqual(t, len(round.DiscardPile), 2)
	utils.AssertEqual(t, round.CurrentPlayerID(), "2")
	assertConservation(t, round)

	t.Run("picking up from the discard pile takes the top card", func(t *testing.T) {
		require.NoError(t, round.PickUpCard(true))

		picked := round.Cards[firstCard]
		utils.AssertEqual(t, picked.Number, deck.Number(10))
		utils.AssertEqual(t, picked.Color, deck.Red)
		utils.AssertTrue(t, round.Hands[1].indexOfCard(firstCard) >= 0)
		utils.AssertEqual(t, len(round.DiscardPile), 1)
	})

	t.Run("cannot pick up twice", func(t *testing.T) {
		assert.Equal(t, ErrNotWaitingForPlayerToPickUp, round.PickUpCard(true))
	})

	t.Run("cannot discard out of phase", func(t *testing.T) {
		require.NoError(t, round.Discard(round.Hands[1].Cards[0]))
		assert.Equal(t, ErrNotWaitingForPlayerToDiscard, round.Discard(round.Hands[0].Cards[0]))
	})

	t.Run("cannot discard a card you do not hold", func(t *testing.T) {
		require.NoError(t, round.PickUpCard(false))
		assert.Equal(t, ErrCardNotInHand, round.Discard(99999))
	})
}

func TestPickUpSkipsSkipOnDiscardPile(t *testing.T) {
	round, err := NewRoundWithOpts(fourPlayers(), RoundOpts{CookedDeck: deck.AllSkips(300)})
	require.NoError(t, err)

	deckBefore := len(round.Deck)
	require.NoError(t, round.PickUpCard(true))

	// the discard pile's top card is a skip, so the draw came from the deck
	utils.AssertEqual(t, len(round.DiscardPile), 1)
	utils.AssertEqual(t, len(round.Deck), deckBefore-1)
}

func TestPickUpFromEmptyDeckEndsRound(t *testing.T) {
	cooked := deck.Deck{
		deck.NewNumberCard(0, 1, deck.Red),
		deck.NewNumberCard(1, 2, deck.Red),
		deck.NewNumberCard(2, 3, deck.Red),
		deck.NewNumberCard(3, 4, deck.Red),
		deck.NewNumberCard(4, 5, deck.Red),
	}
	round, err := NewRoundWithOpts(twoPlayers(), RoundOpts{CookedDeck: cooked, HandSize: 2})
	require.NoError(t, err)
	utils.AssertEqual(t, len(round.Deck), 0)

	require.NoError(t, round.PickUpCard(false))

	utils.AssertEqual(t, round.State.Status, StatusRoundComplete)
	utils.AssertEqual(t, round.Hands[0].Player.Points, 10)
	utils.AssertEqual(t, round.Hands[1].Player.Points, 10)
	if round.Ended == nil {
		t.Error("expected the round's end time to be set")
	}
}

func TestSkipping(t *testing.T) {
	round, err := NewRoundWithOpts(fourPlayers(), RoundOpts{CookedDeck: deck.AllSkips(300)})
	require.NoError(t, err)

	discardSkip := func(t *testing.T, playerID, targetID string) {
		t.Helper()
		require.NoError(t, round.PickUpCard(false))
		utils.AssertEqual(t, round.CurrentPlayerID(), playerID)
		card := round.CurrentHand().Cards[0]
		require.NoError(t, round.BindSkipTarget(playerID, card, targetID))
		require.NoError(t, round.Discard(card))
	}

	discardSkip(t, "1", "3")

	t.Run("a skip cannot be discarded without a target", func(t *testing.T) {
		require.NoError(t, round.PickUpCard(false))
		assert.Equal(t, ErrSkipWithoutTarget, round.Discard(round.Hands[1].Cards[0]))
	})

	// player 2 also skips player 3; the turn then resolves one pending skip
	card := round.Hands[1].Cards[0]
	require.NoError(t, round.BindSkipTarget("2", card, "3"))
	require.NoError(t, round.Discard(card))
	utils.AssertEqual(t, round.SkipQueue["3"], 1)

	t.Run("players cannot skip themselves", func(t *testing.T) {
		require.NoError(t, round.PickUpCard(false))
		utils.AssertEqual(t, round.CurrentPlayerID(), "4")
		err := round.BindSkipTarget("4", round.Hands[3].Cards[0], "4")
		assert.Equal(t, ErrTriedToSkipYourself, err)
	})

	card = round.Hands[3].Cards[0]
	require.NoError(t, round.BindSkipTarget("4", card, "1"))
	require.NoError(t, round.Discard(card))
	utils.AssertEqual(t, round.SkipQueue["1"], 0)

	discardSkip(t, "2", "1")
	discardSkip(t, "4", "1")
	discardSkip(t, "2", "1")
	discardSkip(t, "3", "1")

	utils.AssertDeepEqual(t, round.SkipQueue, map[string]int{"1": 3, "3": 0})
}

func TestCompleteStage(t *testing.T) {
	cookRound := func(t *testing.T) *Round {
		t.Helper()
		cooked := deck.New()
		for i := 0; i < 3; i++ {
			cooked = append(cooked, deck.NewNumberCard(deck.CardID(2000+i), 3, deck.Blue))
		}
		for i := 0; i < 3; i++ {
			cooked = append(cooked, deck.NewNumberCard(deck.CardID(2003+i), 6, deck.Blue))
		}
		for i := 0; i < 4; i++ {
			cooked = append(cooked, deck.NewNumberCard(deck.CardID(2006+i), 12, deck.Blue))
		}
		for i := 0; i < 3; i++ {
			cooked = append(cooked, deck.NewNumberCard(deck.CardID(1000+i), 3, deck.Blue))
		}
		for i := 0; i < 3; i++ {
			cooked = append(cooked, deck.NewNumberCard(deck.CardID(1003+i), 6, deck.Blue))
		}
		for i := 0; i < 4; i++ {
			cooked = append(cooked, deck.NewNumberCard(deck.CardID(1006+i), 12, deck.Blue))
		}
		round, err := NewRoundWithOpts(twoPlayers(), RoundOpts{CookedDeck: cooked})
		require.NoError(t, err)
		return round
	}

	t.Run("laying down consumes exactly the melded cards", func(t *testing.T) {
		round := cookRound(t)
		form := CompleteStageForm{Attempts: []CompletionAttempt{
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1003, 1004, 1005}},
		}}
		require.NoError(t, round.CompleteStage(form))

		utils.AssertTrue(t, round.Hands[0].IsRequirementsComplete())
		utils.AssertEqual(t, len(round.Hands[0].Cards), 4)
		utils.AssertEqual(t, len(round.Hands[0].Completed), 2)
		for _, id := range []deck.CardID{1006, 1007, 1008, 1009} {
			utils.AssertTrue(t, round.Hands[0].indexOfCard(id) >= 0)
		}
		assertConservation(t, round)
	})

	t.Run("attempt count must match the requirements", func(t *testing.T) {
		round := cookRound(t)
		form := CompleteStageForm{Attempts: []CompletionAttempt{
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
		}}
		assert.Equal(t, ErrCompletionAttemptsMismatch, round.CompleteStage(form))
	})

	t.Run("attempts must name the stage's requirements", func(t *testing.T) {
		round := cookRound(t)
		form := CompleteStageForm{Attempts: []CompletionAttempt{
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
			{Requirement: RunOf(4), CardIDs: []deck.CardID{1003, 1004, 1005}},
		}}
		assert.Equal(t, ErrRequirementDoesNotExist, round.CompleteStage(form))
	})

	t.Run("a failing attempt leaves the hand untouched", func(t *testing.T) {
		round := cookRound(t)
		form := CompleteStageForm{Attempts: []CompletionAttempt{
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1003, 1004}}, // too few
		}}
		assert.Equal(t, ErrInsufficientCards, round.CompleteStage(form))
		utils.AssertEqual(t, len(round.Hands[0].Cards), 10)
		utils.AssertEqual(t, len(round.Hands[0].Completed), 0)
	})

	t.Run("cannot lay down twice", func(t *testing.T) {
		round := cookRound(t)
		form := CompleteStageForm{Attempts: []CompletionAttempt{
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1003, 1004, 1005}},
		}}
		require.NoError(t, round.CompleteStage(form))
		assert.Equal(t, ErrRequirementsAlreadyCompleted, round.CompleteStage(form))
	})

	t.Run("cards must be in hand and used once", func(t *testing.T) {
		round := cookRound(t)
		form := CompleteStageForm{Attempts: []CompletionAttempt{
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
		}}
		assert.Equal(t, ErrCardNotInHand, round.CompleteStage(form))

		form.Attempts[1].CardIDs = []deck.CardID{2000, 2001, 2002} // player 2's cards
		assert.Equal(t, ErrCardNotInHand, round.CompleteStage(form))
	})
}

func TestPlayRound(t *testing.T) {
	cooked := deck.New()
	for i := 0; i < 3; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(2000+i), 3, deck.Blue))
	}
	for i := 0; i < 3; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(2003+i), 6, deck.Blue))
	}
	for i := 0; i < 4; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(2006+i), 12, deck.Blue))
	}
	for i := 0; i < 3; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(1000+i), 3, deck.Blue))
	}
	for i := 0; i < 3; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(1003+i), 6, deck.Blue))
	}
	for i := 0; i < 4; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(1006+i), 12, deck.Blue))
	}
	round, err := NewRoundWithOpts(twoPlayers(), RoundOpts{CookedDeck: cooked})
	require.NoError(t, err)

	// player 1 lays down two sets of three, then discards a twelve
	require.NoError(t, round.CompleteStage(CompleteStageForm{Attempts: []CompletionAttempt{
		{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
		{Requirement: SetOf(3), CardIDs: []deck.CardID{1003, 1004, 1005}},
	}}))
	require.NoError(t, round.PickUpCard(false))
	require.NoError(t, round.Discard(1006))

	// player 2 lays down, putting all four twelves into one set
	require.NoError(t, round.CompleteStage(CompleteStageForm{Attempts: []CompletionAttempt{
		{Requirement: SetOf(3), CardIDs: []deck.CardID{2000, 2001, 2002}},
		{Requirement: SetOf(3), CardIDs: []deck.CardID{2006, 2007, 2008, 2009}},
	}}))
	utils.AssertEqual(t, len(round.Hands[1].Completed[1].CardIDs), 4)
	require.NoError(t, round.PickUpCard(false))

	// player 2 feeds their sixes onto player 1's set of sixes
	sixes := round.Hands[0].Completed[1]
	for _, id := range []deck.CardID{2003, 2004, 2005} {
		require.NoError(t, round.AddCard(AddCardForm{CardID: id, MeldID: sixes.ID, OwnerID: "1"}))
	}
	utils.AssertEqual(t, len(round.Hands[0].Completed[1].CardIDs), 6)
	assertConservation(t, round)

	// player 2 now holds only the skip card drawn from the deck
	utils.AssertEqual(t, len(round.Hands[1].Cards), 1)
	skipID := round.Hands[1].Cards[0]
	utils.AssertTrue(t, round.Cards[skipID].IsSkip())
	require.NoError(t, round.BindSkipTarget("2", skipID, "1"))
	require.NoError(t, round.Discard(skipID))

	// the empty hand ends the round; player 1 is left holding three twelves
	// and a skip
	utils.AssertEqual(t, round.State.Status, StatusRoundComplete)
	utils.AssertEqual(t, round.Hands[1].Player.Points, 0)
	utils.AssertEqual(t, round.Hands[0].Player.Points, 55)
	assertConservation(t, round)
}

func TestAddCard(t *testing.T) {
	newLaidDownRound := func(t *testing.T) *Round {
		t.Helper()
		cooked := deck.New()
		for i := 0; i < 10; i++ {
			cooked = append(cooked, deck.NewNumberCard(deck.CardID(2000+i), 1, deck.Red))
		}
		// player 1: two sets of three, a run candidate and a wild
		for _, c := range []deck.Card{
			deck.NewNumberCard(1000, 3, deck.Blue),
			deck.NewNumberCard(1001, 3, deck.Red),
			deck.NewNumberCard(1002, 3, deck.Green),
			deck.NewNumberCard(1003, 6, deck.Blue),
			deck.NewNumberCard(1004, 6, deck.Red),
			deck.NewNumberCard(1005, 6, deck.Green),
			deck.NewNumberCard(1006, 7, deck.Blue),
			deck.NewNumberCard(1007, 2, deck.Blue),
			deck.NewNumberCard(1008, 12, deck.Blue),
			deck.NewWildCard(1009, deck.Yellow),
		} {
			cooked = append(cooked, c)
		}
		round, err := NewRoundWithOpts(twoPlayers(), RoundOpts{CookedDeck: cooked})
		require.NoError(t, err)
		require.NoError(t, round.CompleteStage(CompleteStageForm{Attempts: []CompletionAttempt{
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1000, 1001, 1002}},
			{Requirement: SetOf(3), CardIDs: []deck.CardID{1003, 1004, 1005}},
		}}))
		return round
	}

	t.Run("extends a set with a matching card", func(t *testing.T) {
		round := newLaidDownRound(t)
		meld := round.Hands[0].Completed[1]
		wrongCard := deck.CardID(1007)
		assert.Equal(t, ErrInvalidCard, round.AddCard(AddCardForm{CardID: wrongCard, MeldID: meld.ID, OwnerID: "1"}))

		require.NoError(t, round.AddCard(AddCardForm{CardID: 1009, MeldID: meld.ID, OwnerID: "1"}))
		utils.AssertEqual(t, len(round.Hands[0].Completed[1].CardIDs), 4)

		// the wild is now bound to six in the arena
		bound := round.Cards[1009]
		n, ok := bound.ResolvedNumber()
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, n, deck.Number(6))
	})

	t.Run("the actor must have laid down first", func(t *testing.T) {
		cooked := deck.New()
		round, err := NewRoundWithOpts(twoPlayers(), RoundOpts{CookedDeck: cooked})
		require.NoError(t, err)
		err = round.AddCard(AddCardForm{CardID: round.Hands[0].Cards[0], MeldID: "nope", OwnerID: "1"})
		assert.Equal(t, ErrStageIncomplete, err)
	})

	t.Run("unknown owner or meld", func(t *testing.T) {
		round := newLaidDownRound(t)
		err := round.AddCard(AddCardForm{CardID: 1007, MeldID: "nope", OwnerID: "missing"})
		assert.Equal(t, ErrPlayerNotFound, err)

		err = round.AddCard(AddCardForm{CardID: 1007, MeldID: "nope", OwnerID: "2"})
		assert.Equal(t, ErrCompletedMeldNotFound, err)
	})

	t.Run("runs need a position", func(t *testing.T) {
		round := newLaidDownRound(t)
		// hand-craft a run meld for player 2 out of thin air is not possible;
		// reuse player 1's meld shape instead
		meld := round.Hands[0].Completed[0]
		meld.Kind = RunMeld
		meld.RequiredLength = 4
		round.Hands[0].Completed[0] = meld

		err := round.AddCard(AddCardForm{CardID: 1007, MeldID: meld.ID, OwnerID: "1"})
		assert.Equal(t, ErrMissingAddPositionForRun, err)
	})
}

func TestStageTenLaydownWinsTheGame(t *testing.T) {
	players := []Player{
		{ID: "1", Name: "Player 1", Stage: FinalStage},
		{ID: "2", Name: "Player 2", Stage: FinalStage},
	}
	cooked := deck.New()
	for i := 0; i < 10; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(2000+i), 1, deck.Red))
	}
	for i := 0; i < 5; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(1000+i), 9, deck.Blue))
	}
	for i := 0; i < 3; i++ {
		cooked = append(cooked, deck.NewNumberCard(deck.CardID(1005+i), 4, deck.Blue))
	}
	cooked = append(cooked,
		deck.NewNumberCard(1008, 12, deck.Blue),
		deck.NewNumberCard(1009, 11, deck.Blue),
	)
	round, err := NewRoundWithOpts(players, RoundOpts{CookedDeck: cooked})
	require.NoError(t, err)

	require.NoError(t, round.CompleteStage(CompleteStageForm{Attempts: []CompletionAttempt{
		{Requirement: SetOf(5), CardIDs: []deck.CardID{1000, 1001, 1002, 1003, 1004}},
		{Requirement: SetOf(3), CardIDs: []deck.CardID{1005, 1006, 1007}},
	}}))

	utils.AssertEqual(t, round.State.Status, StatusGameComplete)
	utils.AssertEqual(t, round.State.WinnerID, "1")
	if round.Ended == nil {
		t.Error("expected the round's end time to be set")
	}

	t.Run("no further actions are accepted", func(t *testing.T) {
		assert.Equal(t, ErrNotWaitingForPlayerToPickUp, round.PickUpCard(false))
		assert.Equal(t, ErrNotWaitingForPlayerToDiscard, round.Discard(1008))
	})
}
