package stageten

import (
	"github.com/minaorangina/stageten/deck"
)

// CompletionAttempt proposes the cards for one of the stage's requirements
type CompletionAttempt struct {
	Requirement Requirement   `json:"requirement"`
	CardIDs     []deck.CardID `json:"card_ids"`
}

// CompleteStageForm proposes a full lay-down: exactly one attempt per
// stage requirement.
type CompleteStageForm struct {
	Attempts []CompletionAttempt `json:"completion_attempts"`
}

// AddCardForm proposes extending an already-completed meld, owned by any
// player. Position applies to runs only.
type AddCardForm struct {
	CardID   deck.CardID `json:"card_id"`
	MeldID   string      `json:"completed_meld_id"`
	OwnerID  string      `json:"owner_id"`
	Position AddPosition `json:"position,omitempty"`
}

// PickUpCard draws a card into the current player's hand, from the discard
// pile's top card if requested (and it is not a skip), otherwise from the
// deck. Drawing from an exhausted deck ends the round instead.
func (r *Round) PickUpCard(fromDiscardPile bool) error {
	if r.State.Status != StatusWaitingForPlayer || r.State.Phase != NeedsToPickUp {
		return ErrNotWaitingForPlayerToPickUp
	}
	idx := r.CurrentHandIndex()
	if idx < 0 {
		return ErrNoCurrentPlayer
	}

	var picked deck.CardID
	fromDiscard := false
	if fromDiscardPile && len(r.DiscardPile) > 0 {
		top := r.DiscardPile[len(r.DiscardPile)-1]
		if card, ok := r.Cards[top]; ok && !card.IsSkip() {
			picked = top
			fromDiscard = true
		}
	}
	if !fromDiscard {
		if len(r.Deck) == 0 {
			r.checkCompletion()
			return nil
		}
		picked = r.Deck[len(r.Deck)-1]
		r.Deck = r.Deck[:len(r.Deck)-1]
	} else {
		r.DiscardPile = r.DiscardPile[:len(r.DiscardPile)-1]
	}

	r.Hands[idx].Cards = append(r.Hands[idx].Cards, picked)
	r.Log.add(PlayerAction{
		PlayerID:        r.Hands[idx].Player.ID,
		Decision:        DecisionPickup,
		CardID:          picked,
		FromDiscardPile: fromDiscard,
	}, r.LogLimit)
	r.State = waitingFor(r.Hands[idx].Player.ID, NeedsToDiscard)
	return nil
}

// BindSkipTarget records which opponent a skip card in the player's hand
// will skip when discarded.
func (r *Round) BindSkipTarget(playerID string, cardID deck.CardID, targetID string) error {
	idx := r.handIndex(playerID)
	if idx < 0 {
		return ErrPlayerNotFound
	}
	if r.Hands[idx].indexOfCard(cardID) < 0 {
		return ErrCardNotInHand
	}
	if r.handIndex(targetID) < 0 {
		return ErrPlayerNotFound
	}
	if targetID == playerID {
		return ErrTriedToSkipYourself
	}
	card := r.Cards[cardID]
	if err := card.BindSkipTarget(targetID); err != nil {
		return err
	}
	r.Cards[cardID] = card
	return nil
}

// BindWildAsNumber commits a wild card in the player's hand to a number
func (r *Round) BindWildAsNumber(playerID string, cardID deck.CardID, number deck.Number) error {
	return r.bindWild(playerID, cardID, func(card *deck.Card) error {
		return card.BindAsNumber(number)
	})
}

// BindWildAsColor commits a wild card in the player's hand to a color
func (r *Round) BindWildAsColor(playerID string, cardID deck.CardID, color deck.Color) error {
	return r.bindWild(playerID, cardID, func(card *deck.Card) error {
		return card.BindAsColor(color)
	})
}

func (r *Round) bindWild(playerID string, cardID deck.CardID, bind func(*deck.Card) error) error {
	idx := r.handIndex(playerID)
	if idx < 0 {
		return ErrPlayerNotFound
	}
	if r.Hands[idx].indexOfCard(cardID) < 0 {
		return ErrCardNotInHand
	}
	card := r.Cards[cardID]
	if err := bind(&card); err != nil {
		return err
	}
	r.Cards[cardID] = card
	return nil
}

// Discard moves a card from the current player's hand to the top of the
// discard pile and hands the turn on. A skip card must already carry a
// target, whose pending-skip count is incremented.
func (r *Round) Discard(cardID deck.CardID) error {
	if r.State.Status != StatusWaitingForPlayer || r.State.Phase != NeedsToDiscard {
		return ErrNotWaitingForPlayerToDiscard
	}
	idx := r.CurrentHandIndex()
	if idx < 0 {
		return ErrNoCurrentPlayer
	}
	cardPos := r.Hands[idx].indexOfCard(cardID)
	if cardPos < 0 {
		return ErrCardNotInHand
	}

	card := r.Cards[cardID]
	if card.IsSkip() {
		if card.SkipTarget == "" {
			return ErrSkipWithoutTarget
		}
		if card.SkipTarget == r.Hands[idx].Player.ID {
			return ErrTriedToSkipYourself
		}
		if r.handIndex(card.SkipTarget) < 0 {
			return ErrPlayerNotFound
		}
	}

	r.Hands[idx].Cards = append(r.Hands[idx].Cards[:cardPos], r.Hands[idx].Cards[cardPos+1:]...)
	r.DiscardPile = append(r.DiscardPile, cardID)
	if card.IsSkip() {
		r.SkipQueue[card.SkipTarget]++
	}

	r.Log.add(PlayerAction{
		PlayerID: r.Hands[idx].Player.ID,
		Decision: DecisionDiscard,
		CardID:   cardID,
	}, r.LogLimit)

	r.checkCompletion()
	if r.State.Status == StatusWaitingForPlayer {
		r.advanceTurn(idx)
	}
	return nil
}

// CompleteStage lays down the current player's whole stage in one action.
// Every requirement must be covered by exactly one attempt and every attempt
// must validate; otherwise nothing changes.
func (r *Round) CompleteStage(form CompleteStageForm) error {
	idx := r.CurrentHandIndex()
	if idx < 0 {
		return ErrNoCurrentPlayer
	}
	hand := r.Hands[idx]
	if hand.IsRequirementsComplete() {
		return ErrRequirementsAlreadyCompleted
	}

	requirements := hand.Player.Stage.Requirements()
	if len(form.Attempts) != len(requirements) {
		return ErrCompletionAttemptsMismatch
	}
	remaining := requirements
	for _, attempt := range form.Attempts {
		found := -1
		for i, req := range remaining {
			if req == attempt.Requirement {
				found = i
				break
			}
		}
		if found < 0 {
			return ErrRequirementDoesNotExist
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	if len(remaining) > 0 {
		return ErrStageIncomplete
	}

	// every proposed card must be in hand, and used at most once
	used := map[deck.CardID]bool{}
	for _, attempt := range form.Attempts {
		for _, id := range attempt.CardIDs {
			if used[id] || hand.indexOfCard(id) < 0 {
				return ErrCardNotInHand
			}
			used[id] = true
		}
	}

	// build all melds before committing anything
	type candidate struct {
		meld  CompletedMeld
		cards []deck.Card
	}
	candidates := make([]candidate, 0, len(form.Attempts))
	for _, attempt := range form.Attempts {
		cards := r.resolveCards(attempt.CardIDs)
		meld, bound, err := buildMeld(attempt.Requirement, cards)
		if err != nil {
			return err
		}
		candidates = append(candidates, candidate{meld: meld, cards: bound})
	}

	consumed := []deck.CardID{}
	meldIDs := []string{}
	for _, c := range candidates {
		for _, card := range c.cards {
			r.Cards[card.ID] = card
		}
		r.Hands[idx].Completed = append(r.Hands[idx].Completed, c.meld)
		for _, id := range c.meld.CardIDs {
			pos := r.Hands[idx].indexOfCard(id)
			r.Hands[idx].Cards = append(r.Hands[idx].Cards[:pos], r.Hands[idx].Cards[pos+1:]...)
		}
		consumed = append(consumed, c.meld.CardIDs...)
		meldIDs = append(meldIDs, c.meld.ID)
	}

	r.Log.add(PlayerAction{
		PlayerID: hand.Player.ID,
		Decision: DecisionLaydown,
		MeldIDs:  meldIDs,
		CardIDs:  consumed,
	}, r.LogLimit)

	r.checkCompletion()
	return nil
}

func buildMeld(req Requirement, cards []deck.Card) (CompletedMeld, []deck.Card, error) {
	switch req.Kind {
	case RunRequirement:
		run, err := NewRun(req.Length, cards)
		if err != nil {
			return CompletedMeld{}, nil, err
		}
		return CompletedMeld{
			ID:             NewID(),
			Kind:           RunMeld,
			RequiredLength: run.RequiredLength,
			CardIDs:        idsOf(run.Cards),
		}, run.Cards, nil

	case ColorSetRequirement:
		color, err := inferSetColor(cards)
		if err != nil {
			return CompletedMeld{}, nil, err
		}
		set, err := NewColorSet(req.Count, color, cards)
		if err != nil {
			return CompletedMeld{}, nil, err
		}
		return CompletedMeld{
			ID:            NewID(),
			Kind:          ColorSetMeld,
			Color:         set.Color,
			RequiredCount: set.RequiredCount,
			CardIDs:       idsOf(set.Cards),
		}, set.Cards, nil

	default:
		number, err := inferSetNumber(cards)
		if err != nil {
			return CompletedMeld{}, nil, err
		}
		set, err := NewNumberSet(req.Count, number, cards)
		if err != nil {
			return CompletedMeld{}, nil, err
		}
		return CompletedMeld{
			ID:            NewID(),
			Kind:          NumberSetMeld,
			Number:        set.Number,
			RequiredCount: set.RequiredCount,
			CardIDs:       idsOf(set.Cards),
		}, set.Cards, nil
	}
}

func idsOf(cards []deck.Card) []deck.CardID {
	ids := make([]deck.CardID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// AddCard extends any player's completed meld with a card from the current
// player's hand. The current player must have laid down their own stage
// first.
func (r *Round) AddCard(form AddCardForm) error {
	idx := r.CurrentHandIndex()
	if idx < 0 {
		return ErrNoCurrentPlayer
	}
	if !r.Hands[idx].IsRequirementsComplete() {
		return ErrStageIncomplete
	}
	cardPos := r.Hands[idx].indexOfCard(form.CardID)
	if cardPos < 0 {
		return ErrCardNotInHand
	}
	ownerIdx := r.handIndex(form.OwnerID)
	if ownerIdx < 0 {
		return ErrPlayerNotFound
	}
	meldIdx := r.Hands[ownerIdx].meldIndex(form.MeldID)
	if meldIdx < 0 {
		return ErrCompletedMeldNotFound
	}

	meld := r.Hands[ownerIdx].Completed[meldIdx]
	card := r.Cards[form.CardID]
	var added deck.Card

	switch meld.Kind {
	case RunMeld:
		if form.Position != Beginning && form.Position != End {
			return ErrMissingAddPositionForRun
		}
		run := &Run{RequiredLength: meld.RequiredLength, Cards: r.resolveCards(meld.CardIDs)}
		if err := run.Add(card, form.Position); err != nil {
			return err
		}
		if form.Position == Beginning {
			added = run.Cards[0]
			meld.CardIDs = append([]deck.CardID{added.ID}, meld.CardIDs...)
		} else {
			added = run.Cards[len(run.Cards)-1]
			meld.CardIDs = append(meld.CardIDs, added.ID)
		}

	case ColorSetMeld:
		set := &ColorSet{RequiredCount: meld.RequiredCount, Color: meld.Color, Cards: r.resolveCards(meld.CardIDs)}
		if err := set.Add(card); err != nil {
			return err
		}
		added = set.Cards[len(set.Cards)-1]
		meld.CardIDs = append(meld.CardIDs, added.ID)

	default:
		set := &NumberSet{RequiredCount: meld.RequiredCount, Number: meld.Number, Cards: r.resolveCards(meld.CardIDs)}
		if err := set.Add(card); err != nil {
			return err
		}
		added = set.Cards[len(set.Cards)-1]
		meld.CardIDs = append(meld.CardIDs, added.ID)
	}

	r.Cards[added.ID] = added
	r.Hands[ownerIdx].Completed[meldIdx] = meld
	r.Hands[idx].Cards = append(r.Hands[idx].Cards[:cardPos], r.Hands[idx].Cards[cardPos+1:]...)

	r.Log.add(PlayerAction{
		PlayerID: r.Hands[idx].Player.ID,
		Decision: DecisionAddCard,
		CardID:   form.CardID,
		MeldID:   meld.ID,
	}, r.LogLimit)

	r.checkCompletion()
	return nil
}
