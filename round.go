package stageten

import (
	"fmt"
	"strings"
	"time"

	"github.com/minaorangina/stageten/deck"
)

// Status is the round's super-state
type Status string

const (
	StatusWaitingForPlayer Status = "waiting_for_player_to_act"
	StatusRoundComplete    Status = "round_complete"
	StatusGameComplete     Status = "game_complete"
)

// Phase is the sub-state within a player's turn
type Phase string

const (
	NeedsToPickUp  Phase = "needs_to_pick_up"
	NeedsToDiscard Phase = "needs_to_discard"
)

// State is the round state machine's current position
type State struct {
	Status   Status `json:"status"`
	PlayerID string `json:"player_id,omitempty"`
	Phase    Phase  `json:"phase,omitempty"`
	WinnerID string `json:"winner_id,omitempty"`
}

func waitingFor(playerID string, phase Phase) State {
	return State{Status: StatusWaitingForPlayer, PlayerID: playerID, Phase: phase}
}

// Round owns all card and hand state for one round of play. It is the sole
// owner of its data: callers must serialize actions against one instance.
// Hands, melds and piles store card ids; Cards is the arena resolving an id
// to the card itself, so wild bindings mutate in exactly one place.
type Round struct {
	ID          string                    `json:"id"`
	Started     time.Time                 `json:"started"`
	Ended       *time.Time                `json:"ended,omitempty"`
	State       State                     `json:"state"`
	Cards       map[deck.CardID]deck.Card `json:"cards"`
	Deck        []deck.CardID             `json:"deck"`
	DiscardPile []deck.CardID             `json:"discard_pile"`
	Hands       []PlayerHand              `json:"hands"`
	SkipQueue   map[string]int            `json:"skip_queue"`
	Log         Log                       `json:"log"`
	HandSize    int                       `json:"hand_size"`
	LogLimit    int                       `json:"log_limit"`
}

// NewRound constructs a round with a freshly shuffled deck
func NewRound(players []Player) (*Round, error) {
	return NewRoundWithOpts(players, RoundOpts{})
}

// NewRoundWithOpts constructs a round, dealing each player a hand from the
// deck's tail and seeding the discard pile with the next card.
func NewRoundWithOpts(players []Player, opts RoundOpts) (*Round, error) {
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if len(players) > 6 {
		return nil, ErrTooManyPlayers
	}
	opts = opts.withDefaults()

	var pile deck.Deck
	if len(opts.CookedDeck) > 0 {
		pile = make(deck.Deck, len(opts.CookedDeck))
		copy(pile, opts.CookedDeck)
	} else {
		pile = deck.New()
		pile.Shuffle()
	}
	if len(pile) < len(players)*opts.HandSize+1 {
		return nil, ErrInsufficientCards
	}

	cards := make(map[deck.CardID]deck.Card, len(pile))
	for _, c := range pile {
		cards[c.ID] = c
	}

	hands := make([]PlayerHand, len(players))
	for i, player := range players {
		dealt := pile.Deal(opts.HandSize)
		ids := make([]deck.CardID, len(dealt))
		for j, c := range dealt {
			ids[j] = c.ID
		}
		hands[i] = PlayerHand{Player: player, Cards: ids, Completed: []CompletedMeld{}}
	}

	seed := pile.Deal(1)
	remaining := make([]deck.CardID, len(pile))
	for i, c := range pile {
		remaining[i] = c.ID
	}

	return &Round{
		ID:          opts.ID,
		Started:     time.Now().UTC(),
		State:       waitingFor(players[0].ID, NeedsToPickUp),
		Cards:       cards,
		Deck:        remaining,
		DiscardPile: []deck.CardID{seed[0].ID},
		Hands:       hands,
		SkipQueue:   map[string]int{},
		HandSize:    opts.HandSize,
		LogLimit:    opts.LogLimit,
	}, nil
}

// CurrentHandIndex returns the index of the hand whose turn it is, or -1
// when the round has ended.
func (r *Round) CurrentHandIndex() int {
	if r.State.Status != StatusWaitingForPlayer {
		return -1
	}
	return r.handIndex(r.State.PlayerID)
}

// CurrentHand returns the hand whose turn it is, or nil when the round
// has ended.
func (r *Round) CurrentHand() *PlayerHand {
	idx := r.CurrentHandIndex()
	if idx < 0 {
		return nil
	}
	return &r.Hands[idx]
}

// CurrentPlayerID returns the id of the player whose turn it is
func (r *Round) CurrentPlayerID() string {
	if r.State.Status != StatusWaitingForPlayer {
		return ""
	}
	return r.State.PlayerID
}

func (r *Round) handIndex(playerID string) int {
	for i, hand := range r.Hands {
		if hand.Player.ID == playerID {
			return i
		}
	}
	return -1
}

func (r *Round) resolveCards(ids []deck.CardID) []deck.Card {
	cards := make([]deck.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := r.Cards[id]; ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// AllCards returns every card currently held by the deck, the discard pile,
// a hand or a meld. Its length always matches the card arena.
func (r *Round) AllCards() []deck.Card {
	ids := []deck.CardID{}
	ids = append(ids, r.Deck...)
	ids = append(ids, r.DiscardPile...)
	for _, hand := range r.Hands {
		ids = append(ids, hand.Cards...)
		for _, meld := range hand.Completed {
			ids = append(ids, meld.CardIDs...)
		}
	}
	return r.resolveCards(ids)
}

// advanceTurn moves play to the next player, skipping over (and consuming
// one pending skip from) any player with skips queued against them.
func (r *Round) advanceTurn(fromIdx int) {
	idx := (fromIdx + 1) % len(r.Hands)
	for r.SkipQueue[r.Hands[idx].Player.ID] > 0 {
		r.SkipQueue[r.Hands[idx].Player.ID]--
		idx = (idx + 1) % len(r.Hands)
	}
	r.State = waitingFor(r.Hands[idx].Player.ID, NeedsToPickUp)
}

// checkCompletion ends the round when a hand empties or the deck runs out,
// and ends the whole game the moment a single stage-ten player has laid
// down (which bypasses round scoring).
func (r *Round) checkCompletion() {
	finishers := 0
	winnerIdx := -1
	for i, hand := range r.Hands {
		if hand.Player.Stage == FinalStage && hand.IsRequirementsComplete() {
			finishers++
			winnerIdx = i
		}
	}
	if finishers == 1 {
		r.State = State{Status: StatusGameComplete, WinnerID: r.Hands[winnerIdx].Player.ID}
		r.end()
		return
	}

	handEmpty := false
	for _, hand := range r.Hands {
		if len(hand.Cards) == 0 {
			handEmpty = true
			break
		}
	}
	if !handEmpty && len(r.Deck) > 0 {
		return
	}

	for i := range r.Hands {
		r.Hands[i].Player.Points = r.handPoints(i)
	}
	r.State = State{Status: StatusRoundComplete}
	r.end()
}

func (r *Round) handPoints(idx int) int {
	total := 0
	for _, card := range r.resolveCards(r.Hands[idx].Cards) {
		total += card.Points()
	}
	return total
}

func (r *Round) end() {
	now := time.Now().UTC()
	r.Ended = &now
}

func (r *Round) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "state: %s", r.State.Status)
	if r.State.PlayerID != "" {
		fmt.Fprintf(&b, " (player %s, %s)", r.State.PlayerID, r.State.Phase)
	}
	fmt.Fprintf(&b, "\ndeck: %d cards, discard pile: %d cards\n", len(r.Deck), len(r.DiscardPile))
	for _, hand := range r.Hands {
		fmt.Fprintf(&b, "%s (stage %d): %d cards, %d melds\n",
			hand.Player.Name, hand.Player.Stage, len(hand.Cards), len(hand.Completed))
	}
	return b.String()
}
