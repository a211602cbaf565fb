package stageten

import (
	"time"

	"github.com/minaorangina/stageten/deck"
)

// GameState is the multi-round wrapper's state
type GameState string

const (
	GameStatePlaying  GameState = "playing"
	GameStateComplete GameState = "complete"
)

// Game carries players through rounds until someone clears stage ten.
// Scores accumulate on Players; each round holds its own copies.
type Game struct {
	ID       string     `json:"id"`
	Started  time.Time  `json:"started"`
	Ended    *time.Time `json:"ended,omitempty"`
	State    GameState  `json:"state"`
	WinnerID string     `json:"winner_id,omitempty"`
	Players  []Player   `json:"players"`
	Rounds   []*Round   `json:"rounds"`
}

// NewGame constructs a game and deals its first round
func NewGame(players []Player) (*Game, error) {
	round, err := NewRound(players)
	if err != nil {
		return nil, err
	}
	copied := make([]Player, len(players))
	copy(copied, players)
	return &Game{
		ID:      NewID(),
		Started: time.Now().UTC(),
		State:   GameStatePlaying,
		Players: copied,
		Rounds:  []*Round{round},
	}, nil
}

// CurrentRound returns the round currently in play
func (g *Game) CurrentRound() (*Round, error) {
	if len(g.Rounds) == 0 {
		return nil, ErrGameHasNoRounds
	}
	return g.Rounds[len(g.Rounds)-1], nil
}

// PickUpCard delegates to the current round
func (g *Game) PickUpCard(fromDiscardPile bool) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}
	return round.PickUpCard(fromDiscardPile)
}

// Discard delegates to the current round
func (g *Game) Discard(cardID deck.CardID) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}
	return round.Discard(cardID)
}

// BindSkipTarget delegates to the current round
func (g *Game) BindSkipTarget(playerID string, cardID deck.CardID, targetID string) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}
	return round.BindSkipTarget(playerID, cardID, targetID)
}

// CompleteStage delegates to the current round
func (g *Game) CompleteStage(form CompleteStageForm) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}
	return round.CompleteStage(form)
}

// AddCard delegates to the current round
func (g *Game) AddCard(form AddCardForm) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}
	return round.AddCard(form)
}

// FinishRoundIfNeeded folds in a finished round, or does nothing if the
// current round is still in play.
func (g *Game) FinishRoundIfNeeded() error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}
	if round.State.Status == StatusWaitingForPlayer {
		return nil
	}
	return g.FinishRound()
}

// FinishRound folds a completed round's scores into the players, advances
// every player who laid down to their next stage, and either declares a
// winner or rotates seating into the next round.
func (g *Game) FinishRound() error {
	if g.State == GameStateComplete {
		return ErrGameAlreadyComplete
	}
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}

	switch round.State.Status {
	case StatusGameComplete:
		g.finish(round.State.WinnerID)
		return nil
	case StatusRoundComplete:
	default:
		return ErrRoundIncomplete
	}

	finishers := []string{}
	for _, hand := range round.Hands {
		idx := g.playerIndex(hand.Player.ID)
		if idx < 0 {
			continue
		}
		g.Players[idx].Points += hand.Player.Points
		if !hand.IsRequirementsComplete() {
			continue
		}
		if g.Players[idx].Stage == FinalStage {
			finishers = append(finishers, g.Players[idx].ID)
		} else if next, ok := g.Players[idx].Stage.Next(); ok {
			g.Players[idx].Stage = next
		}
	}

	if len(finishers) > 0 {
		winner, err := g.lowestScorer(finishers)
		if err != nil {
			return err
		}
		g.finish(winner)
		return nil
	}
	return g.nextRound()
}

// lowestScorer picks the winner among stage-ten finishers: lowest cumulative
// score, earliest seat on an exact tie.
func (g *Game) lowestScorer(ids []string) (string, error) {
	winner := -1
	for _, id := range ids {
		idx := g.playerIndex(id)
		if idx < 0 {
			continue
		}
		if winner < 0 || g.Players[idx].Points < g.Players[winner].Points {
			winner = idx
		}
	}
	if winner < 0 {
		return "", ErrGameIncomplete
	}
	return g.Players[winner].ID, nil
}

func (g *Game) finish(winnerID string) {
	g.State = GameStateComplete
	g.WinnerID = winnerID
	now := time.Now().UTC()
	g.Ended = &now
}

func (g *Game) nextRound() error {
	rotated := make([]Player, 0, len(g.Players))
	rotated = append(rotated, g.Players[len(g.Players)-1])
	rotated = append(rotated, g.Players[:len(g.Players)-1]...)
	g.Players = rotated

	round, err := NewRound(g.Players)
	if err != nil {
		return err
	}
	g.Rounds = append(g.Rounds, round)
	return nil
}

// Winner returns the winning player once the game is complete
func (g *Game) Winner() (Player, bool) {
	if g.State != GameStateComplete {
		return Player{}, false
	}
	idx := g.playerIndex(g.WinnerID)
	if idx < 0 {
		return Player{}, false
	}
	return g.Players[idx], true
}

// CurrentLeader returns the player furthest along: highest stage first,
// lowest score as the tie-break.
func (g *Game) CurrentLeader() Player {
	if winner, ok := g.Winner(); ok {
		return winner
	}
	leader := g.Players[0]
	for _, p := range g.Players[1:] {
		if p.Stage > leader.Stage || (p.Stage == leader.Stage && p.Points < leader.Points) {
			leader = p
		}
	}
	return leader
}

func (g *Game) playerIndex(id string) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
