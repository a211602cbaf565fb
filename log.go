package stageten

import (
	"time"

	"github.com/minaorangina/stageten/deck"
)

// Decision names a kind of player action in the log
type Decision string

const (
	DecisionPickup  Decision = "pickup"
	DecisionDiscard Decision = "discard"
	DecisionLaydown Decision = "laydown"
	DecisionAddCard Decision = "add_card"
)

// PlayerAction is one entry in the round's audit log
type PlayerAction struct {
	PlayerID        string        `json:"player_id"`
	Decision        Decision      `json:"decision"`
	CardID          deck.CardID   `json:"card_id"`
	FromDiscardPile bool          `json:"from_discard_pile,omitempty"`
	MeldID          string        `json:"meld_id,omitempty"`
	MeldIDs         []string      `json:"meld_ids,omitempty"`
	CardIDs         []deck.CardID `json:"card_ids,omitempty"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Log is an append-only, size-bounded record of player decisions. It exists
// for audit and replay; the engine never reads it back.
type Log struct {
	Actions []PlayerAction `json:"actions"`
}

func (l *Log) add(action PlayerAction, limit int) {
	action.Timestamp = time.Now().UTC()
	l.Actions = append(l.Actions, action)
	if limit > 0 && len(l.Actions) > limit {
		l.Actions = l.Actions[len(l.Actions)-limit:]
	}
}
