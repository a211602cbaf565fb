package stageten

import (
	uuid "github.com/satori/go.uuid"

	"github.com/minaorangina/stageten/deck"
)

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player represents a player in the game. Points accumulate across rounds;
// Stage is the requirement profile the player is currently chasing.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Stage  Stage  `json:"stage"`
}

// NewPlayer constructs a player starting at stage one
func NewPlayer(name string) Player {
	return Player{ID: NewID(), Name: name, Stage: FirstStage}
}

// PlayerHand holds a player's cards and laid-down melds for one round.
// Cards are ids into the round's card arena; order carries no meaning.
type PlayerHand struct {
	Player    Player          `json:"player"`
	Cards     []deck.CardID   `json:"cards"`
	Completed []CompletedMeld `json:"completed"`
}

// IsRequirementsComplete reports whether the player has laid down every
// requirement of their current stage.
func (h PlayerHand) IsRequirementsComplete() bool {
	return len(h.Completed) >= len(h.Player.Stage.Requirements())
}

func (h PlayerHand) indexOfCard(id deck.CardID) int {
	for i, cardID := range h.Cards {
		if cardID == id {
			return i
		}
	}
	return -1
}

func (h PlayerHand) meldIndex(meldID string) int {
	for i, meld := range h.Completed {
		if meld.ID == meldID {
			return i
		}
	}
	return -1
}
