package stageten

import (
	"github.com/joeshaw/envdecode"

	"github.com/minaorangina/stageten/deck"
)

const (
	defaultHandSize = 10
	defaultLogLimit = 200
)

// RoundOpts tunes round construction. Zero fields fall back to the
// environment, then to the defaults. CookedDeck lets tests and replays
// inject an exact card sequence instead of a random shuffle.
type RoundOpts struct {
	ID         string
	CookedDeck deck.Deck
	HandSize   int
	LogLimit   int
}

type envOpts struct {
	HandSize int `env:"STAGETEN_HAND_SIZE,default=10"`
	LogLimit int `env:"STAGETEN_LOG_LIMIT,default=200"`
}

func (o RoundOpts) withDefaults() RoundOpts {
	var env envOpts
	if err := envdecode.Decode(&env); err != nil {
		env = envOpts{HandSize: defaultHandSize, LogLimit: defaultLogLimit}
	}
	if o.ID == "" {
		o.ID = NewID()
	}
	if o.HandSize <= 0 {
		o.HandSize = env.HandSize
	}
	if o.LogLimit <= 0 {
		o.LogLimit = env.LogLimit
	}
	return o
}
