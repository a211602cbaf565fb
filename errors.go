package stageten

import (
	"errors"
	"fmt"
)

// Turn and phase violations
var (
	ErrNotEnoughPlayers             = errors.New("minimum of 2 players required")
	ErrTooManyPlayers               = errors.New("maximum of 6 players allowed")
	ErrNoCurrentPlayer              = errors.New("no player is currently able to act")
	ErrNotWaitingForPlayerToPickUp  = errors.New("not waiting for player to pick up")
	ErrNotWaitingForPlayerToDiscard = errors.New("not waiting for player to discard")
)

// Resource lookups
var (
	ErrCardNotInHand         = errors.New("card does not exist in player's hand")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrCompletedMeldNotFound = errors.New("completed meld does not exist")
)

// Meld invariants
var (
	ErrInsufficientCards        = errors.New("not enough cards supplied")
	ErrInvalidCard              = errors.New("card is not valid here")
	ErrCardsDoNotMakeRun        = errors.New("cards do not form a consecutive run")
	ErrNotValidNextCard         = errors.New("card does not continue the run")
	ErrRunReachedEnd            = errors.New("run cannot extend past the end of the number range")
	ErrRunLengthBelowMin        = errors.New("run length must be at least 4")
	ErrRunLengthAboveMax        = errors.New("run length must be at most 9")
	ErrMissingAddPositionForRun = errors.New("adding to a run requires a position")
)

// Stage completion
var (
	ErrRequirementsAlreadyCompleted = errors.New("stage requirements already completed")
	ErrRequirementDoesNotExist      = errors.New("attempted requirement is not part of the stage")
	ErrCompletionAttemptsMismatch   = errors.New("completion attempts do not match the stage requirements")
	ErrStageIncomplete              = errors.New("player has not completed all requirements for their stage")
)

// Skip cards
var (
	ErrTriedToSkipYourself = errors.New("players cannot skip themselves")
	ErrSkipWithoutTarget   = errors.New("discarded a skip card without specifying a player to skip")
)

// Game wrapper
var (
	ErrRoundIncomplete     = errors.New("round is not complete")
	ErrGameHasNoRounds     = errors.New("game has no rounds")
	ErrGameAlreadyComplete = errors.New("game is already over")
	ErrGameIncomplete      = errors.New("game is not complete")
)

// SetNotBigEnoughError reports how many more matching cards a set needed
type SetNotBigEnoughError struct {
	Needed int
}

func (e SetNotBigEnoughError) Error() string {
	return fmt.Sprintf("set needs %d more matching cards", e.Needed)
}
