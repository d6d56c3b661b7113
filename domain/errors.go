package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveHand      = errors.New("no hand in progress")
	ErrHandInProgress    = errors.New("hand in progress")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUnknownAction     = errors.New("unknown action")
	ErrIllegalCheck      = errors.New("cannot check")
	ErrRaiseTooSmall     = errors.New("raise below minimum")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrNoChips           = errors.New("no chips left")
	ErrNoRebuyPending    = errors.New("no rebuy pending")
	ErrRebuyNotNeeded    = errors.New("player has sufficient chips")
	ErrRebuyLimit        = errors.New("maximum rebuy limit reached")
	ErrRoomClosed        = errors.New("room closed")
	ErrNotInRoom         = errors.New("not in a room")
)

// RejectedActionError is returned for a betting action that is not legal in
// the current state. The state is left untouched.
type RejectedActionError struct {
	Action Action
	Err    error
	// Amount is the deficit for a refused check or the minimum for a short raise.
	Amount int
}

func (e *RejectedActionError) Error() string {
	switch {
	case errors.Is(e.Err, ErrIllegalCheck):
		return fmt.Sprintf("cannot check, must call %d", e.Amount)
	case errors.Is(e.Err, ErrRaiseTooSmall):
		return fmt.Sprintf("minimum raise is %d", e.Amount)
	}
	return fmt.Sprintf("%s rejected: %v", e.Action, e.Err)
}

func (e *RejectedActionError) Unwrap() error { return e.Err }

func reject(action Action, err error, amount int) error {
	return &RejectedActionError{Action: action, Err: err, Amount: amount}
}
