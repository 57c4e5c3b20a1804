package game

import (
	"github.com/pkg/errors"
)

var (
	// ErrIllegalAction is returned when an action is not legal for a given state.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInvalidPlayer is returned when a player does not take part in a game.
	ErrInvalidPlayer = errors.New("invalid player")
)

// IllegalMove wraps ErrIllegalAction with the offending move and the reason it was rejected.
func IllegalMove(m PlayerMove, reason string) error {
	return errors.WithMessagef(ErrIllegalAction, "unable to make %v: %s", m, reason)
}

// InvalidPlayer wraps ErrInvalidPlayer with the offending player.
func InvalidPlayer(p Player) error {
	return errors.WithMessagef(ErrInvalidPlayer, "%v", p)
}
