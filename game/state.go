package game

import (
	"fmt"
)

type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		default:
			fmt.Fprintf(s, "Colour(%d)", int32(cl))
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		default:
			fmt.Fprint(s, "?")
		}
	case 'd':
		fmt.Fprintf(s, "%d", int32(cl))
	}
}

// Player represents a player. It's also a colour.
type Player Colour

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Single represents an action as a single number. For column games it is the column index,
// for grid games it is the cell index in a rowmajor fashion.
type Single int32

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Single
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", p.Player, p.Single) }

// State is an immutable game position. Transitions never modify a State, they return a new one.
type State interface {
	// Eq returns true if both states hold the same contents.
	Eq(other State) bool
}

// Game is the set of rules a search engine needs to play a two player, perfect information game.
// Implementations must be pure: none of the methods may modify the states they are given.
type Game interface {
	// Actions enumerates the legal actions in a fixed order. The order is used to break ties in searches.
	Actions(s State) []Single

	// Result applies the action on behalf of the player. It returns ErrIllegalAction if the action is not legal for s.
	Result(s State, a Single, p Player) (State, error)

	// Terminal returns true when the game cannot progress any further.
	Terminal(s State) bool

	// NextPlayer returns the player that moves after p. It returns ErrInvalidPlayer for unknown players.
	NextPlayer(p Player) (Player, error)

	// Outcome scores the state from the point of view of p.
	Outcome(s State, p Player) Outcome
}

// Outcome is the result of a game from the point of view of one player.
type Outcome int8

const (
	Lose Outcome = iota - 1
	Draw
	Win
)

// Value returns the outcome as a reward: 1 for a win, -1 for a loss and 0 for a draw.
func (o Outcome) Value() float32 { return float32(o) }

func (o Outcome) String() string {
	switch o {
	case Lose:
		return "Lose"
	case Draw:
		return "Draw"
	case Win:
		return "Win"
	}
	return fmt.Sprintf("Outcome(%d)", int8(o))
}

// NextInTurn returns the player after p in players, wrapping around at the end.
func NextInTurn(players []Player, p Player) (Player, error) {
	for i, q := range players {
		if q == p {
			return players[(i+1)%len(players)], nil
		}
	}
	return Player(None), InvalidPlayer(p)
}
