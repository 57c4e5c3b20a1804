package c4

import (
	"fmt"
	"strings"

	"github.com/glesica/mcts-project/game"
)

var (
	_ game.State = State{}
	_ game.Game  = &Game{}
)

// State is a Connect Four position: one slice of markers per column, bottom first.
// A slot that is not occupied is simply not present in its column.
//
// States are immutable. A transition copies the column that changes and shares the rest.
type State struct {
	cols [][]game.Player
}

// Empty returns a board of width empty columns.
func Empty(width int) State { return State{cols: make([][]game.Player, width)} }

// FromColumns builds a state from columns of markers, bottom first.
func FromColumns(cols ...[]game.Player) State {
	s := State{cols: make([][]game.Player, len(cols))}
	for i, col := range cols {
		if len(col) == 0 {
			continue
		}
		s.cols[i] = make([]game.Player, len(col))
		copy(s.cols[i], col)
	}
	return s
}

// Width returns the number of columns.
func (s State) Width() int { return len(s.cols) }

// Len returns the number of markers in the column.
func (s State) Len(col int) int { return len(s.cols[col]) }

// Column returns a copy of the markers of the column, bottom first.
func (s State) Column(col int) []game.Player {
	retVal := make([]game.Player, len(s.cols[col]))
	copy(retVal, s.cols[col])
	return retVal
}

// Eq returns true if both states hold the same columns.
func (s State) Eq(other game.State) bool {
	var ot State
	switch o := other.(type) {
	case State:
		ot = o
	case *State:
		if o == nil {
			return false
		}
		ot = *o
	default:
		return false
	}
	if len(s.cols) != len(ot.cols) {
		return false
	}
	for i := range s.cols {
		if len(s.cols[i]) != len(ot.cols[i]) {
			return false
		}
		for j := range s.cols[i] {
			if s.cols[i][j] != ot.cols[i][j] {
				return false
			}
		}
	}
	return true
}

// play returns a new state with p dropped into col. Only the column that changes is copied.
func (s State) play(col int, p game.Player) State {
	cols := make([][]game.Player, len(s.cols))
	copy(cols, s.cols)
	column := make([]game.Player, len(s.cols[col])+1)
	copy(column, s.cols[col])
	column[len(column)-1] = p
	cols[col] = column
	return State{cols: cols}
}

// Format prints the columns as a tuple with %v, e.g. ((1,2),(),(1)), and the board with %s.
func (s State) Format(f fmt.State, c rune) {
	switch c {
	case 's':
		newBoard(s, 1, 0).Format(f, c)
	default:
		var buf strings.Builder
		buf.WriteByte('(')
		for i, col := range s.cols {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('(')
			for j, p := range col {
				if j > 0 {
					buf.WriteByte(',')
				}
				fmt.Fprintf(&buf, "%d", p)
			}
			buf.WriteByte(')')
		}
		buf.WriteByte(')')
		fmt.Fprint(f, buf.String())
	}
}

// Game holds the rules of Connect Four for a board of a given size.
type Game struct {
	players []game.Player
	width   int
	height  int
	target  int // how many in a row to win
}

// New creates a game with a board of width columns, each holding up to height markers, and target in a row to win.
// If no players are given, Black moves first and White second.
func New(width, height, target int, players ...game.Player) *Game {
	if width <= 0 || height <= 0 || target <= 0 {
		panic(fmt.Sprintf("c4: invalid board %dx%d with target %d", width, height, target))
	}
	if len(players) == 0 {
		players = []game.Player{game.Player(game.Black), game.Player(game.White)}
	}
	ps := make([]game.Player, len(players))
	copy(ps, players)
	return &Game{
		players: ps,
		width:   width,
		height:  height,
		target:  target,
	}
}

// Default is a 4x4 board with 3 in a row to win.
func Default() *Game { return New(4, 4, 3) }

// Standard is the usual 7 columns by 6 rows, 4 in a row to win.
func Standard() *Game { return New(7, 6, 4) }

func (g *Game) Width() int  { return g.width }
func (g *Game) Height() int { return g.height }
func (g *Game) Target() int { return g.target }

// Players returns the players in turn order.
func (g *Game) Players() []game.Player {
	retVal := make([]game.Player, len(g.players))
	copy(retVal, g.players)
	return retVal
}

// Initial returns the empty board.
func (g *Game) Initial() State { return Empty(g.width) }

func (g *Game) Actions(s game.State) []game.Single {
	st := stateOf(s)
	retVal := make([]game.Single, 0, st.Width())
	for i := range st.cols {
		if len(st.cols[i]) < g.height {
			retVal = append(retVal, game.Single(i))
		}
	}
	return retVal
}

func (g *Game) Result(s game.State, a game.Single, p game.Player) (game.State, error) {
	st := stateOf(s)
	if err := g.check(st, game.PlayerMove{Player: p, Single: a}); err != nil {
		return nil, err
	}
	return st.play(int(a), p), nil
}

func (g *Game) check(s State, m game.PlayerMove) error {
	if !g.isPlayer(m.Player) {
		return game.InvalidPlayer(m.Player)
	}
	col := int(m.Single)
	if col < 0 || col >= len(s.cols) {
		return game.IllegalMove(m, "column out of range")
	}
	if len(s.cols[col]) >= g.height {
		return game.IllegalMove(m, "column is full")
	}
	return nil
}

// Terminal holds when every column is full or when any player has a line.
func (g *Game) Terminal(s game.State) bool {
	st := stateOf(s)
	if g.full(st) {
		return true
	}
	return g.winner(st) != game.None
}

func (g *Game) NextPlayer(p game.Player) (game.Player, error) { return game.NextInTurn(g.players, p) }

func (g *Game) Outcome(s game.State, p game.Player) game.Outcome {
	switch w := g.winner(stateOf(s)); {
	case w == game.None:
		return game.Draw
	case game.Player(w) == p:
		return game.Win
	default:
		return game.Lose
	}
}

// Winner returns the owner of a winning line, or None.
func (g *Game) Winner(s game.State) game.Player { return game.Player(g.winner(stateOf(s))) }

func (g *Game) winner(s State) game.Colour { return newBoard(s, g.height, g.target).winner() }

func (g *Game) full(s State) bool {
	for i := range s.cols {
		if len(s.cols[i]) < g.height {
			return false
		}
	}
	return true
}

func (g *Game) isPlayer(p game.Player) bool {
	for _, q := range g.players {
		if q == p {
			return true
		}
	}
	return false
}

func stateOf(s game.State) State {
	switch st := s.(type) {
	case State:
		return st
	case *State:
		return *st
	}
	panic(fmt.Sprintf("c4: unsupported state %T", s))
}
