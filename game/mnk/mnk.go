package mnk

import (
	"fmt"

	"github.com/glesica/mcts-project/game"
	"github.com/pkg/errors"
)

var (
	Cross  = game.Player(game.Black)
	Nought = game.Player(game.White)
)

var (
	_ game.State = State{}
	_ game.Game  = &Game{}
)

// State is a MxN board in row major order. States are never modified.
type State struct {
	board []game.Colour
	n     int // row width
}

// Board returns a copy of the cells, row major.
func (s State) Board() []game.Colour {
	retVal := make([]game.Colour, len(s.board))
	copy(retVal, s.board)
	return retVal
}

func (s State) Eq(other game.State) bool {
	ot, ok := other.(State)
	if !ok {
		return false
	}
	if len(s.board) != len(ot.board) || s.n != ot.n {
		return false
	}
	for i := range s.board {
		if s.board[i] != ot.board[i] {
			return false
		}
	}
	return true
}

func (s State) Format(f fmt.State, c rune) {
	for i, c := range s.board {
		if i%s.n == 0 {
			fmt.Fprint(f, "⎢ ")
		}
		fmt.Fprintf(f, "%s ", c)
		if (i+1)%s.n == 0 {
			fmt.Fprint(f, "⎥\n")
		}
	}
}

// Game is a M,N,K game - a game is played on a MxN board. K in a row to win.
type Game struct {
	m, n, k int
	players []game.Player
}

// New creates a new MNK game of m rows and n columns.
func New(m, n, k int) *Game {
	if m <= 0 || n <= 0 || k <= 0 {
		panic(fmt.Sprintf("mnk: invalid board %dx%d with k %d", m, n, k))
	}
	return &Game{
		m:       m,
		n:       n,
		k:       k,
		players: []game.Player{Cross, Nought},
	}
}

// TicTacToe creates a new MNK game for Tic Tac Toe
func TicTacToe() *Game { return New(3, 3, 3) }

func (g *Game) BoardSize() (int, int) { return g.m, g.n }

// Players returns the players in turn order.
func (g *Game) Players() []game.Player {
	retVal := make([]game.Player, len(g.players))
	copy(retVal, g.players)
	return retVal
}

// Initial returns the empty board.
func (g *Game) Initial() State { return State{board: make([]game.Colour, g.m*g.n), n: g.n} }

// FromBoard builds a state from the cells of a board, row major.
func (g *Game) FromBoard(cells ...game.Colour) (State, error) {
	if len(cells) != g.m*g.n {
		return State{}, errors.Errorf("mnk: expected %d cells, got %d", g.m*g.n, len(cells))
	}
	s := g.Initial()
	copy(s.board, cells)
	return s, nil
}

func (g *Game) Actions(s game.State) []game.Single {
	st := g.stateOf(s)
	var retVal []game.Single
	for i, c := range st.board {
		if c == game.None {
			retVal = append(retVal, game.Single(i))
		}
	}
	return retVal
}

func (g *Game) Result(s game.State, a game.Single, p game.Player) (game.State, error) {
	st := g.stateOf(s)
	m := game.PlayerMove{Player: p, Single: a}
	if p != Cross && p != Nought {
		return nil, game.InvalidPlayer(p)
	}
	if int(a) < 0 || int(a) >= len(st.board) {
		return nil, game.IllegalMove(m, "cell out of range")
	}
	if st.board[int(a)] != game.None {
		return nil, game.IllegalMove(m, "cell is occupied")
	}
	retVal := State{board: make([]game.Colour, len(st.board)), n: st.n}
	copy(retVal.board, st.board)
	retVal.board[int(a)] = game.Colour(p)
	return retVal, nil
}

func (g *Game) Terminal(s game.State) bool {
	st := g.stateOf(s)
	if g.winner(st) != game.None {
		return true
	}
	for _, c := range st.board {
		if c == game.None {
			return false
		}
	}
	return true
}

func (g *Game) NextPlayer(p game.Player) (game.Player, error) { return game.NextInTurn(g.players, p) }

func (g *Game) Outcome(s game.State, p game.Player) game.Outcome {
	switch w := g.winner(g.stateOf(s)); {
	case w == game.None:
		return game.Draw
	case game.Player(w) == p:
		return game.Win
	default:
		return game.Lose
	}
}

// Ended checks if the game has ended. If it has, who is the winner?
func (g *Game) Ended(s game.State) (ended bool, winner game.Player) {
	return g.Terminal(s), game.Player(g.winner(g.stateOf(s)))
}

// winner returns the owner of the first line of k found, scanning row major.
func (g *Game) winner(s State) game.Colour {
	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for idx, c := range s.board {
		if c == game.None {
			continue
		}
		row, col := idx/g.n, idx%g.n
		for _, d := range directions {
			if g.line(s, row, col, d[0], d[1]) >= g.k {
				return c
			}
		}
	}
	return game.None
}

// line counts the cells of the same colour as (row, col), walking in the direction (dr, dc). It counts at most k.
func (g *Game) line(s State, row, col, dr, dc int) (count int) {
	colour := s.board[row*g.n+col]
	for count < g.k {
		if row < 0 || row >= g.m || col < 0 || col >= g.n {
			return
		}
		if s.board[row*g.n+col] != colour {
			return
		}
		count++
		row += dr
		col += dc
	}
	return
}

func (g *Game) stateOf(s game.State) State {
	st, ok := s.(State)
	if !ok || len(st.board) != g.m*g.n {
		panic(fmt.Sprintf("mnk: unsupported state %T", s))
	}
	return st
}
