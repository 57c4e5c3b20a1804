package c4

import (
	"fmt"

	"github.com/glesica/mcts-project/game"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// directions are the (row, col) steps of the four line directions: vertical, horizontal and both diagonals.
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// board is a rectangular view of a State, used for win detection.
// Row 0 is the bottom of the board.
type board struct {
	data       *tensor.Dense
	it         [][]game.Colour
	rows, cols int
	n          int // how many to be considered a win?
}

func newBoard(s State, height, n int) *board {
	rows := height
	for _, col := range s.cols {
		if len(col) > rows {
			rows = len(col)
		}
	}
	cols := len(s.cols)
	b := &board{rows: rows, cols: cols, n: n}
	if rows == 0 || cols == 0 {
		return b
	}

	backing := make([]game.Colour, rows*cols)
	b.data = tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
	iter, err := native.Matrix(b.data)
	if err != nil {
		panic(err)
	}
	b.it = iter.([][]game.Colour)
	for c, col := range s.cols {
		for r, p := range col {
			b.it[r][c] = game.Colour(p)
		}
	}
	return b
}

// winner scans the occupied cells column by column, bottom first, and returns the owner
// of the first line of length n found. It returns None when there is no such line.
func (b *board) winner() game.Colour {
	if b.n <= 0 {
		return game.None
	}
	for col := 0; col < b.cols; col++ {
		for row := 0; row < b.rows; row++ {
			owner := b.it[row][col]
			if owner == game.None {
				continue
			}
			for _, d := range directions {
				if b.streak(owner, row, col, d[0], d[1]) {
					return owner
				}
			}
		}
	}
	return game.None
}

// streak walks n single steps from (row, col) in the direction (dr, dc).
func (b *board) streak(owner game.Colour, row, col, dr, dc int) bool {
	for i := 0; i < b.n; i++ {
		r, c := row+i*dr, col+i*dc
		if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
			return false
		}
		if b.it[r][c] != owner {
			return false
		}
	}
	return true
}

func (b *board) Format(s fmt.State, c rune) {
	if b.it == nil {
		return
	}
	switch c {
	case 's', 'v':
		for row := b.rows - 1; row >= 0; row-- {
			fmt.Fprint(s, "⎢ ")
			for col := 0; col < b.cols; col++ {
				fmt.Fprintf(s, "%s ", b.it[row][col])
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}
