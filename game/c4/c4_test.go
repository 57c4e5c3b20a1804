package c4

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glesica/mcts-project/game"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const (
	X = game.Player(game.Black)
	O = game.Player(game.White)
)

// fromRows builds a state from rows of "X", "O" and ".", top row first.
func fromRows(t *testing.T, rows ...string) State {
	t.Helper()
	var grid [][]string
	for _, r := range rows {
		grid = append(grid, strings.Fields(r))
	}
	width := len(grid[0])
	cols := make([][]game.Player, width)
	for c := 0; c < width; c++ {
		for r := len(grid) - 1; r >= 0; r-- {
			var p game.Player
			switch grid[r][c] {
			case "X":
				p = X
			case "O":
				p = O
			case ".":
				continue
			default:
				t.Fatalf("unknown cell %q", grid[r][c])
			}
			if len(cols[c]) != len(grid)-1-r {
				t.Fatalf("column %d has a floating marker at row %d", c, r)
			}
			cols[c] = append(cols[c], p)
		}
	}
	return FromColumns(cols...)
}

func TestGame_Ended(t *testing.T) {
	g := Standard()

	testCases := []struct {
		name     string
		rows     []string
		terminal bool
		winner   game.Player
	}{
		{"in progress", []string{
			". . . . . . .",
			". . . . . . .",
			"X . . . . . .",
			"O . . . . . .",
			"O O . . X . X",
			"X O . O X . X",
		}, false, game.Player(game.None)},
		{"diagonal", []string{
			". . . . . . .",
			". . . . . . .",
			". . . X . . .",
			". . X O . . .",
			". X O O . . .",
			"X O O X . . .",
		}, true, X},
		{"diagonal2", []string{
			". . . . . . .",
			". . . . . . .",
			"O . . . . . .",
			"X O . . . . .",
			"X X O . . . .",
			"X X X O . . X",
		}, true, O},
		{"vertical", []string{
			". . . . . . .",
			". . . . . . .",
			". . . . X . .",
			". . . . X . .",
			". . . O X . .",
			". . O O X . .",
		}, true, X},
		{"horizontal", []string{
			". . . . . . .",
			". . . . . . .",
			". . . . . . .",
			". . . . . . .",
			"X X X . . . .",
			"O O O O . . X",
		}, true, O},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := fromRows(t, tc.rows...)
			assert.Equal(t, tc.terminal, g.Terminal(s), "\n%s", s)
			assert.Equal(t, tc.winner, g.Winner(s), "\n%s", s)
			if tc.winner == game.Player(game.None) {
				assert.Equal(t, game.Draw, g.Outcome(s, X))
				assert.Equal(t, game.Draw, g.Outcome(s, O))
				return
			}
			other, err := g.NextPlayer(tc.winner)
			require.NoError(t, err)
			assert.Equal(t, game.Win, g.Outcome(s, tc.winner))
			assert.Equal(t, game.Lose, g.Outcome(s, other))
		})
	}
}

func TestGame_FullBoardDraw(t *testing.T) {
	g := New(3, 2, 3)
	s := fromRows(t,
		"O X O",
		"X O X",
	)
	assert.True(t, g.Terminal(s))
	assert.Equal(t, game.Draw, g.Outcome(s, X))
	assert.Empty(t, g.Actions(s))
}

// North west diagonal win for player 1 that used to go undetected:
//
//	0 1 2 3 4 5 6
//	| | | |2| | | |
//	|1| |2|1|2| | |
//	|2|1|1|2|2| | |
//	|1|2|1|2|1| | |
//	|1|1|2|1|2| |1|
func TestGame_NorthWestDiagonal(t *testing.T) {
	g := Standard()
	s := FromColumns(
		[]game.Player{1, 1, 2, 1},
		[]game.Player{1, 2, 1},
		[]game.Player{2, 1, 1, 2},
		[]game.Player{1, 2, 2, 1, 2},
		[]game.Player{2, 1, 2, 2},
		[]game.Player{},
		[]game.Player{1},
	)
	assert.True(t, g.Terminal(s))
	assert.Equal(t, game.Win, g.Outcome(s, 1))
	assert.Equal(t, game.Lose, g.Outcome(s, 2))
}

func TestGame_Result(t *testing.T) {
	g := Default()
	s := g.Initial()

	s1, err := g.Result(s, 2, X)
	require.NoError(t, err)
	s2, err := g.Result(s1, 2, O)
	require.NoError(t, err)

	want := FromColumns(nil, nil, []game.Player{X, O}, nil)
	assert.True(t, want.Eq(s2), "got %v", s2)
	assert.True(t, s.Eq(Empty(4)), "the original state must not change")
	assert.Equal(t, "((),(),(1,2),())", fmt.Sprintf("%v", s2))

	// unchanged columns are shared
	s3, err := g.Result(s2, 0, X)
	require.NoError(t, err)
	c2, c3 := s2.(State), s3.(State)
	assert.Same(t, &c2.cols[2][0], &c3.cols[2][0])
	if diff := cmp.Diff([]game.Player{X, O}, c3.Column(2)); diff != "" {
		t.Errorf("column 2 mismatch (-want +got):\n%s", diff)
	}
}

func TestGame_ResultErrors(t *testing.T) {
	g := Default()
	s := FromColumns([]game.Player{X, O, X, O}, nil, nil, nil)

	_, err := g.Result(s, 0, X)
	assert.Equal(t, game.ErrIllegalAction, errors.Cause(err), "full column")
	assert.Contains(t, err.Error(), "full")

	_, err = g.Result(s, 4, X)
	assert.Equal(t, game.ErrIllegalAction, errors.Cause(err), "out of range")

	_, err = g.Result(s, -1, X)
	assert.Equal(t, game.ErrIllegalAction, errors.Cause(err), "out of range")

	_, err = g.Result(s, 1, game.Player(7))
	assert.Equal(t, game.ErrInvalidPlayer, errors.Cause(err))

	_, err = g.NextPlayer(game.Player(game.None))
	assert.Equal(t, game.ErrInvalidPlayer, errors.Cause(err))
}

func TestGame_FilledColumnLeavesActions(t *testing.T) {
	g := Default()
	var s game.State = g.Initial()
	p := X
	for i := 0; i < g.Height(); i++ {
		var err error
		s, err = g.Result(s, 1, p)
		require.NoError(t, err)
		p, err = g.NextPlayer(p)
		require.NoError(t, err)
	}
	assert.Equal(t, []game.Single{0, 2, 3}, g.Actions(s))
}

// playRandom plays uniformly random games and calls fn on every state it reaches.
func playRandom(t *testing.T, g *Game, games int, fn func(game.State)) {
	t.Helper()
	r := rand.New(rand.NewSource(1337))
	for i := 0; i < games; i++ {
		var s game.State = g.Initial()
		p := X
		fn(s)
		for !g.Terminal(s) {
			actions := g.Actions(s)
			a := actions[r.Intn(len(actions))]
			next, err := g.Result(s, a, p)
			require.NoError(t, err)
			if next.(State).Len(int(a)) == g.Height() {
				assert.NotContains(t, g.Actions(next), a, "a full column must not be legal")
			}
			s = next
			if p, err = g.NextPlayer(p); err != nil {
				t.Fatal(err)
			}
			fn(s)
		}
	}
}

func TestGame_OutcomesNeverBothWin(t *testing.T) {
	for _, g := range []*Game{Default(), Standard(), New(5, 3, 3)} {
		playRandom(t, g, 200, func(s game.State) {
			if g.Outcome(s, X) == game.Win && g.Outcome(s, O) == game.Win {
				t.Fatalf("both players win\n%s", s)
			}
		})
	}
}

func TestGame_FullBoardIsTerminal(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	g := New(5, 4, 4)
	for i := 0; i < 100; i++ {
		cols := make([][]game.Player, g.Width())
		for c := range cols {
			for j := 0; j < g.Height(); j++ {
				cols[c] = append(cols[c], game.Player(1+r.Intn(2)))
			}
		}
		s := FromColumns(cols...)
		assert.True(t, g.Terminal(s), "\n%s", s)
	}
}

func TestState_Format(t *testing.T) {
	s := FromColumns([]game.Player{X}, nil, []game.Player{O, X})
	assert.Equal(t, "((1),(),(2,1))", fmt.Sprintf("%v", s))
	assert.Equal(t, "⎢ · · X ⎥\n⎢ X · O ⎥\n", fmt.Sprintf("%s", s))
}
