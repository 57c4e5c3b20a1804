package arena

import (
	"bytes"
	"testing"

	"github.com/glesica/mcts-project/game"
	"github.com/glesica/mcts-project/game/c4"
	"github.com/glesica/mcts-project/game/mnk"
	"github.com/glesica/mcts-project/mcts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searcher(g game.Game, budget int, seed uint64) *mcts.MCTS {
	conf := mcts.DefaultConfig()
	conf.Budget = budget
	conf.Seed = seed
	return mcts.New(g, conf)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "UCT", UCT.String())
	assert.Equal(t, "Average", Average.String())
	assert.Equal(t, "UNKNOWN MODE", Mode(7).String())
}

func TestArena_PlayDraw(t *testing.T) {
	g := c4.New(2, 1, 2)
	a := NewAgent("A", searcher(g, 10, 1), UCT)
	b := NewAgent("B", searcher(g, 10, 2), Average)
	ar := New(g, g.Initial(), a, b, Config{Name: "tiny", Seed: 1})

	winner, err := ar.Play()
	require.NoError(t, err)
	assert.Equal(t, game.Player(game.None), winner)
	assert.Equal(t, float32(1), a.Draw)
	assert.Equal(t, float32(1), b.Draw)
	assert.Len(t, ar.Moves(), 2)
	assert.True(t, g.Terminal(ar.State()))
	assert.Equal(t, 1, ar.GameNumber())
	assert.Equal(t, "tiny", ar.Name())
}

func TestArena_PlayNamedPlayers(t *testing.T) {
	red, blue := game.Player(3), game.Player(4)
	g := c4.New(2, 1, 2, red, blue)
	a := NewAgent("A", searcher(g, 10, 1), UCT)
	b := NewAgent("B", searcher(g, 10, 2), UCT)
	ar := New(g, g.Initial(), a, b, Config{Seed: 3})

	winner, err := ar.Play()
	require.NoError(t, err)
	assert.Equal(t, game.Player(game.None), winner)
	assert.ElementsMatch(t, []game.Player{red, blue}, []game.Player{a.Player, b.Player})

	moves := ar.Moves()
	require.Len(t, moves, 2)
	assert.Equal(t, red, moves[0].Player)
	assert.Equal(t, blue, moves[1].Player)
}

func TestArena_Run(t *testing.T) {
	g := c4.Default()
	a := NewAgent("uct", searcher(g, 200, 1), UCT)
	b := NewAgent("average", searcher(g, 20, 2), Average)
	ar := New(g, g.Initial(), a, b, Config{Seed: 42})

	stats := MakeStatistics()
	const games = 4
	require.NoError(t, ar.Run(games, &stats))

	assert.Equal(t, float32(games), a.Wins+a.Loss+a.Draw)
	assert.Equal(t, float32(games), b.Wins+b.Loss+b.Draw)
	assert.Equal(t, a.Wins, b.Loss)
	assert.Equal(t, b.Wins, a.Loss)
	assert.Equal(t, a.Draw, b.Draw)
	assert.Equal(t, []string{"uct", "average"}, stats.Creation)

	// the last game alternates players, Black first
	moves := ar.Moves()
	require.NotEmpty(t, moves)
	for i, m := range moves {
		if i%2 == 0 {
			assert.Equal(t, game.Player(game.Black), m.Player)
		} else {
			assert.Equal(t, game.Player(game.White), m.Player)
		}
	}
	assert.True(t, g.Terminal(ar.State()))
}

func TestArena_TicTacToe(t *testing.T) {
	g := mnk.TicTacToe()
	a := NewAgent("A", searcher(g, 300, 3), UCT)
	b := NewAgent("B", searcher(g, 300, 4), UCT)
	ar := New(g, g.Initial(), a, b, Config{Seed: 7})

	_, err := ar.Play()
	require.NoError(t, err)
	ended, _ := g.Ended(ar.State())
	assert.True(t, ended)
	assert.LessOrEqual(t, len(ar.Moves()), 9)
}

func TestAgent_SearchErrors(t *testing.T) {
	g := c4.Default()
	a := NewAgent("A", searcher(g, 10, 1), Mode(9))
	a.Player = game.Player(game.Black)
	_, err := a.Search(g.Initial())
	assert.Error(t, err)

	a.Mode = UCT
	a.Player = game.Player(5)
	_, err = a.Search(g.Initial())
	assert.Equal(t, game.ErrInvalidPlayer, errors.Cause(err))
}

func TestStatistics_Dump(t *testing.T) {
	s := MakeStatistics()
	s.update(&Agent{name: "A", Wins: 3, Loss: 1})
	s.update(&Agent{name: "B", Wins: 1, Loss: 3})
	s.update(&Agent{name: "A", Wins: 1, Loss: 1, Draw: 2})

	assert.Equal(t, []float32{0.75, 0.25}, s.WinRate("A"))
	assert.Equal(t, []float32{0.25}, s.WinRate("B"))
	assert.Empty(t, s.WinRate("C"))

	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	want := "A,B\n0.750,\n0.250,\n,0.250\n"
	assert.Equal(t, want, buf.String())
}
