package arena

import (
	"fmt"
	"time"

	"github.com/glesica/mcts-project/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Config configures an arena.
type Config struct {
	Name string

	// Seed decides which agent moves first in each game. 0 seeds from the clock.
	Seed uint64

	Logger zerolog.Logger
}

// Arena is where two agents play a two player game against each other.
// The agent in the first seat moves first; seats are drawn at random before every game.
type Arena struct {
	r       *rand.Rand
	game    game.Game
	initial game.State
	A, B    *Agent
	seats   [2]game.Player

	// state
	state         game.State
	currentPlayer *Agent
	moves         []game.PlayerMove
	logger        zerolog.Logger

	name       string
	gameNumber int
}

// seated is implemented by games that name their players.
type seated interface {
	Players() []game.Player
}

// New makes an arena for g. Every game starts from initial.
// The seats are the first two players of g if it names them, Black then White otherwise.
func New(g game.Game, initial game.State, a, b *Agent, conf Config) *Arena {
	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	name := conf.Name
	if name == "" {
		name = "UNKNOWN GAME"
	}
	seats := [2]game.Player{game.Player(game.Black), game.Player(game.White)}
	if sg, ok := g.(seated); ok {
		if ps := sg.Players(); len(ps) >= 2 {
			seats = [2]game.Player{ps[0], ps[1]}
		}
	}
	return &Arena{
		r:       rand.New(rand.NewSource(seed)),
		game:    g,
		initial: initial,
		A:       a,
		B:       b,
		seats:   seats,
		state:   initial,
		logger:  conf.Logger.With().Str("arena", name).Logger(),
		name:    name,
	}
}

// Play plays a game, and returns a winner. If it is a draw, the returned player is None.
func (a *Arena) Play() (winner game.Player, err error) {
	if a.r.Intn(2) == 0 {
		a.A.Player, a.B.Player = a.seats[0], a.seats[1]
		a.currentPlayer = a.A
	} else {
		a.A.Player, a.B.Player = a.seats[1], a.seats[0]
		a.currentPlayer = a.B
	}
	a.state = a.initial
	a.moves = a.moves[:0]

	a.logger.Debug().Int("game", a.gameNumber).Str("first", a.currentPlayer.Name()).Msg("playing")
	for !a.game.Terminal(a.state) {
		if len(a.game.Actions(a.state)) == 0 {
			break
		}
		best, err := a.currentPlayer.Search(a.state)
		if err != nil {
			return game.Player(game.None), errors.WithMessagef(err, "%v searching move %d", a.currentPlayer.Name(), len(a.moves))
		}
		move := game.PlayerMove{Player: a.currentPlayer.Player, Single: best}
		if a.state, err = a.game.Result(a.state, best, a.currentPlayer.Player); err != nil {
			return game.Player(game.None), errors.WithMessagef(err, "%v playing", a.currentPlayer.Name())
		}
		a.moves = append(a.moves, move)
		a.logger.Debug().Msgf("%v plays %v", a.currentPlayer.Name(), move)
		a.switchPlayer()
	}

	var winningAgent *Agent
	switch {
	case a.game.Outcome(a.state, a.A.Player) == game.Win:
		winner = a.A.Player
		a.A.Wins++
		a.B.Loss++
		winningAgent = a.A
	case a.game.Outcome(a.state, a.B.Player) == game.Win:
		winner = a.B.Player
		a.B.Wins++
		a.A.Loss++
		winningAgent = a.B
	default:
		winner = game.Player(game.None)
		a.A.Draw++
		a.B.Draw++
	}
	ev := a.logger.Info().Int("game", a.gameNumber).Int("moves", len(a.moves)).Stringer("winner", colourName(winner))
	if winningAgent != nil {
		ev = ev.Str("agent", winningAgent.Name())
	}
	ev.Msg("game over")
	a.gameNumber++
	return winner, nil
}

// Run plays games games, and records the results of both agents in s.
func (a *Arena) Run(games int, s *Statistics) error {
	a.A.resetStats()
	a.B.resetStats()
	for i := 0; i < games; i++ {
		if _, err := a.Play(); err != nil {
			return errors.WithMessagef(err, "game %d", i)
		}
	}
	a.logger.Info().Msgf("%v wins %v, loss %v, draw %v | %v wins %v, loss %v, draw %v",
		a.A.Name(), a.A.Wins, a.A.Loss, a.A.Draw, a.B.Name(), a.B.Wins, a.B.Loss, a.B.Draw)
	if s != nil {
		s.update(a.A)
		s.update(a.B)
	}
	return nil
}

func (a *Arena) GameNumber() int { return a.gameNumber }
func (a *Arena) Name() string    { return a.name }

// State returns the position at the end of the last game played.
func (a *Arena) State() game.State { return a.state }

// Moves returns the moves of the last game played.
func (a *Arena) Moves() []game.PlayerMove {
	retVal := make([]game.PlayerMove, len(a.moves))
	copy(retVal, a.moves)
	return retVal
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.A:
		a.currentPlayer = a.B
	case a.B:
		a.currentPlayer = a.A
	}
}

// colourName prints a player with %v.
type colourName game.Player

func (c colourName) String() string { return fmt.Sprintf("%v", game.Player(c)) }
