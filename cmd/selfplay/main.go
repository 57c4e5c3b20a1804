package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/glesica/mcts-project/arena"
	"github.com/glesica/mcts-project/game"
	"github.com/glesica/mcts-project/game/c4"
	"github.com/glesica/mcts-project/game/mnk"
	"github.com/glesica/mcts-project/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func parseMode(s string) (arena.Mode, error) {
	switch s {
	case "uct":
		return arena.UCT, nil
	case "average":
		return arena.Average, nil
	}
	return arena.UCT, errors.Errorf("unknown mode %q, expected uct or average", s)
}

// writeStats dumps s as CSV into the file at path, replacing it.
func writeStats(path string, s arena.Statistics) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WithStack(cerr)
		}
	}()
	return s.Dump(f)
}

func main() {
	name := flag.String("game", "c4", "Game to play: c4 or tictactoe")
	width := flag.Int("width", 7, "Connect four board width")
	height := flag.Int("height", 6, "Connect four board height")
	target := flag.Int("target", 4, "Connect four markers in a row to win")
	games := flag.Int("games", 10, "Number of games to play")
	budgetA := flag.Int("budget-a", 1000, "Iterations per move for agent A")
	budgetB := flag.Int("budget-b", 1000, "Iterations per move for agent B")
	modeA := flag.String("mode-a", "uct", "Search of agent A: uct or average")
	modeB := flag.String("mode-b", "average", "Search of agent B: uct or average")
	exploration := flag.Float64("c", float64(mcts.DefaultConfig().Exploration), "UCT exploration constant")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	stats := flag.String("stats", "", "Write the win rates as CSV to this file")
	dot := flag.String("dot", "", "Write the tree of agent A's first search as DOT to this file")
	verbose := flag.Bool("v", false, "Log every move")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	var g game.Game
	var initial game.State
	switch *name {
	case "c4":
		cg := c4.New(*width, *height, *target)
		g, initial = cg, cg.Initial()
	case "tictactoe":
		tg := mnk.TicTacToe()
		g, initial = tg, tg.Initial()
	default:
		log.Fatal().Msgf("unknown game %q", *name)
	}

	ma, err := parseMode(*modeA)
	if err != nil {
		log.Fatal().Err(err).Msg("agent A")
	}
	mb, err := parseMode(*modeB)
	if err != nil {
		log.Fatal().Err(err).Msg("agent B")
	}

	newSearch := func(budget int, seed uint64) *mcts.MCTS {
		conf := mcts.DefaultConfig()
		conf.Exploration = float32(*exploration)
		conf.Budget = budget
		conf.Seed = seed
		conf.Logger = log.Logger
		if !conf.IsValid() {
			log.Fatal().Msgf("invalid search config %+v", conf)
		}
		return mcts.New(g, conf)
	}
	seedB := *seed
	if seedB != 0 {
		seedB++
	}
	a := arena.NewAgent(fmt.Sprintf("A(%v,%d)", ma, *budgetA), newSearch(*budgetA, *seed), ma)
	b := arena.NewAgent(fmt.Sprintf("B(%v,%d)", mb, *budgetB), newSearch(*budgetB, seedB), mb)

	if *dot != "" {
		t, err := a.MCTS.UCT(initial, game.Player(game.Black), *budgetA)
		if err != nil {
			log.Fatal().Err(err).Msg("searching")
		}
		if err := ioutil.WriteFile(*dot, []byte(t.ToDot()), 0644); err != nil {
			log.Fatal().Err(err).Msg("writing DOT")
		}
		log.Info().Str("file", *dot).Int("nodes", t.Len()).Msg("wrote search tree")
	}

	ar := arena.New(g, initial, a, b, arena.Config{Name: *name, Seed: *seed, Logger: log.Logger})
	s := arena.MakeStatistics()
	start := time.Now()
	if err := ar.Run(*games, &s); err != nil {
		log.Fatal().Err(err).Msg("self play")
	}
	log.Info().Dur("took", time.Since(start)).Msgf("played %d games", *games)

	if *stats != "" {
		if err := writeStats(*stats, s); err != nil {
			log.Fatal().Err(err).Msg("writing stats")
		}
		log.Info().Str("file", *stats).Msg("wrote statistics")
	}
}
