package mcts

import "github.com/rs/zerolog"

// lumberjack is the search's logger. The zero value logs nothing.
type lumberjack struct {
	zerolog.Logger
}

func makeLumberJack(l zerolog.Logger) lumberjack { return lumberjack{Logger: l} }

func (l lumberjack) log(msg string, args ...interface{}) {
	l.Logger.Debug().Msgf(msg, args...)
}
