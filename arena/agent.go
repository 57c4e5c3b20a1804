package arena

import (
	"github.com/glesica/mcts-project/game"
	"github.com/glesica/mcts-project/mcts"
	"github.com/pkg/errors"
)

// Mode is the search an agent runs to pick its moves.
type Mode uint8

const (
	UCT Mode = iota
	Average
)

func (m Mode) String() string {
	switch m {
	case UCT:
		return "UCT"
	case Average:
		return "Average"
	}
	return "UNKNOWN MODE"
}

// An Agent is a player backed by a search.
type Agent struct {
	MCTS   *mcts.MCTS
	Mode   Mode
	Player game.Player

	// Statistics
	Wins float32
	Loss float32
	Draw float32

	name string
}

// NewAgent creates an agent that searches with m. Each move is searched with m's budget.
func NewAgent(name string, m *mcts.MCTS, mode Mode) *Agent {
	return &Agent{
		MCTS: m,
		Mode: mode,
		name: name,
	}
}

func (a *Agent) Name() string { return a.name }

// Search searches the game state and returns a suggested move.
func (a *Agent) Search(s game.State) (game.Single, error) {
	switch a.Mode {
	case UCT:
		t, err := a.MCTS.UCT(s, a.Player, a.MCTS.Budget)
		if err != nil {
			return mcts.NoAction, err
		}
		return t.BestAction()
	case Average:
		t, err := a.MCTS.Average(s, a.Player, a.MCTS.Budget)
		if err != nil {
			return mcts.NoAction, err
		}
		best, err := t.MaxChild()
		if err != nil {
			return mcts.NoAction, err
		}
		action, _ := best.Action()
		return action, nil
	}
	return mcts.NoAction, errors.Errorf("agent %v: unknown mode %v", a.name, a.Mode)
}

func (a *Agent) resetStats() {
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
}
