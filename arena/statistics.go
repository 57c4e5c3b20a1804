package arena

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Statistics is the history of the results of the agents, one entry per call to Run.
type Statistics struct {
	Creation []string
	Wins     map[string][]float32
	Losses   map[string][]float32
	Draws    map[string][]float32
}

func MakeStatistics() Statistics {
	return Statistics{
		Creation: make([]string, 0, 64),
		Wins:     make(map[string][]float32),
		Losses:   make(map[string][]float32),
		Draws:    make(map[string][]float32),
	}
}

func (s *Statistics) update(A *Agent) {
	aname := A.Name()

	if _, ok := s.Wins[aname]; !ok {
		s.Creation = append(s.Creation, aname)
	}

	s.Wins[aname] = append(s.Wins[aname], A.Wins)
	s.Losses[aname] = append(s.Losses[aname], A.Loss)
	s.Draws[aname] = append(s.Draws[aname], A.Draw)
}

// WinRate returns the win rates of the agent, one per run.
func (s *Statistics) WinRate(agent string) []float32 {
	retVal := make([]float32, len(s.Wins[agent]))
	for j, win := range s.Wins[agent] {
		if total := win + s.Losses[agent][j] + s.Draws[agent][j]; total > 0 {
			retVal[j] = win / total
		}
	}
	return retVal
}

// Dump writes the win rates as CSV. There is one column per agent, in order of appearance, and one row per run of each agent.
func (s *Statistics) Dump(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Creation); err != nil {
		return errors.WithStack(err)
	}
	var records [][]string
	for i, agent := range s.Creation {
		for _, winRate := range s.WinRate(agent) {
			record := make([]string, len(s.Creation))
			record[i] = strconv.FormatFloat(float64(winRate), 'f', 3, 32)
			records = append(records, record)
		}
	}
	if err := cw.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
