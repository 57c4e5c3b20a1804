package mcts

import (
	"github.com/chewxy/math32"
	"github.com/glesica/mcts-project/game"
)

// FullTree expands every node reachable from state, with player to move. The nodes carry no statistics.
// Rollouts from its nodes are seeded from the clock.
//
// The tree of a real game is enormous. This is only meant for small boards.
func FullTree(g game.Game, state game.State, player game.Player) (*Tree, error) {
	if _, err := g.NextPlayer(player); err != nil {
		return nil, err
	}
	t := New(g, DefaultConfig()).newTree(player)
	root := t.alloc(nilNode, NoAction, state, player)
	t.root = root.id

	// nodes are appended as they are expanded, so this is breadth first
	for i := 0; i < len(t.nodes); i++ {
		n := t.nodes[i]
		if g.Terminal(n.state) {
			continue
		}
		for !n.FullyExpanded() {
			if _, err := n.Expand(); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Minimax builds the full tree and scores it. Terminal nodes are scored by their outcome for player,
// the others by the best score of their children for the player to move: the highest if it is player,
// the lowest otherwise. Every node is given one visit, so MeanValue returns the score.
func Minimax(g game.Game, state game.State, player game.Player) (*Tree, error) {
	t, err := FullTree(g, state, player)
	if err != nil {
		return nil, err
	}

	// children are always allocated after their parents
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		children := n.Children()
		if len(children) == 0 {
			n.value = g.Outcome(n.state, player).Value()
			n.visits = 1
			continue
		}

		maximize := n.player == player
		score := math32.Inf(-1)
		if !maximize {
			score = math32.Inf(1)
		}
		for _, child := range children {
			if maximize {
				score = math32.Max(score, child.value)
			} else {
				score = math32.Min(score, child.value)
			}
		}
		n.value = score
		n.visits = 1
	}
	return t, nil
}
