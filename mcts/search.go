package mcts

import (
	"github.com/glesica/mcts-project/game"
	"github.com/pkg/errors"
)

/*
Here lies the search code, while node.go and tree.go handle the data structure stuff.

Two searches are provided. Average is a plain Monte Carlo search: the tree grows breadth first and every node
is judged by the mean of the rollouts through it. UCT grows the tree one node per iteration, descending
through the children with the best upper confidence bound.

Values are always backed up from the point of view of the player that started the search.
*/

// pending is a node that has been enqueued but not yet materialized: the slot of its parent that it will fill.
// The root is already materialized, and is enqueued with slot -1.
type pending struct {
	parent naughty
	slot   int
}

// Average runs n iterations of breadth first Monte Carlo search from state, with player to move.
// Terminal nodes are simulated but enqueue no children.
// The search stops early if every reachable node has been materialized.
// Use the tree's MaxChild to pick a move.
func (m *MCTS) Average(state game.State, player game.Player, n int) (*Tree, error) {
	if _, err := m.game.NextPlayer(player); err != nil {
		return nil, err
	}
	t := m.newTree(player)
	root := t.alloc(nilNode, NoAction, state, player)
	t.root = root.id
	t.log("AVERAGE. Player %v, iterations %d", player, n)

	frontier := []pending{{parent: nilNode, slot: -1}}
	var iter int
	for iter = 0; iter < n && len(frontier) > 0; iter++ {
		p := frontier[0]
		frontier = frontier[1:]

		node := root
		if p.parent.isValid() {
			parent := t.nodeFromNaughty(p.parent)
			child, err := t.materialize(parent, parent.slots[p.slot].Action)
			if err != nil {
				return nil, err
			}
			parent.attach(p.slot, child)
			node = child
		}

		if !m.game.Terminal(node.state) {
			for i := range node.slots {
				frontier = append(frontier, pending{parent: node.id, slot: i})
			}
		}

		outcome, err := node.Simulate(player)
		if err != nil {
			return nil, errors.WithMessagef(err, "simulating from node %d", node.id)
		}
		t.backup(node, outcome.Value())
	}

	t.Debug().
		Int("iterations", iter).
		Int("nodes", t.Len()).
		Int("frontier", len(frontier)).
		Msg("average search done")
	return t, nil
}

// UCT runs budget iterations of UCT search from state, with player to move.
// Use the tree's BestAction to pick a move.
func (m *MCTS) UCT(state game.State, player game.Player, budget int) (*Tree, error) {
	if _, err := m.game.NextPlayer(player); err != nil {
		return nil, err
	}
	t := m.newTree(player)
	root := t.alloc(nilNode, NoAction, state, player)
	t.root = root.id
	t.log("UCT. Player %v, budget %d, c %v", player, budget, t.c)

	for i := 0; i < budget; i++ {
		if err := t.iterate(root); err != nil {
			return nil, errors.WithMessagef(err, "iteration %d", i)
		}
	}

	ev := t.Debug().Int("iterations", budget).Int("nodes", t.Len())
	if budget > 0 {
		if best, err := t.BestAction(); err == nil {
			ev = ev.Int32("best", int32(best))
		}
	}
	ev.Msg("uct search done")
	return t, nil
}

// iterate is one round of the UCT pipeline:
//
//	SELECT, EXPAND, SIMULATE, BACKPROPAGATE.
func (t *Tree) iterate(root *Node) (err error) {
	n := root

	// SELECT
	for n.FullyExpanded() && len(n.slots) > 0 && !t.game.Terminal(n.state) {
		if n, err = n.SelectBestChild(t.c); err != nil {
			return err
		}
	}

	// EXPAND
	if !n.FullyExpanded() && !t.game.Terminal(n.state) {
		if n, err = n.Expand(); err != nil {
			return err
		}
	}

	// SIMULATE
	outcome, err := n.Simulate(t.player)
	if err != nil {
		return errors.WithMessagef(err, "simulating from node %d", n.id)
	}

	// BACKPROPAGATE
	t.backup(n, outcome.Value())
	return nil
}

// RunMCTS runs an average search with the default config and returns the root of the tree.
func RunMCTS(g game.Game, state game.State, player game.Player, n int) (*Node, error) {
	t, err := New(g, DefaultConfig()).Average(state, player, n)
	if err != nil {
		return nil, err
	}
	return t.Root(), nil
}

// RunUCT runs a UCT search with the default config and returns the recommended action.
func RunUCT(g game.Game, state game.State, player game.Player, budget int) (game.Single, error) {
	t, err := New(g, DefaultConfig()).UCT(state, player, budget)
	if err != nil {
		return NoAction, err
	}
	return t.BestAction()
}
