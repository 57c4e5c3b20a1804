package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/glesica/mcts-project/game"
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// Status is the status of a slot in a node.
type Status uint8

const (
	Unexpanded Status = iota
	Expanded
)

func (a Status) String() string {
	switch a {
	case Unexpanded:
		return "Unexpanded"
	case Expanded:
		return "Expanded"
	}
	return "UNKNOWN STATUS"
}

// Slot pairs a legal action of a node with the child it leads to, once that child exists.
type Slot struct {
	Action game.Single
	Status Status
	child  naughty
}

// Node is the state reached after an action, with the player to move next.
type Node struct {
	id     naughty
	parent naughty     // nilNode for the root
	action game.Single // NoAction for the root
	state  game.State
	player game.Player

	visits uint32  // visits to this node - N(s, a) in the literature
	value  float32 // sum of the values backed up through this node

	// one slot per legal action of state, in the order the game enumerates them
	slots []Slot

	tree *Tree
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Action: %v, Player: %v, Visits %v, Value %v, Expanded %d/%d}", n.id, n.action, n.player, n.visits, n.value, n.expanded(), len(n.slots))
}

func (n *Node) ID() int { return int(n.id) }

// State returns the state of the node.
func (n *Node) State() game.State { return n.state }

// Player returns the player to move in the node's state.
func (n *Node) Player() game.Player { return n.player }

// Action returns the action that led to the node. The root has no action.
func (n *Node) Action() (game.Single, bool) { return n.action, n.parent.isValid() }

func (n *Node) Visits() uint32 { return n.visits }

// Value returns the accumulated value.
func (n *Node) Value() float32 { return n.value }

// IsRoot returns true if the node has no parent.
func (n *Node) IsRoot() bool { return !n.parent.isValid() }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	if !n.parent.isValid() {
		return nil
	}
	return n.tree.nodeFromNaughty(n.parent)
}

// Slots returns a copy of the node's slots.
func (n *Node) Slots() []Slot {
	retVal := make([]Slot, len(n.slots))
	copy(retVal, n.slots)
	return retVal
}

// Children returns the expanded children in action order.
func (n *Node) Children() []*Node {
	retVal := make([]*Node, 0, len(n.slots))
	for _, s := range n.slots {
		if s.Status == Expanded {
			retVal = append(retVal, n.tree.nodeFromNaughty(s.child))
		}
	}
	return retVal
}

// Child returns the child reached by the action, if it has been expanded.
func (n *Node) Child(a game.Single) (*Node, bool) {
	for _, s := range n.slots {
		if s.Action == a && s.Status == Expanded {
			return n.tree.nodeFromNaughty(s.child), true
		}
	}
	return nil, false
}

// FullyExpanded returns true if every action of the node has a child.
func (n *Node) FullyExpanded() bool { return n.expanded() == len(n.slots) }

// Expand materializes the child of the first unexpanded action and returns it.
func (n *Node) Expand() (*Node, error) {
	for i := range n.slots {
		if n.slots[i].Status == Expanded {
			continue
		}
		child, err := n.tree.materialize(n, n.slots[i].Action)
		if err != nil {
			return nil, err
		}
		n.attach(i, child)
		return child, nil
	}
	return nil, errors.WithMessagef(ErrNodeFullyExpanded, "node %d", n.id)
}

// MeanValue returns the average value backed up through the node, or 0 if it was never visited.
func (n *Node) MeanValue() float32 {
	if n.visits == 0 {
		return 0
	}
	return n.value / float32(n.visits)
}

// UCTWeight returns the upper confidence bound of the node:
//
//	Q(s, a) + c * sqrt(2 * ln(N(s)) / N(s, a))
func (n *Node) UCTWeight(c float32) (float32, error) {
	parent := n.Parent()
	if parent == nil {
		return 0, errors.WithMessagef(ErrUnvisited, "node %d is the root", n.id)
	}
	if parent.visits == 0 || n.visits == 0 {
		return 0, errors.WithMessagef(ErrUnvisited, "node %d has %d visits, parent has %d", n.id, n.visits, parent.visits)
	}
	exploration := math32.Sqrt(2 * math32.Log(float32(parent.visits)) / float32(n.visits))
	return n.MeanValue() + c*exploration, nil
}

// SelectBestChild returns the child with the highest UCT weight. Ties go to the child whose action comes first.
func (n *Node) SelectBestChild(c float32) (*Node, error) {
	if len(n.slots) == 0 {
		return nil, errors.WithMessagef(ErrNoChildren, "node %d", n.id)
	}
	if !n.FullyExpanded() {
		return nil, errors.WithMessagef(ErrNotFullyExpanded, "node %d has %d of %d children", n.id, n.expanded(), len(n.slots))
	}
	children := n.Children()
	weights := make([]float32, len(children))
	for i, child := range children {
		w, err := child.UCTWeight(c)
		if err != nil {
			return nil, err
		}
		weights[i] = w
	}
	return children[vecf32.Argmax(weights)], nil
}

// MaxChild returns the expanded child with the highest mean value. Ties go to the child whose action comes first.
func (n *Node) MaxChild() (*Node, error) {
	children := n.Children()
	if len(children) == 0 {
		return nil, errors.WithMessagef(ErrNoChildren, "node %d", n.id)
	}
	means := make([]float32, len(children))
	for i, child := range children {
		means[i] = child.MeanValue()
	}
	return children[vecf32.Argmax(means)], nil
}

// Simulate plays uniformly random actions from the node until the game ends,
// and returns the outcome for the given player.
func (n *Node) Simulate(p game.Player) (game.Outcome, error) {
	g := n.tree.game
	state, player := n.state, n.player
	for !g.Terminal(state) {
		actions := g.Actions(state)
		if len(actions) == 0 {
			break
		}
		a := actions[n.tree.rand.Intn(len(actions))]

		var err error
		if state, err = g.Result(state, a, player); err != nil {
			return game.Draw, err
		}
		if player, err = g.NextPlayer(player); err != nil {
			return game.Draw, err
		}
	}
	return g.Outcome(state, p), nil
}

// update records one visit with the given value.
func (n *Node) update(value float32) {
	n.visits++
	n.value += value
}

func (n *Node) attach(slot int, child *Node) {
	n.slots[slot].Status = Expanded
	n.slots[slot].child = child.id
}

func (n *Node) expanded() (retVal int) {
	for _, s := range n.slots {
		if s.Status == Expanded {
			retVal++
		}
	}
	return
}
