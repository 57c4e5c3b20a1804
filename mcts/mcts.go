package mcts

import (
	"github.com/glesica/mcts-project/game"
	"github.com/pkg/errors"
)

const (
	// NoAction is the action of a root node, which was not reached by any action.
	NoAction game.Single = -1
)

var (
	// ErrNodeFullyExpanded is returned by Expand when every action of a node already has a child.
	ErrNodeFullyExpanded = errors.New("node is fully expanded")

	// ErrNotFullyExpanded is returned by SelectBestChild when some action of a node has no child yet.
	ErrNotFullyExpanded = errors.New("node is not fully expanded")

	// ErrNoChildren is returned when a child is requested from a node that has none.
	ErrNoChildren = errors.New("node has no children")

	// ErrUnvisited is returned when the UCT weight of a node is undefined because it or its parent was never visited.
	ErrUnvisited = errors.New("node or parent has not been visited")
)
