package mcts

// naughty is essentially *Node: an index into the tree's arena.
// A parent is referred to by its naughty, so a child never keeps its parent alive.
type naughty int

func (n naughty) isValid() bool { return n >= 0 }

const (
	nilNode naughty = -1
)
