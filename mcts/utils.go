package mcts

import (
	"sort"
)

// fancySort sorts a list of nodes most visited first. Nodes with the same visits are sorted on their mean value,
// and after that on their action.
type fancySort struct {
	l []naughty
	t *Tree
}

func (l fancySort) Len() int      { return len(l.l) }
func (l fancySort) Swap(i, j int) { l.l[i], l.l[j] = l.l[j], l.l[i] }
func (l fancySort) Less(i, j int) bool {
	li := l.t.nodeFromNaughty(l.l[i])
	lj := l.t.nodeFromNaughty(l.l[j])

	// check if both have the same visits
	liVisits := li.Visits()
	ljVisits := lj.Visits()
	if liVisits != ljVisits {
		return liVisits > ljVisits
	}

	// same visit count. Evaluate
	if li.MeanValue() != lj.MeanValue() {
		return li.MeanValue() > lj.MeanValue()
	}
	return li.action < lj.action
}

// byMove sorts nodes by the action that led to them.
type byMove struct {
	t *Tree
	l []naughty
}

func (l byMove) Len() int { return len(l.l) }
func (l byMove) Less(i, j int) bool {
	li := l.t.nodeFromNaughty(l.l[i])
	lj := l.t.nodeFromNaughty(l.l[j])
	return li.action < lj.action
}
func (l byMove) Swap(i, j int) {
	l.l[i], l.l[j] = l.l[j], l.l[i]
}

// Ranked returns the expanded children of n, most visited first.
func (n *Node) Ranked() []*Node {
	kids := n.childIDs()
	sort.Stable(fancySort{l: kids, t: n.tree})
	retVal := make([]*Node, len(kids))
	for i, kid := range kids {
		retVal[i] = n.tree.nodeFromNaughty(kid)
	}
	return retVal
}

func (n *Node) childIDs() []naughty {
	retVal := make([]naughty, 0, len(n.slots))
	for _, s := range n.slots {
		if s.Status == Expanded {
			retVal = append(retVal, s.child)
		}
	}
	return retVal
}
