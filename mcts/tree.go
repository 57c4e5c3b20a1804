package mcts

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/glesica/mcts-project/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Config is the structure to configure a MCTS searcher.
type Config struct {
	// Exploration is the c in the UCT formula. Higher values favour less visited children.
	Exploration float32

	// Budget is the number of iterations used by the convenience entry points and by the arena.
	Budget int

	// Seed seeds the rollout RNG. 0 seeds from the clock.
	Seed uint64

	Logger zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Exploration: 1 / math32.Sqrt(2),
		Budget:      1000,
		Logger:      zerolog.Nop(),
	}
}

func (c Config) IsValid() bool {
	return c.Exploration >= 0 && !math32.IsInf(c.Exploration, 0) && !math32.IsNaN(c.Exploration) && c.Budget >= 0
}

// MCTS searches the game tree of a game. Every search builds a new Tree; nothing is kept between searches.
type MCTS struct {
	Config
	game game.Game
	rand *rand.Rand
}

// New creates a searcher for the game. It panics if the config is invalid.
func New(g game.Game, conf Config) *MCTS {
	if !conf.IsValid() {
		panic("Config is not valid")
	}
	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &MCTS{
		Config: conf,
		game:   g,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Game returns the game being searched.
func (m *MCTS) Game() game.Game { return m.game }

// Tree is the tree built by one search. Nodes live in an arena and refer to each other by naughty.
type Tree struct {
	game   game.Game
	rand   *rand.Rand
	player game.Player // the player that started the search
	c      float32

	nodes []*Node
	root  naughty

	lumberjack
}

func (m *MCTS) newTree(player game.Player) *Tree {
	return &Tree{
		game:       m.game,
		rand:       m.rand,
		player:     player,
		c:          m.Exploration,
		nodes:      make([]*Node, 0, 1024),
		root:       nilNode,
		lumberjack: makeLumberJack(m.Logger),
	}
}

// alloc places a new node in the arena. The node gets one unexpanded slot per legal action of state.
func (t *Tree) alloc(parent naughty, action game.Single, state game.State, player game.Player) *Node {
	actions := t.game.Actions(state)
	slots := make([]Slot, len(actions))
	for i, a := range actions {
		slots[i] = Slot{Action: a, Status: Unexpanded, child: nilNode}
	}
	n := &Node{
		id:     naughty(len(t.nodes)),
		parent: parent,
		action: action,
		state:  state,
		player: player,
		slots:  slots,
		tree:   t,
	}
	t.nodes = append(t.nodes, n)
	return n
}

// materialize creates the node reached by playing a from parent. The caller attaches it.
func (t *Tree) materialize(parent *Node, a game.Single) (*Node, error) {
	state, err := t.game.Result(parent.state, a, parent.player)
	if err != nil {
		return nil, errors.WithMessagef(err, "expanding node %d", parent.id)
	}
	next, err := t.game.NextPlayer(parent.player)
	if err != nil {
		return nil, errors.WithMessagef(err, "expanding node %d", parent.id)
	}
	return t.alloc(parent.id, a, state, next), nil
}

func (t *Tree) nodeFromNaughty(n naughty) *Node { return t.nodes[int(n)] }

// Root returns the root of the tree.
func (t *Tree) Root() *Node { return t.nodeFromNaughty(t.root) }

// Player returns the player that started the search. All values in the tree are from that player's point of view.
func (t *Tree) Player() game.Player { return t.player }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Walk visits the nodes breadth first, parents before children, children in action order.
// It stops early if fn returns false.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if !t.root.isValid() {
		return
	}
	queue := []naughty{t.root}
	for len(queue) > 0 {
		n := t.nodeFromNaughty(queue[0])
		queue = queue[1:]
		if !fn(n) {
			return
		}
		for _, s := range n.slots {
			if s.Status == Expanded {
				queue = append(queue, s.child)
			}
		}
	}
}

// MaxChild returns the root's child with the highest mean value.
func (t *Tree) MaxChild() (*Node, error) { return t.Root().MaxChild() }

// BestAction returns the action recommended by the search. When every action of the root has been
// tried, it is the child picked by UCT without exploration; otherwise the tried child with the highest mean.
func (t *Tree) BestAction() (game.Single, error) {
	root := t.Root()
	var best *Node
	var err error
	if root.FullyExpanded() {
		best, err = root.SelectBestChild(0)
	} else {
		best, err = root.MaxChild()
	}
	if err != nil {
		return NoAction, err
	}
	return best.action, nil
}

// backup records a visit with the given value on n and every one of its ancestors.
func (t *Tree) backup(n *Node, value float32) {
	for {
		n.update(value)
		if !n.parent.isValid() {
			return
		}
		n = t.nodeFromNaughty(n.parent)
	}
}
