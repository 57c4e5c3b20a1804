package mcts

import (
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/glesica/mcts-project/game"
)

// playerColours are the background colours of the nodes, by player to move.
var playerColours = map[game.Player]string{
	1: "red",
	2: "yellow",
	3: "orange",
	4: "green",
	5: "blue",
	6: "purple",
}

type dotNode struct {
	ID     naughty
	Action string
	Player game.Player
	Visits uint32
	Mean   float32
	Colour string
	State  string
}

func makeDotNode(n *Node) dotNode {
	action := "-"
	if a, ok := n.Action(); ok {
		action = fmt.Sprintf("%d", a)
	}
	colour, ok := playerColours[n.player]
	if !ok {
		colour = "white"
	}
	// %s renders boards on several lines
	state := html.EscapeString(fmt.Sprintf("%s", n.state))
	state = strings.TrimSuffix(state, "\n")
	state = strings.Replace(state, "\n", `<BR ALIGN="LEFT"/>`, -1)
	return dotNode{
		ID:     n.id,
		Action: action,
		Player: n.player,
		Visits: n.visits,
		Mean:   n.MeanValue(),
		Colour: colour,
		State:  state,
	}
}

// ToDot returns the tree in the DOT language, one table per node.
func (t *Tree) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}

	var buf bytes.Buffer
	t.Walk(func(n *Node) bool {
		if err := tmpl.Execute(&buf, makeDotNode(n)); err != nil {
			panic(err)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		if err := g.AddNode("G", fmt.Sprintf("%v", n.id), attrs); err != nil {
			panic(err)
		}
		buf.Reset()

		kids := n.childIDs()
		sort.Sort(byMove{l: kids, t: t})
		for _, kid := range kids {
			if err := g.AddEdge(fmt.Sprintf("%v", n.id), fmt.Sprintf("%v", kid), true, nil); err != nil {
				panic(err)
			}
		}
		return true
	})
	return g.String()
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" BGCOLOR="{{.Colour}}">
<TR><TD>Node ID</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Action</TD><TD>{{.Action}}</TD></TR>
<TR><TD>Player</TD><TD>{{printf "%d" .Player}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Mean</TD><TD>{{printf "%.3f" .Mean}}</TD></TR>
<TR><TD>State</TD><TD BALIGN="LEFT">{{.State}}</TD></TR>
</TABLE>
>`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("name").Parse(tmplRaw))
}
