package pathway

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Diagnostics summarises structural properties that affect layout and
// ordering quality. It is informational only.
type Diagnostics struct {
	// Components is the number of weakly connected components. A value above
	// one means some nodes can never be reached from a single layout root.
	Components int
	// Cycles lists strongly connected components with more than one node.
	// Each cycle is in insertion order; cycles are ordered by first member.
	Cycles [][]string
	// TerminalProducts are the only-produced species.
	TerminalProducts []string
	// TerminalSubstrates are the only-consumed species.
	TerminalSubstrates []string
}

// HasCycles reports whether the network contains a directed cycle.
func (d Diagnostics) HasCycles() bool { return len(d.Cycles) > 0 }

// Analyze computes [Diagnostics] for g. The graph is not modified.
func Analyze(g *Graph) Diagnostics {
	idx := g.index()

	directed := simple.NewDirectedGraph()
	undirected := simple.NewUndirectedGraph()
	for i := range g.order {
		directed.AddNode(simple.Node(i))
		undirected.AddNode(simple.Node(i))
	}
	for _, e := range g.edges {
		from, to := simple.Node(idx[e.From]), simple.Node(idx[e.To])
		directed.SetEdge(simple.Edge{F: from, T: to})
		undirected.SetEdge(simple.Edge{F: from, T: to})
	}

	var cycles [][]string
	for _, scc := range topo.TarjanSCC(directed) {
		if len(scc) < 2 {
			continue
		}
		cycles = append(cycles, g.idsOf(scc))
	}
	slices.SortFunc(cycles, func(a, b []string) int { return idx[a[0]] - idx[b[0]] })

	return Diagnostics{
		Components:         len(topo.ConnectedComponents(undirected)),
		Cycles:             cycles,
		TerminalProducts:   g.OnlyProducedSpecies(),
		TerminalSubstrates: g.OnlyConsumedSpecies(),
	}
}

func (g *Graph) idsOf(nodes []graph.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = g.order[n.ID()]
	}
	g.sortByOrder(ids)
	return ids
}
