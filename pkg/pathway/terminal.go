package pathway

// OnlyProducedSpecies returns species with incoming edges and no outgoing
// ones: the terminal products of the network. Order follows insertion.
func (g *Graph) OnlyProducedSpecies() []string {
	return g.terminal(false, func(n *Node) bool {
		return g.OutDegree(n.ID) == 0 && g.InDegree(n.ID) > 0
	})
}

// OnlyProducedCentralSpecies is [Graph.OnlyProducedSpecies] restricted to
// central species.
func (g *Graph) OnlyProducedCentralSpecies() []string {
	return g.terminal(true, func(n *Node) bool {
		return g.OutDegree(n.ID) == 0 && g.InDegree(n.ID) > 0
	})
}

// OnlyConsumedSpecies returns species with outgoing edges and no incoming
// ones: the terminal substrates, candidates for a layout root.
func (g *Graph) OnlyConsumedSpecies() []string {
	return g.terminal(false, func(n *Node) bool {
		return g.OutDegree(n.ID) > 0 && g.InDegree(n.ID) == 0
	})
}

// OnlyConsumedCentralSpecies is [Graph.OnlyConsumedSpecies] restricted to
// central species.
func (g *Graph) OnlyConsumedCentralSpecies() []string {
	return g.terminal(true, func(n *Node) bool {
		return g.OutDegree(n.ID) > 0 && g.InDegree(n.ID) == 0
	})
}

func (g *Graph) terminal(centralOnly bool, match func(*Node) bool) []string {
	var ids []string
	for _, id := range g.order {
		n := g.nodes[id]
		if !n.IsSpecies() || (centralOnly && !n.Central) {
			continue
		}
		if match(n) {
			ids = append(ids, id)
		}
	}
	return ids
}
