package pathway

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Builder.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Builder.AddNode] when a node with the
	// same ID was already added.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Builder.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Builder.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSameTypeEdge is returned by [Builder.AddEdge] when both endpoints have
	// the same type. Pathway edges always connect a species and a reaction.
	ErrSameTypeEdge = errors.New("edge endpoints must be one species and one reaction")

	// ErrBuilt is returned by builder methods called after [Builder.Build].
	ErrBuilt = errors.New("builder already built")
)

// NodeType distinguishes the two node variants of a reaction network.
type NodeType int

const (
	// TypeSpecies is a chemical species (metabolite).
	TypeSpecies NodeType = iota
	// TypeReaction is a reaction connecting substrates to products.
	TypeReaction
)

// String returns "species" or "reaction".
func (t NodeType) String() string {
	if t == TypeReaction {
		return "reaction"
	}
	return "species"
}

// CrossRefs maps a cross-reference namespace (e.g. "metanetx", "chebi") to the
// identifiers the node carries in that namespace.
type CrossRefs map[string][]string

func (c CrossRefs) clone() CrossRefs {
	if c == nil {
		return nil
	}
	out := make(CrossRefs, len(c))
	for ns, ids := range c {
		out[ns] = slices.Clone(ids)
	}
	return out
}

// Node is a species or a reaction of the pathway.
//
// Name, StructureID, Central and Sink are only meaningful for species.
type Node struct {
	ID          string
	Type        NodeType
	Name        string    // display name, may be empty
	StructureID string    // chemical structure identifier (InChI), may be empty
	CrossRefs   CrossRefs // namespace -> identifiers
	Central     bool      // member of the central species group
	Sink        bool      // member of the sink species group
}

// IsSpecies reports whether the node is a species.
func (n Node) IsSpecies() bool { return n.Type == TypeSpecies }

// IsReaction reports whether the node is a reaction.
func (n Node) IsReaction() bool { return n.Type == TypeReaction }

// HasStructure reports whether a chemical structure identifier is attached.
func (n Node) HasStructure() bool { return n.StructureID != "" }

// Label returns the display name, falling back to the ID when the name is empty.
func (n Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Edge is a stoichiometric edge: species→reaction for a substrate,
// reaction→species for a product.
type Edge struct {
	From          string
	To            string
	Stoichiometry float64
}

// Graph is an immutable reaction network. Build one with [NewBuilder].
//
// All accessors return copies, so a Graph can be shared by concurrent
// readers without synchronization.
type Graph struct {
	nodes     map[string]*Node
	order     []string // insertion order
	edges     []Edge
	outgoing  map[string][]string
	incoming  map[string][]string
	reactions int
}

func newGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// =============================================================================
// Builder
// =============================================================================

// Builder assembles a [Graph]. The zero value is not usable; use NewBuilder.
type Builder struct {
	g *Graph
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{g: newGraph()}
}

// AddSpecies adds n as a species node.
func (b *Builder) AddSpecies(n Node) error {
	n.Type = TypeSpecies
	return b.AddNode(n)
}

// AddReaction adds n as a reaction node.
func (b *Builder) AddReaction(n Node) error {
	n.Type = TypeReaction
	return b.AddNode(n)
}

// AddNode adds a node. Returns ErrInvalidNodeID for an empty ID and
// ErrDuplicateNodeID when the ID is already taken. CrossRefs are copied.
func (b *Builder) AddNode(n Node) error {
	if b.g == nil {
		return ErrBuilt
	}
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := b.g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	n.CrossRefs = n.CrossRefs.clone()
	b.g.nodes[n.ID] = &n
	b.g.order = append(b.g.order, n.ID)
	if n.IsReaction() {
		b.g.reactions++
	}
	return nil
}

// AddEdge adds a directed edge between two existing nodes of opposite types.
// A second edge with the same endpoints is ignored.
func (b *Builder) AddEdge(e Edge) error {
	if b.g == nil {
		return ErrBuilt
	}
	src, ok := b.g.nodes[e.From]
	if !ok {
		return ErrUnknownSourceNode
	}
	dst, ok := b.g.nodes[e.To]
	if !ok {
		return ErrUnknownTargetNode
	}
	if src.Type == dst.Type {
		return ErrSameTypeEdge
	}
	if slices.Contains(b.g.outgoing[e.From], e.To) {
		return nil
	}
	b.g.edges = append(b.g.edges, e)
	b.g.outgoing[e.From] = append(b.g.outgoing[e.From], e.To)
	b.g.incoming[e.To] = append(b.g.incoming[e.To], e.From)
	return nil
}

// Build returns the assembled graph. The builder cannot be used afterwards.
func (b *Builder) Build() *Graph {
	g := b.g
	b.g = nil
	if g == nil {
		return newGraph()
	}
	return g
}

// =============================================================================
// Accessors
// =============================================================================

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	out := *n
	out.CrossRefs = n.CrossRefs.clone()
	return out, true
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// IsReaction reports whether id names a reaction node.
func (g *Graph) IsReaction(id string) bool {
	n, ok := g.nodes[id]
	return ok && n.IsReaction()
}

// IsSpecies reports whether id names a species node.
func (g *Graph) IsSpecies(id string) bool {
	n, ok := g.nodes[id]
	return ok && n.IsSpecies()
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		n, _ := g.Node(id)
		out = append(out, n)
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Species returns the species nodes in insertion order.
func (g *Graph) Species() []Node {
	return g.filterNodes(func(n *Node) bool { return n.IsSpecies() })
}

// Reactions returns the reaction nodes in insertion order.
func (g *Graph) Reactions() []Node {
	return g.filterNodes(func(n *Node) bool { return n.IsReaction() })
}

// ReactionIDs returns the reaction IDs in insertion order.
func (g *Graph) ReactionIDs() []string {
	ids := make([]string, 0, g.reactions)
	for _, id := range g.order {
		if g.nodes[id].IsReaction() {
			ids = append(ids, id)
		}
	}
	return ids
}

func (g *Graph) filterNodes(keep func(*Node) bool) []Node {
	var out []Node
	for _, id := range g.order {
		if keep(g.nodes[id]) {
			n, _ := g.Node(id)
			out = append(out, n)
		}
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ReactionCount returns the number of reaction nodes.
func (g *Graph) ReactionCount() int { return g.reactions }

// SpeciesCount returns the number of species nodes.
func (g *Graph) SpeciesCount() int { return len(g.nodes) - g.reactions }

// Successors returns the targets of the node's outgoing edges, in edge order.
func (g *Graph) Successors(id string) []string { return slices.Clone(g.outgoing[id]) }

// Predecessors returns the sources of the node's incoming edges, in edge order.
func (g *Graph) Predecessors(id string) []string { return slices.Clone(g.incoming[id]) }

// Neighbors returns predecessors followed by successors.
func (g *Graph) Neighbors(id string) []string {
	return append(g.Predecessors(id), g.outgoing[id]...)
}

// OutDegree returns the number of outgoing edges of the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges of the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Induced returns the subgraph made of the given nodes and the edges between
// them. Unknown IDs are ignored; node and edge order follow g.
func (g *Graph) Induced(ids []string) *Graph {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	b := NewBuilder()
	for _, id := range g.order {
		if keep[id] {
			_ = b.AddNode(*g.nodes[id])
		}
	}
	for _, e := range g.edges {
		if keep[e.From] && keep[e.To] {
			_ = b.AddEdge(e)
		}
	}
	return b.Build()
}

// index maps node IDs to their insertion position.
func (g *Graph) index() map[string]int {
	idx := make(map[string]int, len(g.order))
	for i, id := range g.order {
		idx[id] = i
	}
	return idx
}

// sortByOrder sorts ids by insertion position.
func (g *Graph) sortByOrder(ids []string) {
	idx := g.index()
	slices.SortFunc(ids, func(a, b string) int { return idx[a] - idx[b] })
}

// namespaces returns the namespaces in sorted order.
func (c CrossRefs) namespaces() []string {
	return slices.Sorted(maps.Keys(c))
}
