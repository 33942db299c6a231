package layout

import (
	"slices"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/pathdraw/pkg/errors"
	"github.com/matzehuels/pathdraw/pkg/pathway"
	"github.com/matzehuels/pathdraw/pkg/pathway/filter"
)

// Options controls the raw spacing of the layered walk. Only the relative
// spacing matters once positions are normalized. A non-positive Width or
// YGap is replaced by its default.
type Options struct {
	// Width is the horizontal extent shared by every rank.
	Width float64
	// YGap is the distance between two consecutive ranks.
	YGap float64
	// XCenter is the horizontal center of every rank.
	XCenter float64
	// Logger receives walk diagnostics. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns Width 1.0, YGap 0.2 and XCenter 0.5.
func DefaultOptions() Options {
	return Options{Width: 1.0, YGap: 0.2, XCenter: 0.5}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.YGap <= 0 {
		o.YGap = d.YGap
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Point is a normalized position in the unit square. X is the rank axis:
// the root rank sits at X=1 and the deepest rank at X=0. Y is the position
// within a rank.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result is the positioned part of a pathway.
type Result struct {
	// Root is the node the walk started from.
	Root string
	// Positions holds the normalized position of every placed node.
	Positions map[string]Point
	// Layers lists the placed nodes rank by rank, in discovery order.
	Layers [][]string
	// Graph is the subgraph induced by the placed nodes.
	Graph *pathway.Graph
	// Cofactors carries the per-reaction labels of filtered species.
	Cofactors map[string]filter.Sides
	// Filtered counts the species removed by the filter.
	Filtered int
	// Unreached lists nodes that survived the filter but were never
	// reached from the root, in graph order.
	Unreached []string
}

// Rank returns the layer index of id, or -1 when id was not placed.
func (r *Result) Rank(id string) int {
	for i, layer := range r.Layers {
		if slices.Contains(layer, id) {
			return i
		}
	}
	return -1
}

// LargestRank returns the number of nodes in the widest layer.
func (r *Result) LargestRank() int {
	largest := 0
	for _, layer := range r.Layers {
		largest = max(largest, len(layer))
	}
	return largest
}

// Compute places the nodes of g that survive kept in ranks walking outward
// from root.
//
// # Algorithm
//
// The remaining set starts as every reaction plus every kept species.
//
//  1. Rank 0 is the root, followed by every other product of each reaction
//     adjacent to the root. A filtered root is left out of rank 0.
//  2. Each further rank collects, for every node of the previous rank, its
//     predecessors then its successors that are still remaining. When such a
//     neighbour is produced by a reaction, the other remaining products of
//     that reaction join the same rank.
//  3. Placed nodes leave the remaining set. The walk stops when the set is
//     empty or a rank comes out empty.
//
// Discovery order is the only tie-break. Within a rank, node i of n sits at
// XCenter - Width/2 + Width/n*(i+0.5); rank k sits at -k*YGap.
//
// # Normalization
//
// Raw coordinates are min-max scaled per axis onto [0,1] and swapped, so the
// rank axis becomes X. An axis with zero range maps to 0.
//
// # Errors
//
// Compute returns UNKNOWN_NODE when root is not in g, and EMPTY_LAYER when
// root has no adjacent reaction or rank 0 is empty. Unreached nodes are not
// an error; they are logged and listed in [Result.Unreached].
func Compute(g *pathway.Graph, root string, kept *filter.Result, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if kept == nil {
		kept = &filter.Result{}
	}
	logger := opts.Logger.With("root", root)

	if !g.Has(root) {
		return nil, perrors.New(perrors.ErrCodeUnknownNode, "root %q is not in the pathway", root)
	}

	w := newWalker(g, kept)
	seed := w.seed(root)
	if len(seed) == 0 {
		logger.Warn("first layer is empty")
		return nil, perrors.New(perrors.ErrCodeEmptyLayer, "cannot seed a first layer from %q: no reaction neighbours", root)
	}

	var layers [][]string
	for layer := seed; ; {
		w.place(layer)
		layers = append(layers, layer)
		logger.Debug("placed layer", "rank", len(layers)-1, "nodes", layer)
		if w.done() {
			break
		}
		layer = w.next(layer)
		if len(layer) == 0 {
			logger.Warn("layer is empty, stopping walk", "rank", len(layers))
			break
		}
	}

	res := &Result{
		Root:      root,
		Positions: normalize(place(layers, opts)),
		Layers:    layers,
		Cofactors: kept.Cofactors,
		Filtered:  len(kept.Dropped),
		Unreached: w.unreached(),
	}
	res.Graph = g.Induced(placedIDs(layers))

	if len(res.Unreached) > 0 {
		logger.Warn("nodes not reachable from root", "count", len(res.Unreached), "nodes", res.Unreached)
	}
	return res, nil
}

// =============================================================================
// Walk
// =============================================================================

type walker struct {
	g         *pathway.Graph
	remaining map[string]bool
}

func newWalker(g *pathway.Graph, kept *filter.Result) *walker {
	remaining := make(map[string]bool, g.NodeCount())
	for _, id := range g.NodeIDs() {
		if !kept.IsDropped(id) {
			remaining[id] = true
		}
	}
	return &walker{g: g, remaining: remaining}
}

func (w *walker) seed(root string) []string {
	var layer []string
	if w.remaining[root] {
		layer = append(layer, root)
	}
	hasReaction := false
	for _, nei := range w.g.Neighbors(root) {
		if !w.g.IsReaction(nei) {
			continue
		}
		hasReaction = true
		for _, suc := range w.g.Successors(nei) {
			layer = w.add(layer, suc)
		}
	}
	if !hasReaction {
		return nil
	}
	return layer
}

func (w *walker) next(parents []string) []string {
	var layer []string
	for _, p := range parents {
		for _, nei := range w.g.Neighbors(p) {
			if !w.remaining[nei] || slices.Contains(layer, nei) {
				continue
			}
			layer = append(layer, nei)
			for _, pre := range w.g.Predecessors(nei) {
				if !w.g.IsReaction(pre) {
					continue
				}
				for _, sibling := range w.g.Successors(pre) {
					layer = w.add(layer, sibling)
				}
			}
		}
	}
	return layer
}

func (w *walker) add(layer []string, id string) []string {
	if w.remaining[id] && !slices.Contains(layer, id) {
		return append(layer, id)
	}
	return layer
}

func (w *walker) place(layer []string) {
	for _, id := range layer {
		delete(w.remaining, id)
	}
}

func (w *walker) done() bool { return len(w.remaining) == 0 }

func (w *walker) unreached() []string {
	var ids []string
	for _, id := range w.g.NodeIDs() {
		if w.remaining[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func placedIDs(layers [][]string) []string {
	var ids []string
	for _, layer := range layers {
		ids = append(ids, layer...)
	}
	return ids
}
