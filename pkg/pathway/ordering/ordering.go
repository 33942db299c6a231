package ordering

import (
	"slices"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/pathdraw/pkg/errors"
	"github.com/matzehuels/pathdraw/pkg/pathway"
)

// Options configures [Order].
type Options struct {
	// Lenient accepts a full-length walk even when it crossed a central
	// species with several producing reactions. The resulting order may be
	// wrong for branching pathways.
	Lenient bool
	// Logger receives walk diagnostics. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns the strict ordering options.
func DefaultOptions() Options { return Options{} }

// Order returns every reaction of g exactly once, in synthesis order.
//
// # Algorithm
//
// For each species that is only produced (no outgoing edge, at least one
// incoming edge), in graph order, Order walks backward and accumulates
// reactions:
//
//   - A reaction predecessor already accumulated ends the walk at that level.
//     Otherwise it is appended and the walk continues from it.
//   - A central species predecessor is walked through.
//   - A non-central species predecessor ends the walk at that level.
//
// The first walk that accumulates as many reactions as g holds is reversed
// and returned. Recursion depth is bounded by twice the reaction count.
//
// # Ambiguity
//
// The walk assumes each central species on the chain has a single producing
// reaction. Unless opts.Lenient is set, a walk that passes through a species
// with two or more producing reactions is rejected even when it is full
// length, since the order between the branches is a guess.
//
// # Errors
//
// Order returns AMBIGUOUS_OR_NO_FULL_ORDER when no walk qualifies. Partial
// orders are never returned.
func Order(g *pathway.Graph, opts Options) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	total := g.ReactionCount()
	products := g.OnlyProducedSpecies()
	for _, product := range products {
		w := &walk{g: g, limit: 2*total + 1}
		w.visit(product, 0)
		logger.Debug("backward walk", "product", product, "reactions", w.acc, "branches", w.branches)

		if len(w.acc) != total || w.truncated {
			continue
		}
		if len(w.branches) > 0 && !opts.Lenient {
			logger.Warn("full walk crosses branching species, rejecting it", "product", product, "species", w.branches)
			continue
		}
		slices.Reverse(w.acc)
		return w.acc, nil
	}

	logger.Error("could not find a full reaction order", "reactions", total, "products", products)
	return nil, perrors.New(perrors.ErrCodeAmbiguousOrder,
		"no unambiguous order covers all %d reactions", total)
}

type walk struct {
	g         *pathway.Graph
	acc       []string
	branches  []string
	limit     int
	truncated bool
}

func (w *walk) visit(id string, depth int) {
	if depth > w.limit {
		w.truncated = true
		return
	}
	preds := w.g.Predecessors(id)
	if w.g.IsSpecies(id) && w.producers(preds) > 1 && !slices.Contains(w.branches, id) {
		w.branches = append(w.branches, id)
	}

	for _, pre := range preds {
		if w.g.IsReaction(pre) {
			if slices.Contains(w.acc, pre) {
				return
			}
			w.acc = append(w.acc, pre)
			w.visit(pre, depth+1)
			continue
		}
		if n, _ := w.g.Node(pre); !n.Central {
			return
		}
		w.visit(pre, depth+1)
	}
}

func (w *walk) producers(preds []string) int {
	n := 0
	for _, id := range preds {
		if w.g.IsReaction(id) {
			n++
		}
	}
	return n
}
