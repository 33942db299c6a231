// Package filter decides which species of a pathway are drawn and which are
// hidden as cofactor noise.
//
// [Classify] evaluates each species against an ordered policy, first match
// wins:
//
//  1. No chemical structure identifier: drop (data-quality warning).
//  2. FilterCofactors and a cross-reference is in the cofactor table: drop.
//  3. Not FilterSinkSpecies and the species is a sink: keep.
//  4. PlotOnlyCentral and the species is not central: drop.
//  5. Otherwise: keep.
//
// Reactions are never dropped. Every dropped species is attached, by display
// label, to the reactions it touches: as a substrate when the edge goes
// species→reaction, as a product when it goes reaction→species.
package filter

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathdraw/pkg/pathway"
)

// Reason records why a species was kept or dropped.
type Reason int

const (
	// Kept: no rule dropped the species.
	Kept Reason = iota
	// KeptSink: the species was kept because it belongs to the sink group.
	KeptSink
	// DroppedMissingStructure: the species has no structure identifier.
	DroppedMissingStructure
	// DroppedCofactor: the species matches the cofactor table.
	DroppedCofactor
	// DroppedNotCentral: only central species are drawn and this one is not.
	DroppedNotCentral
)

// String returns a short name for the reason.
func (r Reason) String() string {
	switch r {
	case KeptSink:
		return "kept-sink"
	case DroppedMissingStructure:
		return "missing-structure"
	case DroppedCofactor:
		return "cofactor"
	case DroppedNotCentral:
		return "not-central"
	default:
		return "kept"
	}
}

// IsDropped reports whether the reason removes the species from the layout.
func (r Reason) IsDropped() bool { return r >= DroppedMissingStructure }

// Options configures the filter policy.
type Options struct {
	// PlotOnlyCentral hides species outside the central group.
	PlotOnlyCentral bool
	// FilterCofactors hides species listed in Cofactors.
	FilterCofactors bool
	// FilterSinkSpecies lets sink species be dropped by the later rules.
	// When false, sink species are always kept.
	FilterSinkSpecies bool
	// Cofactors is the cofactor lookup. Nil uses [pathway.DefaultCofactors].
	Cofactors *pathway.CofactorTable
	// Logger receives policy warnings. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns the drawing defaults: only central species, with
// cofactors filtered and sink species kept.
func DefaultOptions() Options {
	return Options{
		PlotOnlyCentral: true,
		FilterCofactors: true,
	}
}

// Sides lists the display labels of dropped species attached to a reaction.
type Sides struct {
	Substrates []string `json:"substrates"`
	Products   []string `json:"products"`
}

// Empty reports whether no label is attached on either side.
func (s Sides) Empty() bool { return len(s.Substrates) == 0 && len(s.Products) == 0 }

// Result is the kept/dropped partition of the species plus the per-reaction
// side labels of what was dropped.
type Result struct {
	// Kept lists kept species in graph order.
	Kept []string
	// Dropped lists dropped species in graph order.
	Dropped []string
	// Reasons holds the decision for every species.
	Reasons map[string]Reason
	// Cofactors maps every reaction to the labels of its dropped participants.
	Cofactors map[string]Sides
}

// IsDropped reports whether the species was dropped. Reactions and unknown
// IDs are never dropped.
func (r *Result) IsDropped(id string) bool {
	return r != nil && r.Reasons[id].IsDropped()
}

// MissingStructure returns the species dropped for lack of a structure.
func (r *Result) MissingStructure() []string {
	var ids []string
	for _, id := range r.Dropped {
		if r.Reasons[id] == DroppedMissingStructure {
			ids = append(ids, id)
		}
	}
	return ids
}

// Classify partitions the species of g according to opts. It never modifies
// g and has no hidden state: equal inputs give equal results.
func Classify(g *pathway.Graph, opts Options) *Result {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	table := opts.Cofactors
	if table == nil {
		table = pathway.DefaultCofactors()
	}

	res := &Result{
		Reasons:   make(map[string]Reason, g.SpeciesCount()),
		Cofactors: make(map[string]Sides, g.ReactionCount()),
	}

	for _, n := range g.Nodes() {
		if n.IsReaction() {
			res.Cofactors[n.ID] = Sides{}
			continue
		}
		reason := decide(n, table, opts)
		res.Reasons[n.ID] = reason
		if reason.IsDropped() {
			res.Dropped = append(res.Dropped, n.ID)
		} else {
			res.Kept = append(res.Kept, n.ID)
		}
		report(logger, n, reason)
	}

	for _, e := range g.Edges() {
		switch {
		case g.IsReaction(e.From) && res.IsDropped(e.To):
			n, _ := g.Node(e.To)
			s := res.Cofactors[e.From]
			s.Products = append(s.Products, n.Label())
			res.Cofactors[e.From] = s
		case g.IsReaction(e.To) && res.IsDropped(e.From):
			n, _ := g.Node(e.From)
			s := res.Cofactors[e.To]
			s.Substrates = append(s.Substrates, n.Label())
			res.Cofactors[e.To] = s
		}
	}

	return res
}

func decide(n pathway.Node, table *pathway.CofactorTable, opts Options) Reason {
	switch {
	case !n.HasStructure():
		return DroppedMissingStructure
	case opts.FilterCofactors && table.IsCofactor(n):
		return DroppedCofactor
	case !opts.FilterSinkSpecies && n.Sink:
		return KeptSink
	case opts.PlotOnlyCentral && !n.Central:
		return DroppedNotCentral
	}
	return Kept
}

func report(logger *log.Logger, n pathway.Node, reason Reason) {
	switch reason {
	case DroppedMissingStructure:
		logger.Warn("species has no structure, hiding it", "species", n.ID)
	case DroppedCofactor:
		logger.Warn("species is a listed cofactor, hiding it", "species", n.ID)
	case DroppedNotCentral:
		logger.Warn("species is not central, hiding it", "species", n.ID)
	case KeptSink:
		logger.Warn("sink species is kept", "species", n.ID)
	}
}

// KeptSet returns the kept species as a set.
func (r *Result) KeptSet() map[string]bool {
	set := make(map[string]bool, len(r.Kept))
	for _, id := range r.Kept {
		set[id] = true
	}
	return set
}

// Equal reports whether two results have the same partition and labels.
func (r *Result) Equal(o *Result) bool {
	if !slices.Equal(r.Kept, o.Kept) || !slices.Equal(r.Dropped, o.Dropped) {
		return false
	}
	if len(r.Cofactors) != len(o.Cofactors) {
		return false
	}
	for id, s := range r.Cofactors {
		t, ok := o.Cofactors[id]
		if !ok || !slices.Equal(s.Substrates, t.Substrates) || !slices.Equal(s.Products, t.Products) {
			return false
		}
	}
	return true
}
