package ordering

import "github.com/matzehuels/pathdraw/pkg/pathway"

// Step splits the participants of one ordered reaction into drawn structures
// and side labels.
type Step struct {
	Reaction string `json:"reaction"`
	// Reactants and Products hold the structure identifiers of central,
	// non-cofactor participants.
	Reactants []string `json:"reactants"`
	Products  []string `json:"products"`
	// CofactorReactants and CofactorProducts hold the display labels of
	// every other participant.
	CofactorReactants []string `json:"cofactor_reactants"`
	CofactorProducts  []string `json:"cofactor_products"`
}

// Steps returns one [Step] per reaction in order. Species without a
// structure are always reported by label. A nil table uses
// [pathway.DefaultCofactors].
func Steps(g *pathway.Graph, order []string, table *pathway.CofactorTable) []Step {
	if table == nil {
		table = pathway.DefaultCofactors()
	}
	steps := make([]Step, 0, len(order))
	for _, id := range order {
		s := Step{Reaction: id}
		for _, pre := range g.Predecessors(id) {
			if n, ok := g.Node(pre); ok {
				s.Reactants, s.CofactorReactants = split(n, table, s.Reactants, s.CofactorReactants)
			}
		}
		for _, suc := range g.Successors(id) {
			if n, ok := g.Node(suc); ok {
				s.Products, s.CofactorProducts = split(n, table, s.Products, s.CofactorProducts)
			}
		}
		steps = append(steps, s)
	}
	return steps
}

func split(n pathway.Node, table *pathway.CofactorTable, structures, labels []string) ([]string, []string) {
	if n.Central && n.HasStructure() && !table.IsCofactor(n) {
		return append(structures, n.StructureID), labels
	}
	return structures, append(labels, n.Label())
}
