package layout

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/pathdraw/pkg/errors"
	"github.com/matzehuels/pathdraw/pkg/pathway"
	"github.com/matzehuels/pathdraw/pkg/pathway/filter"
)

var quiet = log.New(io.Discard)

type edge [2]string

// build creates a pathway where every listed species is central with a
// structure. Extra species are added as given.
func build(t *testing.T, species, reactions []string, edges []edge, extra ...pathway.Node) *pathway.Graph {
	t.Helper()
	b := pathway.NewBuilder()
	for _, id := range species {
		if err := b.AddSpecies(pathway.Node{ID: id, StructureID: "InChI=" + id, Central: true}); err != nil {
			t.Fatalf("AddSpecies(%s) error = %v", id, err)
		}
	}
	for _, n := range extra {
		if err := b.AddSpecies(n); err != nil {
			t.Fatalf("AddSpecies(%s) error = %v", n.ID, err)
		}
	}
	for _, id := range reactions {
		if err := b.AddReaction(pathway.Node{ID: id}); err != nil {
			t.Fatalf("AddReaction(%s) error = %v", id, err)
		}
	}
	for _, e := range edges {
		if err := b.AddEdge(pathway.Edge{From: e[0], To: e[1], Stoichiometry: 1}); err != nil {
			t.Fatalf("AddEdge(%s→%s) error = %v", e[0], e[1], err)
		}
	}
	return b.Build()
}

func linearChain(t *testing.T) *pathway.Graph {
	return build(t,
		[]string{"A", "B", "C", "D"},
		[]string{"R1", "R2", "R3"},
		[]edge{{"A", "R1"}, {"R1", "B"}, {"B", "R2"}, {"R2", "C"}, {"C", "R3"}, {"R3", "D"}},
	)
}

func compute(t *testing.T, g *pathway.Graph, root string) (*Result, error) {
	t.Helper()
	kept := filter.Classify(g, filter.Options{PlotOnlyCentral: true, FilterCofactors: true, Logger: quiet})
	opts := DefaultOptions()
	opts.Logger = quiet
	return Compute(g, root, kept, opts)
}

func TestCompute_LinearChain(t *testing.T) {
	res, err := compute(t, linearChain(t), "D")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	want := [][]string{{"D"}, {"R3"}, {"C"}, {"R2"}, {"B"}, {"R1"}, {"A"}}
	if !slices.EqualFunc(res.Layers, want, slices.Equal[[]string]) {
		t.Fatalf("Layers = %v, want %v", res.Layers, want)
	}

	// Ranks alternate species and reactions and advance monotonically
	// from the root at X=1 towards the substrate at X=0.
	prev := 2.0
	for rank, layer := range res.Layers {
		p := res.Positions[layer[0]]
		if p.X >= prev {
			t.Errorf("rank %d X = %v, not below previous %v", rank, p.X, prev)
		}
		prev = p.X
		if p.Y != 0 {
			t.Errorf("%s Y = %v, want 0 on a degenerate axis", layer[0], p.Y)
		}
	}
	if got := res.Positions["D"]; got != (Point{X: 1, Y: 0}) {
		t.Errorf("Positions[D] = %v, want {1 0}", got)
	}
	if got := res.Positions["A"]; got != (Point{X: 0, Y: 0}) {
		t.Errorf("Positions[A] = %v, want {0 0}", got)
	}
	if got := res.Positions["R3"].X; got != 0.83333 {
		t.Errorf("Positions[R3].X = %v, want 0.83333", got)
	}
	if res.Graph.NodeCount() != 7 || res.Graph.EdgeCount() != 6 {
		t.Errorf("Graph has %d nodes / %d edges, want 7 / 6", res.Graph.NodeCount(), res.Graph.EdgeCount())
	}
	if res.Rank("C") != 2 || res.Rank("missing") != -1 {
		t.Errorf("Rank mismatch: C=%d missing=%d", res.Rank("C"), res.Rank("missing"))
	}
}

func TestCompute_LinearChainFromSubstrate(t *testing.T) {
	res, err := compute(t, linearChain(t), "A")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// The seed pulls in R1's product B, so B's consumer R2 shares a rank
	// with R1.
	want := [][]string{{"A", "B"}, {"R1", "R2"}, {"C"}, {"R3"}, {"D"}}
	if !slices.EqualFunc(res.Layers, want, slices.Equal[[]string]) {
		t.Fatalf("Layers = %v, want %v", res.Layers, want)
	}

	tests := map[string]Point{
		"A":  {X: 1, Y: 0},
		"B":  {X: 1, Y: 1},
		"R1": {X: 0.75, Y: 0},
		"R2": {X: 0.75, Y: 1},
		"C":  {X: 0.5, Y: 0.5},
		"R3": {X: 0.25, Y: 0.5},
		"D":  {X: 0, Y: 0.5},
	}
	for id, want := range tests {
		if got := res.Positions[id]; got != want {
			t.Errorf("Positions[%s] = %v, want %v", id, got, want)
		}
	}

	prev := 2.0
	for rank, layer := range res.Layers {
		if len(layer) == 0 {
			t.Fatalf("rank %d is empty", rank)
		}
		x := res.Positions[layer[0]].X
		for _, id := range layer {
			if res.Positions[id].X != x {
				t.Errorf("%s X = %v, want rank %d X = %v", id, res.Positions[id].X, rank, x)
			}
		}
		if x >= prev {
			t.Errorf("rank %d X = %v, not below previous %v", rank, x, prev)
		}
		prev = x
	}
	if len(res.Positions) != 7 || len(res.Unreached) != 0 {
		t.Errorf("placed %d nodes, unreached %v, want 7 and none", len(res.Positions), res.Unreached)
	}
}

func TestCompute_SeedPullsCoProducts(t *testing.T) {
	// A → R1 → T + P
	g := build(t, []string{"A", "T", "P"}, []string{"R1"}, []edge{{"A", "R1"}, {"R1", "T"}, {"R1", "P"}})

	res, err := compute(t, g, "T")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	want := [][]string{{"T", "P"}, {"R1"}, {"A"}}
	if !slices.EqualFunc(res.Layers, want, slices.Equal[[]string]) {
		t.Fatalf("Layers = %v, want %v", res.Layers, want)
	}

	tests := map[string]Point{
		"T":  {X: 1, Y: 0},
		"P":  {X: 1, Y: 1},
		"R1": {X: 0.5, Y: 0.5},
		"A":  {X: 0, Y: 0.5},
	}
	for id, want := range tests {
		if got := res.Positions[id]; got != want {
			t.Errorf("Positions[%s] = %v, want %v", id, got, want)
		}
	}
	if res.LargestRank() != 2 {
		t.Errorf("LargestRank() = %d, want 2", res.LargestRank())
	}
}

func TestCompute_SiblingsShareRank(t *testing.T) {
	// A → R1 → B + B2; B → R2 → D
	g := build(t,
		[]string{"A", "B", "B2", "D"},
		[]string{"R1", "R2"},
		[]edge{{"A", "R1"}, {"R1", "B"}, {"R1", "B2"}, {"B", "R2"}, {"R2", "D"}},
	)

	res, err := compute(t, g, "D")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	want := [][]string{{"D"}, {"R2"}, {"B", "B2"}, {"R1"}, {"A"}}
	if !slices.EqualFunc(res.Layers, want, slices.Equal[[]string]) {
		t.Errorf("Layers = %v, want %v", res.Layers, want)
	}
}

func TestCompute_CofactorNotPlaced(t *testing.T) {
	water := pathway.Node{
		ID: "W", Name: "water", StructureID: "InChI=H2O", Central: true,
		CrossRefs: pathway.CrossRefs{"metanetx": {"MNXM2"}},
	}
	g := build(t,
		[]string{"A", "B"},
		[]string{"R1"},
		[]edge{{"A", "R1"}, {"W", "R1"}, {"R1", "B"}},
		water,
	)

	res, err := compute(t, g, "B")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if _, ok := res.Positions["W"]; ok {
		t.Error("cofactor W was placed")
	}
	if res.Graph.Has("W") {
		t.Error("cofactor W is in the positioned subgraph")
	}
	if got := res.Cofactors["R1"].Substrates; !slices.Equal(got, []string{"water"}) {
		t.Errorf("Cofactors[R1].Substrates = %v, want [water]", got)
	}
	if res.Filtered != 1 {
		t.Errorf("Filtered = %d, want 1", res.Filtered)
	}
}

func TestCompute_Errors(t *testing.T) {
	g := build(t,
		[]string{"A", "B", "Z"},
		[]string{"R1"},
		[]edge{{"A", "R1"}, {"R1", "B"}},
		pathway.Node{ID: "N", Central: true},
	)
	b := pathway.NewBuilder()
	_ = b.AddSpecies(pathway.Node{ID: "A", StructureID: "InChI=A", Central: true})
	_ = b.AddSpecies(pathway.Node{ID: "D", Central: true})
	_ = b.AddReaction(pathway.Node{ID: "R1"})
	_ = b.AddEdge(pathway.Edge{From: "A", To: "R1"})
	_ = b.AddEdge(pathway.Edge{From: "R1", To: "D"})
	filteredRoot := b.Build()

	tests := []struct {
		name string
		g    *pathway.Graph
		root string
		code perrors.Code
	}{
		{"unknown root", g, "missing", perrors.ErrCodeUnknownNode},
		{"isolated root", g, "Z", perrors.ErrCodeEmptyLayer},
		{"filtered root without co-products", filteredRoot, "D", perrors.ErrCodeEmptyLayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := compute(t, tt.g, tt.root)
			if !perrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
			if res != nil {
				t.Errorf("result = %+v, want nil", res)
			}
		})
	}
}

func TestCompute_Unreached(t *testing.T) {
	g := build(t,
		[]string{"A", "B", "X", "Y"},
		[]string{"R1", "R9"},
		[]edge{{"A", "R1"}, {"R1", "B"}, {"X", "R9"}, {"R9", "Y"}},
		pathway.Node{ID: "M"},
	)

	res, err := compute(t, g, "B")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if want := []string{"X", "Y", "R9"}; !slices.Equal(res.Unreached, want) {
		t.Errorf("Unreached = %v, want %v", res.Unreached, want)
	}
	if res.Filtered != 1 {
		t.Errorf("Filtered = %d, want 1", res.Filtered)
	}
	if len(res.Positions) != 3 {
		t.Errorf("placed %d nodes, want 3", len(res.Positions))
	}
}

func TestCompute_Properties(t *testing.T) {
	graphs := map[string]struct {
		g    *pathway.Graph
		root string
	}{
		"linear": {linearChain(t), "D"},
		"diamond": {build(t,
			[]string{"A", "B", "C", "D", "E"},
			[]string{"R1", "R2", "R3"},
			[]edge{{"A", "R1"}, {"R1", "B"}, {"R1", "C"}, {"B", "R2"}, {"C", "R3"}, {"R2", "D"}, {"R3", "D"}, {"R3", "E"}},
		), "D"},
	}

	for name, tt := range graphs {
		t.Run(name, func(t *testing.T) {
			res, err := compute(t, tt.g, tt.root)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}

			seen := make(map[string]bool)
			for _, layer := range res.Layers {
				for _, id := range layer {
					if seen[id] {
						t.Errorf("%s appears in two layers", id)
					}
					seen[id] = true
				}
			}
			if len(seen) != len(res.Positions) {
				t.Errorf("%d layered nodes, %d positions", len(seen), len(res.Positions))
			}

			var hasX0, hasX1 bool
			for id, p := range res.Positions {
				if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
					t.Errorf("Positions[%s] = %v outside the unit square", id, p)
				}
				hasX0 = hasX0 || p.X == 0
				hasX1 = hasX1 || p.X == 1
			}
			if !hasX0 || !hasX1 {
				t.Errorf("rank axis does not span [0,1]: %v", res.Positions)
			}
		})
	}
}

func TestNormalize_Degenerate(t *testing.T) {
	got := normalize(map[string]Point{"A": {X: 0.5, Y: 0}})
	if got["A"] != (Point{}) {
		t.Errorf("normalize(single) = %v, want {0 0}", got["A"])
	}
	if len(normalize(nil)) != 0 {
		t.Error("normalize(nil) should be empty")
	}
}
