package pathway

import (
	"slices"
	"testing"
)

func TestAnalyze_LinearChain(t *testing.T) {
	d := Analyze(linearChain(t))

	if d.Components != 1 {
		t.Errorf("Components = %d, want 1", d.Components)
	}
	if d.HasCycles() {
		t.Errorf("Cycles = %v, want none", d.Cycles)
	}
	if !slices.Equal(d.TerminalProducts, []string{"D"}) {
		t.Errorf("TerminalProducts = %v, want [D]", d.TerminalProducts)
	}
	if !slices.Equal(d.TerminalSubstrates, []string{"A"}) {
		t.Errorf("TerminalSubstrates = %v, want [A]", d.TerminalSubstrates)
	}
}

func TestAnalyze_CycleAndComponents(t *testing.T) {
	// A→R1→B→R2→A forms a loop; X→R3→Y is disconnected.
	b := NewBuilder()
	for _, id := range []string{"A", "B", "X", "Y"} {
		_ = b.AddSpecies(Node{ID: id})
	}
	for _, id := range []string{"R1", "R2", "R3"} {
		_ = b.AddReaction(Node{ID: id})
	}
	_ = b.AddEdge(Edge{From: "A", To: "R1"})
	_ = b.AddEdge(Edge{From: "R1", To: "B"})
	_ = b.AddEdge(Edge{From: "B", To: "R2"})
	_ = b.AddEdge(Edge{From: "R2", To: "A"})
	_ = b.AddEdge(Edge{From: "X", To: "R3"})
	_ = b.AddEdge(Edge{From: "R3", To: "Y"})

	d := Analyze(b.Build())

	if d.Components != 2 {
		t.Errorf("Components = %d, want 2", d.Components)
	}
	if len(d.Cycles) != 1 {
		t.Fatalf("Cycles = %v, want one cycle", d.Cycles)
	}
	if want := []string{"A", "B", "R1", "R2"}; !slices.Equal(d.Cycles[0], want) {
		t.Errorf("Cycles[0] = %v, want %v", d.Cycles[0], want)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	d := Analyze(NewBuilder().Build())
	if d.Components != 0 || d.HasCycles() {
		t.Errorf("Analyze(empty) = %+v", d)
	}
}
