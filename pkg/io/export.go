package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/pathdraw/pkg/pathway"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Name        string            `json:"name,omitempty"`
	StructureID string            `json:"structure_id,omitempty"`
	CrossRefs   pathway.CrossRefs `json:"cross_refs,omitempty"`
	Central     bool              `json:"central,omitempty"`
	Sink        bool              `json:"sink,omitempty"`
}

type edge struct {
	From          string   `json:"from"`
	To            string   `json:"to"`
	Stoichiometry *float64 `json:"stoichiometry,omitempty"`
}

// WriteJSON encodes a pathway as indented JSON. The output can be read back
// with [ReadJSON].
func WriteJSON(g *pathway.Graph, w io.Writer) error {
	nodes, edges := g.Nodes(), g.Edges()
	out := document{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}

	for i, n := range nodes {
		out.Nodes[i] = node{
			ID:          n.ID,
			Type:        n.Type.String(),
			Name:        n.Name,
			StructureID: n.StructureID,
			CrossRefs:   n.CrossRefs,
			Central:     n.Central,
			Sink:        n.Sink,
		}
	}
	for i, e := range edges {
		s := e.Stoichiometry
		out.Edges[i] = edge{From: e.From, To: e.To, Stoichiometry: &s}
	}

	return encode(w, out)
}

// ExportJSON writes a pathway to a JSON file at path.
func ExportJSON(g *pathway.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
