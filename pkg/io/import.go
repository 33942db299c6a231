package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	perrors "github.com/matzehuels/pathdraw/pkg/errors"
	"github.com/matzehuels/pathdraw/pkg/pathway"
)

var typeFromString = map[string]pathway.NodeType{
	"species":  pathway.TypeSpecies,
	"reaction": pathway.TypeReaction,
}

// ReadJSON decodes a JSON pathway from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [
//	    {"id": "A", "type": "species", "structure_id": "InChI=...", "central": true},
//	    {"id": "R1", "type": "reaction"}
//	  ],
//	  "edges": [{"from": "A", "to": "R1", "stoichiometry": 1}]
//	}
//
// Each node needs an "id" and a "type" of "species" or "reaction". Each
// edge must join a species and a reaction that were declared as nodes.
//
// ReadJSON returns an INVALID_FORMAT error for malformed JSON or an unknown
// node type, and an INVALID_GRAPH error wrapping the pathway sentinel
// errors for duplicate IDs or invalid edges. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*pathway.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode pathway")
	}

	b := pathway.NewBuilder()
	for _, n := range data.Nodes {
		t, ok := typeFromString[n.Type]
		if !ok {
			return nil, perrors.New(perrors.ErrCodeInvalidFormat, "node %s: unknown type %q", n.ID, n.Type)
		}
		nd := pathway.Node{
			ID:          n.ID,
			Type:        t,
			Name:        n.Name,
			StructureID: n.StructureID,
			CrossRefs:   n.CrossRefs,
			Central:     n.Central,
			Sink:        n.Sink,
		}
		if err := b.AddNode(nd); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidGraph, err, "node %s", n.ID)
		}
	}
	for _, e := range data.Edges {
		s := 1.0
		if e.Stoichiometry != nil {
			s = *e.Stoichiometry
		}
		if err := b.AddEdge(pathway.Edge{From: e.From, To: e.To, Stoichiometry: s}); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidGraph, err, "edge %s->%s", e.From, e.To)
		}
	}

	return b.Build(), nil
}

// ImportJSON reads the JSON pathway file at path.
func ImportJSON(path string) (*pathway.Graph, error) {
	if err := perrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
