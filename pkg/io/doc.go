// Package io provides JSON import and export for pathways and their computed
// drawings.
//
// # Pathway Format
//
// A pathway is the already-materialized output of an external reader: two
// arrays, nodes and edges.
//
//	{
//	  "nodes": [
//	    {"id": "MNXM2", "type": "species", "name": "water",
//	     "structure_id": "InChI=1S/H2O/h1H2", "cross_refs": {"metanetx": ["MNXM2"]}},
//	    {"id": "TARGET", "type": "species", "structure_id": "InChI=...",
//	     "central": true, "sink": false},
//	    {"id": "RP1", "type": "reaction"}
//	  ],
//	  "edges": [
//	    {"from": "MNXM2", "to": "RP1", "stoichiometry": 1},
//	    {"from": "RP1", "to": "TARGET", "stoichiometry": 1}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: unique identifier
//   - type: "species" or "reaction"
//
// Optional:
//   - name: display label (the id is used when empty)
//   - structure_id: chemical structure identifier such as an InChI
//   - cross_refs: identifiers keyed by namespace, matched against the
//     cofactor table
//   - central, sink: species group membership
//
// Edge stoichiometry defaults to 1.
//
// # Import and Export
//
// [ReadJSON] and [ImportJSON] build an immutable [pathway.Graph];
// [WriteJSON] and [ExportJSON] write one back in the same format, in
// insertion order.
//
// # Drawing Export
//
// [WriteLayoutJSON] writes a [Drawing]: normalized positions, ranks,
// per-reaction cofactor labels and the reaction order. This is the
// hand-off format for external compositors.
//
// [pathway.Graph]: github.com/matzehuels/pathdraw/pkg/pathway.Graph
package io
