// Package pathway provides the immutable reaction-network model used to draw
// metabolic and retrosynthetic pathways.
//
// # Overview
//
// A pathway is a bipartite directed graph: species nodes (metabolites) and
// reaction nodes, connected by stoichiometric edges. A species→reaction edge
// makes the species a substrate of the reaction; a reaction→species edge makes
// it a product. Edges between two species or two reactions are rejected.
//
// Species carry the annotations the drawing needs: a display name, an
// optional chemical structure identifier, cross-references keyed by
// namespace, and membership in the "central" and "sink" species groups.
//
// # Building
//
// Graphs are assembled with a [Builder] and never change afterwards:
//
//	b := pathway.NewBuilder()
//	_ = b.AddSpecies(pathway.Node{ID: "A", StructureID: "InChI=1S/...", Central: true})
//	_ = b.AddReaction(pathway.Node{ID: "R1"})
//	_ = b.AddSpecies(pathway.Node{ID: "B", StructureID: "InChI=1S/...", Central: true})
//	_ = b.AddEdge(pathway.Edge{From: "A", To: "R1", Stoichiometry: 1})
//	_ = b.AddEdge(pathway.Edge{From: "R1", To: "B", Stoichiometry: 1})
//	g := b.Build()
//
// Every accessor returns copies, and node and edge order always follows
// insertion order. Layout and ordering depend on that order for their
// tie-breaks, so the same input always yields the same diagram.
//
// # Cofactors
//
// A [CofactorTable] lists cross-reference identifiers of ubiquitous
// participants (water, ATP, NAD(P)H, ...) that are normally hidden from the
// diagram backbone. [DefaultCofactors] returns the embedded MetaNetX table;
// [LoadCofactorFile] reads a custom table in JSON or TOML.
//
// # Diagnostics
//
// [Analyze] reports weakly connected components, reaction cycles and terminal
// species using gonum's graph algorithms.
//
// # Concurrency
//
// A built [Graph] and a [CofactorTable] are read-only and safe for concurrent
// use. A [Builder] is not.
package pathway
