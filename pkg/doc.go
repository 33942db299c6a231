// Package pkg provides the core libraries for pathdraw pathway diagrams.
//
// # Overview
//
// Pathdraw lays out a metabolic pathway (species and reactions joined by
// directed edges) in ranks around a target compound and derives the order in
// which its reactions run. The pkg directory is organized into four areas:
//
//  1. [pathway] - Domain logic (graph model, filtering, layout, ordering)
//  2. [render] - Presentation (pixel diagram, Graphviz SVG, PDF/PNG)
//  3. [io] - JSON serialization of pathways and layouts
//  4. [pipeline] - Orchestration (parse → filter → layout → order → render)
//
// # Architecture
//
// The typical data flow:
//
//	pathway.json
//	     ↓
//	[io] package (decode into an immutable pathway.Graph)
//	     ↓
//	[pathway/filter] (hide cofactors and side species)
//	     ↓
//	[pathway/layout] + [pathway/ordering] (ranks, positions, reaction order)
//	     ↓
//	[render/diagram] → [render/nodelink] (pixels, DOT, SVG)
//	     ↓
//	SVG/PDF/PNG/DOT/JSON output
//
// # Quick Start
//
//	g, _ := io.ImportJSON("pathway.json")
//	kept := filter.Classify(g, filter.DefaultOptions())
//	res, err := layout.Compute(g, "TARGET", kept, layout.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	order, err := ordering.Order(g, ordering.DefaultOptions())
//
// # Main Packages
//
// [pathway] - Bipartite species/reaction graph built with a Builder, cofactor
// tables and structural diagnostics.
//
// [pathway/filter] - Decides which species are drawn and collects the labels
// of hidden ones per reaction.
//
// [pathway/layout] - Ranks nodes outward from a root and normalizes their
// positions to the unit square.
//
// [pathway/ordering] - Linear synthesis order of the reactions and the
// participants of each step.
//
// [render/diagram] - Scales a layout to pixels and resolves connectors.
//
// [render/nodelink] - Pinned-position Graphviz rendering of a diagram.
//
// [observability] - Hooks for pipeline and render events.
//
// [errors] - Structured errors with codes.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/pathway/...   # Specific package
//	go test -run Example        # Examples only
//
// [pathway]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/pathway
// [pathway/filter]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/pathway/filter
// [pathway/layout]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/pathway/layout
// [pathway/ordering]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/pathway/ordering
// [render]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/render
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/render/diagram
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pathdraw/pkg/errors
package pkg
