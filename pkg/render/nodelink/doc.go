// Package nodelink renders pathway diagrams as node-link drawings through
// Graphviz.
//
// # Overview
//
// [ToDOT] emits DOT with every node pinned at the position computed by the
// diagram package, so Graphviz only routes edges. [RenderSVG] runs the neato
// engine in-process, which keeps pinned positions.
//
//	d, _ := diagram.Build(ctx, res, diagram.DefaultOptions())
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Compositor] wraps both steps behind the diagram.Compositor interface and
// reports render events to the observability hooks.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], a WebAssembly build of
// Graphviz, so no system installation is required.
package nodelink
