// Package diagram maps a computed layout onto pixel space for a compositor.
//
// # Overview
//
// [Build] scales normalized positions into subplot-sized boxes, assigns each
// box a left and a right attach point, and routes every edge of the
// positioned subgraph as an elbow connector:
//
//   - source left of target: source right side to target left side
//   - source right of target: source left side to target right side, marked
//     Reverse
//   - same rank: refused, logged and reported to the render hooks
//
// # Boundaries
//
// Drawing chemical structures and producing the final image are external
// concerns, expressed as [MoleculeRenderer] and [Compositor]. The
// nodelink package provides a Graphviz-backed compositor.
//
//	d, err := diagram.Build(ctx, res, diagram.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	if err := diagram.RenderMolecules(ctx, d, renderer); err != nil {
//	    return err
//	}
//	svg, err := compositor.Compose(ctx, d)
package diagram
