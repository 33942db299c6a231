// Package layout computes the layered, tree-like diagram positions of a
// filtered pathway.
//
// # Overview
//
// The walk starts at a root species (usually the target compound) and moves
// outward one rank at a time, in both edge directions, so reactions and
// species alternate between ranks. Products of the same reaction are pulled
// into the same rank even when they are discovered through different paths.
//
//	kept := filter.Classify(g, filter.DefaultOptions())
//	res, err := layout.Compute(g, "TARGET", kept, layout.DefaultOptions())
//	if errors.Is(err, errors.ErrCodeEmptyLayer) {
//	    // pick another root
//	}
//
// # Coordinates
//
// Every position lies in [0,1]². The X axis is the rank axis, with the root
// rank at 1 and the deepest rank at 0, which reads as a left-to-right
// synthesis when drawn. Y spreads the nodes of one rank evenly.
//
// # Partial Layouts
//
// Nodes that survive the filter but cannot be reached from the root are not
// placed. [Result.Filtered] and [Result.Unreached] keep the two cases apart.
package layout
