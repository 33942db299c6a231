// Package render turns computed pathway layouts into images.
//
// # Subpackages
//
//   - [diagram]: pixel scaling, attach points and connector routing, plus
//     the molecule renderer and compositor boundaries
//   - [nodelink]: a Graphviz compositor producing SVG
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// from librsvg. A missing tool is reported as UNSUPPORTED:
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [diagram]: github.com/matzehuels/pathdraw/pkg/render/diagram
// [nodelink]: github.com/matzehuels/pathdraw/pkg/render/nodelink
package render
