package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pathdraw/pkg/observability"
	"github.com/matzehuels/pathdraw/pkg/pathway"
	"github.com/matzehuels/pathdraw/pkg/render/diagram"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the structure identifier under each species label.
	Detailed bool
	// HideCofactors omits the side labels of filtered species on reactions.
	HideCofactors bool
}

// ToDOT converts a diagram to Graphviz DOT with every node pinned at its
// computed position. Coordinates are pixels with the origin top-left; DOT
// places its origin bottom-left, so Y is flipped.
//
// Species are rounded boxes, reactions are small grey bars carrying the
// labels of their filtered substrates and products. Connector sides become
// tail and head ports so arrows leave and enter boxes on the side the
// diagram chose. Refused connectors are not drawn.
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.8];\n")
	buf.WriteString("\n")

	for _, b := range d.Boxes {
		attrs := fmtAttrs(b, d, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range d.Connectors {
		tail, head := "e", "w"
		if c.Reverse {
			tail, head = "w", "e"
		}
		fmt.Fprintf(&buf, "  %q -> %q [tailport=%s, headport=%s];\n", c.From, c.To, tail, head)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(b diagram.Box, d *diagram.Diagram, opts Options) []string {
	cx := b.Origin.X + d.Subplot.X/2
	cy := d.Height - b.Left.Y
	attrs := []string{fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(cx), fmtFloat(cy))}

	if b.Type == pathway.TypeReaction {
		w := b.Right.X - b.Left.X
		attrs = append(attrs,
			"label=\"\"",
			"shape=rect",
			"style=filled",
			"fillcolor=\"#dddddd\"",
			fmt.Sprintf("width=%s", fmtFloat(w/72)),
			fmt.Sprintf("height=%s", fmtFloat(d.Subplot.Y/8/72)),
		)
		if xl := fmtCofactors(b); xl != "" && !opts.HideCofactors {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", xl))
		}
		return attrs
	}

	label := b.Label
	if opts.Detailed && b.StructureID != "" {
		label += "\n" + b.StructureID
	}
	attrs = append(attrs,
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("width=%s", fmtFloat(d.Subplot.X*0.9/72)),
		fmt.Sprintf("height=%s", fmtFloat(d.Subplot.Y*0.5/72)),
	)
	if b.StructureID != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", b.StructureID))
	}
	return attrs
}

func fmtCofactors(b diagram.Box) string {
	var lines []string
	for _, s := range b.Cofactors.Substrates {
		lines = append(lines, "+ "+s)
	}
	for _, p := range b.Cofactors.Products {
		lines = append(lines, "→ "+p)
	}
	return strings.Join(lines, "\n")
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// honours pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// Compositor renders diagrams to SVG through Graphviz.
type Compositor struct {
	Options Options
}

// Compose implements diagram.Compositor.
func (c Compositor) Compose(ctx context.Context, d *diagram.Diagram) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, "svg")
	start := time.Now()
	svg, err := RenderSVG(ctx, ToDOT(d, c.Options))
	hooks.OnRenderComplete(ctx, "svg", len(svg), time.Since(start), err)
	return svg, err
}

var _ diagram.Compositor = Compositor{}
