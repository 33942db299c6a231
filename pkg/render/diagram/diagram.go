package diagram

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathdraw/pkg/observability"
	"github.com/matzehuels/pathdraw/pkg/pathway"
	"github.com/matzehuels/pathdraw/pkg/pathway/filter"
	"github.com/matzehuels/pathdraw/pkg/pathway/layout"
)

const (
	// DefaultSubplotWidth is the pixel width of one node box.
	DefaultSubplotWidth = 200.0
	// DefaultSubplotHeight is the pixel height of one node box.
	DefaultSubplotHeight = 200.0
)

// Options controls pixel scaling.
type Options struct {
	SubplotWidth  float64
	SubplotHeight float64
	// Logger receives refused connectors. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns 200x200 pixel subplots.
func DefaultOptions() Options {
	return Options{SubplotWidth: DefaultSubplotWidth, SubplotHeight: DefaultSubplotHeight}
}

// Point is a pixel coordinate, origin top-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is one placed node.
type Box struct {
	ID          string
	Type        pathway.NodeType
	Label       string
	StructureID string
	// Origin is the top-left corner of the subplot.
	Origin Point
	// Left and Right are where connectors attach.
	Left  Point
	Right Point
	// Cofactors holds the side labels of a reaction box.
	Cofactors filter.Sides
}

// Connector is one drawn edge. Path runs from the source attach point
// through two elbows to the target attach point.
type Connector struct {
	From string
	To   string
	// Reverse is set when the source sits right of the target, so the arrow
	// leaves the source on its left side.
	Reverse bool
	Path    []Point
}

// Diagram is a layout scaled to pixels with resolved connectors.
type Diagram struct {
	Width  float64
	Height float64
	// Subplot is the size of one node box.
	Subplot Point
	// Boxes follow graph order.
	Boxes      []Box
	Connectors []Connector
	// Refused lists edges between nodes of the same rank, which cannot be
	// drawn left to right.
	Refused [][2]string
	// Images holds rendered structures by species ID, see [RenderMolecules].
	Images map[string][]byte
}

// Box returns the box of id.
func (d *Diagram) Box(id string) (Box, bool) {
	i := slices.IndexFunc(d.Boxes, func(b Box) bool { return b.ID == id })
	if i < 0 {
		return Box{}, false
	}
	return d.Boxes[i], true
}

// Build scales res to pixels. The canvas is one subplot wide per rank and
// one subplot high per node of the widest rank. Normalized X is stretched
// over all but the last subplot column so the deepest rank starts at 0 and
// the root rank ends flush with the right edge.
func Build(ctx context.Context, res *layout.Result, opts Options) (*Diagram, error) {
	if res == nil || res.Graph == nil {
		return nil, fmt.Errorf("build diagram: missing layout")
	}
	if opts.SubplotWidth <= 0 {
		opts.SubplotWidth = DefaultSubplotWidth
	}
	if opts.SubplotHeight <= 0 {
		opts.SubplotHeight = DefaultSubplotHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ranks := distinctRanks(res.Positions)
	tallest := max(res.LargestRank(), 1)
	d := &Diagram{
		Width:   opts.SubplotWidth * float64(ranks),
		Height:  opts.SubplotHeight * float64(tallest),
		Subplot: Point{X: opts.SubplotWidth, Y: opts.SubplotHeight},
	}
	spanX := opts.SubplotWidth * float64(max(ranks-1, 0))

	for _, n := range res.Graph.Nodes() {
		p, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		origin := Point{X: p.X * spanX, Y: p.Y * d.Height}
		box := Box{
			ID:          n.ID,
			Type:        n.Type,
			Label:       n.Label(),
			StructureID: n.StructureID,
			Origin:      origin,
		}
		box.Left, box.Right = d.attach(origin, n.IsReaction())
		if n.IsReaction() {
			box.Cofactors = res.Cofactors[n.ID]
		}
		d.Boxes = append(d.Boxes, box)
	}

	for _, e := range res.Graph.Edges() {
		src, dst := res.Positions[e.From], res.Positions[e.To]
		if src.X == dst.X {
			logger.Error("cannot connect nodes on the same rank", "from", e.From, "to", e.To)
			observability.Render().OnConnectorRefused(ctx, e.From, e.To)
			d.Refused = append(d.Refused, [2]string{e.From, e.To})
			continue
		}
		from, _ := d.Box(e.From)
		to, _ := d.Box(e.To)
		d.Connectors = append(d.Connectors, connect(from, to, src.X > dst.X))
	}
	return d, nil
}

// attach returns the left and right attach points of a box at origin.
// Boxes on the top or bottom border attach half a subplot inside the
// canvas. Reaction boxes are inset to their central bar.
func (d *Diagram) attach(origin Point, reaction bool) (Point, Point) {
	y := origin.Y
	switch y {
	case 0:
		y += d.Subplot.Y / 2
	case d.Height:
		y -= d.Subplot.Y / 2
	}
	inset := 0.0
	if reaction {
		inset = d.Subplot.X/2 - d.Subplot.Y/4
	}
	return Point{X: origin.X + inset, Y: y}, Point{X: origin.X + d.Subplot.X - inset, Y: y}
}

func connect(from, to Box, reverse bool) Connector {
	start, end := from.Right, to.Left
	if reverse {
		start, end = from.Left, to.Right
	}
	midX := start.X + (end.X-start.X)/2
	return Connector{
		From:    from.ID,
		To:      to.ID,
		Reverse: reverse,
		Path:    []Point{start, {X: midX, Y: start.Y}, {X: midX, Y: end.Y}, end},
	}
}

func distinctRanks(positions map[string]layout.Point) int {
	seen := make(map[float64]bool)
	for _, p := range positions {
		seen[p.X] = true
	}
	return len(seen)
}
