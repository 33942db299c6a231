package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/pathdraw/pkg/pathway/filter"
	"github.com/matzehuels/pathdraw/pkg/pathway/layout"
	"github.com/matzehuels/pathdraw/pkg/pathway/ordering"
)

// Drawing bundles what a compositor needs to draw one pathway.
type Drawing struct {
	Layout *layout.Result
	// Order is the synthesis order, empty when none could be derived.
	Order []string
	Steps []ordering.Step
	// OrderError explains a missing order.
	OrderError error
}

type drawingJSON struct {
	Root       string                  `json:"root"`
	Positions  map[string]layout.Point `json:"positions"`
	Layers     [][]string              `json:"layers"`
	Cofactors  map[string]filter.Sides `json:"cofactors"`
	Filtered   int                     `json:"filtered"`
	Unreached  []string                `json:"unreached,omitempty"`
	Order      []string                `json:"order,omitempty"`
	Steps      []ordering.Step         `json:"steps,omitempty"`
	OrderError string                  `json:"order_error,omitempty"`
}

// WriteLayoutJSON encodes the positions, ranks, cofactor labels and reaction
// order of d as indented JSON. Map keys are sorted, so equal drawings encode
// to equal bytes.
func WriteLayoutJSON(d Drawing, w io.Writer) error {
	if d.Layout == nil {
		return fmt.Errorf("encode: drawing has no layout")
	}
	out := drawingJSON{
		Root:      d.Layout.Root,
		Positions: d.Layout.Positions,
		Layers:    d.Layout.Layers,
		Cofactors: d.Layout.Cofactors,
		Filtered:  d.Layout.Filtered,
		Unreached: d.Layout.Unreached,
		Order:     d.Order,
		Steps:     d.Steps,
	}
	if d.OrderError != nil {
		out.OrderError = d.OrderError.Error()
	}
	return encode(w, out)
}

// ExportLayoutJSON writes a drawing to a JSON file at path.
func ExportLayoutJSON(d Drawing, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayoutJSON(d, f)
}
