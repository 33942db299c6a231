// Package pipeline provides the drawing pipeline for pathdraw.
//
// This package implements the complete parse → filter → layout → order →
// render sequence used by the CLI. Centralizing it keeps every entry point
// consistent.
//
// # Architecture
//
// The pipeline consists of these stages:
//
//  1. Parse: read an already-materialized pathway from JSON
//  2. Filter: hide cofactors and side species ([filter.Classify])
//  3. Layout: rank the remaining nodes around the root ([layout.Compute])
//  4. Order: derive the synthesis order ([ordering.Order]), non-fatal
//  5. Render: build the pixel diagram and encode the requested formats
//
// Every request gets its own ID, carried in the logger, and nothing is
// shared between requests.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.DefaultOptions()
//	opts.Root = "TARGET"
//	opts.Formats = []string{"svg", "json"}
//	result, err := runner.Run(ctx, "pathway.json", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// A failed ordering does not fail the request: the layout is still drawn
// and [Result.OrderErr] explains why no order is available.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/pathdraw/pkg/errors"
	"github.com/matzehuels/pathdraw/pkg/pathway"
	"github.com/matzehuels/pathdraw/pkg/pathway/filter"
	"github.com/matzehuels/pathdraw/pkg/pathway/layout"
	"github.com/matzehuels/pathdraw/pkg/pathway/ordering"
	"github.com/matzehuels/pathdraw/pkg/render/diagram"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSubplotWidth is the default pixel width of one node box.
	DefaultSubplotWidth = diagram.DefaultSubplotWidth

	// DefaultSubplotHeight is the default pixel height of one node box.
	DefaultSubplotHeight = diagram.DefaultSubplotHeight

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one drawing request.
// Start from [DefaultOptions]: the zero value shows every species.
type Options struct {
	// Root is the species the layout walks out from, usually the target.
	Root string `json:"root"`

	// Filter options
	PlotOnlyCentral   bool   `json:"plot_only_central"`
	FilterCofactors   bool   `json:"filter_cofactors"`
	FilterSinkSpecies bool   `json:"filter_sink_species"`
	CofactorFile      string `json:"cofactor_file,omitempty"`

	// Layout options
	Width   float64 `json:"width,omitempty"`
	YGap    float64 `json:"y_gap,omitempty"`
	XCenter float64 `json:"xcenter,omitempty"`

	// Ordering options
	LenientOrder bool `json:"lenient_order,omitempty"`

	// Render options
	Formats       []string `json:"formats,omitempty"`
	SubplotWidth  float64  `json:"subplot_width,omitempty"`
	SubplotHeight float64  `json:"subplot_height,omitempty"`
	Detailed      bool     `json:"detailed,omitempty"`
	HideCofactors bool     `json:"hide_cofactors,omitempty"`

	// Runtime options (not serialized)
	Logger    *log.Logger              `json:"-"`
	Cofactors *pathway.CofactorTable   `json:"-"`
	Molecules diagram.MoleculeRenderer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns the drawing defaults: only central species, cofactors
// hidden, sink species kept, strict ordering and SVG output.
func DefaultOptions() Options {
	l := layout.DefaultOptions()
	return Options{
		PlotOnlyCentral: true,
		FilterCofactors: true,
		Width:           l.Width,
		YGap:            l.YGap,
		XCenter:         l.XCenter,
		Formats:         []string{FormatSVG},
		SubplotWidth:    DefaultSubplotWidth,
		SubplotHeight:   DefaultSubplotHeight,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RequestID identifies the run in logs.
	RequestID string

	// Graph is the parsed pathway.
	Graph *pathway.Graph

	// Diagnostics reports cycles and disconnected parts of Graph.
	Diagnostics pathway.Diagnostics

	// Filter is the kept/dropped species partition.
	Filter *filter.Result

	// Layout holds the normalized positions.
	Layout *layout.Result

	// Order is the synthesis order, nil when OrderErr is set.
	Order    []string
	Steps    []ordering.Step
	OrderErr error

	// Diagram is the layout scaled to pixels.
	Diagram *diagram.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Kept       int
	Dropped    int
	Placed     int
	Unreached  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	OrderTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and fills in spacing and
// format defaults. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Root == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "root is required")
	}
	if err := perrors.ValidateNodeID(o.Root); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	d := layout.DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.YGap <= 0 {
		o.YGap = d.YGap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.SubplotWidth <= 0 {
		o.SubplotWidth = DefaultSubplotWidth
	}
	if o.SubplotHeight <= 0 {
		o.SubplotHeight = DefaultSubplotHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// FilterOptions returns the filter stage options.
func (o *Options) FilterOptions() filter.Options {
	return filter.Options{
		PlotOnlyCentral:   o.PlotOnlyCentral,
		FilterCofactors:   o.FilterCofactors,
		FilterSinkSpecies: o.FilterSinkSpecies,
		Cofactors:         o.Cofactors,
		Logger:            o.Logger,
	}
}

// LayoutOptions returns the layout stage options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{Width: o.Width, YGap: o.YGap, XCenter: o.XCenter, Logger: o.Logger}
}

// OrderOptions returns the ordering stage options.
func (o *Options) OrderOptions() ordering.Options {
	return ordering.Options{Lenient: o.LenientOrder, Logger: o.Logger}
}

// DiagramOptions returns the pixel scaling options.
func (o *Options) DiagramOptions() diagram.Options {
	return diagram.Options{SubplotWidth: o.SubplotWidth, SubplotHeight: o.SubplotHeight, Logger: o.Logger}
}

// loadCofactors resolves the cofactor table from CofactorFile when no table
// was set directly.
func (o *Options) loadCofactors() error {
	if o.Cofactors != nil || o.CofactorFile == "" {
		return nil
	}
	table, err := pathway.LoadCofactorFile(o.CofactorFile)
	if err != nil {
		return fmt.Errorf("load cofactors: %w", err)
	}
	o.Cofactors = table
	return nil
}
