package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pathdraw/pkg/observability"
	"github.com/matzehuels/pathdraw/pkg/pathway"
	"github.com/matzehuels/pathdraw/pkg/pathway/filter"
	"github.com/matzehuels/pathdraw/pkg/pathway/layout"
	"github.com/matzehuels/pathdraw/pkg/pathway/ordering"
	"github.com/matzehuels/pathdraw/pkg/render/diagram"
)

// Runner executes drawing requests.
//
// The Runner holds nothing but its logger: every request works on its own
// graph and options, so multiple goroutines can share one Runner.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run parses the pathway at path and draws it.
func (r *Runner) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()
	g, err := Parse(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	parseTime := time.Since(start)
	r.Logger.Info("parsed pathway",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", parseTime)

	result, err := r.Execute(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = parseTime
	return result, nil
}

// Execute runs filter → layout → order → render on an already parsed graph.
//
// A failed ordering is logged and stored in Result.OrderErr. Any other
// stage failure aborts the request.
func (r *Runner) Execute(ctx context.Context, g *pathway.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	id := uuid.NewString()
	r.applyLogger(&opts, id)
	if err := opts.loadCofactors(); err != nil {
		return nil, err
	}

	result := &Result{
		RequestID:   id,
		Graph:       g,
		Diagnostics: pathway.Analyze(g),
		Artifacts:   make(map[string][]byte),
	}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	if result.Diagnostics.HasCycles() {
		opts.Logger.Warn("pathway contains cycles", "cycles", len(result.Diagnostics.Cycles))
	}

	// Stage 1: Filter + Layout
	layoutStart := time.Now()
	kept, res, err := r.GenerateLayout(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Filter = kept
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Kept = len(kept.Kept)
	result.Stats.Dropped = len(kept.Dropped)
	result.Stats.Placed = len(res.Positions)
	result.Stats.Unreached = len(res.Unreached)

	opts.Logger.Info("computed layout",
		"ranks", len(res.Layers),
		"placed", len(res.Positions),
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Order (non-fatal)
	orderStart := time.Now()
	result.Order, result.Steps, result.OrderErr = r.Order(ctx, g, opts)
	result.Stats.OrderTime = time.Since(orderStart)
	if result.OrderErr != nil {
		opts.Logger.Warn("no reaction order", "error", result.OrderErr)
	}

	// Stage 3: Render
	renderStart := time.Now()
	result.Diagram, err = diagram.Build(ctx, res, opts.DiagramOptions())
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if opts.Molecules != nil {
		if err := diagram.RenderMolecules(ctx, result.Diagram, opts.Molecules); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}
	artifacts, err := Render(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayout classifies the species of g and places what is kept.
func (r *Runner) GenerateLayout(ctx context.Context, g *pathway.Graph, opts Options) (*filter.Result, *layout.Result, error) {
	r.applyLogger(&opts, "")
	hooks := observability.Pipeline()

	kept := filter.Classify(g, opts.FilterOptions())
	hooks.OnFilterComplete(ctx, len(kept.Kept), len(kept.Dropped))

	hooks.OnLayoutStart(ctx, opts.Root, g.NodeCount())
	start := time.Now()
	res, err := layout.Compute(g, opts.Root, kept, opts.LayoutOptions())
	placed := 0
	if res != nil {
		placed = len(res.Positions)
	}
	hooks.OnLayoutComplete(ctx, opts.Root, placed, time.Since(start), err)
	if err != nil {
		return kept, nil, err
	}
	return kept, res, nil
}

// Order derives the reaction order of g and its per-step participants.
func (r *Runner) Order(ctx context.Context, g *pathway.Graph, opts Options) ([]string, []ordering.Step, error) {
	r.applyLogger(&opts, "")
	start := time.Now()
	order, err := ordering.Order(g, opts.OrderOptions())
	observability.Pipeline().OnOrderComplete(ctx, len(order), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return order, ordering.Steps(g, order, opts.Cofactors), nil
}

// applyLogger sets the runner's logger on options if not already set and
// tags it with the request ID.
func (r *Runner) applyLogger(opts *Options, requestID string) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if requestID != "" {
		opts.Logger = opts.Logger.With("request", requestID)
	}
}
