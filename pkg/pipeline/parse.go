package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/pathdraw/pkg/io"
	"github.com/matzehuels/pathdraw/pkg/observability"
	"github.com/matzehuels/pathdraw/pkg/pathway"
)

// Parse reads a pathway JSON document from path.
func Parse(ctx context.Context, path string) (*pathway.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, path)
	start := time.Now()

	g, err := io.ImportJSON(path)
	count := 0
	if g != nil {
		count = g.NodeCount()
	}
	hooks.OnParseComplete(ctx, path, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return g, nil
}
