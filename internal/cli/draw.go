package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathdraw/pkg/pipeline"
)

// drawCommand creates the draw command, the full filter → layout → order →
// render pipeline.
func (c *CLI) drawCommand() *cobra.Command {
	var output, configPath string

	cmd := &cobra.Command{
		Use:   "draw [pathway.json]",
		Short: "Lay out and render a pathway",
		Long: `Lay out and render a pathway.

The draw command reads a pathway JSON file, hides cofactors and side species,
ranks the remaining nodes outward from --root and renders the diagram. Each
requested format is written next to the input as <name>.<format> unless
--output names another base path.

The json format holds normalized positions, ranks, cofactor labels and the
reaction order, for use by other renderers.`,
		Example: `  pathdraw draw pathway.json --root TARGET
  pathdraw draw pathway.json -r TARGET -f svg,json -o out/diagram`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Load(cmd.Flags(), configPath)
			if err != nil {
				return err
			}
			return c.runDraw(cmd.Context(), args[0], cfg.Options(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ./pathdraw.toml when present)")
	addDrawFlags(cmd.Flags())

	return cmd
}

// runDraw executes the pipeline and writes one file per artifact.
func (c *CLI) runDraw(ctx context.Context, input string, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	result, err := pipeline.NewRunner(logger).Run(ctx, input, opts)
	if err != nil {
		return err
	}
	prog.done("Drew pathway")

	base := outputBase(input, output)
	var paths []string
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Drawing complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats)
	if result.OrderErr != nil {
		printWarning("no reaction order: %v", result.OrderErr)
	} else {
		printDetail("order: %v", result.Order)
	}
	if n := len(result.Diagram.Refused); n > 0 {
		printWarning("%d connectors between nodes of the same rank were not drawn", n)
	}
	if result.Diagnostics.Components > 1 || result.Stats.Unreached > 0 {
		printNextStep("Inspect unreached parts", appName+" analyze "+input)
	}
	return nil
}
