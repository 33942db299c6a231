package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathdraw/pkg/pathway"
	"github.com/matzehuels/pathdraw/pkg/pathway/filter"
	"github.com/matzehuels/pathdraw/pkg/pipeline"
)

// analyzeCommand creates the analyze command, a structural report that
// helps choose a root and spot inputs the layout cannot fully reach.
func (c *CLI) analyzeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "analyze [pathway.json]",
		Short: "Report the structure of a pathway",
		Long: `Report the structure of a pathway.

Lists node counts, terminal products and substrates, reaction cycles, the
number of disconnected parts and the species the current filter settings
would hide.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Load(cmd.Flags(), configPath)
			if err != nil {
				return err
			}
			return c.runAnalyze(cmd.Context(), args[0], cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ./pathdraw.toml when present)")
	addFilterFlags(cmd.Flags())

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, cfg *Config) error {
	g, err := pipeline.Parse(ctx, input)
	if err != nil {
		return err
	}
	opts := cfg.Options()
	opts.Logger = loggerFromContext(ctx)
	if cfg.CofactorFile != "" {
		if opts.Cofactors, err = pathway.LoadCofactorFile(cfg.CofactorFile); err != nil {
			return err
		}
	}

	d := pathway.Analyze(g)
	kept := filter.Classify(g, opts.FilterOptions())

	printKeyValue("species", fmt.Sprint(g.SpeciesCount()))
	printKeyValue("reactions", fmt.Sprint(g.ReactionCount()))
	printKeyValue("edges", fmt.Sprint(g.EdgeCount()))
	printKeyValue("components", fmt.Sprint(d.Components))
	printKeyValue("products", join(d.TerminalProducts))
	printKeyValue("substrates", join(d.TerminalSubstrates))
	printKeyValue("hidden", fmt.Sprint(len(kept.Dropped)))
	for _, id := range kept.Dropped {
		printDetail("%s (%s)", id, kept.Reasons[id])
	}

	if d.Components > 1 {
		printWarning("%d disconnected parts, only the one holding the root is drawn", d.Components)
	}
	for _, cycle := range d.Cycles {
		printWarning("cycle: %s", strings.Join(cycle, " → "))
	}
	return nil
}
