package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathdraw/pkg/pathway"
	"github.com/matzehuels/pathdraw/pkg/pathway/ordering"
	"github.com/matzehuels/pathdraw/pkg/pipeline"
)

// orderCommand creates the order command, which prints the synthesis order
// without laying anything out.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "order [pathway.json]",
		Short: "Print the synthesis order of a pathway's reactions",
		Long: `Print the synthesis order of a pathway's reactions.

The order is derived by walking backward from the final product. Pathways
where a central species is produced by more than one reaction are rejected
unless --lenient is set. Each step lists the structures drawn along the
backbone and the cofactors printed beside it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Load(cmd.Flags(), configPath)
			if err != nil {
				return err
			}
			return c.runOrder(cmd.Context(), args[0], cfg, asJSON)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ./pathdraw.toml when present)")
	cmd.Flags().Bool("lenient", false, "accept orders through branching species")
	cmd.Flags().String("cofactors", "", "cofactor table file (.json or .toml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print steps as JSON")

	return cmd
}

func (c *CLI) runOrder(ctx context.Context, input string, cfg *Config, asJSON bool) error {
	g, err := pipeline.Parse(ctx, input)
	if err != nil {
		return err
	}
	var table *pathway.CofactorTable
	if cfg.CofactorFile != "" {
		if table, err = pathway.LoadCofactorFile(cfg.CofactorFile); err != nil {
			return err
		}
	}

	opts := pipeline.Options{LenientOrder: cfg.Lenient, Cofactors: table, Logger: loggerFromContext(ctx)}
	_, steps, err := pipeline.NewRunner(opts.Logger).Order(ctx, g, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}
	printSteps(steps)
	return nil
}

func printSteps(steps []ordering.Step) {
	for i, s := range steps {
		fmt.Println(StyleTitle.Render(fmt.Sprintf("%d. %s", i+1, s.Reaction)))
		printKeyValue("reactants", join(s.Reactants))
		printKeyValue("products", join(s.Products))
		if len(s.CofactorReactants) > 0 || len(s.CofactorProducts) > 0 {
			printDetail("+ %s  %s %s", join(s.CofactorReactants), iconArrow, join(s.CofactorProducts))
		}
	}
}

func join(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
