package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topoplan/topoplan/pkg/errors"
	"github.com/topoplan/topoplan/pkg/pipeline"
)

// sortCommand creates the sort command for computing the canonical order.
func (c *CLI) sortCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "sort [declaration.toml]",
		Short: "Compute the canonical build order from a declaration",
		Long: `Compute the canonical build order from a declaration.

The sort command reads a TOML declaration file, builds the dependency graph,
and prints the topological order. Ties are broken alphabetically, so the
output is identical across runs for the same declaration.

If the declaration contains a dependency cycle, the modules that could not
be ordered are listed and the command exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runSort(ctx, args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print one module name per line, without decoration")

	return cmd
}

// runSort loads the declaration, sorts it, and prints the order.
func (c *CLI) runSort(ctx context.Context, input string, plain bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Check(ctx, pipeline.Options{ManifestPath: input})
	if err != nil {
		return err
	}
	prog.done("Sorted %d modules", res.Graph.ModuleCount())

	if plain {
		for _, id := range res.Sort.Order {
			fmt.Println(id)
		}
	} else {
		printReferenceOrder(res.Graph, res.Sort)
		for _, d := range res.Graph.Dangling() {
			printWarning("%s", d.String())
		}
	}

	if !res.Sort.OK {
		return errors.New(errors.ErrCodeInvalidManifest, "%s", res.Sort.Detail)
	}
	return nil
}
