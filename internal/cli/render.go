package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topoplan/topoplan/pkg/errors"
	"github.com/topoplan/topoplan/pkg/pipeline"
	"github.com/topoplan/topoplan/pkg/render"
)

// renderCommand creates the render command for drawing the dependency graph.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output       string
		format       string
		detailed     bool
		highlightStr string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "render [declaration.toml]",
		Short: "Render the dependency graph to DOT, SVG, or PNG",
		Long: `Render the dependency graph to DOT, SVG, or PNG.

Edges point from a module's dependency to the module itself, so arrows follow
build order. Dependencies on undeclared modules are drawn as dashed boxes.

SVG and PNG rendering goes through an embedded Graphviz; results are cached
locally keyed by the graph's content hash, so re-rendering an unchanged
declaration is instant. DOT output is never cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := render.Options{Detailed: detailed}
			if highlightStr != "" {
				opts.Highlight = strings.Split(highlightStr, ",")
			}
			if err := validateFormat(format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatSVG, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label each module with its dependency count")
	cmd.Flags().StringVar(&highlightStr, "highlight", "", "module(s) to highlight (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the declaration and produces the requested artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts render.Options, format, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Check(ctx, pipeline.Options{ManifestPath: input})
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()

	data, cacheHit, err := runner.Render(ctx, res.Graph, opts, format)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	// DOT with no explicit output goes to stdout for piping.
	if format == render.FormatDOT && output == "" {
		fmt.Print(string(data))
		return nil
	}

	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		output = base + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered dependency graph")
	printFile(output)
	printStats(res.Graph.ModuleCount(), res.Graph.EdgeCount(), cacheHit)
	return nil
}

// validateFormat checks the --format flag value.
func validateFormat(format string) error {
	switch format {
	case render.FormatDOT, render.FormatSVG, render.FormatPNG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"unsupported format %q (expected dot, svg, or png)", format)
}
