package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topoplan/topoplan/pkg/errors"
	"github.com/topoplan/topoplan/pkg/pipeline"
)

// verifyCommand creates the verify command for checking a recorded order.
func (c *CLI) verifyCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify [declaration.toml] [order.json]",
		Short: "Verify a recorded build order against a declaration",
		Long: `Verify a recorded build order against a declaration.

The verify command checks every declared dependency edge against the recorded
order and reports every violation it finds, not just the first one. The order
file may be a JSON array of module names, a JSON object whose key order is
the recorded order, or a status document with a top-level "modules" object.

Positional policy rules (first, last, pairs) and duplicate entries are
reported as warnings; they do not affect the exit code unless --strict is
given. Dependencies on undeclared modules are flagged as declaration
warnings but are still checked against the recorded order like any other
prerequisite.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runVerify(ctx, args[0], args[1], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat policy warnings and duplicates as failures")

	return cmd
}

// runVerify executes the full check pipeline and prints the report.
func (c *CLI) runVerify(ctx context.Context, declPath, orderPath string, strict bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Check(ctx, pipeline.Options{ManifestPath: declPath, OrderPath: orderPath})
	if err != nil {
		return err
	}
	prog.done("Verified %d modules against %d recorded entries",
		res.Graph.ModuleCount(), len(res.Order))

	if !res.Sort.OK {
		printWarning("declaration contains a dependency cycle: %d modules unresolved", len(res.Sort.Unresolved))
	}
	printVerification(res)

	report := res.Report
	if !report.Valid {
		return errors.New(errors.ErrCodeInvalidOrder,
			"recorded order violates %d dependency constraints", len(report.Violations))
	}
	if strict && !report.PolicyOK {
		return errors.New(errors.ErrCodeInvalidOrder,
			"recorded order has %d policy findings", len(report.Advisories))
	}
	return nil
}
