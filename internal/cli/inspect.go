package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/topoplan/topoplan/pkg/pipeline"
	"github.com/topoplan/topoplan/pkg/verify"
)

// inspectCommand creates the inspect command for interactive browsing.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [declaration.toml] [order.json]",
		Short: "Browse modules and check results interactively",
		Long: `Browse modules and check results interactively.

The inspect command opens a terminal browser over the declared modules in
canonical build order, showing each module's prerequisites. When a recorded
order file is also given, each module is annotated with its verification
status and recorded position.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderPath := ""
			if len(args) > 1 {
				orderPath = args[1]
			}
			return c.runInspect(cmd.Context(), args[0], orderPath)
		},
	}

	return cmd
}

// runInspect runs the check pipeline and launches the module browser.
func (c *CLI) runInspect(ctx context.Context, declPath, orderPath string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Check(ctx, pipeline.Options{ManifestPath: declPath, OrderPath: orderPath})
	if err != nil {
		return err
	}

	items := buildModuleItems(res)
	model := NewModuleListModel(items, res.Report != nil)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run module browser: %w", err)
	}
	return nil
}

// buildModuleItems flattens the check result into browsable rows, in
// canonical order with any cycle members appended at the end.
func buildModuleItems(res *pipeline.Result) []moduleItem {
	ids := make([]string, 0, res.Graph.ModuleCount())
	ids = append(ids, res.Sort.Order...)
	ids = append(ids, res.Sort.Unresolved...)

	items := make([]moduleItem, 0, len(ids))
	for i, id := range ids {
		item := moduleItem{
			ID:          id,
			CanonicalAt: i,
			Prereqs:     res.Graph.Prerequisites(id),
			Status:      statusUnverified,
			RecordedAt:  -1,
		}
		if i >= len(res.Sort.Order) {
			item.CanonicalAt = -1
			item.Status = statusCycle
		}
		if res.Report != nil && item.Status != statusCycle {
			item.Status, item.RecordedAt = moduleStatus(id, res.Order, res.Report)
		}
		items = append(items, item)
	}
	return items
}

// moduleStatus derives a per-module verdict from the verification report.
func moduleStatus(id string, order []string, report *verify.Report) (string, int) {
	pos := -1
	for i, entry := range order {
		if entry == id {
			pos = i
			break
		}
	}

	for _, v := range report.Violations {
		if v.Module != id {
			continue
		}
		if v.Kind == verify.KindMissingModule {
			return statusMissing, pos
		}
		return statusViolation, pos
	}
	return statusOK, pos
}
