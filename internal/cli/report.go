package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/topoplan/topoplan/pkg/depgraph"
	"github.com/topoplan/topoplan/pkg/pipeline"
	"github.com/topoplan/topoplan/pkg/verify"
)

// printReferenceOrder prints the canonical order with each module's
// prerequisites, in the style of a numbered build plan.
func printReferenceOrder(g *depgraph.Graph, sorted depgraph.SortResult) {
	fmt.Println(StyleTitle.Render("Canonical build order"))
	for i, id := range sorted.Order {
		deps := g.Prerequisites(id)
		depStr := "(no dependencies)"
		if len(deps) > 0 {
			depStr = "(depends on: " + strings.Join(deps, ", ") + ")"
		}
		fmt.Printf("  %2d. %s %s\n", i+1, StyleValue.Render(id), StyleDim.Render(depStr))
	}

	if !sorted.OK {
		printNewline()
		printError("dependency cycle: %d modules could not be ordered", len(sorted.Unresolved))
		for _, id := range sorted.Unresolved {
			printDetail("%s %s", iconArrow, id)
		}
	}
}

// printVerification prints the full verification outcome: the structural
// verdict, the violation table, and advisory and dangling findings.
func printVerification(res *pipeline.Result) {
	report := res.Report

	printNewline()
	if report.Valid {
		printSuccess("recorded order satisfies all %d dependency constraints", res.Graph.EdgeCount())
		if res.MatchesReference {
			printDetail("order is identical to the canonical order")
		} else {
			printDetail("order differs from the canonical order but is a valid topological order")
		}
	} else {
		printError("recorded order is invalid: %d violations", len(report.Violations))
		printNewline()
		fmt.Println(violationTable(report.Violations))
	}

	for _, v := range report.Advisories {
		printWarning("%s", v.String())
	}
	for _, d := range report.Dangling {
		printWarning("%s", d.String())
	}
}

// violationTable renders structural violations as a bordered table.
func violationTable(violations []verify.Violation) string {
	rows := make([][]string, len(violations))
	for i, v := range violations {
		rows[i] = []string{v.Kind.String(), v.Module, position(v.ModulePos), v.Dependency, position(v.DependencyPos)}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("RULE", "MODULE", "POS", "DEPENDENCY", "POS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleDim.Padding(0, 1)
			}
			if col == 0 {
				return StyleError.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})

	return t.Render()
}

func position(pos int) string {
	if pos < 0 {
		return "-"
	}
	return strconv.Itoa(pos)
}
