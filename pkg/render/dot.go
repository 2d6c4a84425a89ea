// Package render converts a dependency graph to Graphviz DOT and renders it
// to SVG or PNG in process.
//
// The node-link view draws each declared module as a box with edges from
// prerequisite to dependent. Dangling prerequisites (references to
// undeclared modules) are drawn as dashed grey boxes so declaration problems
// are visible at a glance.
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering;
// no external graphviz installation is required.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/topoplan/topoplan/pkg/depgraph"
)

// Supported output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed includes the prerequisite count in node labels.
	// When false, only the module ID is shown.
	Detailed bool

	// Highlight marks the listed modules (typically an unresolved cycle set)
	// with a red outline.
	Highlight []string
}

// ToDOT converts a dependency graph to Graphviz DOT format.
// Modules appear in lexicographic order and edges follow declaration order,
// so the output is deterministic. The resulting DOT string can be rendered
// with [RenderSVG] or [RenderPNG].
func ToDOT(g *depgraph.Graph, opts Options) string {
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, id := range g.Modules() {
		attrs := fmtAttrs(id, fmtLabel(g, id, opts.Detailed), highlight[id])
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}
	for _, d := range g.Dangling() {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n",
			d.Dependency, d.Dependency)
	}

	buf.WriteString("\n")
	for _, id := range g.Modules() {
		for _, dep := range g.Prerequisites(id) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", dep, id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *depgraph.Graph, id string, detailed bool) string {
	if !detailed {
		return id
	}
	n := len(g.Prerequisites(id))
	if n == 0 {
		return id + "\n(no dependencies)"
	}
	return fmt.Sprintf("%s\n(%d dependencies)", id, n)
}

func fmtAttrs(id, label string, highlighted bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if highlighted {
		attrs = append(attrs, "color=red", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
