package render

import (
	"strings"
	"testing"

	"github.com/topoplan/topoplan/pkg/depgraph"
)

func mustGraph(t *testing.T, decl map[string][]string) *depgraph.Graph {
	t.Helper()
	g, err := depgraph.New(decl)
	if err != nil {
		t.Fatalf("depgraph.New error: %v", err)
	}
	return g
}

func TestToDOTNodesAndEdges(t *testing.T) {
	g := mustGraph(t, map[string][]string{
		"config":  nil,
		"logging": {"config"},
	})

	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "digraph deps {") {
		t.Errorf("ToDOT output does not start a digraph:\n%s", dot)
	}
	for _, node := range []string{`"config"`, `"logging"`} {
		if !strings.Contains(dot, node) {
			t.Errorf("ToDOT output missing node %s:\n%s", node, dot)
		}
	}

	// Edges follow build order: prerequisite -> dependent.
	if !strings.Contains(dot, `"config" -> "logging";`) {
		t.Errorf("ToDOT output missing edge config -> logging:\n%s", dot)
	}
	if strings.Contains(dot, `"logging" -> "config"`) {
		t.Errorf("ToDOT output has reversed edge:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	decl := map[string][]string{
		"config":  nil,
		"logging": {"config"},
		"db":      {"config", "logging"},
		"api":     {"db"},
	}

	first := ToDOT(mustGraph(t, decl), Options{})
	for i := 0; i < 10; i++ {
		if again := ToDOT(mustGraph(t, decl), Options{}); again != first {
			t.Fatal("ToDOT output differs between runs")
		}
	}
}

func TestToDOTDangling(t *testing.T) {
	g := mustGraph(t, map[string][]string{
		"api": {"ghost"},
	})

	dot := ToDOT(g, Options{})

	// Dangling prerequisites are drawn dashed and still get their edge.
	if !strings.Contains(dot, `"ghost" [label="ghost", style="rounded,filled,dashed"`) {
		t.Errorf("ToDOT output missing dashed dangling node:\n%s", dot)
	}
	if !strings.Contains(dot, `"ghost" -> "api";`) {
		t.Errorf("ToDOT output missing dangling edge:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := mustGraph(t, map[string][]string{
		"config": nil,
		"db":     {"config"},
	})

	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, "(no dependencies)") {
		t.Errorf("ToDOT detailed output missing zero-dependency label:\n%s", dot)
	}
	if !strings.Contains(dot, "(1 dependencies)") {
		t.Errorf("ToDOT detailed output missing dependency count:\n%s", dot)
	}
}

func TestToDOTHighlight(t *testing.T) {
	g := mustGraph(t, map[string][]string{
		"a": nil,
		"b": nil,
	})

	dot := ToDOT(g, Options{Highlight: []string{"b"}})

	if !strings.Contains(dot, `"b" [label="b", color=red, penwidth=2];`) {
		t.Errorf("ToDOT output missing highlight attributes:\n%s", dot)
	}
	if strings.Contains(dot, `"a" [label="a", color=red`) {
		t.Errorf("ToDOT highlighted the wrong node:\n%s", dot)
	}
}
