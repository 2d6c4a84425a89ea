package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/topoplan/topoplan/pkg/cache"
	"github.com/topoplan/topoplan/pkg/errors"
	"github.com/topoplan/topoplan/pkg/render"
	"github.com/topoplan/topoplan/pkg/verify"
)

const testDecl = `
[modules]
config  = []
logging = ["config"]
state   = ["config", "logging"]

[policy]
first = ["config"]
last  = ["state"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckSortOnly(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	res, err := r.Check(context.Background(), Options{
		ManifestPath: writeFile(t, "modules.toml", testDecl),
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	want := []string{"config", "logging", "state"}
	if !slices.Equal(res.Sort.Order, want) {
		t.Errorf("Sort.Order = %v, want %v", res.Sort.Order, want)
	}
	if res.Report != nil {
		t.Error("Report should be nil without an order file")
	}
	if !slices.Equal(res.Policy.First, []string{"config"}) {
		t.Errorf("Policy.First = %v, want [config]", res.Policy.First)
	}
}

func TestCheckWithValidOrder(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	res, err := r.Check(context.Background(), Options{
		ManifestPath: writeFile(t, "modules.toml", testDecl),
		OrderPath:    writeFile(t, "order.json", `["config", "logging", "state"]`),
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if res.Report == nil {
		t.Fatal("Report is nil with an order file")
	}
	if !res.Report.Valid {
		t.Errorf("Report.Valid = false, violations: %v", res.Report.Violations)
	}
	if !res.MatchesReference {
		t.Error("MatchesReference = false for the canonical order")
	}
}

func TestCheckAlternativeOrder(t *testing.T) {
	decl := `
[modules]
config  = []
logging = ["config"]
metrics = ["config"]
`
	r := NewRunner(nil, nil)
	defer r.Close()

	// Valid but not canonical: metrics before logging.
	res, err := r.Check(context.Background(), Options{
		ManifestPath: writeFile(t, "modules.toml", decl),
		OrderPath:    writeFile(t, "order.json", `["config", "metrics", "logging"]`),
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if !res.Report.Valid {
		t.Errorf("Report.Valid = false, violations: %v", res.Report.Violations)
	}
	if res.MatchesReference {
		t.Error("MatchesReference = true for a non-canonical order")
	}
}

func TestCheckInvalidOrder(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	// Inverted order is a finding, not a pipeline error.
	res, err := r.Check(context.Background(), Options{
		ManifestPath: writeFile(t, "modules.toml", testDecl),
		OrderPath:    writeFile(t, "order.json", `["state", "logging", "config"]`),
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if res.Report.Valid {
		t.Error("Report.Valid = true for inverted order")
	}
	if len(res.Report.Violations) == 0 {
		t.Error("Report has no violations for inverted order")
	}
	for _, v := range res.Report.Violations {
		if v.Kind != verify.KindOrderViolation {
			t.Errorf("unexpected violation kind %v", v.Kind)
		}
	}
}

func TestCheckStatusDocument(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	status := `{"version": 1, "modules": {"config": {}, "logging": {}, "state": {}}}`
	res, err := r.Check(context.Background(), Options{
		ManifestPath: writeFile(t, "modules.toml", testDecl),
		OrderPath:    writeFile(t, "status.json", status),
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !res.Report.Valid {
		t.Errorf("Report.Valid = false for status document, violations: %v", res.Report.Violations)
	}
}

func TestCheckCycle(t *testing.T) {
	decl := `
[modules]
a = ["b"]
b = ["a"]
`
	r := NewRunner(nil, nil)
	defer r.Close()

	res, err := r.Check(context.Background(), Options{
		ManifestPath: writeFile(t, "modules.toml", decl),
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if res.Sort.OK {
		t.Error("Sort.OK = true for cyclic declaration")
	}
	if !slices.Equal(res.Sort.Unresolved, []string{"a", "b"}) {
		t.Errorf("Sort.Unresolved = %v, want [a b]", res.Sort.Unresolved)
	}
}

func TestCheckMissingManifest(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	_, err := r.Check(context.Background(), Options{
		ManifestPath: filepath.Join(t.TempDir(), "missing.toml"),
	})
	if err == nil {
		t.Fatal("Check succeeded with a missing declaration file")
	}
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestCheckValidatesOptions(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	if _, err := r.Check(context.Background(), Options{}); err == nil {
		t.Fatal("Check accepted empty options")
	}
}

func TestRenderDOT(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	res, err := r.Check(context.Background(), Options{
		ManifestPath: writeFile(t, "modules.toml", testDecl),
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	data, cacheHit, err := r.Render(context.Background(), res.Graph, render.Options{}, render.FormatDOT)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if cacheHit {
		t.Error("DOT output should never come from cache")
	}
	if len(data) == 0 {
		t.Error("Render returned empty DOT")
	}
}

func TestRenderUsesCache(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(fileCache, nil)
	defer r.Close()

	ctx := context.Background()
	res, err := r.Check(ctx, Options{
		ManifestPath: writeFile(t, "modules.toml", testDecl),
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	// Seed the cache under the artifact key; Render must return the seeded
	// bytes without invoking Graphviz.
	dot := render.ToDOT(res.Graph, render.Options{})
	key := cache.ArtifactKey(cache.Hash([]byte(dot)), render.FormatSVG)
	if err := fileCache.Set(ctx, key, []byte("<svg>seeded</svg>"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, cacheHit, err := r.Render(ctx, res.Graph, render.Options{}, render.FormatSVG)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !cacheHit {
		t.Error("Render should report a cache hit")
	}
	if string(data) != "<svg>seeded</svg>" {
		t.Errorf("Render data = %q, want seeded bytes", data)
	}
}
