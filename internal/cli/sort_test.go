package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/topoplan/topoplan/pkg/errors"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSortCycleError(t *testing.T) {
	// Module names may contain printf verbs; the cycle detail must reach
	// the user verbatim.
	decl := "[modules]\n\"a%sb\" = [\"b%sa\"]\n\"b%sa\" = [\"a%sb\"]\n"
	path := writeTestFile(t, "modules.toml", decl)

	c := New(io.Discard, LogInfo)
	err := c.runSort(context.Background(), path, true)
	if err == nil {
		t.Fatal("runSort succeeded on a cyclic declaration")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidManifest {
		t.Errorf("error code = %v, want INVALID_MANIFEST", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "a%sb") {
		t.Errorf("error = %q, module name not reported verbatim", err)
	}
	if strings.Contains(err.Error(), "MISSING") {
		t.Errorf("error = %q, module name was interpreted as a format string", err)
	}
}

func TestRunVerifyInvalidOrderError(t *testing.T) {
	decl := "[modules]\nconfig = []\nlogging = [\"config\"]\n"
	declPath := writeTestFile(t, "modules.toml", decl)
	orderPath := writeTestFile(t, "order.json", `["logging", "config"]`)

	c := New(io.Discard, LogInfo)
	err := c.runVerify(context.Background(), declPath, orderPath, false)
	if err == nil {
		t.Fatal("runVerify succeeded on an inverted order")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidOrder {
		t.Errorf("error code = %v, want INVALID_ORDER", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "violates 1 dependency constraints") {
		t.Errorf("error = %q, violation count not formatted", err)
	}
}

func TestRunVerifyStrictPolicy(t *testing.T) {
	decl := `
[modules]
config  = []
logging = ["config"]

[policy]
last = ["config"]
`
	declPath := writeTestFile(t, "modules.toml", decl)
	orderPath := writeTestFile(t, "order.json", `["config", "logging"]`)

	c := New(io.Discard, LogInfo)

	// Advisory findings pass by default.
	if err := c.runVerify(context.Background(), declPath, orderPath, false); err != nil {
		t.Errorf("runVerify error = %v, advisories should not fail without --strict", err)
	}

	// With strict they become failures.
	err := c.runVerify(context.Background(), declPath, orderPath, true)
	if err == nil {
		t.Fatal("runVerify with strict succeeded despite policy findings")
	}
	if !strings.Contains(err.Error(), "1 policy findings") {
		t.Errorf("error = %q, advisory count not formatted", err)
	}
}
