package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/topoplan/topoplan/pkg/render"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"sort", "verify", "render", "inspect", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir error: %v", err)
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{render.FormatDOT, render.FormatSVG, render.FormatPNG} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%q) = %v, want nil", format, err)
		}
	}
	if err := validateFormat("pdf"); err == nil {
		t.Error("validateFormat(pdf) = nil, want error")
	}
	if err := validateFormat(""); err == nil {
		t.Error("validateFormat(\"\") = nil, want error")
	}

	// A format value containing a printf verb must be quoted back verbatim.
	err := validateFormat("%s")
	if err == nil {
		t.Fatalf("validateFormat(%%s) = nil, want error")
	}
	if !strings.Contains(err.Error(), `"%s"`) {
		t.Errorf("validateFormat error = %q, format not reported verbatim", err)
	}
}

func TestPosition(t *testing.T) {
	if got := position(-1); got != "-" {
		t.Errorf("position(-1) = %q, want -", got)
	}
	if got := position(0); got != "0" {
		t.Errorf("position(0) = %q, want 0", got)
	}
	if got := position(12); got != "12" {
		t.Errorf("position(12) = %q, want 12", got)
	}
}
