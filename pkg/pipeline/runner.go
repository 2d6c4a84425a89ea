package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/topoplan/topoplan/pkg/cache"
	"github.com/topoplan/topoplan/pkg/depgraph"
	"github.com/topoplan/topoplan/pkg/errors"
	"github.com/topoplan/topoplan/pkg/manifest"
	"github.com/topoplan/topoplan/pkg/orderfile"
	"github.com/topoplan/topoplan/pkg/render"
	"github.com/topoplan/topoplan/pkg/verify"
)

// Stats records per-stage wall-clock durations.
type Stats struct {
	LoadTime   time.Duration
	SortTime   time.Duration
	VerifyTime time.Duration
}

// Result aggregates everything one check run produced.
type Result struct {
	Graph  *depgraph.Graph
	Policy verify.Policy
	Sort   depgraph.SortResult

	// Order and Report are set only when Options.OrderPath was given.
	Order  []string
	Report *verify.Report

	// MatchesReference is true when the recorded order is identical to the
	// canonical order, not merely a different valid topological order.
	// Informational only.
	MatchesReference bool

	Stats Stats
}

// Runner executes pipeline stages with caching and logging.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables artifact caching
// (NullCache); a nil logger falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Check runs load → sort, and when an order file is given, → verify.
//
// Domain findings (cycles, dangling dependencies, violations) land in the
// Result; only contract violations (unreadable or malformed inputs) return
// an error.
func (r *Runner) Check(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	loadStart := time.Now()
	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("load declaration: %w", err)
	}
	result := &Result{Graph: m.Graph, Policy: m.Policy}
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("built dependency graph",
		"modules", m.Graph.ModuleCount(),
		"edges", m.Graph.EdgeCount(),
		"dangling", len(m.Graph.Dangling()),
		"duration", result.Stats.LoadTime)

	sortStart := time.Now()
	result.Sort = m.Graph.Sort()
	result.Stats.SortTime = time.Since(sortStart)

	if result.Sort.OK {
		r.Logger.Info("computed canonical order",
			"modules", len(result.Sort.Order),
			"duration", result.Stats.SortTime)
	} else {
		r.Logger.Warn("dependency cycle detected",
			"unresolved", len(result.Sort.Unresolved),
			"detail", result.Sort.Detail)
	}

	if opts.OrderPath == "" {
		return result, nil
	}

	order, err := orderfile.Load(opts.OrderPath)
	if err != nil {
		return nil, fmt.Errorf("load recorded order: %w", err)
	}
	result.Order = order

	verifyStart := time.Now()
	report := verify.Verify(order, m.Graph, m.Policy)
	result.Report = &report
	result.Stats.VerifyTime = time.Since(verifyStart)
	result.MatchesReference = report.Valid && slices.Equal(order, result.Sort.Order)

	r.Logger.Info("verified recorded order",
		"valid", report.Valid,
		"violations", len(report.Violations),
		"advisories", len(report.Advisories),
		"duration", result.Stats.VerifyTime)

	return result, nil
}

// Render produces a graph artifact in the requested format, consulting the
// cache first. The boolean reports whether the artifact came from cache.
// DOT output is never cached; it is cheaper to regenerate than to read.
func (r *Runner) Render(ctx context.Context, g *depgraph.Graph, opts render.Options, format string) ([]byte, bool, error) {
	dot := render.ToDOT(g, opts)
	if format == render.FormatDOT {
		return []byte(dot), false, nil
	}

	key := cache.ArtifactKey(cache.Hash([]byte(dot)), format)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	var data []byte
	var err error
	switch format {
	case render.FormatSVG:
		data, err = render.RenderSVG(ctx, dot)
	case render.FormatPNG:
		data, err = render.RenderPNG(ctx, dot)
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", format, err)
	}

	if err := r.Cache.Set(ctx, key, data, 0); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
	}
	return data, false, nil
}
