// Package pipeline orchestrates the load → sort → verify → render stages.
//
// The [Runner] encapsulates stage execution with caching and structured
// logging, so the CLI commands stay thin. It is stateless except for the
// cache and logger; multiple goroutines can safely share one Runner with
// different options.
package pipeline

import "github.com/topoplan/topoplan/pkg/errors"

// Options selects the inputs for a check run.
type Options struct {
	// ManifestPath is the TOML declaration file. Required.
	ManifestPath string

	// OrderPath is the recorded-order JSON file. Optional: when empty, the
	// run stops after the topological sort.
	OrderPath string
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.ManifestPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "declaration file path is required")
	}
	return nil
}
