// Package manifest reads module dependency declarations from TOML files.
//
// A declaration file has a required [modules] table mapping each module to
// its prerequisites, and an optional [policy] table with positional rules:
//
//	[modules]
//	config  = []
//	logging = ["config"]
//	state   = ["config"]
//
//	[policy]
//	first = ["config"]
//	last  = ["state"]
//	pairs = [["state", "config"]]
//
// The declaration is trusted configuration: parsing validates shape (module
// names, pair arity) and fails fast with structured errors, but references to
// undeclared modules are left in place for the graph layer to report as
// dangling dependencies.
package manifest

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/topoplan/topoplan/pkg/depgraph"
	"github.com/topoplan/topoplan/pkg/errors"
	"github.com/topoplan/topoplan/pkg/verify"
)

// Manifest is a parsed declaration file: the dependency graph plus the
// positional policy.
type Manifest struct {
	Graph  *depgraph.Graph
	Policy verify.Policy
}

// file mirrors the TOML document structure.
type file struct {
	Modules map[string][]string `toml:"modules"`
	Policy  policySection       `toml:"policy"`
}

type policySection struct {
	First []string   `toml:"first"`
	Last  []string   `toml:"last"`
	Pairs [][]string `toml:"pairs"`
}

// Load reads and parses the declaration file at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "declaration file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes a TOML declaration document.
//
// Returns an INVALID_MANIFEST error for malformed TOML, a missing or empty
// [modules] table, invalid module names, self-dependencies, or policy pairs
// that do not have exactly two elements.
func Parse(data []byte) (*Manifest, error) {
	var doc file
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse declaration")
	}

	if len(doc.Modules) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "declaration has no [modules] table")
	}

	for id, deps := range doc.Modules {
		if err := errors.ValidateModuleName(id); err != nil {
			return nil, err
		}
		for _, dep := range deps {
			if err := errors.ValidateModuleName(dep); err != nil {
				return nil, err
			}
		}
	}

	g, err := depgraph.New(doc.Modules)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "build dependency graph")
	}

	policy, err := doc.Policy.toPolicy()
	if err != nil {
		return nil, err
	}

	return &Manifest{Graph: g, Policy: policy}, nil
}

func (s policySection) toPolicy() (verify.Policy, error) {
	policy := verify.Policy{First: s.First, Last: s.Last}
	for i, pair := range s.Pairs {
		if len(pair) != 2 {
			return verify.Policy{}, errors.New(errors.ErrCodeInvalidManifest,
				"policy pair %d must have exactly two elements, got %d", i, len(pair))
		}
		policy.Pairs = append(policy.Pairs, verify.Pair{Module: pair[0], Dependency: pair[1]})
	}
	return policy, nil
}
