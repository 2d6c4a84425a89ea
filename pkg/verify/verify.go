// Package verify checks a recorded build order against a declared dependency
// graph.
//
// Verification is position-based: the recorded order is turned into a
// module→index table, then every declared (module, prerequisite) pair is
// checked against it. The verifier never stops at the first problem - it
// enumerates every violation so one pass yields a complete diagnostic.
//
// Structural findings (missing modules, missing dependencies, ordering
// violations) decide [Report.Valid]. Positional policy findings
// (must-be-first, must-be-last, explicit pairs) and duplicate entries are
// advisory: they are reported separately under [Report.Advisories] and
// summarized by [Report.PolicyOK], but never flip Valid.
//
// The verifier does not require the recorded order to equal the canonical
// order from [depgraph.Graph.Sort] - any order satisfying the declared
// partial order is accepted.
//
// The verifier is a pure function over its inputs. It performs no I/O and
// holds no state between calls.
package verify

import "github.com/topoplan/topoplan/pkg/depgraph"

// Pair is an explicit ordering constraint: Module must appear after
// Dependency in the recorded order.
type Pair struct {
	Module     string
	Dependency string
}

// Policy holds the positional rules layered on top of the structural
// dependency checks. All fields are optional; the zero Policy checks nothing.
type Policy struct {
	First []string // modules that must occupy index 0
	Last  []string // modules that must occupy the final index
	Pairs []Pair   // explicit module-after-dependency spot checks
}

// Report is the complete outcome of one verification run.
type Report struct {
	// Valid is true when no structural violations were found. Advisory
	// findings do not affect it.
	Valid bool

	// Violations are the structural findings: missing modules, missing
	// dependencies, and ordering violations, in deterministic order.
	Violations []Violation

	// Advisories are the policy findings (first/last/pairs) and duplicate
	// entries in the recorded order.
	Advisories []Violation

	// PolicyOK is true when Advisories is empty.
	PolicyOK bool

	// Dangling carries the graph's dangling-dependency findings so a single
	// Report is a full diagnostic of both inputs.
	Dangling []depgraph.Dangling
}

// Findings returns the total number of findings of any severity.
func (r Report) Findings() int {
	return len(r.Violations) + len(r.Advisories) + len(r.Dangling)
}

// Verify checks the recorded order against the declared graph and policy.
//
// The position table is built with first-occurrence-wins semantics; each
// later duplicate becomes an advisory finding. For every declared
// (module, prerequisite) pair, in sorted module order and declaration
// prerequisite order, Verify emits:
//
//   - KindMissingModule when the module is absent from the order (the
//     module's remaining prerequisite checks are skipped),
//   - KindMissingDependency when the prerequisite is absent,
//   - KindOrderViolation when the prerequisite's position is not strictly
//     before the module's.
//
// Dangling prerequisites get no exemption: the position table is built from
// the recorded order alone, so an undeclared prerequisite absent from the
// order is a missing dependency, and one that is present must still precede
// its module. Report.Dangling additionally flags them as a declaration
// problem.
func Verify(order []string, g *depgraph.Graph, policy Policy) Report {
	positions, duplicates := positionTable(order)

	report := Report{Dangling: g.Dangling()}
	report.Advisories = append(report.Advisories, duplicates...)

	for _, module := range g.Modules() {
		modulePos, present := positions[module]
		if !present {
			report.Violations = append(report.Violations, Violation{
				Kind:      KindMissingModule,
				Module:    module,
				ModulePos: -1,
			})
			continue
		}

		for _, dep := range g.Prerequisites(module) {
			depPos, depPresent := positions[dep]
			if !depPresent {
				report.Violations = append(report.Violations, Violation{
					Kind:          KindMissingDependency,
					Module:        module,
					Dependency:    dep,
					ModulePos:     modulePos,
					DependencyPos: -1,
				})
				continue
			}
			if depPos >= modulePos {
				report.Violations = append(report.Violations, Violation{
					Kind:          KindOrderViolation,
					Module:        module,
					Dependency:    dep,
					ModulePos:     modulePos,
					DependencyPos: depPos,
				})
			}
		}
	}

	report.Advisories = append(report.Advisories, checkPolicy(order, positions, policy)...)

	report.Valid = len(report.Violations) == 0
	report.PolicyOK = len(report.Advisories) == 0
	return report
}

// positionTable maps each module to its first index in the recorded order and
// reports later duplicates as advisory findings.
func positionTable(order []string) (map[string]int, []Violation) {
	positions := make(map[string]int, len(order))
	var duplicates []Violation
	for i, id := range order {
		if first, seen := positions[id]; seen {
			duplicates = append(duplicates, Violation{
				Kind:          KindDuplicateModule,
				Module:        id,
				ModulePos:     i,
				DependencyPos: first,
			})
			continue
		}
		positions[id] = i
	}
	return positions, duplicates
}

func checkPolicy(order []string, positions map[string]int, policy Policy) []Violation {
	var findings []Violation

	for _, id := range policy.First {
		pos, ok := positions[id]
		switch {
		case !ok:
			findings = append(findings, Violation{Kind: KindNotFirst, Module: id, ModulePos: -1})
		case pos != 0:
			findings = append(findings, Violation{Kind: KindNotFirst, Module: id, ModulePos: pos})
		}
	}

	for _, id := range policy.Last {
		pos, ok := positions[id]
		switch {
		case !ok:
			findings = append(findings, Violation{Kind: KindNotLast, Module: id, ModulePos: -1})
		case pos != len(order)-1:
			findings = append(findings, Violation{Kind: KindNotLast, Module: id, ModulePos: pos})
		}
	}

	for _, pair := range policy.Pairs {
		modulePos, moduleOK := positions[pair.Module]
		depPos, depOK := positions[pair.Dependency]
		if !moduleOK || !depOK {
			continue // absence is already a structural finding if declared
		}
		if depPos >= modulePos {
			findings = append(findings, Violation{
				Kind:          KindPairViolation,
				Module:        pair.Module,
				Dependency:    pair.Dependency,
				ModulePos:     modulePos,
				DependencyPos: depPos,
			})
		}
	}

	return findings
}
