package verify

import "fmt"

// Kind classifies a single verification finding.
type Kind int

const (
	// KindMissingModule: a declared module does not appear in the recorded order.
	KindMissingModule Kind = iota
	// KindMissingDependency: a declared prerequisite does not appear in the
	// recorded order.
	KindMissingDependency
	// KindOrderViolation: a module appears at or before one of its
	// prerequisites.
	KindOrderViolation
	// KindNotFirst: a must-be-first policy module is not at index 0.
	KindNotFirst
	// KindNotLast: a must-be-last policy module is not at the final index.
	KindNotLast
	// KindPairViolation: an explicit policy pair is out of order.
	KindPairViolation
	// KindDuplicateModule: a module appears more than once in the recorded
	// order. The first occurrence wins for position checks.
	KindDuplicateModule
)

// String returns a short identifier for the kind, used in reports.
func (k Kind) String() string {
	switch k {
	case KindMissingModule:
		return "missing-module"
	case KindMissingDependency:
		return "missing-dependency"
	case KindOrderViolation:
		return "order"
	case KindNotFirst:
		return "not-first"
	case KindNotLast:
		return "not-last"
	case KindPairViolation:
		return "pair"
	case KindDuplicateModule:
		return "duplicate"
	}
	return "unknown"
}

// Violation is a single detected inconsistency between a recorded order and
// the declared graph or the positional policy. Positions are zero-based
// indices into the recorded order; -1 means the module is absent.
type Violation struct {
	Kind          Kind
	Module        string // offending module
	Dependency    string // related module (prerequisite, pair partner), if any
	ModulePos     int
	DependencyPos int
}

// String renders the violation as a human-readable message naming the
// modules and their positions.
func (v Violation) String() string {
	switch v.Kind {
	case KindMissingModule:
		return fmt.Sprintf("module %q is not present in the recorded order", v.Module)
	case KindMissingDependency:
		return fmt.Sprintf("dependency %q of module %q is not present in the recorded order", v.Dependency, v.Module)
	case KindOrderViolation:
		return fmt.Sprintf("module %q (position %d) should follow dependency %q (position %d)", v.Module, v.ModulePos, v.Dependency, v.DependencyPos)
	case KindNotFirst:
		if v.ModulePos < 0 {
			return fmt.Sprintf("module %q should be first but is not present", v.Module)
		}
		return fmt.Sprintf("module %q should be first, found at position %d", v.Module, v.ModulePos)
	case KindNotLast:
		if v.ModulePos < 0 {
			return fmt.Sprintf("module %q should be last but is not present", v.Module)
		}
		return fmt.Sprintf("module %q should be last, found at position %d", v.Module, v.ModulePos)
	case KindPairViolation:
		return fmt.Sprintf("module %q (position %d) should follow %q (position %d)", v.Module, v.ModulePos, v.Dependency, v.DependencyPos)
	case KindDuplicateModule:
		return fmt.Sprintf("module %q appears again at position %d (first occurrence at %d)", v.Module, v.ModulePos, v.DependencyPos)
	}
	return fmt.Sprintf("unknown violation for module %q", v.Module)
}
