package errors

import (
	"strings"
	"unicode"
)

// ValidateModuleName validates a module identifier from a declaration or
// order file. The rules are intentionally conservative - identifiers are
// opaque names, but they end up in file paths, DOT output, and terminal
// reports:
//
//   - No empty names
//   - Maximum length of 256 characters
//   - No control characters
//   - No leading or trailing whitespace
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidModule, "module name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidModule, "module name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidModule, "module name contains control characters")
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidModule, "module name has leading or trailing whitespace: %q", name)
	}

	return nil
}
