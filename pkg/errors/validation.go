package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds cell and port names. GDSII itself allows 32 chars for
// structure names in the strict spec, but every modern tool accepts more.
const maxNameLength = 256

// ValidateCellName validates a cell name for safety and correctness.
// It rejects names that could escape a cache directory or break GDS writers.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateCellName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "cell name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "cell name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "cell name contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "cell name contains whitespace: %q", name)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "cell name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// portNameRegex matches port names such as "o1", "W0" or "in_top".
var portNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidatePortName validates a port name.
func ValidatePortName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "port name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "port name too long (max %d characters)", maxNameLength)
	}
	if !portNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid port name: %q", name)
	}
	return nil
}

// ValidatePortNames validates every name and rejects duplicates.
func ValidatePortNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if err := ValidatePortName(n); err != nil {
			return err
		}
		if seen[n] {
			return New(ErrCodeInvalidInput, "duplicate port name: %q", n)
		}
		seen[n] = true
	}
	return nil
}
