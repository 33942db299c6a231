package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds node identifiers and cross-reference namespaces.
const maxIDLength = 256

// ValidateNodeID validates a species or reaction identifier coming from an
// external pathway description.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateNamespace validates a cross-reference namespace such as "metanetx"
// or "chebi". Namespaces are lower-case words made of letters, digits, dots,
// dashes and underscores.
func ValidateNamespace(ns string) error {
	if ns == "" {
		return New(ErrCodeInvalidInput, "namespace cannot be empty")
	}
	if len(ns) > maxIDLength {
		return New(ErrCodeInvalidInput, "namespace too long (max %d characters)", maxIDLength)
	}
	if strings.ToLower(ns) != ns {
		return New(ErrCodeInvalidInput, "namespace must be lowercase: %q", ns)
	}
	for _, r := range ns {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("._-", r) {
			return New(ErrCodeInvalidInput, "namespace contains invalid character %q: %q", r, ns)
		}
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
