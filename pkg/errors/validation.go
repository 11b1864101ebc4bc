package errors

import (
	"regexp"
	"strings"
	"unicode"
)

var hexColorRegex = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ValidateColor checks that color is a six-digit RGB hex string without a
// leading '#'. An empty color means "inherit" and is accepted.
func ValidateColor(field, color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidConfig, "%s: invalid color %q (want RRGGBB)", field, color)
	}
	return nil
}

// ValidatePath validates a source or destination path given on the command
// line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
