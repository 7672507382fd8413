package errors

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// sceneExtensions are the file extensions a scene can be loaded from.
var sceneExtensions = map[string]bool{
	".toml": true,
	".yaml": true,
	".yml":  true,
	".json": true,
}

// ValidateSceneFilename checks that a scene file has a supported extension
// and is a plain file name or path without control characters.
func ValidateSceneFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "scene filename cannot be empty")
	}
	if err := ValidatePath(name); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !sceneExtensions[ext] {
		return New(ErrCodeInvalidScene, "unsupported scene extension %q (must be .toml, .yaml, .yml or .json)", ext)
	}
	return nil
}

// ValidatePath validates a file path given on the command line.
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

// ValidateFinite rejects NaN and infinite values. name identifies the
// offending field in the error message.
func ValidateFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidShape, "%s must be finite, got %v", name, v)
		}
	}
	return nil
}

// ValidateNonNegative rejects negative (and non-finite) values.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must be >= 0, got %v", name, v)
	}
	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor checks that s is a hex color or "none".
func ValidateColor(s string) error {
	if s == "none" || hexColorRegex.MatchString(s) {
		return nil
	}
	return New(ErrCodeInvalidStyle, "invalid color %q (want #rgb, #rrggbb, #rrggbbaa or none)", s)
}
