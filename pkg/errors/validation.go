package errors

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

// maxPathLength bounds user supplied file paths.
const maxPathLength = 4096

// ValidatePath checks a user supplied file path for basic sanity.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

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

// ValidateInputFile checks that path names an existing regular file.
// Returns ErrCodeFileNotFound when nothing exists at path and
// ErrCodeInvalidPath for directories or malformed paths.
func ValidateInputFile(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(ErrCodeFileNotFound, "input file not found: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot access %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "input is a directory: %s", path)
	}
	return nil
}
