package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxPathLength bounds every path accepted from config or flags.
const MaxPathLength = 4096

// ExpandPath cleans a user supplied path, expanding a leading "~/".
// Relative paths stay relative to the working directory.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", MaxPathLength)
	}
	if err := validateCharacters(path); err != nil {
		return "", err
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	} else if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("invalid tilde usage in %q", path)
	}

	return filepath.Clean(path), nil
}

func validateCharacters(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes")
	}
	for _, char := range path {
		if char < 32 && char != '\t' {
			return fmt.Errorf("path contains control characters")
		}
	}
	return nil
}

// ValidateFile expands path and rejects directories.
func ValidateFile(path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(expanded); err == nil && info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", expanded)
	}
	return expanded, nil
}

// ValidateDirectory expands path and makes sure it is a directory,
// creating it when asked.
func ValidateDirectory(path string, createIfNotExist bool) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(expanded)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", fmt.Errorf("path exists but is not a directory: %s", expanded)
		}
	case os.IsNotExist(err):
		if !createIfNotExist {
			return "", fmt.Errorf("directory does not exist: %s", expanded)
		}
		if mkErr := os.MkdirAll(expanded, 0o755); mkErr != nil {
			return "", fmt.Errorf("failed to create directory: %w", mkErr)
		}
	default:
		return "", fmt.Errorf("checking directory: %w", err)
	}
	return expanded, nil
}
