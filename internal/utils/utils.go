package utils

import (
	"path/filepath"
	"strings"
)

const (
	extensionSeparator = "."
	wordSeparator      = "_"
	displaySeparator   = " "
)

// DeduplicatePatterns removes duplicate and blank names from a slice while preserving order.
// The first occurrence of each unique name is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// TrimExtension removes the final extension from a file name.
// Leading dots do not start an extension, so ".bashrc" is returned unchanged
// while "archive.tar.gz" becomes "archive.tar".
func TrimExtension(fileName string) string {
	baseName := filepath.Base(fileName)
	leadingDots := len(baseName) - len(strings.TrimLeft(baseName, extensionSeparator))
	separatorIndex := strings.LastIndex(baseName[leadingDots:], extensionSeparator)
	if separatorIndex < 0 {
		return baseName
	}
	return baseName[:leadingDots+separatorIndex]
}

// DisplayName converts a file name into a wiki-link target: the extension is
// dropped and underscores become spaces.
func DisplayName(fileName string) string {
	return strings.ReplaceAll(TrimExtension(fileName), wordSeparator, displaySeparator)
}
