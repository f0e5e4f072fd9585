// Package index inserts a linked index of a markdown file's headings below its title.
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tyemirov/utilmd/internal/headings"
	"github.com/tyemirov/utilmd/internal/utils"
)

const (
	titlePrefix     = "# "
	linkSeparator   = "#"
	lineTerminator  = "\n"
	indentUnit      = "  "
	topLevel        = 2
	entryLineFormat = "%s- [[%s | %s]]"
	blockOpening    = "\n## Index\n\n"
	blockClosing    = "\n\n"
	carriageReturn  = "\r"

	errorReadInputFormat   = "reading %s: %w"
	errorWriteOutputFormat = "writing %s: %w"
)

// RootHeader returns the link prefix for a file: its base name without extension,
// underscores replaced by spaces.
func RootHeader(filePath string) string {
	return utils.DisplayName(filepath.Base(filePath))
}

// Render builds one index line per heading. Level-2 headings are the roots of the
// hierarchy, so a heading of level L sits at stack depth L-1: the stack is popped
// until it is shallower than that before the heading is pushed. Skipped levels
// therefore still produce a consistent link path.
func Render(rootHeader string, entries []headings.Entry) []string {
	headerStack := make([]string, 0, len(entries))
	indexLines := make([]string, 0, len(entries))
	for _, entry := range entries {
		for len(headerStack) > 0 && len(headerStack) >= entry.Level-1 {
			headerStack = headerStack[:len(headerStack)-1]
		}
		headerStack = append(headerStack, entry.Text)
		linkTarget := rootHeader + linkSeparator + strings.Join(headerStack, linkSeparator)
		indentation := ""
		if entry.Level != topLevel {
			indentation = strings.Repeat(indentUnit, entry.Level-1)
		}
		indexLines = append(indexLines, fmt.Sprintf(entryLineFormat, indentation, linkTarget, entry.Text))
	}
	return indexLines
}

// Insert copies content line by line and places the index block after the first
// level-1 heading. Content without such a heading is returned with normalised line
// endings and no block.
func Insert(content string, indexLines []string) string {
	var builder strings.Builder
	builder.Grow(len(content) + len(indexLines)*32)
	inserted := false
	for _, line := range splitLines(content) {
		builder.WriteString(line)
		builder.WriteString(lineTerminator)
		if !inserted && strings.HasPrefix(line, titlePrefix) {
			builder.WriteString(blockOpening)
			builder.WriteString(strings.Join(indexLines, lineTerminator))
			builder.WriteString(blockClosing)
			inserted = true
		}
	}
	return builder.String()
}

// splitLines splits on "\n", drops "\r" terminators and the empty element produced
// by a trailing newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, lineTerminator)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for lineIndex, line := range lines {
		lines[lineIndex] = strings.TrimSuffix(line, carriageReturn)
	}
	return lines
}

// Preview returns the original content of inputFile and the content it would have
// after index generation.
//
// #nosec G304
func Preview(inputFile string) (string, string, error) {
	originalContent, readError := os.ReadFile(inputFile)
	if readError != nil {
		return "", "", fmt.Errorf(errorReadInputFormat, inputFile, readError)
	}
	var entries []headings.Entry
	for _, line := range splitLines(string(originalContent)) {
		if entry, isHeading := headings.ParseLine(line); isHeading {
			entries = append(entries, entry)
		}
	}
	indexLines := Render(RootHeader(inputFile), entries)
	return string(originalContent), Insert(string(originalContent), indexLines), nil
}

// Generate writes inputFile's content with an inserted index into outputFile.
// An empty outputFile rewrites inputFile in place; the input is fully read into
// memory before the output is truncated. Running Generate twice on the same file
// inserts a second index block.
func Generate(inputFile string, outputFile string) error {
	_, updatedContent, previewError := Preview(inputFile)
	if previewError != nil {
		return previewError
	}
	if outputFile == "" {
		outputFile = inputFile
	}
	if writeError := os.WriteFile(outputFile, []byte(updatedContent), 0o644); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputFile, writeError)
	}
	return nil
}
