// Package treeprint renders a directory as an ASCII tree with branch and leaf connectors.
package treeprint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/tyemirov/utilmd/internal/filetree"
)

const (
	branchConnector  = "├── "
	branchContinuing = "│   "
	leafConnector    = "└── "
	leafContinuing   = "    "
	lineTerminator   = "\n"

	errorReadDirectoryFormat = "reading directory %s: %w"
	errorCreateOutputFormat  = "creating %s: %w"
	errorWriteOutputFormat   = "writing %s: %w"
)

// RenderTree lists rootDirectory recursively in sorted order. Entries whose name is
// excluded are dropped whether they are files or directories; the last remaining
// entry of each directory receives the leaf connector.
func RenderTree(rootDirectory string, exclusions filetree.ExclusionSet) ([]string, error) {
	lines := []string{}
	if renderError := renderDirectory(rootDirectory, "", exclusions, &lines); renderError != nil {
		return nil, renderError
	}
	return lines, nil
}

func renderDirectory(directoryPath string, prefix string, exclusions filetree.ExclusionSet, lines *[]string) error {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}
	names := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if exclusions.Contains(directoryEntry.Name()) {
			continue
		}
		names = append(names, directoryEntry.Name())
	}
	sort.Strings(names)

	for nameIndex, name := range names {
		connector, continuation := branchConnector, branchContinuing
		if nameIndex == len(names)-1 {
			connector, continuation = leafConnector, leafContinuing
		}
		*lines = append(*lines, prefix+connector+name)
		entryPath := filepath.Join(directoryPath, name)
		if entryInfo, statError := os.Stat(entryPath); statError == nil && entryInfo.IsDir() {
			if renderError := renderDirectory(entryPath, prefix+continuation, exclusions, lines); renderError != nil {
				return renderError
			}
		}
	}
	return nil
}

// Write emits rootDirectory followed by lines, one per line.
func Write(writer io.Writer, rootDirectory string, lines []string) error {
	if _, writeError := io.WriteString(writer, rootDirectory+lineTerminator); writeError != nil {
		return writeError
	}
	for _, line := range lines {
		if _, writeError := io.WriteString(writer, line+lineTerminator); writeError != nil {
			return writeError
		}
	}
	return nil
}

// WriteFile stores the rendered tree in outputPath with rootDirectory as the first line.
//
// #nosec G304
func WriteFile(outputPath string, rootDirectory string, lines []string) (err error) {
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return fmt.Errorf(errorCreateOutputFormat, outputPath, createError)
	}
	bufferedWriter := bufio.NewWriter(outputFile)
	defer func() {
		flushError := bufferedWriter.Flush()
		closeError := outputFile.Close()
		if err == nil && flushError != nil {
			err = fmt.Errorf(errorWriteOutputFormat, outputPath, flushError)
		} else if err == nil && closeError != nil {
			err = fmt.Errorf(errorWriteOutputFormat, outputPath, closeError)
		}
	}()
	if writeError := Write(bufferedWriter, rootDirectory, lines); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}
	return nil
}
