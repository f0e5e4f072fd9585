// Package moc renders a map of content: a markdown outline of wiki links to
// every file of a directory tree, with a heading per subfolder.
package moc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tyemirov/utilmd/internal/filetree"
	"github.com/tyemirov/utilmd/internal/types"
	"github.com/tyemirov/utilmd/internal/utils"
)

const (
	// DefaultStartLevel is the heading level used for top-level subfolders.
	DefaultStartLevel = 3
	// FileNameSuffix is appended to the title to name the generated file.
	FileNameSuffix = " MOC" + types.MarkdownExtension

	titleFormat         = "# %s MOC\n\n"
	indexHeading        = "## Index\n\n"
	separatorLine       = "---\n\n"
	linkLineFormat      = "- [[%s]]\n"
	folderHeadingFormat = "%s %s\n\n"
	headingMarker       = "#"
	lineTerminator      = "\n"

	errorCreateOutputFormat = "creating %s: %w"
	errorWriteOutputFormat  = "writing %s: %w"
	errorCloseOutputFormat  = "closing %s: %w"
)

// Options controls MOC rendering.
type Options struct {
	// Title is written into the "# <Title> MOC" preamble.
	Title string
	// Exclusions lists folder names that are never emitted.
	Exclusions filetree.ExclusionSet
	// SkipFileNames lists file names that never receive a link, at every level.
	SkipFileNames []string
	// StartLevel is the heading level of top-level folders. Zero means DefaultStartLevel.
	StartLevel int
	// Headings enables the per-folder heading lines.
	Headings bool
}

// OutputFileName returns the generated file name for a title.
func OutputFileName(title string) string {
	return title + FileNameSuffix
}

// Generate writes the preamble followed by the nested outline of tree.
func Generate(writer io.Writer, tree *filetree.FileTree, options Options) error {
	if _, writeError := fmt.Fprintf(writer, titleFormat, options.Title); writeError != nil {
		return writeError
	}
	if _, writeError := io.WriteString(writer, indexHeading+separatorLine); writeError != nil {
		return writeError
	}
	startLevel := options.StartLevel
	if startLevel <= 0 {
		startLevel = DefaultStartLevel
	}
	return writeNode(writer, tree, options, startLevel)
}

func writeNode(writer io.Writer, node *filetree.FileTree, options Options, level int) error {
	if node == nil {
		return nil
	}
	for _, fileName := range node.Files {
		if utils.ContainsString(options.SkipFileNames, fileName) {
			continue
		}
		if _, writeError := fmt.Fprintf(writer, linkLineFormat, utils.DisplayName(fileName)); writeError != nil {
			return writeError
		}
	}
	if len(node.Files) > 0 {
		if _, writeError := io.WriteString(writer, lineTerminator); writeError != nil {
			return writeError
		}
	}
	for _, folder := range node.Folders {
		if options.Exclusions.Contains(folder.Name) {
			continue
		}
		if options.Headings {
			if _, writeError := fmt.Fprintf(writer, folderHeadingFormat, strings.Repeat(headingMarker, level), folder.Name); writeError != nil {
				return writeError
			}
		}
		if nodeError := writeNode(writer, folder.Tree, options, level+1); nodeError != nil {
			return nodeError
		}
	}
	return nil
}

// WriteFile renders the MOC into outputPath. The file is flushed and closed on
// every return path; a failed render may leave a partial file behind.
//
// #nosec G304
func WriteFile(outputPath string, tree *filetree.FileTree, options Options) (err error) {
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return fmt.Errorf(errorCreateOutputFormat, outputPath, createError)
	}
	bufferedWriter := bufio.NewWriter(outputFile)
	defer func() {
		flushError := bufferedWriter.Flush()
		closeError := outputFile.Close()
		if err != nil {
			return
		}
		if flushError != nil {
			err = fmt.Errorf(errorWriteOutputFormat, outputPath, flushError)
		} else if closeError != nil {
			err = fmt.Errorf(errorCloseOutputFormat, outputPath, closeError)
		}
	}()

	if generateError := Generate(bufferedWriter, tree, options); generateError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, generateError)
	}
	return nil
}
