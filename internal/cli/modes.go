package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tyemirov/utilmd/internal/filetree"
	"github.com/tyemirov/utilmd/internal/index"
	"github.com/tyemirov/utilmd/internal/moc"
	"github.com/tyemirov/utilmd/internal/output"
	"github.com/tyemirov/utilmd/internal/treeprint"
	"github.com/tyemirov/utilmd/internal/utils"
)

const (
	inputDirectoryMessage  = "Input directory"
	inputFileMessage       = "Input file"
	mocSucceededMessage    = "MOC successfully generated"
	mocFailedMessage       = "MOC generation failed"
	indexSucceededMessage  = "Index successfully generated"
	indexWrittenMessage    = "Index written"
	indexFailedMessage     = "Index generation failed"
	treeWrittenMessage     = "Tree written"
	treeFailedMessage      = "Tree generation failed"
	treeCopiedMessage      = "Tree copied to clipboard"
	clipboardFailedMessage = "Failed to copy tree to clipboard"
	dumpWrittenMessage     = "Dump written"
	dumpFailedMessage      = "Dump generation failed"
	pathFieldName          = "path"
	dumpFilePermissions    = 0o644
	errorWriteDumpFormat   = "writing %s: %w"
	errorRenderDumpFormat  = "rendering %s dump: %w"
	errorBuildTreeFormat   = "building tree for %s: %w"
)

func logInput(deps dependencies, settings runSettings) {
	if settings.target.IsDir {
		deps.logger.Info(inputDirectoryMessage, zap.String(pathFieldName, settings.target.Path))
		return
	}
	deps.logger.Info(inputFileMessage, zap.String(pathFieldName, settings.target.Path))
}

// runMOC writes "<title> MOC.md" into the input directory, or into --output when given.
// Failures are logged and do not fail the command.
func runMOC(deps dependencies, settings runSettings) {
	logInput(deps, settings)
	title := filepath.Base(settings.target.Directory)
	if !settings.target.IsDir {
		title = utils.TrimExtension(settings.target.Path)
	}
	outputPath := filepath.Join(settings.target.Directory, moc.OutputFileName(title))
	if settings.output != "" {
		outputPath = resolveOutputPath(settings.target.Directory, settings.output)
	}

	tree, buildError := filetree.BuildTree(settings.target.Directory, settings.exclusions)
	if buildError != nil {
		deps.logger.Error(buildError.Error())
		deps.logger.Error(mocFailedMessage)
		return
	}
	options := moc.Options{
		Title:         title,
		Exclusions:    settings.exclusions,
		SkipFileNames: []string{deps.executableName, filepath.Base(outputPath)},
		StartLevel:    settings.startLevel,
		Headings:      settings.headings,
	}
	if writeError := moc.WriteFile(outputPath, tree, options); writeError != nil {
		deps.logger.Error(writeError.Error())
		deps.logger.Error(mocFailedMessage)
		return
	}
	deps.logger.Info(mocSucceededMessage, zap.String(pathFieldName, outputPath))
}

// runIndex inserts the heading index into the input file, or into --output when given.
// With --dry-run the changes are printed as a diff instead.
func runIndex(deps dependencies, settings runSettings) {
	logInput(deps, settings)
	inputPath := settings.target.Path
	if settings.dryRun {
		before, after, previewError := index.Preview(inputPath)
		if previewError != nil {
			deps.logger.Error(previewError.Error())
			deps.logger.Error(indexFailedMessage)
			return
		}
		fmt.Fprint(settings.stdout, index.Diff(before, after))
		return
	}

	outputPath := resolveOutputPath(deps.workingDirectory, settings.output)
	if generateError := index.Generate(inputPath, outputPath); generateError != nil {
		deps.logger.Error(generateError.Error())
		deps.logger.Error(indexFailedMessage)
		return
	}
	if outputPath == "" {
		outputPath = inputPath
	}
	deps.logger.Info(indexSucceededMessage)
	deps.logger.Info(indexWrittenMessage, zap.String(pathFieldName, outputPath))
}

// runTree prints the tree of the input directory, writes it to --output when given and
// copies it to the clipboard when requested.
func runTree(deps dependencies, settings runSettings) {
	rootDirectory := settings.target.Directory
	lines, renderError := treeprint.RenderTree(rootDirectory, settings.exclusions)
	if renderError != nil {
		deps.logger.Error(renderError.Error())
		deps.logger.Error(treeFailedMessage)
		return
	}

	var rendered bytes.Buffer
	if writeError := treeprint.Write(&rendered, rootDirectory, lines); writeError != nil {
		deps.logger.Error(writeError.Error())
		deps.logger.Error(treeFailedMessage)
		return
	}
	fmt.Fprint(settings.stdout, rendered.String())

	if settings.output != "" {
		outputPath := resolveOutputPath(deps.workingDirectory, settings.output)
		if writeError := treeprint.WriteFile(outputPath, rootDirectory, lines); writeError != nil {
			deps.logger.Error(writeError.Error())
			deps.logger.Error(treeFailedMessage)
			return
		}
		deps.logger.Info(treeWrittenMessage, zap.String(pathFieldName, outputPath))
	}

	if settings.clipboard && settings.clipboardCopier != nil {
		if copyError := settings.clipboardCopier.Copy(rendered.String()); copyError != nil {
			deps.logger.Warn(clipboardFailedMessage, zap.Error(copyError))
			return
		}
		deps.logger.Info(treeCopiedMessage)
	}
}

// runDump prints the folder structure of the input directory as JSON or YAML.
func runDump(deps dependencies, settings runSettings) {
	if dumpError := writeDump(deps, settings); dumpError != nil {
		deps.logger.Error(dumpError.Error())
		deps.logger.Error(dumpFailedMessage)
	}
}

func writeDump(deps dependencies, settings runSettings) error {
	tree, buildError := filetree.BuildTree(settings.target.Directory, settings.exclusions)
	if buildError != nil {
		return fmt.Errorf(errorBuildTreeFormat, settings.target.Directory, buildError)
	}
	rendered, renderError := output.RenderDump(tree, settings.format)
	if renderError != nil {
		return fmt.Errorf(errorRenderDumpFormat, settings.format, renderError)
	}
	fmt.Fprint(settings.stdout, rendered)
	if settings.output == "" {
		return nil
	}
	outputPath := resolveOutputPath(deps.workingDirectory, settings.output)
	if writeError := os.WriteFile(outputPath, []byte(rendered), dumpFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteDumpFormat, outputPath, writeError)
	}
	deps.logger.Info(dumpWrittenMessage, zap.String(pathFieldName, outputPath))
	return nil
}
