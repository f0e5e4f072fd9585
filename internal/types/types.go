// Package types defines the cross-package constants and errors used by the utilmd CLI.
package types

import "errors"

const (
	ModeMOC   = "moc"
	ModeIndex = "index"
	ModeTree  = "tree"
	ModeDump  = "dump"

	FormatJSON = "json"
	FormatYAML = "yaml"

	// MarkdownExtension is appended to generated markdown file names.
	MarkdownExtension = ".md"
)

var (
	// ErrPathNotFound reports an input path that does not exist.
	ErrPathNotFound = errors.New("path does not exist")
	// ErrInvalidModeCombination reports a mode that cannot operate on the given input.
	ErrInvalidModeCombination = errors.New("index generation requires a file input")
	// ErrMissingInput reports a mode invoked without the required --input.
	ErrMissingInput = errors.New("input path is required")
)

// ValidatedPath is an input path that already passed existence checks.
type ValidatedPath struct {
	// Path is the absolute input path.
	Path string
	// Directory is Path itself for directories and the parent directory for files.
	Directory string
	IsDir     bool
}
