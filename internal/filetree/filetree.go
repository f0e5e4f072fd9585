// Package filetree builds the nested file and folder mapping of a directory.
package filetree

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// errorReadDirectoryFormat is used when a directory cannot be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorBuildTreeFormat is used when a nested directory fails to build.
	errorBuildTreeFormat = "building tree for %s: %w"
)

// ExclusionSet holds directory base names skipped during traversal.
type ExclusionSet map[string]struct{}

// NewExclusionSet returns a set containing the provided names.
func NewExclusionSet(names ...string) ExclusionSet {
	exclusions := make(ExclusionSet, len(names))
	for _, name := range names {
		exclusions[name] = struct{}{}
	}
	return exclusions
}

// Contains reports whether name is excluded. A nil set excludes nothing.
func (exclusions ExclusionSet) Contains(name string) bool {
	_, excluded := exclusions[name]
	return excluded
}

// FileTree is one directory: the files directly inside it and its subfolders, both in listing order.
type FileTree struct {
	Files   []string
	Folders []Folder
}

// Folder is a named subdirectory of a FileTree.
type Folder struct {
	Name string
	Tree *FileTree
}

// Folder returns the subtree stored under name.
func (tree *FileTree) Folder(name string) (*FileTree, bool) {
	for _, folder := range tree.Folders {
		if folder.Name == name {
			return folder.Tree, true
		}
	}
	return nil, false
}

// IsEmpty reports whether the tree holds neither files nor folders.
func (tree *FileTree) IsEmpty() bool {
	return len(tree.Files) == 0 && len(tree.Folders) == 0
}

// BuildTree walks directoryPath recursively. Regular files are recorded by name,
// directories whose base name is excluded are skipped together with everything beneath them,
// and entries that are neither files nor directories are ignored.
// Symbolic links are classified by their target; cycles are not detected.
func BuildTree(directoryPath string, exclusions ExclusionSet) (*FileTree, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	tree := &FileTree{Files: []string{}, Folders: []Folder{}}
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		entryPath := filepath.Join(directoryPath, entryName)
		entryInfo, statError := os.Stat(entryPath)
		if statError != nil {
			continue
		}
		switch {
		case entryInfo.Mode().IsRegular():
			tree.Files = append(tree.Files, entryName)
		case entryInfo.IsDir():
			if exclusions.Contains(entryName) {
				continue
			}
			subtree, buildError := BuildTree(entryPath, exclusions)
			if buildError != nil {
				return nil, fmt.Errorf(errorBuildTreeFormat, entryPath, buildError)
			}
			tree.Folders = append(tree.Folders, Folder{Name: entryName, Tree: subtree})
		}
	}
	return tree, nil
}
