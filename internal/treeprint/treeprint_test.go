package treeprint_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tyemirov/utilmd/internal/filetree"
	"github.com/tyemirov/utilmd/internal/treeprint"
)

func createFile(t *testing.T, path string) {
	t.Helper()
	if mkdirError := os.MkdirAll(filepath.Dir(path), 0o755); mkdirError != nil {
		t.Fatalf("mkdir: %v", mkdirError)
	}
	if writeError := os.WriteFile(path, []byte("x"), 0o644); writeError != nil {
		t.Fatalf("write: %v", writeError)
	}
}

func assertLines(t *testing.T, actual []string, expected []string) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expected), len(actual), strings.Join(actual, "\n"))
	}
	for lineIndex := range expected {
		if actual[lineIndex] != expected[lineIndex] {
			t.Fatalf("line %d: expected %q, got %q", lineIndex, expected[lineIndex], actual[lineIndex])
		}
	}
}

func TestRenderTreeSortsAndConnects(t *testing.T) {
	rootDirectory := t.TempDir()
	createFile(t, filepath.Join(rootDirectory, "x.txt"))
	createFile(t, filepath.Join(rootDirectory, "sub", "y.txt"))

	lines, renderError := treeprint.RenderTree(rootDirectory, nil)
	if renderError != nil {
		t.Fatalf("RenderTree error: %v", renderError)
	}
	assertLines(t, lines, []string{"├── sub", "│   └── y.txt", "└── x.txt"})
}

func TestRenderTreeExcludesFilesAndDirectories(t *testing.T) {
	rootDirectory := t.TempDir()
	createFile(t, filepath.Join(rootDirectory, "a", "keep.md"))
	createFile(t, filepath.Join(rootDirectory, "a", "skip.md"))
	createFile(t, filepath.Join(rootDirectory, "b.md"))
	createFile(t, filepath.Join(rootDirectory, "zz", "hidden.md"))

	lines, renderError := treeprint.RenderTree(rootDirectory, filetree.NewExclusionSet("skip.md", "zz"))
	if renderError != nil {
		t.Fatalf("RenderTree error: %v", renderError)
	}
	assertLines(t, lines, []string{"├── a", "│   └── keep.md", "└── b.md"})
}

func TestRenderTreeNestedContinuation(t *testing.T) {
	rootDirectory := t.TempDir()
	createFile(t, filepath.Join(rootDirectory, "a", "b", "c.md"))
	createFile(t, filepath.Join(rootDirectory, "a", "d.md"))

	lines, renderError := treeprint.RenderTree(rootDirectory, nil)
	if renderError != nil {
		t.Fatalf("RenderTree error: %v", renderError)
	}
	assertLines(t, lines, []string{"└── a", "    ├── b", "    │   └── c.md", "    └── d.md"})
}

func TestRenderTreeMissingRoot(t *testing.T) {
	if _, renderError := treeprint.RenderTree(filepath.Join(t.TempDir(), "missing"), nil); renderError == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestWriteAndWriteFile(t *testing.T) {
	lines := []string{"├── sub", "│   └── y.txt", "└── x.txt"}
	var buffer bytes.Buffer
	if writeError := treeprint.Write(&buffer, "root", lines); writeError != nil {
		t.Fatalf("Write error: %v", writeError)
	}
	expected := "root\n├── sub\n│   └── y.txt\n└── x.txt\n"
	if buffer.String() != expected {
		t.Fatalf("unexpected output %q", buffer.String())
	}

	outputPath := filepath.Join(t.TempDir(), "tree.txt")
	if writeError := treeprint.WriteFile(outputPath, "root", lines); writeError != nil {
		t.Fatalf("WriteFile error: %v", writeError)
	}
	content, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("read: %v", readError)
	}
	if string(content) != expected {
		t.Fatalf("unexpected file content %q", content)
	}
}
