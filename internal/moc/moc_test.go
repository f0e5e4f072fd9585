package moc_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tyemirov/utilmd/internal/filetree"
	"github.com/tyemirov/utilmd/internal/moc"
)

const selfExecutableName = "utilmd"

var errWriterClosed = errors.New("writer closed")

type failingWriter struct {
	remainingWrites int
}

func (writer *failingWriter) Write(data []byte) (int, error) {
	if writer.remainingWrites == 0 {
		return 0, errWriterClosed
	}
	writer.remainingWrites--
	return len(data), nil
}

func sampleTree() *filetree.FileTree {
	return &filetree.FileTree{
		Files: []string{"a.md", "b_two.md", selfExecutableName},
		Folders: []filetree.Folder{
			{
				Name: "sub",
				Tree: &filetree.FileTree{
					Files: []string{"c.md"},
					Folders: []filetree.Folder{
						{Name: "deeper", Tree: &filetree.FileTree{Files: []string{"d_e.txt"}}},
					},
				},
			},
			{Name: "_images", Tree: &filetree.FileTree{Files: []string{"image.png"}}},
		},
	}
}

// TestGenerateRendersNestedOutline verifies links, blank lines and nested headings.
func TestGenerateRendersNestedOutline(testingHandle *testing.T) {
	var buffer bytes.Buffer
	options := moc.Options{
		Title:         "Notes",
		Exclusions:    filetree.NewExclusionSet("_images"),
		SkipFileNames: []string{selfExecutableName},
		Headings:      true,
	}
	if generateError := moc.Generate(&buffer, sampleTree(), options); generateError != nil {
		testingHandle.Fatalf("Generate error: %v", generateError)
	}

	expected := strings.Join([]string{
		"# Notes MOC",
		"",
		"## Index",
		"",
		"---",
		"",
		"- [[a]]",
		"- [[b two]]",
		"",
		"### sub",
		"",
		"- [[c]]",
		"",
		"#### deeper",
		"",
		"- [[d e]]",
		"",
		"",
	}, "\n")
	if buffer.String() != expected {
		testingHandle.Fatalf("unexpected MOC output:\n%q\nwant:\n%q", buffer.String(), expected)
	}
}

// TestGenerateWithoutHeadings verifies folder headings can be suppressed.
func TestGenerateWithoutHeadings(testingHandle *testing.T) {
	var buffer bytes.Buffer
	options := moc.Options{Title: "Notes", StartLevel: 2}
	if generateError := moc.Generate(&buffer, sampleTree(), options); generateError != nil {
		testingHandle.Fatalf("Generate error: %v", generateError)
	}
	output := buffer.String()
	if strings.Contains(output, "## sub") || strings.Contains(output, "### sub") {
		testingHandle.Fatalf("unexpected folder heading in %q", output)
	}
	for _, expectedLine := range []string{"- [[c]]", "- [[image]]", "- [[" + selfExecutableName + "]]"} {
		if !strings.Contains(output, expectedLine) {
			testingHandle.Fatalf("missing %q in %q", expectedLine, output)
		}
	}
}

// TestGenerateReportsWriterErrors verifies a failing writer aborts generation.
func TestGenerateReportsWriterErrors(testingHandle *testing.T) {
	writer := &failingWriter{remainingWrites: 3}
	generateError := moc.Generate(writer, sampleTree(), moc.Options{Title: "Notes", Headings: true})
	if !errors.Is(generateError, errWriterClosed) {
		testingHandle.Fatalf("expected writer error, got %v", generateError)
	}
}

// TestWriteFileCreatesOutput verifies the file is written with the full MOC.
func TestWriteFileCreatesOutput(testingHandle *testing.T) {
	outputDirectory := testingHandle.TempDir()
	outputPath := filepath.Join(outputDirectory, moc.OutputFileName("Notes"))
	if filepath.Base(outputPath) != "Notes MOC.md" {
		testingHandle.Fatalf("unexpected output name %s", filepath.Base(outputPath))
	}
	if writeError := moc.WriteFile(outputPath, sampleTree(), moc.Options{Title: "Notes", Headings: true}); writeError != nil {
		testingHandle.Fatalf("WriteFile error: %v", writeError)
	}
	content, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingHandle.Fatalf("read output: %v", readError)
	}
	if !strings.HasPrefix(string(content), "# Notes MOC\n\n## Index\n\n---\n\n") {
		testingHandle.Fatalf("unexpected preamble: %q", content)
	}
	if !strings.Contains(string(content), "### sub\n\n- [[c]]\n") {
		testingHandle.Fatalf("missing nested section: %q", content)
	}
}

// TestWriteFileReportsCreateFailure verifies an unwritable destination yields an error.
func TestWriteFileReportsCreateFailure(testingHandle *testing.T) {
	outputPath := filepath.Join(testingHandle.TempDir(), "missing", "Notes MOC.md")
	if writeError := moc.WriteFile(outputPath, sampleTree(), moc.Options{Title: "Notes"}); writeError == nil {
		testingHandle.Fatalf("expected error for %s", outputPath)
	}
}

func TestGenerateKeepsBlankLineWhenEveryFileIsSkipped(testingHandle *testing.T) {
	tree := &filetree.FileTree{
		Files: []string{selfExecutableName, "notes MOC.md"},
		Folders: []filetree.Folder{
			{Name: "sub", Tree: &filetree.FileTree{Files: []string{"c.md"}}},
		},
	}
	var buffer bytes.Buffer
	options := moc.Options{
		Title:         "notes",
		SkipFileNames: []string{selfExecutableName, "notes MOC.md"},
		Headings:      true,
	}
	if generateError := moc.Generate(&buffer, tree, options); generateError != nil {
		testingHandle.Fatalf("Generate error: %v", generateError)
	}
	expected := "# notes MOC\n\n## Index\n\n---\n\n\n### sub\n\n- [[c]]\n\n"
	if buffer.String() != expected {
		testingHandle.Fatalf("unexpected MOC:\n%q\nwant:\n%q", buffer.String(), expected)
	}
}
