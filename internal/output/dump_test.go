package output_test

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tyemirov/utilmd/internal/filetree"
	"github.com/tyemirov/utilmd/internal/output"
	"github.com/tyemirov/utilmd/internal/types"
)

func dumpFixture() *filetree.FileTree {
	return &filetree.FileTree{
		Files: []string{"a.md"},
		Folders: []filetree.Folder{
			{Name: "zeta", Tree: &filetree.FileTree{Files: []string{"z.md"}}},
			{Name: "files", Tree: &filetree.FileTree{Files: []string{"f.md"}}},
			{Name: "empty", Tree: &filetree.FileTree{}},
		},
	}
}

func TestRenderDumpJSON(t *testing.T) {
	rendered, renderError := output.RenderDump(dumpFixture(), types.FormatJSON)
	if renderError != nil {
		t.Fatalf("RenderDump error: %v", renderError)
	}
	var decoded output.DumpNode
	if decodeError := json.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		t.Fatalf("decode: %v", decodeError)
	}
	if len(decoded.Files) != 1 || decoded.Files[0] != "a.md" {
		t.Fatalf("unexpected root files %v", decoded.Files)
	}
	if decoded.Folders["files"].Files[0] != "f.md" {
		t.Fatalf("folder named files lost: %+v", decoded.Folders)
	}
	if _, found := decoded.Folders["empty"]; !found {
		t.Fatalf("empty folder missing: %+v", decoded.Folders)
	}
}

func TestRenderDumpYAML(t *testing.T) {
	rendered, renderError := output.RenderDump(dumpFixture(), types.FormatYAML)
	if renderError != nil {
		t.Fatalf("RenderDump error: %v", renderError)
	}
	if !strings.HasPrefix(rendered, "files:\n") || !strings.Contains(rendered, "- a.md\n") || !strings.Contains(rendered, "folders:\n") {
		t.Fatalf("unexpected YAML:\n%s", rendered)
	}
	var decoded output.DumpNode
	if decodeError := yaml.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		t.Fatalf("decode: %v", decodeError)
	}
	if decoded.Folders["zeta"].Files[0] != "z.md" {
		t.Fatalf("unexpected decoded tree %+v", decoded)
	}
}

func TestRenderDumpRejectsUnknownFormat(t *testing.T) {
	if _, renderError := output.RenderDump(dumpFixture(), "xml"); renderError == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
