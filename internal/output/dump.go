// Package output renders the traversal result of a directory in structured formats.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tyemirov/utilmd/internal/filetree"
	"github.com/tyemirov/utilmd/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "
	yamlIndent   = 2

	unsupportedFormatMessage = "unsupported dump format '%s'"
)

// DumpNode is the serialised form of a filetree.FileTree. Folder keys are
// emitted in sorted order by both encoders.
type DumpNode struct {
	Files   []string            `json:"files,omitempty" yaml:"files,omitempty"`
	Folders map[string]DumpNode `json:"folders,omitempty" yaml:"folders,omitempty"`
}

// NewDumpNode converts tree into its serialisable form.
func NewDumpNode(tree *filetree.FileTree) DumpNode {
	if tree == nil {
		return DumpNode{}
	}
	node := DumpNode{Files: append([]string(nil), tree.Files...)}
	if len(tree.Folders) > 0 {
		node.Folders = make(map[string]DumpNode, len(tree.Folders))
		for _, folder := range tree.Folders {
			node.Folders[folder.Name] = NewDumpNode(folder.Tree)
		}
	}
	return node
}

// RenderDump returns tree encoded as JSON or YAML.
func RenderDump(tree *filetree.FileTree, format string) (string, error) {
	node := NewDumpNode(tree)
	switch format {
	case types.FormatJSON:
		encoded, marshalError := json.MarshalIndent(node, indentPrefix, indentSpacer)
		if marshalError != nil {
			return "", marshalError
		}
		return string(encoded) + "\n", nil
	case types.FormatYAML:
		var buffer bytes.Buffer
		encoder := yaml.NewEncoder(&buffer)
		encoder.SetIndent(yamlIndent)
		if encodeError := encoder.Encode(node); encodeError != nil {
			return "", encodeError
		}
		if closeError := encoder.Close(); closeError != nil {
			return "", closeError
		}
		return buffer.String(), nil
	default:
		return "", fmt.Errorf(unsupportedFormatMessage, format)
	}
}
