package index

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	insertedLinePrefix  = "+ "
	deletedLinePrefix   = "- "
	unchangedLinePrefix = "  "
)

// Diff renders a line-oriented comparison of before and after. Each line is
// prefixed with "+ ", "- " or two spaces.
func Diff(before string, after string) string {
	matcher := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := matcher.DiffLinesToChars(before, after)
	diffs := matcher.DiffCharsToLines(matcher.DiffMain(beforeChars, afterChars, false), lineArray)

	var builder strings.Builder
	for _, diff := range diffs {
		prefix := unchangedLinePrefix
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = insertedLinePrefix
		case diffmatchpatch.DiffDelete:
			prefix = deletedLinePrefix
		}
		for _, line := range splitLines(diff.Text) {
			builder.WriteString(prefix)
			builder.WriteString(line)
			builder.WriteString(lineTerminator)
		}
	}
	return builder.String()
}
