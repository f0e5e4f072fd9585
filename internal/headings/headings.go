// Package headings extracts markdown heading lines of level two and deeper.
package headings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	headingMarker   = "#"
	minimumLevel    = 2
	carriageReturn  = "\r"
	lineTerminator  = '\n'

	errorOpenFileFormat = "opening %s: %w"
	errorReadFormat     = "reading headings: %w"
)

// Entry is a heading line: the number of leading '#' characters and the trimmed text.
type Entry struct {
	Level int
	Text  string
}

// ParseLine classifies a single line. Lines starting with fewer than two '#'
// characters are not headings. Fenced code blocks are not recognised.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSuffix(line, carriageReturn)
	if !strings.HasPrefix(line, headingMarker) {
		return Entry{}, false
	}
	text := strings.TrimLeft(line, headingMarker)
	level := len(line) - len(text)
	if level < minimumLevel {
		return Entry{}, false
	}
	return Entry{Level: level, Text: strings.TrimSpace(text)}, true
}

// Parse reads reader line by line and returns the headings in document order.
// Lines have no length limit.
func Parse(reader io.Reader) ([]Entry, error) {
	var entries []Entry
	bufferedReader := bufio.NewReader(reader)
	for {
		line, readError := bufferedReader.ReadString(lineTerminator)
		if line != "" {
			if entry, isHeading := ParseLine(strings.TrimSuffix(line, string(lineTerminator))); isHeading {
				entries = append(entries, entry)
			}
		}
		if readError == io.EOF {
			return entries, nil
		}
		if readError != nil {
			return nil, fmt.Errorf(errorReadFormat, readError)
		}
	}
}

// ParseFile opens filePath and parses its headings.
//
// #nosec G304
func ParseFile(filePath string) ([]Entry, error) {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return nil, fmt.Errorf(errorOpenFileFormat, filePath, openError)
	}
	defer fileHandle.Close()
	return Parse(fileHandle)
}
