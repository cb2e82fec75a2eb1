// Package dirlist reads the list of game directories to catalogue.
//
// Each line has the form <drive>:<backslash-separated path>, for example
// D:\GAMES\SuperFoo2. The final path segment seeds the title guess and the
// path, converted to forward slashes, addresses the output directory.
package dirlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"launchmeta/internal/naming"
)

// Entry is one directory specification from the input list.
type Entry struct {
	Line          string
	DriveLabel    string
	RawPath       string
	UnixPath      string
	Subdir        string
	InferredTitle string
}

// OutputDir returns <root>/<drive><unix path>.
func (e Entry) OutputDir(root string) string {
	return filepath.Join(root, filepath.FromSlash(e.DriveLabel+e.UnixPath))
}

// ParseLine converts a single input line into an Entry.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Entry{}, fmt.Errorf("empty directory specification")
	}
	drive, rawPath, ok := strings.Cut(trimmed, ":")
	if !ok {
		return Entry{}, fmt.Errorf("directory specification %q has no drive label", trimmed)
	}
	drive = strings.TrimSpace(drive)
	if drive == "" {
		return Entry{}, fmt.Errorf("directory specification %q has an empty drive label", trimmed)
	}
	subdir := rawPath
	if idx := strings.LastIndex(rawPath, `\`); idx >= 0 {
		subdir = rawPath[idx+1:]
	}
	return Entry{
		Line:          trimmed,
		DriveLabel:    drive,
		RawPath:       rawPath,
		UnixPath:      strings.ReplaceAll(rawPath, `\`, "/"),
		Subdir:        subdir,
		InferredTitle: naming.InferTitle(subdir),
	}, nil
}

// Parse reads every non-blank line from r. Lines that cannot be parsed are
// returned as errors alongside the entries that could.
func Parse(r io.Reader) ([]Entry, []error, error) {
	var (
		entries []Entry
		bad     []error
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParseLine(line)
		if err != nil {
			bad = append(bad, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read directory list: %w", err)
	}
	return entries, bad, nil
}

// Load opens and parses the list at path.
func Load(path string) ([]Entry, []error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open directory list: %w", err)
	}
	defer file.Close()
	return Parse(file)
}
