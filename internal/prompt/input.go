package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LineReader yields one line of user input per call. It returns io.EOF when
// no further input exists.
type LineReader interface {
	ReadLine() (string, error)
}

// Console reads lines from an interactive stream such as os.Stdin.
type Console struct {
	reader *bufio.Reader
}

// NewConsole wraps r.
func NewConsole(r io.Reader) *Console {
	return &Console{reader: bufio.NewReader(r)}
}

// ReadLine implements LineReader. A final line without a newline is returned
// before io.EOF.
func (c *Console) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Script replays a fixed sequence of answers.
type Script struct {
	lines []string
	next  int
}

// Lines returns a Script that answers with lines in order.
func Lines(lines ...string) *Script {
	return &Script{lines: append([]string(nil), lines...)}
}

// LoadScript reads an answers file, one answer per line. Blank lines are
// answers too.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return Lines(), nil
	}
	return Lines(strings.Split(text, "\n")...), nil
}

// ReadLine implements LineReader.
func (s *Script) ReadLine() (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

// Remaining reports how many answers have not been consumed.
func (s *Script) Remaining() int {
	return len(s.lines) - s.next
}
