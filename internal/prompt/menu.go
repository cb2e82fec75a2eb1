package prompt

import (
	"strconv"
	"strings"
)

// Option is one numbered menu entry.
type Option[T any] struct {
	Index   int
	Columns []string
	Value   T
}

// Menu is an ordered list of options numbered 1..N in input order.
type Menu[T any] struct {
	Title   string
	Headers []string
	Options []Option[T]
}

// NewMenu numbers values 1..N in the order given. columns supplies the
// descriptive cells shown next to each index.
func NewMenu[T any](title string, headers []string, values []T, columns func(T) []string) Menu[T] {
	options := make([]Option[T], 0, len(values))
	for i, value := range values {
		var cells []string
		if columns != nil {
			cells = columns(value)
		}
		options = append(options, Option[T]{Index: i + 1, Columns: cells, Value: value})
	}
	return Menu[T]{Title: title, Headers: headers, Options: options}
}

// Len returns the number of options.
func (m Menu[T]) Len() int {
	return len(m.Options)
}

// Lookup returns the option with the given index.
func (m Menu[T]) Lookup(index int) (Option[T], bool) {
	for _, option := range m.Options {
		if option.Index == index {
			return option, true
		}
	}
	return Option[T]{}, false
}

// ParseChoice parses a single-select answer. The answer must be exactly one
// token naming an index in 1..n.
func ParseChoice(answer string, n int) (int, bool) {
	fields := strings.Fields(answer)
	if len(fields) != 1 {
		return 0, false
	}
	index, err := strconv.Atoi(fields[0])
	if err != nil || index < 1 || index > n {
		return 0, false
	}
	return index, true
}

// ParseChoices parses a multi-select answer into indexes in the order typed.
// Duplicates are kept and tokens that are not an index in 1..n are dropped.
func ParseChoices(answer string, n int) []int {
	var out []int
	for _, token := range strings.Fields(answer) {
		index, err := strconv.Atoi(token)
		if err != nil || index < 1 || index > n {
			continue
		}
		out = append(out, index)
	}
	return out
}
