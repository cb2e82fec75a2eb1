// Package prompt implements the interactive selection steps: numbered menus,
// single and multi-select answers, and yes/no confirmations read from an
// injectable line source.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ErrAbandoned reports an answer that did not select anything.
var ErrAbandoned = errors.New("selection abandoned")

// Prompter writes menus to out and reads answers from in.
type Prompter struct {
	in     LineReader
	out    io.Writer
	tables bool
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithTables renders menus as bordered tables instead of plain lines.
func WithTables(enabled bool) PrompterOption {
	return func(p *Prompter) {
		p.tables = enabled
	}
}

// New creates a Prompter.
func New(in LineReader, out io.Writer, opts ...PrompterOption) *Prompter {
	if out == nil {
		out = io.Discard
	}
	p := &Prompter{in: in, out: out}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Say prints a line of user-facing text.
func (p *Prompter) Say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Ask prints question and returns the trimmed answer. Exhausted input reads
// as a blank answer.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question+" ")
	line, err := p.read()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a y/n question. Only y or Y counts as yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question + " (y/n)")
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "Y", nil
}

func (p *Prompter) read() (string, error) {
	if p.in == nil {
		return "", nil
	}
	line, err := p.in.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return line, nil
}

// SelectOne shows menu and returns the chosen option. A blank, unparsable or
// out-of-range answer returns ErrAbandoned, as does an empty menu.
func SelectOne[T any](p *Prompter, menu Menu[T]) (Option[T], error) {
	if menu.Len() == 0 {
		return Option[T]{}, ErrAbandoned
	}
	p.render(menu.Title, menu.Headers, rowsOf(menu))
	answer, err := p.Ask(fmt.Sprintf("Enter a number [1-%d], or enter to skip:", menu.Len()))
	if err != nil {
		return Option[T]{}, err
	}
	index, ok := ParseChoice(answer, menu.Len())
	if !ok {
		return Option[T]{}, ErrAbandoned
	}
	option, _ := menu.Lookup(index)
	return option, nil
}

// SelectMany shows menu and returns the chosen options in the order typed,
// duplicates included. An answer that selects nothing returns ErrAbandoned.
func SelectMany[T any](p *Prompter, menu Menu[T]) ([]Option[T], error) {
	if menu.Len() == 0 {
		return nil, ErrAbandoned
	}
	p.render(menu.Title, menu.Headers, rowsOf(menu))
	answer, err := p.Ask(fmt.Sprintf("Enter one or more numbers [1-%d] separated by spaces, or enter to skip:", menu.Len()))
	if err != nil {
		return nil, err
	}
	indexes := ParseChoices(answer, menu.Len())
	if len(indexes) == 0 {
		return nil, ErrAbandoned
	}
	selected := make([]Option[T], 0, len(indexes))
	for _, index := range indexes {
		option, _ := menu.Lookup(index)
		selected = append(selected, option)
	}
	return selected, nil
}

func rowsOf[T any](menu Menu[T]) [][]string {
	rows := make([][]string, 0, menu.Len())
	for _, option := range menu.Options {
		row := append([]string{fmt.Sprintf("%d", option.Index)}, option.Columns...)
		rows = append(rows, row)
	}
	return rows
}

func (p *Prompter) render(title string, headers []string, rows [][]string) {
	if title != "" {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, title)
	}
	if p.tables {
		fmt.Fprintln(p.out, renderTable(append([]string{"#"}, headers...), rows))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(p.out, "%2s. | %s\n", row[0], strings.Join(row[1:], " | "))
	}
}

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
