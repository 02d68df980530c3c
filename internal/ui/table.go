package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// Table renders rows of data in aligned columns. Rows are buffered until
// Flush so the header can be styled after alignment.
type Table struct {
	out     io.Writer
	buf     bytes.Buffer
	w       *tabwriter.Writer
	styled  bool
	headers []string
}

// NewTable creates a new table writer with the given column headers. When
// styled is true the header line is rendered bold, which is only useful on a
// terminal.
func NewTable(out io.Writer, styled bool, headers ...string) *Table {
	t := &Table{out: out, styled: styled, headers: headers}
	t.w = tabwriter.NewWriter(&t.buf, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(t.w, strings.Join(headers, "\t"))
	return t
}

// Row appends a row of values. The number of values should match the number of headers.
func (t *Table) Row(values ...any) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Flush aligns the buffered rows and writes them out.
func (t *Table) Flush() error {
	if err := t.w.Flush(); err != nil {
		return err
	}
	text := t.buf.String()
	t.buf.Reset()
	if t.styled {
		header, rest, _ := strings.Cut(text, "\n")
		text = headerStyle.Render(strings.TrimRight(header, " ")) + "\n" + rest
	}
	_, err := io.WriteString(t.out, text)
	return err
}
