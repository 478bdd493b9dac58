package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

const columnGap = "  "

// Table renders rows under a header and a rule. Column widths are measured
// in runes.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	t := &Table{writer: w, headers: headers}
	if opts != nil {
		t.noColor = opts.NoColor
	}
	return t
}

// AddRow adds a row. Cells beyond the header count are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows added.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render renders the table to the writer
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	bold := newColor(t.noColor, color.Bold, color.FgCyan)
	gray := newColor(t.noColor, color.FgHiBlack)

	cells := make([]string, len(widths))
	for i, header := range t.headers {
		cells[i] = bold.Sprint(padRight(header, widths[i]))
	}
	t.writeLine(cells)

	for i, width := range widths {
		cells[i] = gray.Sprint(strings.Repeat("─", width))
	}
	t.writeLine(cells)

	for _, row := range t.rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = padRight(cell, widths[i])
		}
		t.writeLine(cells)
	}
}

func (t *Table) writeLine(cells []string) {
	fmt.Fprintln(t.writer, strings.TrimRight(strings.Join(cells, columnGap), " "))
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func newColor(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

// KeyValueTable renders aligned "key: value" lines.
type KeyValueTable struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair to the table
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// AddRowIf adds the pair only when value is not empty.
func (t *KeyValueTable) AddRowIf(key, value string) {
	if value != "" {
		t.AddRow(key, value)
	}
}

// Render renders the key-value table
func (t *KeyValueTable) Render() {
	width := 0
	for _, key := range t.keys {
		width = max(width, utf8.RuneCountInString(key)+1)
	}

	cyan := newColor(t.noColor, color.FgCyan)
	for i, key := range t.keys {
		cyan.Fprint(t.writer, padRight(key+":", width))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}

// Section is a titled block of indented lines. Empty sections render
// nothing.
type Section struct {
	writer  io.Writer
	title   string
	lines   []string
	noColor bool
}

// NewSection creates a new section
func NewSection(w io.Writer, title string, noColor bool) *Section {
	return &Section{writer: w, title: title, noColor: noColor}
}

// AddLine adds a line to the section content
func (s *Section) AddLine(line string) {
	s.lines = append(s.lines, line)
}

// AddLinef adds a formatted line.
func (s *Section) AddLinef(format string, args ...interface{}) {
	s.AddLine(fmt.Sprintf(format, args...))
}

// Render renders the section
func (s *Section) Render() {
	if len(s.lines) == 0 {
		return
	}

	newColor(s.noColor, color.Bold, color.FgCyan).Fprintf(s.writer, "%s (%d)\n", s.title, len(s.lines))
	for _, line := range s.lines {
		fmt.Fprintf(s.writer, "  %s\n", line)
	}
	fmt.Fprintln(s.writer)
}

// Header renders a title underlined to its own width.
func Header(w io.Writer, title string, noColor bool) {
	newColor(noColor, color.Bold, color.FgCyan).Fprintln(w, title)
	newColor(noColor, color.FgHiBlack).Fprintln(w, strings.Repeat("─", utf8.RuneCountInString(title)))
}
