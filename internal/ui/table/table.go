// Package table prints data as aligned columns, used by the presets and
// features commands. Cells are rendered from text/template formats and
// padded by their display width, so wide characters stay aligned.
package table

import (
	"bytes"
	"io"
	"strings"
	"text/template"

	"github.com/restic/countdown/internal/ui"
)

// Table contains data for a table to be printed.
type Table struct {
	headers   []string
	templates []*template.Template
	rows      []interface{}
	footer    []string

	CellSeparator string
}

var funcmap = template.FuncMap{
	"join":  strings.Join,
	"clock": ui.FormatClock,
}

// New returns an empty table.
func New() *Table {
	return &Table{CellSeparator: "  "}
}

// AddColumn adds a column with header whose cells are rendered from format,
// a text/template string. AddColumn panics if format cannot be parsed.
func (t *Table) AddColumn(header, format string) {
	tmpl := template.Must(template.New("column " + header).Funcs(funcmap).Parse(format))
	t.headers = append(t.headers, header)
	t.templates = append(t.templates, tmpl)
}

// AddRow adds a row which is rendered with each column's template.
func (t *Table) AddRow(data interface{}) {
	t.rows = append(t.rows, data)
}

// AddFooter adds a line printed below the table.
func (t *Table) AddFooter(line string) {
	t.footer = append(t.footer, line)
}

func (t *Table) render() ([][]string, error) {
	var buf bytes.Buffer
	cells := make([][]string, 0, len(t.rows))

	for _, data := range t.rows {
		row := make([]string, 0, len(t.templates))
		for _, tmpl := range t.templates {
			buf.Reset()
			if err := tmpl.Execute(&buf, data); err != nil {
				return nil, err
			}
			row = append(row, buf.String())
		}
		cells = append(cells, row)
	}

	return cells, nil
}

func widen(widths []int, row []string) {
	for i, cell := range row {
		for _, line := range strings.Split(cell, "\n") {
			if w := ui.DisplayWidth(line); w > widths[i] {
				widths[i] = w
			}
		}
	}
}

// writeRow writes a row, cells with several lines span several output lines.
func (t *Table) writeRow(w io.Writer, row []string, widths []int) error {
	cellLines := make([][]string, len(row))
	height := 1
	for i, cell := range row {
		cellLines[i] = strings.Split(cell, "\n")
		if len(cellLines[i]) > height {
			height = len(cellLines[i])
		}
	}

	for l := 0; l < height; l++ {
		var sb strings.Builder
		for i, lines := range cellLines {
			if i > 0 {
				sb.WriteString(t.CellSeparator)
			}

			var v string
			if l < len(lines) {
				v = lines[l]
			}
			sb.WriteString(v)
			if pad := widths[i] - ui.DisplayWidth(v); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
		}

		if _, err := io.WriteString(w, strings.TrimRight(sb.String(), " ")+"\n"); err != nil {
			return err
		}
	}

	return nil
}

// Write prints the table to w. A table without columns prints nothing.
func (t *Table) Write(w io.Writer) error {
	if len(t.templates) == 0 {
		return nil
	}

	rows, err := t.render()
	if err != nil {
		return err
	}

	widths := make([]int, len(t.headers))
	widen(widths, t.headers)
	for _, row := range rows {
		widen(widths, row)
	}

	total := (len(widths) - 1) * ui.DisplayWidth(t.CellSeparator)
	for _, width := range widths {
		total += width
	}
	separator := strings.Repeat("-", total) + "\n"

	if err := t.writeRow(w, t.headers, widths); err != nil {
		return err
	}
	if _, err := io.WriteString(w, separator); err != nil {
		return err
	}

	for _, row := range rows {
		if err := t.writeRow(w, row, widths); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, separator); err != nil {
		return err
	}

	for _, line := range t.footer {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}

	return nil
}
