// Package components renders composite CLI output.
package components

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/bnema/ocicomp/internal/adapters/in/cli/ui/styles"
)

// Column is a table column. Width 0 means unbounded.
type Column struct {
	Title string
	Width int
}

// Table renders rows under columns with the CLI theme. Cells wider than
// their column are cut with an ellipsis.
func Table(columns []Column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = truncate(col.Title, col.Width)
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(row))
		for c, cell := range row {
			width := 0
			if c < len(columns) {
				width = columns[c].Width
			}
			cells[r][c] = truncate(cell, width)
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Theme.TableBorder).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := styles.Theme.TableCell
			if row == table.HeaderRow {
				style = styles.Theme.TableHeader
			}
			if col >= 0 && col < len(columns) && columns[col].Width > 0 {
				// padding is inside the width
				w := columns[col].Width + 2
				style = style.Width(w).MaxWidth(w)
			}
			return style
		}).
		String()
}

// KeyValueTable renders a map sorted by key.
func KeyValueTable(keyTitle, valueTitle string, values map[string]string, valueWidth int) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, values[k]})
	}

	return Table([]Column{{Title: keyTitle}, {Title: valueTitle, Width: valueWidth}}, rows)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
