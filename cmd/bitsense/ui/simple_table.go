package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows for the history and stats commands.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string
	// RightAlign marks numeric columns.
	RightAlign map[int]bool
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:      title,
		Headers:    headers,
		Rows:       make([][]string, 0),
		RightAlign: make(map[int]bool),
	}
}

// AlignRight right-aligns the given column indices.
func (t *SimpleTable) AlignRight(cols ...int) *SimpleTable {
	for _, c := range cols {
		t.RightAlign[c] = true
	}
	return t
}

// AddRow adds a row to the table. Missing cells render empty.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table, or "" when it has no rows.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := t.columnWidths()
	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sep := styles.Muted.Render("│")

	t.writeLine(&sb, t.Headers, widths, headerStyle, sep)

	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(styles.Divider.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		t.writeLine(&sb, row, widths, rowStyle, sep)
	}
	return sb.String()
}

func (t *SimpleTable) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// Room for the one-cell padding on each side.
	for i := range widths {
		widths[i] += 2
	}
	return widths
}

func (t *SimpleTable) writeLine(sb *strings.Builder, cells []string, widths []int, style lipgloss.Style, sep string) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		s := style.Width(w)
		if t.RightAlign[i] {
			s = s.Align(lipgloss.Right)
		}
		sb.WriteString(s.Render(cell))
		if i < len(widths)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
}
