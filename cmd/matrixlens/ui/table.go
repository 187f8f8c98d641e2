package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"matrixlens/internal/matrix"
)

// Cell is one table cell. Strength cells render with the fixed
// strength color; plain cells use the body style.
type Cell struct {
	Text     string
	Strength bool
}

// TextCell wraps a plain value.
func TextCell(text string) Cell { return Cell{Text: text} }

// StrengthCell wraps a strength code value.
func StrengthCell(text string) Cell { return Cell{Text: text, Strength: true} }

// Table is a static table with strength-aware cell coloring.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]Cell
}

// NewTable creates a new Table with the given title and headers.
func NewTable(title string, headers []string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]Cell, 0),
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...Cell) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table using the provided styles.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	// Calculate column widths
	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell.Text); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	// Render Header
	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	// Render Divider
	totalWidth := 0
	for _, w := range colWidths {
		totalWidth += w
	}
	totalWidth += len(t.Headers) - 1
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	// Render Rows
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(colWidths) {
				continue
			}
			style := rowStyle
			if cell.Strength {
				style = styles.StrengthStyle(matrix.Strength(cell.Text)).Padding(0, 1)
			}
			sb.WriteString(style.Width(colWidths[i]).Render(cell.Text))
			if i < len(row)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
