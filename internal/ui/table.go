package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mapflow-dev/mapflow/internal/workflow"
)

// Column represents a table column definition
type Column struct {
	Title     string
	Key       string
	Width     int
	StyleFunc func(value string) lipgloss.Style
}

// Row represents a table row with data
type Row map[string]string

// Table is a small lipgloss table renderer.
type Table struct {
	columns        []Column
	rows           []Row
	headerStyle    lipgloss.Style
	separatorStyle lipgloss.Style
}

// NewTable creates a new table with default styling
func NewTable() *Table {
	return &Table{
		headerStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorBrightCyan)).Padding(0, 1),
		separatorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightGray)),
	}
}

// SetColumns sets the table columns
func (t *Table) SetColumns(columns []Column) *Table {
	t.columns = columns
	return t
}

// SetRows sets the table data
func (t *Table) SetRows(rows []Row) *Table {
	t.rows = rows
	return t
}

// columnWidths sizes each column to its widest cell or title.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = runewidth.StringWidth(col.Title)
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		for _, row := range t.rows {
			if w := runewidth.StringWidth(row[col.Key]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	var sb strings.Builder
	widths := t.columnWidths()

	headerCells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cell := lipgloss.NewStyle().Width(widths[i]).Inline(true).Render(col.Title)
		headerCells[i] = t.headerStyle.Render(cell)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, headerCells...))
	sb.WriteString("\n")

	totalWidth := 0
	for _, width := range widths {
		totalWidth += width + 2 // +2 for padding
	}
	sb.WriteString(t.separatorStyle.Render(strings.Repeat("─", totalWidth)))
	sb.WriteString("\n")

	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			value := row[col.Key]
			if value == "" {
				value = "-"
			}

			cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightWhite))
			if col.StyleFunc != nil {
				cellStyle = col.StyleFunc(value)
			}

			cell := cellStyle.Width(widths[i]).Inline(true).Render(value)
			cells[i] = lipgloss.NewStyle().Padding(0, 1).Render(cell)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, cells...))
		sb.WriteString("\n")
	}

	return sb.String()
}

// stepStatus classifies a stage relative to the active step index.
func stepStatus(index, current int) string {
	switch {
	case index < current:
		return StatusDone
	case index == current:
		return StatusActive
	default:
		return StatusPending
	}
}

// statusStyle picks the cell style for a status value.
func statusStyle(value string) lipgloss.Style {
	switch value {
	case StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen))
	case StatusActive:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorYellow))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray))
	}
}

// StepTable renders the registry stages with their status relative to the
// active step. An out-of-range current index simply marks every stage done
// or pending; no stage is invented for it.
func StepTable(registry *workflow.Registry, current int) string {
	rows := make([]Row, 0, registry.Count())
	for i, name := range registry.Steps() {
		rows = append(rows, Row{
			"index":  strconv.Itoa(i + 1),
			"stage":  name,
			"status": stepStatus(i, current),
		})
	}

	return NewTable().
		SetColumns([]Column{
			{Title: "#", Key: "index"},
			{Title: "STAGE", Key: "stage"},
			{Title: "STATUS", Key: "status", StyleFunc: statusStyle},
		}).
		SetRows(rows).
		Render()
}
