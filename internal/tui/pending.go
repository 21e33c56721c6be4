package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcvera/migrapanel/internal/api"
	"github.com/jcvera/migrapanel/internal/query"
)

// pendingModel is the pending-items cross-tab: one row per unfinished
// project with outstanding checklist work, one column per checklist
// field that has at least one hit. A marked cell can be advanced to its
// next state in place.
type pendingModel struct {
	client  *api.Client
	width   int
	height  int
	summary query.PendingSummary
	row     int
	col     int
	loadErr string
}

func newPendingModel(client *api.Client) pendingModel {
	return pendingModel{client: client}
}

func (m *pendingModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m pendingModel) update(msg tea.Msg) (pendingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsMsg:
		if msg.err != nil {
			m.loadErr = fmt.Sprintf("Error al cargar los proyectos: %v", msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.summary = query.BuildPending(msg.projects)
		if m.row >= len(m.summary.Rows) {
			m.row = max(0, len(m.summary.Rows)-1)
		}
		if m.col >= len(m.summary.Columns) {
			m.col = max(0, len(m.summary.Columns)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, keys.Down):
			if m.row < len(m.summary.Rows)-1 {
				m.row++
			}
		case key.Matches(msg, keys.Left):
			if m.col > 0 {
				m.col--
			}
		case key.Matches(msg, keys.Right):
			if m.col < len(m.summary.Columns)-1 {
				m.col++
			}
		case key.Matches(msg, keys.Enter):
			return m.advanceCell()
		}
	}
	return m, nil
}

// advanceCell moves the selected cell to its next state: pendiente to
// en curso, en curso to OK. Unmarked cells have nothing to advance.
func (m pendingModel) advanceCell() (pendingModel, tea.Cmd) {
	if m.row >= len(m.summary.Rows) || m.col >= len(m.summary.Columns) {
		return m, nil
	}
	row := m.summary.Rows[m.row]
	title := m.summary.Columns[m.col]

	var next string
	switch row.Marks[title] {
	case query.MarkPending:
		next = "En Curso"
	case query.MarkInProgress:
		next = "OK"
	default:
		return m, nil
	}

	client := m.client
	id := row.ProjectID
	field := query.FieldForColumn(title)
	return m, func() tea.Msg {
		err := client.UpdateProjectStatus(context.Background(), id, field, next)
		return cellUpdatedMsg{err: err}
	}
}

const (
	markPendingGlyph    = "⚠"
	markInProgressGlyph = "◷"
)

func (m pendingModel) view() string {
	w := m.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Items Pendientes"))

	if m.loadErr != "" {
		rows = append(rows, errorStyle.Render("  "+m.loadErr))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	if len(m.summary.Rows) == 0 {
		rows = append(rows, mutedStyle.Render("  No hay items pendientes. Todo al día."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	nameWidth := 28
	colWidth := 0
	for _, col := range m.summary.Columns {
		if len([]rune(col)) > colWidth {
			colWidth = len([]rune(col))
		}
	}
	colWidth = min(colWidth, 14)

	var header []string
	header = append(header, pad("Proyecto", nameWidth))
	for j, col := range m.summary.Columns {
		cell := " " + pad(col, colWidth) + " "
		if j == m.col {
			header = append(header, selectedItemStyle.Render(cell))
		} else {
			header = append(header, mutedStyle.Render(cell))
		}
	}
	rows = append(rows, "  "+strings.Join(header, " "))

	first, visible := m.visibleRows()
	for i, row := range visible {
		selected := first+i == m.row
		label := pad(rowLabel(row), nameWidth)
		if selected {
			label = selectedItemStyle.Render(label)
		} else {
			label = normalItemStyle.Render(label)
		}
		cells := []string{label}
		for j, col := range m.summary.Columns {
			cells = append(cells, renderMark(row.Marks[col], colWidth, selected && j == m.col))
		}
		rows = append(rows, "  "+strings.Join(cells, " "))
	}

	if len(visible) < len(m.summary.Rows) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf(
			"  %d-%d de %d", first+1, first+len(visible), len(m.summary.Rows))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf(
		"  %s %s   %s %s   enter: avanzar estado",
		errorStyle.Render(markPendingGlyph), "Pendiente",
		infoStyle.Render(markInProgressGlyph), "En Curso")))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// visibleRows returns the window of rows that fits the panel, keeping
// the selected row inside it.
func (m pendingModel) visibleRows() (int, []query.PendingRow) {
	limit := m.height - 8
	if limit <= 0 || len(m.summary.Rows) <= limit {
		return 0, m.summary.Rows
	}
	first := 0
	if m.row >= limit {
		first = m.row - limit + 1
	}
	return first, m.summary.Rows[first : first+limit]
}

func rowLabel(row query.PendingRow) string {
	name := row.ProjectName
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%d %s", row.ProjectID, name)
}

func renderMark(mark query.Mark, w int, selected bool) string {
	var s string
	switch mark {
	case query.MarkPending:
		s = errorStyle.Render(pad(markPendingGlyph, w))
	case query.MarkInProgress:
		s = infoStyle.Render(pad(markInProgressGlyph, w))
	default:
		s = mutedStyle.Render(pad("·", w))
	}
	if selected {
		return highlightStyle.Render("[") + s + highlightStyle.Render("]")
	}
	return " " + s + " "
}
