package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcvera/migrapanel/internal/api"
	"github.com/jcvera/migrapanel/internal/model"
	"github.com/jcvera/migrapanel/internal/query"
)

// projectsModel is the main view: monthly chart, counters, filtered and
// paginated project table, detail modal and add/edit form. It owns the
// snapshot and the filter state; every mutation goes through
// recompute(), so the visible-id sequence is always current before any
// pagination or navigation action completes.
type projectsModel struct {
	client *api.Client
	width  int
	height int

	snapshot []model.Project
	filters  query.Filters
	result   query.Result
	years    []int

	cursor int // row cursor within the current page

	chart  chartModel
	detail detailModel
	form   formModel

	searching   bool
	searchInput textinput.Model

	loadErr string
}

func newProjectsModel(client *api.Client) projectsModel {
	ti := textinput.New()
	ti.Placeholder = "buscar en todos los campos…"
	ti.CharLimit = 120
	ti.Width = 40

	return projectsModel{
		client:      client,
		filters:     query.Filters{Status: query.StatusNotFinished, Page: 1},
		chart:       newChartModel(),
		form:        newFormModel(client),
		searchInput: ti,
	}
}

func (m *projectsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.chart.setSize(max(w-10, 24))
	m.form.setSize(w)
}

func (m projectsModel) refresh() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		return projectsMsg{projects: projects, err: err}
	}
}

func (m projectsModel) loadStats() tea.Cmd {
	client := m.client
	year := m.filters.Year
	return func() tea.Msg {
		stats, err := client.Stats(context.Background(), year)
		return statsMsg{stats: stats, err: err}
	}
}

// recompute rederives the visible set from snapshot and filters.
func (m *projectsModel) recompute() {
	m.result = query.Apply(m.snapshot, m.filters)
	m.filters.Page = query.ClampPage(m.filters.Page, m.result.TotalPages)
	if rows := m.pageRows(); m.cursor >= len(rows) {
		m.cursor = max(0, len(rows)-1)
	}
}

func (m *projectsModel) pageRows() []model.Project {
	return query.PageSlice(m.result.Visible, m.filters.Page)
}

func (m *projectsModel) findProject(id int64) *model.Project {
	for i := range m.snapshot {
		if m.snapshot[i].ID == id {
			return &m.snapshot[i]
		}
	}
	return nil
}

func (m projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsMsg:
		if msg.err != nil {
			m.loadErr = fmt.Sprintf("Error al cargar los proyectos: %v", msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.snapshot = msg.projects
		m.years = query.Years(m.snapshot)
		m.recompute()
		return m, nil

	case statsMsg:
		if msg.err != nil {
			return m, errorCmd("Error al cargar el gráfico: %v", msg.err)
		}
		m.chart.setStats(msg.stats)
		return m, nil

	case projectSavedMsg:
		if msg.err != nil {
			// Keep the modal open with the attempted values for a retry.
			return m, tea.Batch(
				m.form.reopen(),
				errorCmd("Error al guardar el proyecto: %v", msg.err),
			)
		}
		m.form.close()
		if msg.isEdit {
			// The original flow reopens the detail view after an edit.
			m.detail.open(msg.id)
		}
		return m, tea.Batch(
			m.refresh(),
			m.loadStats(),
			statusCmd("Proyecto %d guardado", msg.id),
		)

	case tea.KeyMsg:
		switch {
		case m.form.active:
			var cmd tea.Cmd
			m.form, cmd = m.form.update(msg)
			return m, cmd
		case m.searching:
			return m.updateSearch(msg)
		case m.detail.active:
			return m.updateDetail(msg)
		case m.chart.focused:
			return m.updateChart(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.form.active {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m projectsModel) updateSearch(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.filters.Search != m.searchInput.Value() {
		m.filters.Search = m.searchInput.Value()
		m.filters.Page = 1
		m.recompute()
	}
	return m, cmd
}

func (m projectsModel) updateDetail(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	idx := indexOf(m.result.VisibleIDs, m.detail.id)
	switch {
	case key.Matches(msg, keys.Left):
		if idx > 0 {
			m.detail.id = m.result.VisibleIDs[idx-1]
		}
	case key.Matches(msg, keys.Right):
		if idx >= 0 && idx < len(m.result.VisibleIDs)-1 {
			m.detail.id = m.result.VisibleIDs[idx+1]
		}
	case key.Matches(msg, keys.Edit):
		if p := m.findProject(m.detail.id); p != nil {
			m.detail.close()
			return m, m.form.openEdit(*p)
		}
	case key.Matches(msg, keys.Back):
		m.detail.close()
	}
	return m, nil
}

func (m projectsModel) updateChart(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		m.chart.moveLeft()
	case key.Matches(msg, keys.Right):
		m.chart.moveRight()
	case key.Matches(msg, keys.Enter):
		m.filters.Month = m.chart.selectBar()
		m.filters.Page = 1
		m.recompute()
	case key.Matches(msg, keys.ClearMonth):
		m.clearMonth()
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Chart):
		m.chart.focused = false
	}
	return m, nil
}

func (m projectsModel) updateList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.pageRows())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Left):
		if m.filters.Page > 1 {
			m.filters.Page--
			m.recompute()
			m.cursor = 0
		}
	case key.Matches(msg, keys.Right):
		if m.filters.Page < m.result.TotalPages {
			m.filters.Page++
			m.recompute()
			m.cursor = 0
		}
	case key.Matches(msg, keys.Enter):
		if rows := m.pageRows(); m.cursor < len(rows) {
			m.detail.open(rows[m.cursor].ID)
		}
	case key.Matches(msg, keys.New):
		return m, m.form.openAdd()
	case key.Matches(msg, keys.Edit):
		if rows := m.pageRows(); m.cursor < len(rows) {
			return m, m.form.openEdit(rows[m.cursor])
		}
	case key.Matches(msg, keys.Year):
		return m.cycleYear()
	case key.Matches(msg, keys.Filter):
		m.filters.Status = m.filters.Status.Next()
		m.filters.Page = 1
		m.recompute()
	case key.Matches(msg, keys.ClearMonth):
		m.clearMonth()
	case key.Matches(msg, keys.Chart):
		m.chart.focused = true
	case key.Matches(msg, keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.Refresh):
		return m, tea.Batch(m.refresh(), m.loadStats())
	}
	return m, nil
}

// cycleYear advances the year selector: all years, then each known
// year, newest first. Changing the year clears the month filter, since
// the chart is refetched per year and bar selections would go stale.
func (m projectsModel) cycleYear() (projectsModel, tea.Cmd) {
	options := append([]int{0}, m.years...)
	idx := 0
	for i, y := range options {
		if y == m.filters.Year {
			idx = i
			break
		}
	}
	m.filters.Year = options[(idx+1)%len(options)]
	m.filters.Month = 0
	m.chart.clear()
	m.filters.Page = 1
	m.recompute()
	return m, m.loadStats()
}

func (m *projectsModel) clearMonth() {
	m.chart.clear()
	m.filters.Month = 0
	m.filters.Page = 1
	m.recompute()
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// --- Rendering ---

var columnWidths = map[string]int{
	model.FieldID:     6,
	model.FieldName:   26,
	model.FieldStatus: 12,
	model.FieldPhase:  22,
	model.FieldStart:  11,
	model.FieldFinish: 11,
	"RF":              10,
}

func (m projectsModel) view() string {
	if m.form.active {
		return m.form.view()
	}
	if m.detail.active {
		if p := m.findProject(m.detail.id); p != nil {
			pos := indexOf(m.result.VisibleIDs, m.detail.id)
			return renderDetail(p, pos, len(m.result.VisibleIDs), m.width)
		}
	}

	chart := m.chart.view("Proyectos Iniciados por Mes")
	counters := m.renderCounters()
	table := m.renderTable()
	return lipgloss.JoinVertical(lipgloss.Left, chart, counters, table)
}

func (m projectsModel) renderCounters() string {
	notFinished := fmt.Sprintf("No Finalizados: %d", m.result.NotFinished)
	finished := fmt.Sprintf("Finalizados: %d", m.result.Finished)
	switch m.filters.Status {
	case query.StatusNotFinished:
		notFinished = selectedItemStyle.Render(notFinished)
		finished = mutedStyle.Render(finished)
	case query.StatusFinished:
		finished = selectedItemStyle.Render(finished)
		notFinished = mutedStyle.Render(notFinished)
	default:
		notFinished = normalItemStyle.Render(notFinished)
		finished = normalItemStyle.Render(finished)
	}

	var parts []string
	parts = append(parts, notFinished, finished)
	if m.filters.Year != 0 {
		parts = append(parts, highlightStyle.Render(fmt.Sprintf("Año: %d", m.filters.Year)))
	} else {
		parts = append(parts, mutedStyle.Render("Año: todos"))
	}
	if m.searching {
		parts = append(parts, "/ "+m.searchInput.View())
	} else if m.filters.Search != "" {
		parts = append(parts, highlightStyle.Render(fmt.Sprintf("Búsqueda: %q", m.filters.Search)))
	}
	return headerStyle.Render(strings.Join(parts, "   "))
}

func (m projectsModel) renderTable() string {
	w := m.width - 4

	var rows []string
	var header []string
	for _, col := range model.VisibleColumns {
		header = append(header, pad(col, columnWidths[col]))
	}
	rows = append(rows, mutedStyle.Render("   "+strings.Join(header, " ")))

	if m.loadErr != "" {
		rows = append(rows, errorStyle.Render("  "+m.loadErr))
		rows = append(rows, "")
		rows = append(rows, m.renderPagination())
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	page := m.pageRows()
	if len(page) == 0 {
		rows = append(rows, mutedStyle.Render("  No hay proyectos para mostrar."))
	}

	now := time.Now()
	for i, p := range page {
		cursor := "  "
		if i == m.cursor {
			cursor = selectedItemStyle.Render("> ")
		}
		var cells []string
		for _, col := range model.VisibleColumns {
			value, _ := p.Field(col)
			cell := pad(valueOrDash(value), columnWidths[col])
			badge := query.BadgeFor(value)
			style := badgeStyle(badge)
			if col == model.FieldFinish && badge == query.BadgeNone &&
				value != "" && query.Overdue(value, now) {
				style = overdueStyle
			}
			cells = append(cells, style.Render(cell))
		}
		rows = append(rows, " "+cursor+strings.Join(cells, " "))
	}

	rows = append(rows, "")
	rows = append(rows, m.renderPagination())
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m projectsModel) renderPagination() string {
	total := m.result.TotalPages
	page := m.filters.Page
	if total == 0 {
		page = 0
	}
	info := fmt.Sprintf("Página %d de %d", page, total)

	prev := "←"
	if page <= 1 {
		prev = mutedStyle.Render(prev)
	} else {
		prev = normalItemStyle.Render(prev)
	}
	next := "→"
	if page >= total {
		next = mutedStyle.Render(next)
	} else {
		next = normalItemStyle.Render(next)
	}

	hints := mutedStyle.Render("  enter: detalles  a: agregar  e: editar  c: gráfico  E: exportar")
	return fmt.Sprintf("  %s %s %s%s", prev, mutedStyle.Render(info), next, hints)
}
