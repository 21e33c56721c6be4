package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcvera/migrapanel/internal/api"
)

// reportModel drives the long-running report generation: a progress
// indicator that creeps toward 90% while the request is in flight and
// jumps to 100% when the response lands.
type reportModel struct {
	client    *api.Client
	reportURL string
	width     int

	active   bool
	progress int
	done     bool
	path     string
	err      error
}

func newReportModel(client *api.Client, reportURL string) reportModel {
	return reportModel{client: client, reportURL: reportURL}
}

func (m *reportModel) setSize(w int) { m.width = w }

func (m *reportModel) start() tea.Cmd {
	if m.reportURL == "" {
		return errorCmd("No hay URL de informe configurada (server.report_url)")
	}
	m.active = true
	m.progress = 0
	m.done = false
	m.path = ""
	m.err = nil

	client := m.client
	url := m.reportURL
	generate := func() tea.Msg {
		path, err := client.GenerateReport(context.Background(), url)
		return reportDoneMsg{path: path, err: err}
	}
	return tea.Batch(generate, reportTick())
}

func reportTick() tea.Cmd {
	return tea.Tick(800*time.Millisecond, func(time.Time) tea.Msg {
		return reportTickMsg{}
	})
}

func (m reportModel) update(msg tea.Msg) (reportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportTickMsg:
		if !m.active || m.done {
			return m, nil
		}
		if m.progress < 90 {
			m.progress += 6
			if m.progress > 90 {
				m.progress = 90
			}
		}
		return m, reportTick()

	case reportDoneMsg:
		m.done = true
		m.path = msg.path
		m.err = msg.err
		if msg.err == nil {
			m.progress = 100
		}
		return m, nil

	case tea.KeyMsg:
		// Dismissable only once the request has finished; the backend
		// keeps working regardless, so there is nothing to cancel.
		if m.done && (msg.String() == "esc" || msg.String() == "enter") {
			m.active = false
		}
		return m, nil
	}
	return m, nil
}

func (m reportModel) view() string {
	w := m.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Generando Informe"))
	rows = append(rows, "")
	rows = append(rows, renderProgressBar(m.progress, max(w-10, 20)))
	rows = append(rows, "")

	switch {
	case !m.done:
		rows = append(rows, mutedStyle.Render("Esto puede tardar hasta un minuto…"))
	case m.err != nil:
		rows = append(rows, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		rows = append(rows, mutedStyle.Render("esc: cerrar"))
	default:
		rows = append(rows, successStyle.Render("Informe generado"))
		rows = append(rows, normalItemStyle.Render("Guardado en: "+m.path))
		rows = append(rows, mutedStyle.Render("esc: cerrar"))
	}

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderProgressBar(pct, width int) string {
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", infoStyle.Render(bar), pct)
}
