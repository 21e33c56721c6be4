package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcvera/migrapanel/internal/api"
	"github.com/jcvera/migrapanel/internal/export"
)

// App is the root model: two tabbed views plus the overlays that sit on
// top of them (event widget, report progress, export picker). Overlay
// precedence for key routing is export picker, report, events, then the
// active view.
type App struct {
	client *api.Client
	width  int
	height int

	view     viewState
	projects projectsModel
	pending  pendingModel
	events   eventsModel
	report   reportModel

	exportPicking bool

	help     help.Model
	showHelp bool

	status        string
	statusIsError bool
}

func NewApp(client *api.Client, reportURL string) App {
	return App{
		client:   client,
		projects: newProjectsModel(client),
		pending:  newPendingModel(client),
		events:   newEventsModel(client),
		report:   newReportModel(client, reportURL),
		help:     help.New(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.projects.refresh(), a.projects.loadStats())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.projects.setSize(msg.Width, msg.Height-4)
		a.pending.setSize(msg.Width, msg.Height-4)
		a.events.setSize(msg.Width)
		a.report.setSize(msg.Width)
		a.help.Width = msg.Width
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusIsError = msg.isError
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("Error al exportar: %v", msg.err)
			a.statusIsError = true
		} else {
			a.status = "Exportado a " + msg.path
			a.statusIsError = false
		}
		return a, nil

	case projectsMsg:
		// Both views render from the same snapshot.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.projects, cmd = a.projects.update(msg)
		cmds = append(cmds, cmd)
		a.pending, cmd = a.pending.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case statsMsg, projectSavedMsg:
		var cmd tea.Cmd
		a.projects, cmd = a.projects.update(msg)
		return a, cmd

	case cellUpdatedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("Error al actualizar el estado: %v", msg.err)
			a.statusIsError = true
			return a, nil
		}
		a.status = "Estado actualizado"
		a.statusIsError = false
		return a, a.projects.refresh()

	case eventsMsg, eventSavedMsg, eventDeletedMsg:
		var cmd tea.Cmd
		a.events, cmd = a.events.update(msg)
		return a, cmd

	case reportTickMsg, reportDoneMsg:
		var cmd tea.Cmd
		a.report, cmd = a.report.update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Remaining messages (form blink, timers) go to whichever form is
	// live.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if a.projects.form.active {
		a.projects, cmd = a.projects.update(msg)
		cmds = append(cmds, cmd)
	}
	if a.events.form != nil {
		a.events, cmd = a.events.update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// capturing reports whether a text input currently owns the keyboard,
// which suspends the single-letter global bindings.
func (a App) capturing() bool {
	return a.projects.form.active ||
		a.projects.searching ||
		(a.events.visible && a.events.form != nil)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.capturing() {
		var cmd tea.Cmd
		if a.events.visible && a.events.form != nil {
			a.events, cmd = a.events.update(msg)
		} else {
			a.projects, cmd = a.projects.update(msg)
		}
		return a, cmd
	}

	if key.Matches(msg, keys.Quit) {
		return a, tea.Quit
	}

	// Overlays, outermost first.
	if a.exportPicking {
		return a.handleExportKey(msg)
	}
	if a.report.active {
		var cmd tea.Cmd
		a.report, cmd = a.report.update(msg)
		return a, cmd
	}
	if a.events.visible {
		var cmd tea.Cmd
		a.events, cmd = a.events.update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(msg, keys.Tab1):
		a.view = viewProjects
		return a, nil
	case key.Matches(msg, keys.Tab2):
		a.view = viewPending
		return a, nil
	case key.Matches(msg, keys.Tab):
		a.view = (a.view + 1) % viewState(len(viewNames))
		return a, nil
	case key.Matches(msg, keys.Events):
		return a, a.events.open()
	case key.Matches(msg, keys.Report):
		return a, a.report.start()
	case key.Matches(msg, keys.Export):
		if a.view == viewProjects && !a.projects.detail.active {
			a.exportPicking = true
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case viewProjects:
		a.projects, cmd = a.projects.update(msg)
	case viewPending:
		a.pending, cmd = a.pending.update(msg)
	}
	return a, cmd
}

// handleExportKey resolves the format picker. The export covers the
// currently filtered set, all pages.
func (a App) handleExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		a.exportPicking = false
		return a, a.exportCmd("csv")
	case "j":
		a.exportPicking = false
		return a, a.exportCmd("json")
	case "esc":
		a.exportPicking = false
	}
	return a, nil
}

func (a App) exportCmd(format string) tea.Cmd {
	projects := a.projects.result.Visible
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return exportDoneMsg{err: err}
		}
		name := fmt.Sprintf("migrapanel-export-%s.%s",
			time.Now().Format("2006-01-02"), format)
		path := filepath.Join(home, name)

		if format == "csv" {
			err = export.ToCSV(projects, path)
		} else {
			err = export.ToJSON(projects, path)
		}
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (a App) View() string {
	header := a.renderHeader()

	var body string
	switch {
	case a.report.active:
		body = a.report.view()
	case a.events.visible:
		body = a.events.view()
	case a.view == viewPending:
		body = a.pending.view()
	default:
		body = a.projects.view()
	}

	footer := a.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a App) renderHeader() string {
	title := titleStyle.Render(" MigraPanel ")
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.view {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, append([]string{title}, tabs...)...),
	)
}

func (a App) renderFooter() string {
	if a.exportPicking {
		return footerStyle.Render(
			warningStyle.Render("Exportar: ") + "c: CSV  j: JSON  esc: cancelar")
	}

	var status string
	if a.status != "" {
		if a.statusIsError {
			status = errorStyle.Render(a.status)
		} else {
			status = successStyle.Render(a.status)
		}
	}
	helpView := a.help.View(keys)
	if status == "" {
		return footerStyle.Render(helpView)
	}
	return footerStyle.Render(status + "\n" + helpView)
}
