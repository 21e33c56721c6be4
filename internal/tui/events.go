package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcvera/migrapanel/internal/api"
	"github.com/jcvera/migrapanel/internal/model"
)

// eventsModel is the calendar-event widget: a one-event-at-a-time
// browser over the chronologically sorted list, with add/edit/delete.
// The home position is the next upcoming event, or the last one when
// everything is in the past.
type eventsModel struct {
	client *api.Client
	width  int

	visible bool
	events  []model.Event
	cursor  int

	form    *huh.Form
	editing model.Event
	isEdit  bool
	saving  bool

	// field buffers for the event form
	fTitle, fStart, fEnd, fLocation, fDescription string

	confirmDelete bool
	loadErr       string
}

func newEventsModel(client *api.Client) eventsModel {
	return eventsModel{client: client}
}

func (m *eventsModel) setSize(w int) { m.width = w }

func (m *eventsModel) open() tea.Cmd {
	m.visible = true
	return m.load()
}

func (m *eventsModel) close() {
	m.visible = false
	m.form = nil
	m.confirmDelete = false
}

func (m eventsModel) load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		events, err := client.ListEvents(context.Background())
		return eventsMsg{events: events, err: err}
	}
}

// homeIndex is the first event starting strictly after now; when none
// exists, the last event. Unparseable starts count as past.
func homeIndex(events []model.Event, now time.Time) int {
	for i := range events {
		if t, ok := events[i].StartTime(); ok && t.After(now) {
			return i
		}
	}
	return len(events) - 1
}

func (m eventsModel) update(msg tea.Msg) (eventsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsMsg:
		if msg.err != nil {
			m.loadErr = fmt.Sprintf("Error al cargar los eventos: %v", msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.events = msg.events
		m.cursor = max(0, homeIndex(m.events, time.Now()))
		// A refetch invalidates whatever the confirmation pointed at.
		m.confirmDelete = false
		return m, nil

	case eventSavedMsg:
		if msg.err != nil {
			// Rebuild the form with the attempted values for a retry;
			// the completed huh.Form would resubmit on the next key.
			return m, tea.Batch(
				m.openForm(m.editing, m.isEdit),
				errorCmd("Error al guardar el evento: %v", msg.err),
			)
		}
		m.form = nil
		m.saving = false
		return m, tea.Batch(m.load(), statusCmd("Evento guardado"))

	case eventDeletedMsg:
		if msg.err != nil {
			return m, errorCmd("Error al eliminar el evento: %v", msg.err)
		}
		return m, tea.Batch(m.load(), statusCmd("Evento eliminado"))

	case tea.KeyMsg:
		switch {
		case m.form != nil:
			return m.updateForm(msg)
		case m.confirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m eventsModel) updateBrowse(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Right):
		if m.cursor < len(m.events)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Home):
		m.cursor = max(0, homeIndex(m.events, time.Now()))
	case key.Matches(msg, keys.New):
		return m, m.openForm(model.Event{}, false)
	case key.Matches(msg, keys.Edit):
		if m.cursor >= 0 && m.cursor < len(m.events) {
			return m, m.openForm(m.events[m.cursor], true)
		}
	case key.Matches(msg, keys.Delete):
		if m.cursor >= 0 && m.cursor < len(m.events) {
			m.confirmDelete = true
		}
	case key.Matches(msg, keys.Refresh):
		return m, m.load()
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Events):
		m.close()
	}
	return m, nil
}

func (m eventsModel) updateConfirm(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "s":
		m.confirmDelete = false
		if m.cursor < 0 || m.cursor >= len(m.events) {
			return m, nil
		}
		id := m.events[m.cursor].ID
		client := m.client
		return m, func() tea.Msg {
			return eventDeletedMsg{err: client.DeleteEvent(context.Background(), id)}
		}
	case "n", "esc":
		m.confirmDelete = false
	}
	return m, nil
}

// --- Event form ---

const eventTimeLayout = "2006-01-02 15:04"

func (m *eventsModel) openForm(e model.Event, isEdit bool) tea.Cmd {
	m.editing = e
	m.isEdit = isEdit
	m.saving = false

	m.fTitle = e.Title
	m.fStart = localTimeInput(e.Start)
	m.fEnd = localTimeInput(e.End)
	m.fLocation = e.Location
	m.fDescription = e.Description

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("TÍTULO").
			Value(&m.fTitle).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("el título es obligatorio")
				}
				return nil
			}),
		huh.NewInput().
			Title("INICIO (AAAA-MM-DD HH:MM)").
			Value(&m.fStart).
			Validate(validateEventTime(true)),
		huh.NewInput().
			Title("FIN (AAAA-MM-DD HH:MM)").
			Value(&m.fEnd).
			Validate(validateEventTime(false)),
		huh.NewInput().
			Title("UBICACIÓN").
			Value(&m.fLocation),
		huh.NewText().
			Title("DESCRIPCIÓN").
			Value(&m.fDescription),
	)).WithShowHelp(true).WithShowErrors(true)

	return m.form.Init()
}

func (m eventsModel) updateForm(msg tea.Msg) (eventsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && !m.saving {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		m.form = hf
	}

	if m.form.State == huh.StateCompleted {
		return m.submitForm()
	}
	return m, cmd
}

func (m eventsModel) submitForm() (eventsModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	e := m.editing
	e.Title = strings.TrimSpace(m.fTitle)
	e.Start = wireTime(m.fStart)
	e.End = wireTime(m.fEnd)
	e.Location = strings.TrimSpace(m.fLocation)
	e.Description = m.fDescription

	// Kept as the base so a failed save can rebuild the form with the
	// attempted values.
	m.editing = e
	m.saving = true
	client := m.client
	isEdit := m.isEdit
	return m, func() tea.Msg {
		var err error
		if isEdit {
			err = client.UpdateEvent(context.Background(), &e)
		} else {
			err = client.CreateEvent(context.Background(), &e)
		}
		return eventSavedMsg{err: err}
	}
}

func validateEventTime(required bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if required {
				return errors.New("la fecha de inicio es obligatoria")
			}
			return nil
		}
		if _, err := time.ParseInLocation(eventTimeLayout, s, time.Local); err != nil {
			return errors.New("formato AAAA-MM-DD HH:MM")
		}
		return nil
	}
}

// localTimeInput renders a wire timestamp as local AAAA-MM-DD HH:MM for
// editing; unparseable values pass through unchanged.
func localTimeInput(wire string) string {
	t, ok := parseWire(wire)
	if !ok {
		return wire
	}
	return t.Local().Format(eventTimeLayout)
}

// wireTime converts the local form input back into UTC RFC 3339.
func wireTime(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	t, err := time.ParseInLocation(eventTimeLayout, input, time.Local)
	if err != nil {
		return input
	}
	return t.UTC().Format(time.RFC3339)
}

func parseWire(s string) (time.Time, bool) {
	e := model.Event{Start: s}
	return e.StartTime()
}

// --- Rendering ---

func (m eventsModel) view() string {
	w := m.width - 4

	if m.form != nil {
		title := "Agregar Evento"
		if m.isEdit {
			title = fmt.Sprintf("Editar Evento: %s", m.editing.Title)
		}
		header := titleStyle.Render(title)
		if m.saving {
			header += warningStyle.Render("  guardando…")
		}
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", m.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Eventos"))

	switch {
	case m.loadErr != "":
		rows = append(rows, errorStyle.Render(m.loadErr))
	case len(m.events) == 0:
		rows = append(rows, mutedStyle.Render("No hay eventos programados."))
	default:
		rows = append(rows, m.renderEvent(m.events[m.cursor])...)

		prev := "← anterior"
		if m.cursor <= 0 {
			prev = mutedStyle.Render(prev)
		} else {
			prev = normalItemStyle.Render(prev)
		}
		next := "siguiente →"
		if m.cursor >= len(m.events)-1 {
			next = mutedStyle.Render(next)
		} else {
			next = normalItemStyle.Render(next)
		}
		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("%s  %s  %s",
			prev, mutedStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.events))), next))
	}

	if m.confirmDelete {
		rows = append(rows, "")
		rows = append(rows, warningStyle.Render("¿Eliminar este evento? (y/n)"))
	} else {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render(
			"a: agregar  e: editar  d: eliminar  h: próximo  esc: cerrar"))
	}

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderEvent draws a single event card. Events starting within the
// next 24 hours get the highlight treatment.
func (m eventsModel) renderEvent(e model.Event) []string {
	var rows []string

	title := e.Title
	now := time.Now()
	if t, ok := e.StartTime(); ok && t.After(now) && t.Before(now.Add(24*time.Hour)) {
		title = highlightStyle.Render(title + "  ¡pronto!")
	} else {
		title = selectedItemStyle.Render(title)
	}
	rows = append(rows, title)

	rows = append(rows, fmt.Sprintf("%s %s",
		mutedStyle.Render("INICIO:"), formatEventTime(e.Start)))
	if e.End != "" {
		rows = append(rows, fmt.Sprintf("%s %s",
			mutedStyle.Render("FIN:"), formatEventTime(e.End)))
	}
	if e.Location != "" {
		rows = append(rows, fmt.Sprintf("%s %s",
			mutedStyle.Render("UBICACIÓN:"), e.Location))
	}
	if e.Description != "" {
		rows = append(rows, mutedStyle.Render("DESCRIPCIÓN:"))
		for _, line := range strings.Split(e.Description, "\n") {
			rows = append(rows, "  "+normalItemStyle.Render(line))
		}
	}
	return rows
}

func formatEventTime(wire string) string {
	t, ok := parseWire(wire)
	if !ok {
		return valueOrDash(wire)
	}
	return t.Local().Format("02/01/2006 15:04")
}
