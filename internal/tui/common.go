package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcvera/migrapanel/internal/model"
)

// viewState represents the currently active view.
type viewState int

const (
	viewProjects viewState = iota
	viewPending
)

var viewNames = []string{"Proyectos", "Pendientes"}

// --- Messages ---

type projectsMsg struct {
	projects []model.Project
	err      error
}

type statsMsg struct {
	stats model.Stats
	err   error
}

type eventsMsg struct {
	events []model.Event
	err    error
}

// projectSavedMsg reports the outcome of a create/update submission.
type projectSavedMsg struct {
	id     int64
	isEdit bool
	err    error
}

type eventSavedMsg struct {
	err error
}

type eventDeletedMsg struct {
	err error
}

// cellUpdatedMsg reports a single-field status update from the pending
// cross-tab.
type cellUpdatedMsg struct {
	err error
}

type reportTickMsg struct{}

type reportDoneMsg struct {
	path string
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}

type statusMsg struct {
	text    string
	isError bool
}

// --- Helpers ---

func statusCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

// valueOrDash substitutes the placeholder for missing values.
func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// pad truncates or right-pads s to exactly w runes.
func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		if w <= 1 {
			return string(r[:w])
		}
		return string(r[:w-1]) + "…"
	}
	for len(r) < w {
		r = append(r, ' ')
	}
	return string(r)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
