package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcvera/migrapanel/internal/model"
	"github.com/jcvera/migrapanel/internal/query"
)

var errTest = errors.New("el backend dijo que no")

func testStats() model.Stats {
	labels := []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun",
		"Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}
	full := []string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}
	data := make([]float64, 12)
	for i := range data {
		data[i] = float64(i + 1)
	}
	return model.Stats{Labels: labels, FullLabels: full, Data: data}
}

// ============================================================
// Chart selection
// ============================================================

func TestChartSelectBar(t *testing.T) {
	c := newChartModel()
	c.setSize(60)
	c.setStats(testStats())

	c.cursor = 2
	if got := c.selectBar(); got != time.March {
		t.Errorf("selectBar = %v, want March", got)
	}
	if c.selectedMonth() != time.March {
		t.Errorf("selectedMonth = %v", c.selectedMonth())
	}
}

func TestChartSelectBarToggles(t *testing.T) {
	c := newChartModel()
	c.setSize(60)
	c.setStats(testStats())

	c.cursor = 4
	c.selectBar()
	// Selecting the same bar again clears the selection.
	if got := c.selectBar(); got != 0 {
		t.Errorf("toggle = %v, want 0", got)
	}
	if c.selectedMonth() != 0 {
		t.Errorf("selection should be cleared, got %v", c.selectedMonth())
	}
}

func TestChartSetStatsDropsStaleSelection(t *testing.T) {
	c := newChartModel()
	c.setSize(60)
	c.setStats(testStats())
	c.cursor = 11
	c.selectBar()

	short := testStats()
	short.Data = short.Data[:6]
	c.setStats(short)
	if c.selectedMonth() != 0 {
		t.Errorf("selection past the new data should clear, got %v", c.selectedMonth())
	}
}

func TestChartViewShortFullLabels(t *testing.T) {
	c := newChartModel()
	c.setSize(60)
	s := testStats()
	s.FullLabels = s.FullLabels[:2]
	c.setStats(s)

	c.cursor = 5
	c.selectBar()
	if got := c.view("Mensual"); got == "" {
		t.Fatal("unfocused view with a selection should still render")
	}
	c.focused = true
	if got := c.view("Mensual"); got == "" {
		t.Fatal("focused view should still render")
	}
	// Fallback order: full label, short label, nothing.
	if got := c.fullLabel(5); got != "Jun" {
		t.Errorf("fullLabel(5) = %q, want short-label fallback", got)
	}
	if got := c.fullLabel(1); got != "Febrero" {
		t.Errorf("fullLabel(1) = %q", got)
	}
	if got := c.fullLabel(99); got != "" {
		t.Errorf("fullLabel(99) = %q, want empty", got)
	}
}

func TestChartSelectBarEmpty(t *testing.T) {
	c := newChartModel()
	if got := c.selectBar(); got != 0 {
		t.Errorf("selectBar on empty chart = %v, want 0", got)
	}
}

// ============================================================
// Projects view state
// ============================================================

func testProjects(n int) []model.Project {
	out := make([]model.Project, n)
	for i := range out {
		out[i] = model.Project{ID: int64(i + 1), Name: "p", Status: "En Curso"}
	}
	return out
}

func TestRecomputeClampsPageAndCursor(t *testing.T) {
	m := newProjectsModel(nil)
	m.snapshot = testProjects(25)
	m.filters.Page = 9
	m.cursor = 9
	m.recompute()

	if m.filters.Page != 3 {
		t.Errorf("page = %d, want clamped to 3", m.filters.Page)
	}
	// Last page has 5 rows; the cursor must land on one of them.
	if m.cursor != 4 {
		t.Errorf("cursor = %d, want 4", m.cursor)
	}
}

func TestRecomputeEmptySnapshot(t *testing.T) {
	m := newProjectsModel(nil)
	m.filters.Page = 3
	m.recompute()
	if m.filters.Page != 1 || m.cursor != 0 {
		t.Errorf("page/cursor = %d/%d, want 1/0", m.filters.Page, m.cursor)
	}
}

func TestIndexOf(t *testing.T) {
	ids := []int64{3, 7, 9}
	if got := indexOf(ids, 7); got != 1 {
		t.Errorf("indexOf(7) = %d", got)
	}
	if got := indexOf(ids, 4); got != -1 {
		t.Errorf("indexOf(missing) = %d, want -1", got)
	}
}

// ============================================================
// Event widget
// ============================================================

func TestHomeIndex(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: 1, Start: "2025-06-01T10:00:00Z"},
		{ID: 2, Start: "2025-06-10T10:00:00Z"},
		{ID: 3, Start: "2025-06-20T10:00:00Z"},
		{ID: 4, Start: "2025-07-01T10:00:00Z"},
	}
	if got := homeIndex(events, now); got != 2 {
		t.Errorf("homeIndex = %d, want first future event", got)
	}
}

func TestHomeIndexAllPast(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: 1, Start: "2025-06-01T10:00:00Z"},
		{ID: 2, Start: "2025-06-10T10:00:00Z"},
	}
	if got := homeIndex(events, now); got != 1 {
		t.Errorf("homeIndex = %d, want last event", got)
	}
}

func TestHomeIndexEmpty(t *testing.T) {
	if got := homeIndex(nil, time.Now()); got != -1 {
		t.Errorf("homeIndex(nil) = %d, want -1", got)
	}
}

func TestDeleteConfirmSurvivesRefetch(t *testing.T) {
	m := newEventsModel(nil)
	m.visible = true
	m.events = []model.Event{{ID: 1, Start: "2025-06-01T10:00:00Z"}}
	m.confirmDelete = true

	// A refetch landing mid-confirmation invalidates the target.
	m, _ = m.update(eventsMsg{events: nil})
	if m.confirmDelete {
		t.Error("confirmation should clear when the list is refetched")
	}

	// Even a stale confirmation over an empty list must not blow up.
	m.confirmDelete = true
	yes := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}
	m, cmd := m.update(yes)
	if cmd != nil {
		t.Error("confirming against an empty list should do nothing")
	}
	if m.confirmDelete {
		t.Error("confirmation should be dismissed")
	}
}

func TestWireTimeRoundTrip(t *testing.T) {
	wire := wireTime("2025-06-15 18:30")
	parsed, ok := parseWire(wire)
	if !ok {
		t.Fatalf("wireTime output should parse: %q", wire)
	}
	if got := parsed.Local().Format(eventTimeLayout); got != "2025-06-15 18:30" {
		t.Errorf("roundtrip = %q", got)
	}

	if wireTime("") != "" {
		t.Error("empty input should stay empty")
	}
	// Unparseable input passes through so the backend can reject it.
	if wireTime("mañana") != "mañana" {
		t.Error("unparseable input should pass through")
	}
}

func TestLocalTimeInput(t *testing.T) {
	got := localTimeInput("2025-06-15T18:30:00Z")
	want := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC).Local().Format(eventTimeLayout)
	if got != want {
		t.Errorf("localTimeInput = %q, want %q", got, want)
	}
	if localTimeInput("raro") != "raro" {
		t.Error("unparseable value should pass through")
	}
}

// ============================================================
// Form helpers
// ============================================================

func TestNormalizeStatus(t *testing.T) {
	cases := []struct{ in, want string }{
		{"finalizado", "Finalizado"},
		{" EN CURSO ", "En Curso"},
		{"Cerrado", "Cerrado"},
		{"algo raro", "En Curso"},
		{"", "En Curso"},
	}
	for _, tc := range cases {
		if got := normalizeStatus(tc.in); got != tc.want {
			t.Errorf("normalizeStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeChecklist(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ok", "OK"},
		{"n/a", "N/A"},
		{"EN CURSO", "En Curso"},
		{"", "Pendiente"},
		{"texto libre", "Pendiente"},
	}
	for _, tc := range cases {
		if got := normalizeChecklist(tc.in); got != tc.want {
			t.Errorf("normalizeChecklist(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormReopensAfterFailedSave(t *testing.T) {
	f := newFormModel(nil)
	f.openAdd()
	*f.values[model.FieldID] = "7"
	*f.values[model.FieldName] = "Reintento"

	f, _ = f.submit()
	if !f.saving {
		t.Fatal("submit should mark the form as saving")
	}

	cmd := f.reopen()
	if cmd == nil {
		t.Fatal("reopen should rebuild the form")
	}
	if !f.active || f.saving {
		t.Errorf("after reopen: active = %v, saving = %v", f.active, f.saving)
	}
	// The attempted values survive for the retry.
	if f.editing.ID != 7 || f.editing.Name != "Reintento" {
		t.Errorf("attempted values lost: %+v", f.editing)
	}
	if *f.values[model.FieldName] != "Reintento" {
		t.Errorf("rebuilt widget value = %q", *f.values[model.FieldName])
	}
}

func TestSaveErrorKeepsFormOpen(t *testing.T) {
	m := newProjectsModel(nil)
	m.form.openAdd()
	*m.form.values[model.FieldID] = "7"
	m.form, _ = m.form.submit()

	m, _ = m.update(projectSavedMsg{id: 7, err: errTest})
	if !m.form.active {
		t.Error("form should stay open after a failed save")
	}
	if m.form.saving {
		t.Error("saving flag should reset for the retry")
	}
}

func TestValidateID(t *testing.T) {
	if err := validateID("123"); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	if err := validateID(""); err == nil {
		t.Error("empty id accepted")
	}
	if err := validateID("abc"); err == nil {
		t.Error("non-numeric id accepted")
	}
}

func TestValidateDate(t *testing.T) {
	if err := validateDate("2025-06-15"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	if err := validateDate(""); err != nil {
		t.Errorf("empty date should be allowed: %v", err)
	}
	if err := validateDate("15/06/2025"); err == nil {
		t.Error("wrong format accepted")
	}
}

// ============================================================
// Misc helpers
// ============================================================

func TestPad(t *testing.T) {
	if got := pad("abc", 5); got != "abc  " {
		t.Errorf("pad = %q", got)
	}
	if got := pad("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
	if got := pad("ñandú", 5); got != "ñandú" {
		t.Errorf("runes = %q", got)
	}
}

func TestValueOrDash(t *testing.T) {
	if valueOrDash("") != "-" || valueOrDash("x") != "x" {
		t.Error("valueOrDash misbehaves")
	}
}

func TestPendingPlaceholder(t *testing.T) {
	m := newPendingModel(nil)
	m.setSize(80, 24)
	view := m.view()
	// Placeholder text, not an empty grid.
	if !strings.Contains(view, "No hay items pendientes") {
		t.Fatalf("view missing placeholder:\n%s", view)
	}
}

func TestAdvanceCellUnmarked(t *testing.T) {
	m := newPendingModel(nil)
	m.summary = query.PendingSummary{
		Columns: []string{"NTP"},
		Rows: []query.PendingRow{
			{ProjectID: 1, Marks: map[string]query.Mark{}},
		},
	}
	if _, cmd := m.advanceCell(); cmd != nil {
		t.Error("unmarked cell should do nothing")
	}
}

func TestPendingSummaryFromProjects(t *testing.T) {
	m := newPendingModel(nil)
	m.setSize(80, 24)
	msg := projectsMsg{projects: []model.Project{
		{ID: 1, Name: "uno", Status: "En Curso", NTP: "Pendiente"},
	}}
	m, _ = m.update(msg)
	if len(m.summary.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(m.summary.Rows))
	}
	if m.summary.Rows[0].Marks["NTP"] != query.MarkPending {
		t.Errorf("marks = %v", m.summary.Rows[0].Marks)
	}
}
