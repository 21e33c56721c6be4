package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcvera/migrapanel/internal/model"
)

// barPalette imitates the web dashboard's gradient fill: each bar keeps
// its palette color as the "original" fill that a cleared selection
// restores.
var barPalette = []lipgloss.Color{
	lipgloss.Color("#5856D6"),
	lipgloss.Color("#00D4FF"),
	lipgloss.Color("#00FFC4"),
	lipgloss.Color("#FFDE00"),
}

// chartModel renders the twelve-month project-start chart and owns the
// bar selection that drives the table's month filter.
type chartModel struct {
	stats  model.Stats
	chart  barchart.Model
	width  int
	height int

	focused  bool
	cursor   int // bar under the cursor
	selected int // highlighted bar, -1 = none
}

func newChartModel() chartModel {
	return chartModel{
		selected: -1,
		height:   8,
	}
}

func (c *chartModel) setSize(w int) {
	c.width = w
	c.rebuild()
}

func (c *chartModel) setStats(s model.Stats) {
	c.stats = s
	if c.selected >= len(s.Data) {
		c.selected = -1
	}
	c.rebuild()
}

// rebuild recreates the bar chart. Every bar gets its original palette
// fill except the selected one, which is highlighted; this is also how
// a cleared selection restores the original fill exactly.
func (c *chartModel) rebuild() {
	if len(c.stats.Data) == 0 {
		return
	}
	w := c.width
	if w < 24 {
		w = 24
	}
	c.chart = barchart.New(w, c.height)

	bars := make([]barchart.BarData, 0, len(c.stats.Data))
	for i, v := range c.stats.Data {
		style := lipgloss.NewStyle().Foreground(barPalette[i%len(barPalette)])
		if i == c.selected {
			style = lipgloss.NewStyle().Foreground(colorHighlight)
		}
		label := ""
		if i < len(c.stats.Labels) {
			label = c.stats.Labels[i]
		}
		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: label, Value: v, Style: style}},
		})
	}
	c.chart.PushAll(bars)
	c.chart.Draw()
}

func (c *chartModel) moveLeft() {
	if c.cursor > 0 {
		c.cursor--
	}
}

func (c *chartModel) moveRight() {
	if c.cursor < len(c.stats.Data)-1 {
		c.cursor++
	}
}

// selectBar toggles the bar under the cursor. It returns the month now
// filtering the table, or 0 when the selection was cleared (selecting
// the already-selected bar toggles it off). At most one bar is
// highlighted at a time.
func (c *chartModel) selectBar() time.Month {
	if len(c.stats.Data) == 0 {
		return 0
	}
	if c.cursor == c.selected {
		c.clear()
		return 0
	}
	c.selected = c.cursor
	c.rebuild()
	return time.Month(c.selected + 1)
}

// clear drops the selection and restores the bar's original fill.
func (c *chartModel) clear() {
	c.selected = -1
	c.rebuild()
}

// selectedMonth returns the highlighted bar's month, 0 when none.
func (c *chartModel) selectedMonth() time.Month {
	if c.selected < 0 {
		return 0
	}
	return time.Month(c.selected + 1)
}

func (c *chartModel) cursorLabel() string {
	return c.fullLabel(c.cursor)
}

// fullLabel is bounds-safe: short label responses fall back to the
// short label, then to nothing.
func (c *chartModel) fullLabel(i int) string {
	if i >= 0 && i < len(c.stats.FullLabels) {
		return c.stats.FullLabels[i]
	}
	if i >= 0 && i < len(c.stats.Labels) {
		return c.stats.Labels[i]
	}
	return ""
}

func (c *chartModel) view(title string) string {
	if len(c.stats.Data) == 0 {
		return panelStyle.Width(c.width + 4).Render(
			titleStyle.Render(title) + "\n" + mutedStyle.Render("Sin datos del gráfico"),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render(title))
	rows = append(rows, c.chart.View())

	if c.focused {
		line := fmt.Sprintf("◂ ▸ %s", c.cursorLabel())
		if c.selected == c.cursor && c.selected >= 0 {
			line += highlightStyle.Render("  [seleccionado]")
		}
		rows = append(rows, selectedItemStyle.Render(line)+
			mutedStyle.Render("   enter: filtrar mes  x: limpiar  esc: salir"))
	} else if c.selected >= 0 {
		rows = append(rows, highlightStyle.Render(
			fmt.Sprintf("Mes filtrado: %s", c.fullLabel(c.selected)))+
			mutedStyle.Render("  (x limpia el filtro)"))
	}

	style := panelStyle
	if c.focused {
		style = activePanelStyle
	}
	return style.Width(c.width + 4).Render(strings.Join(rows, "\n"))
}
