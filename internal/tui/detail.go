package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jcvera/migrapanel/internal/model"
	"github.com/jcvera/migrapanel/internal/query"
)

// detailModel is the read-only project modal. Navigation state lives in
// the projects view, which always resolves prev/next against the
// freshly recomputed visible-id sequence.
type detailModel struct {
	active bool
	id     int64
}

func (d *detailModel) open(id int64) {
	d.active = true
	d.id = id
}

func (d *detailModel) close() {
	d.active = false
}

// renderDetail draws all fields of one project in the three fixed
// sections. pos/total describe the project's place in the visible-id
// sequence and drive the enabled state of the navigation hints.
func renderDetail(p *model.Project, pos, total, width int) string {
	header := titleStyle.Render(fmt.Sprintf("ID %d - %s", p.ID, p.Name))

	var rows []string
	rows = append(rows, header)

	for _, section := range model.Sections() {
		rows = append(rows, "")
		rows = append(rows, selectedItemStyle.Render("▸ "+section.Title))
		for _, name := range section.Fields {
			value, _ := p.Field(name)
			label := mutedStyle.Render(strings.ToUpper(name) + ":")
			if model.FieldKindOf(name) == model.KindLongText {
				rows = append(rows, "  "+label)
				for _, line := range strings.Split(valueOrDash(value), "\n") {
					rows = append(rows, "    "+normalItemStyle.Render(line))
				}
				continue
			}
			styled := badgeStyle(query.BadgeFor(value)).Render(valueOrDash(value))
			rows = append(rows, fmt.Sprintf("  %s %s", label, styled))
		}
	}

	rows = append(rows, "")
	prev := "← anterior"
	if pos <= 0 {
		prev = mutedStyle.Render(prev)
	} else {
		prev = normalItemStyle.Render(prev)
	}
	next := "siguiente →"
	if pos >= total-1 {
		next = mutedStyle.Render(next)
	} else {
		next = normalItemStyle.Render(next)
	}
	rows = append(rows, fmt.Sprintf("  %s  %s  %s",
		prev, mutedStyle.Render(fmt.Sprintf("%d/%d", pos+1, total)), next))
	rows = append(rows, mutedStyle.Render("  e: editar  esc: cerrar"))

	return activePanelStyle.Width(width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
