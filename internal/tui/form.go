package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcvera/migrapanel/internal/api"
	"github.com/jcvera/migrapanel/internal/model"
)

// formModel is the add/edit project modal. Field widgets follow the
// field kinds: a fixed status select, checklist selects, textareas for
// the two long-text fields, validated date inputs, plain inputs for the
// rest. The identifier is editable only in add mode.
type formModel struct {
	client *api.Client
	width  int

	active bool
	isEdit bool
	saving bool

	editing model.Project // base document; form values overwrite it on save
	form    *huh.Form
	values  map[string]*string
}

func newFormModel(client *api.Client) formModel {
	return formModel{client: client}
}

func (f *formModel) setSize(w int) { f.width = w }

// openAdd shows the reduced add form: first section only, editable id,
// default status pre-filled.
func (f *formModel) openAdd() tea.Cmd {
	f.editing = model.Project{Status: model.DefaultStatus}
	return f.open(false)
}

// openEdit shows the full three-section form for an existing project.
func (f *formModel) openEdit(p model.Project) tea.Cmd {
	f.editing = p
	return f.open(true)
}

func (f *formModel) open(isEdit bool) tea.Cmd {
	f.isEdit = isEdit
	f.saving = false
	f.values = make(map[string]*string)

	var groups []*huh.Group
	for i, section := range model.Sections() {
		// Add mode shows only the first section, with a reduced
		// field set.
		if !isEdit && i > 0 {
			break
		}
		var fields []huh.Field
		for _, name := range section.Fields {
			if !isEdit && !contains(model.AddFields, name) {
				continue
			}
			fields = append(fields, f.fieldWidget(name))
		}
		groups = append(groups, huh.NewGroup(fields...).Title(section.Title))
	}

	f.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	f.active = true
	return f.form.Init()
}

func (f *formModel) fieldWidget(name string) huh.Field {
	current, _ := f.editing.Field(name)
	v := new(string)
	*v = current
	f.values[name] = v

	switch model.FieldKindOf(name) {
	case model.KindID:
		if f.isEdit {
			// Immutable once assigned.
			return huh.NewNote().
				Title(strings.ToUpper(name)).
				Description(current + "  (solo lectura)")
		}
		return huh.NewInput().
			Title(strings.ToUpper(name)).
			Value(v).
			Validate(validateID)

	case model.KindStatus:
		if !f.isEdit {
			// Add mode pre-fills the default status read-only.
			return huh.NewNote().
				Title(strings.ToUpper(name)).
				Description(model.DefaultStatus)
		}
		*v = normalizeStatus(current)
		return huh.NewSelect[string]().
			Title(strings.ToUpper(name)).
			Options(huh.NewOptions(model.StatusOptions...)...).
			Value(v)

	case model.KindChecklist:
		*v = normalizeChecklist(current)
		return huh.NewSelect[string]().
			Title(name).
			Options(huh.NewOptions(model.ChecklistOptions...)...).
			Value(v)

	case model.KindLongText:
		return huh.NewText().
			Title(strings.ToUpper(name)).
			Value(v)

	case model.KindDate:
		*v = dateOnly(current)
		return huh.NewInput().
			Title(strings.ToUpper(name) + " (AAAA-MM-DD)").
			Value(v).
			Validate(validateDate)

	default:
		return huh.NewInput().
			Title(strings.ToUpper(name)).
			Value(v)
	}
}

func (f *formModel) close() {
	f.active = false
	f.form = nil
	f.saving = false
}

// reopen rebuilds the form after a failed save for a retry. A fresh
// huh.Form is required: the completed one would resubmit on the next
// keypress. The base document holds the attempted values.
func (f *formModel) reopen() tea.Cmd {
	if !f.active {
		return nil
	}
	return f.open(f.isEdit)
}

func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	if f.form == nil {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && !f.saving {
		f.close()
		return f, nil
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f.submit()
	}
	return f, cmd
}

// submit serializes the form over the base document and fires the save
// request. The save control is disabled while a request is in flight:
// a repeated completion is ignored until the response lands.
func (f formModel) submit() (formModel, tea.Cmd) {
	if f.saving {
		return f, nil
	}

	p := f.editing
	for name, v := range f.values {
		if f.isEdit && name == model.FieldID {
			continue
		}
		p.SetField(name, *v)
	}
	if !f.isEdit {
		p.Status = model.DefaultStatus
	}
	if p.ID == 0 {
		// The id input validator normally blocks this; re-checked here
		// so a save never leaves without an identifier.
		f.close()
		return f, errorCmd(`El campo "Id Project" es obligatorio y debe ser un número.`)
	}

	// The attempted document becomes the new base, so a failed save can
	// reopen the form with the user's values intact.
	f.editing = p
	f.saving = true
	client := f.client
	isEdit := f.isEdit
	return f, func() tea.Msg {
		var err error
		if isEdit {
			err = client.UpdateProject(context.Background(), &p)
		} else {
			err = client.CreateProject(context.Background(), &p)
		}
		return projectSavedMsg{id: p.ID, isEdit: isEdit, err: err}
	}
}

func (f formModel) view() string {
	if f.form == nil {
		return ""
	}
	title := "Agregar Nuevo Proyecto"
	if f.isEdit {
		title = fmt.Sprintf("Editar Proyecto: %s", f.editing.Name)
	}
	header := titleStyle.Render(title)
	if f.saving {
		header += warningStyle.Render("  guardando…")
	}
	content := lipgloss.JoinVertical(lipgloss.Left, header, "", f.form.View())
	return panelStyle.Width(f.width - 4).Render(content)
}

func validateID(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("Id Project es obligatorio")
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return errors.New("Id Project debe ser un número")
	}
	return nil
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := model.ParseDate(s); !ok {
		return errors.New("formato AAAA-MM-DD")
	}
	return nil
}

// normalizeStatus maps a free-text status onto the fixed dropdown
// options, defaulting to En Curso.
func normalizeStatus(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	for _, opt := range model.StatusOptions {
		if s == strings.ToLower(opt) {
			return opt
		}
	}
	return model.DefaultStatus
}

// normalizeChecklist maps a free-text checklist value onto the fixed
// options, defaulting to Pendiente.
func normalizeChecklist(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	for _, opt := range model.ChecklistOptions {
		if s == strings.ToLower(opt) {
			return opt
		}
	}
	return model.ChecklistOptions[0]
}

func dateOnly(v string) string {
	if i := strings.IndexByte(v, 'T'); i > 0 {
		return v[:i]
	}
	return v
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
