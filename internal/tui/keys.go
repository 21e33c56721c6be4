package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	Back       key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab        key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Refresh    key.Binding
	Search     key.Binding
	Year       key.Binding
	Filter     key.Binding
	Chart      key.Binding
	ClearMonth key.Binding
	Events     key.Binding
	Home       key.Binding
	Report     key.Binding
	Export     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "subir"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "bajar"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "anterior"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "siguiente"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "detalles"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "volver"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "proyectos"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "pendientes"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "siguiente vista"),
	),
	New: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "agregar"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "editar"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "eliminar"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "recargar"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "buscar"),
	),
	Year: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "año"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filtro estado"),
	),
	Chart: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "gráfico"),
	),
	ClearMonth: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "limpiar mes"),
	),
	Events: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "eventos"),
	),
	Home: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "próximo evento"),
	),
	Report: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "informe"),
	),
	Export: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "exportar"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "ayuda"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "salir"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.New, k.Events, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Year, k.Filter, k.Chart, k.ClearMonth},
		{k.New, k.Edit, k.Refresh, k.Export, k.Report},
		{k.Tab1, k.Tab2, k.Events, k.Home},
		{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Back, k.Quit},
	}
}
