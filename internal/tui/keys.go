package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Open          key.Binding
	SwitchPane    key.Binding
	Add           key.Binding
	Toggle        key.Binding
	Edit          key.Binding
	Delete        key.Binding
	PickUp        key.Binding
	Cancel        key.Binding
	NewList       key.Binding
	RenameList    key.Binding
	DeleteList    key.Binding
	ShowCompleted key.Binding
	Sort          key.Binding
	Quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/drop")),
		SwitchPane:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Add:           key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:        key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle")),
		Edit:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		PickUp:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NewList:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list")),
		RenameList:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename list")),
		DeleteList:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete list")),
		ShowCompleted: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "show completed")),
		Sort:          key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.PickUp, k.SwitchPane, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.SwitchPane},
		{k.Add, k.Toggle, k.Edit, k.Delete, k.PickUp, k.Cancel},
		{k.NewList, k.RenameList, k.DeleteList},
		{k.ShowCompleted, k.Sort, k.Quit},
	}
}
