package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextItem   key.Binding
	PrevItem   key.Binding
	Accept     key.Binding
	Deny       key.Binding
	Toggle     key.Binding
	Select     key.Binding
	SelectAll  key.Binding
	SelectNone key.Binding
	BulkOK     key.Binding
	BulkDeny   key.Binding
	Edit       key.Binding
	Media      key.Binding
	LoadMore   key.Binding
	Rationale  key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "prev note")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "next note")),
		NextItem:   key.NewBinding(key.WithKeys("l", "right", "tab"), key.WithHelp("l", "next item")),
		PrevItem:   key.NewBinding(key.WithKeys("h", "left", "shift+tab"), key.WithHelp("h", "prev item")),
		Accept:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		Deny:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deny")),
		Toggle:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle source")),
		Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select note")),
		SelectAll:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select all")),
		SelectNone: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "select none")),
		BulkOK:     key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "bulk approve")),
		BulkDeny:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "bulk deny")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit fields")),
		Media:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "resolve media")),
		LoadMore:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Rationale:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rationale")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
