package browser

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/easeltools/easel/tui/keymap"
)

// KeyMap defines the keybindings for the browser component.
type KeyMap struct {
	keymap.Base

	ToggleView  key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	CycleSort   key.Binding
	CycleBucket key.Binding
}

// NewKeyMap builds the browser keymap on top of a Base keymap.
func NewKeyMap(base keymap.Base) KeyMap {
	return KeyMap{
		Base: base,
		ToggleView: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tree/flat view"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("zR"),
			key.WithHelp("zR", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("zM"),
			key.WithHelp("zM", "collapse all"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		CycleBucket: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "cycle bucket"),
		),
	}
}

// ShortHelp returns the short help text for the keymap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Search, k.Quit}
}

// Sections returns the grouped keybindings for the full help view.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		k.NavigationSection(),
		keymap.SelectionSection(k.Select, k.SelectAll, k.SelectNone, k.Confirm),
		keymap.SearchSection(k.Search, k.ClearSearch),
		keymap.ViewSection(k.ToggleView, k.CycleSort, k.CycleBucket),
		keymap.FoldSection(k.FoldToggle, k.ExpandAll, k.CollapseAll),
		k.SystemSection(),
	}
}
