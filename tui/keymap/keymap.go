package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/easeltools/easel/config"
)

// Base contains the standard keybindings shared by all easel panels.
// Prioritizes vim-style navigation and standard actions.
type Base struct {
	// Navigation - vim style takes precedence
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Top      key.Binding // gg sequence
	Bottom   key.Binding // G

	// Core actions
	Quit    key.Binding
	Help    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Back    key.Binding
	Edit    key.Binding
	Delete  key.Binding // dd sequence
	Refresh key.Binding
	Save    key.Binding

	// Search
	Search      key.Binding
	ClearSearch key.Binding

	// View management
	SwitchView    key.Binding
	TogglePreview key.Binding

	// Selection
	Select     key.Binding
	SelectAll  key.Binding
	SelectNone key.Binding

	// Fold operations (for tree views)
	FoldOpen     key.Binding // zo
	FoldClose    key.Binding // zc
	FoldToggle   key.Binding // za
	FoldOpenAll  key.Binding // zR
	FoldCloseAll key.Binding // zM
}

// SectionConfig maps action names to key lists in the keybindings config.
type SectionConfig map[string][]string

// Config is the "keybindings" extension block in easel.yml.
type Config struct {
	// Preset selects the starting keymap: "vim" (default), "emacs" or "arrows".
	Preset string `yaml:"preset"`

	Navigation SectionConfig `yaml:"navigation"`
	Selection  SectionConfig `yaml:"selection"`
	Actions    SectionConfig `yaml:"actions"`
	Search     SectionConfig `yaml:"search"`
	View       SectionConfig `yaml:"view"`
	Fold       SectionConfig `yaml:"fold"`
	System     SectionConfig `yaml:"system"`

	// Overrides holds per-panel overrides keyed by panel name
	// (e.g. "browser", "gallery", "editor", "chat").
	Overrides map[string]SectionConfig `yaml:"overrides"`
}

// NewBase creates a new Base keymap with the default vim-style bindings.
func NewBase() Base {
	return DefaultVim()
}

// DefaultVim returns the default vim-style keymap
func DefaultVim() Base {
	return Base{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "start"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "end"),
		),
		Top: key.NewBinding(
			key.WithKeys("gg"),
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "cancel"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("dd"),
			key.WithHelp("dd", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear search"),
		),

		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "preview"),
		),

		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "all"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "none"),
		),

		FoldOpen: key.NewBinding(
			key.WithKeys("zo"),
			key.WithHelp("zo", "open fold"),
		),
		FoldClose: key.NewBinding(
			key.WithKeys("zc"),
			key.WithHelp("zc", "close fold"),
		),
		FoldToggle: key.NewBinding(
			key.WithKeys("za"),
			key.WithHelp("za", "toggle fold"),
		),
		FoldOpenAll: key.NewBinding(
			key.WithKeys("zR"),
			key.WithHelp("zR", "open all"),
		),
		FoldCloseAll: key.NewBinding(
			key.WithKeys("zM"),
			key.WithHelp("zM", "close all"),
		),
	}
}

// DefaultEmacs returns an emacs-style keymap
func DefaultEmacs() Base {
	b := DefaultVim()
	b.Up = key.NewBinding(
		key.WithKeys("ctrl+p", "up"),
		key.WithHelp("C-p", "up"),
	)
	b.Down = key.NewBinding(
		key.WithKeys("ctrl+n", "down"),
		key.WithHelp("C-n", "down"),
	)
	b.Left = key.NewBinding(
		key.WithKeys("ctrl+b", "left"),
		key.WithHelp("C-b", "left"),
	)
	b.Right = key.NewBinding(
		key.WithKeys("ctrl+f", "right"),
		key.WithHelp("C-f", "right"),
	)
	b.PageUp = key.NewBinding(
		key.WithKeys("alt+v", "pgup"),
		key.WithHelp("M-v", "page up"),
	)
	b.PageDown = key.NewBinding(
		key.WithKeys("ctrl+v", "pgdown"),
		key.WithHelp("C-v", "page down"),
	)
	b.Top = key.NewBinding(
		key.WithKeys("alt+<", "home"),
		key.WithHelp("M-<", "top"),
	)
	b.Bottom = key.NewBinding(
		key.WithKeys("alt+>", "end"),
		key.WithHelp("M->", "bottom"),
	)
	b.Search = key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "search"),
	)
	b.Save = key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "save"),
	)
	return b
}

// DefaultArrows returns a simplified keymap using primarily arrow keys
func DefaultArrows() Base {
	b := DefaultVim()
	b.Up = key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("up", "up"),
	)
	b.Down = key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("down", "down"),
	)
	b.Left = key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("left", "left"),
	)
	b.Right = key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("right", "right"),
	)
	b.PageUp = key.NewBinding(
		key.WithKeys("pgup", "shift+up"),
		key.WithHelp("PgUp", "page up"),
	)
	b.PageDown = key.NewBinding(
		key.WithKeys("pgdown", "shift+down"),
		key.WithHelp("PgDn", "page down"),
	)
	b.Top = key.NewBinding(
		key.WithKeys("home", "ctrl+home"),
		key.WithHelp("Home", "top"),
	)
	b.Bottom = key.NewBinding(
		key.WithKeys("end", "ctrl+end"),
		key.WithHelp("End", "bottom"),
	)
	// Simplified actions without sequences
	b.Delete = key.NewBinding(
		key.WithKeys("delete", "backspace"),
		key.WithHelp("Del", "delete"),
	)
	return b
}

// Load creates a Base keymap based on configuration.
// It starts with the selected preset (vim/emacs/arrows), then applies
// global keybinding overrides, and finally panel-specific overrides.
func Load(cfg *config.Config, panelName string) Base {
	var kb Config
	if cfg != nil {
		// Decode errors leave kb zero; the preset defaults still apply.
		_ = cfg.UnmarshalExtension("keybindings", &kb)
	}

	var base Base
	switch kb.Preset {
	case "emacs":
		base = DefaultEmacs()
	case "arrows":
		base = DefaultArrows()
	default:
		base = DefaultVim()
	}

	applySectionOverrides(&base, kb.Navigation)
	applySectionOverrides(&base, kb.Selection)
	applySectionOverrides(&base, kb.Actions)
	applySectionOverrides(&base, kb.Search)
	applySectionOverrides(&base, kb.View)
	applySectionOverrides(&base, kb.Fold)
	applySectionOverrides(&base, kb.System)

	if panelName != "" && kb.Overrides != nil {
		if panelOverrides, ok := kb.Overrides[strings.ToLower(panelName)]; ok {
			applySectionOverrides(&base, panelOverrides)
		}
	}

	return base
}

// ShortHelp returns a slice of key bindings for the short help view
func (k Base) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Quit,
	}
}

// Sections returns grouped sections of all key bindings for the full help view.
//
// NOTE: Most panels should NOT use this method directly. Instead, use the
// individual section getters (NavigationSection, SearchSection, etc.) to build
// a custom Sections() that only includes the sections your panel actually
// implements. This prevents showing keybindings in help that don't work.
func (k Base) Sections() []Section {
	return []Section{
		k.NavigationSection(),
		k.ActionsSection(),
		k.SearchSection(),
		k.SelectionSection(),
		k.ViewSection(),
		k.FoldSection(),
		k.SystemSection(),
	}
}

// NavigationSection returns the navigation keybindings section.
func (k Base) NavigationSection() Section {
	return Section{
		Name:     SectionNavigation,
		Bindings: []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Top, k.Bottom},
	}
}

// ActionsSection returns the actions keybindings section.
func (k Base) ActionsSection() Section {
	return Section{
		Name:     SectionActions,
		Bindings: []key.Binding{k.Confirm, k.Cancel, k.Back, k.Edit, k.Delete, k.Refresh, k.Save},
	}
}

// SearchSection returns the search keybindings section.
func (k Base) SearchSection() Section {
	return Section{
		Name:     SectionSearch,
		Bindings: []key.Binding{k.Search, k.ClearSearch},
	}
}

// SelectionSection returns the selection keybindings section.
func (k Base) SelectionSection() Section {
	return Section{
		Name:     SectionSelection,
		Bindings: []key.Binding{k.Select, k.SelectAll, k.SelectNone},
	}
}

// ViewSection returns the view management keybindings section.
func (k Base) ViewSection() Section {
	return Section{
		Name:     SectionView,
		Bindings: []key.Binding{k.SwitchView, k.TogglePreview},
	}
}

// FoldSection returns the fold keybindings section.
func (k Base) FoldSection() Section {
	return Section{
		Name:     SectionFold,
		Bindings: []key.Binding{k.FoldOpen, k.FoldClose, k.FoldToggle, k.FoldOpenAll, k.FoldCloseAll},
	}
}

// SystemSection returns the system keybindings section.
func (k Base) SystemSection() Section {
	return Section{
		Name:     SectionSystem,
		Bindings: []key.Binding{k.Help, k.Quit},
	}
}

// --- Binding Group Helpers ---

// VerticalNav returns vertical navigation bindings (up/down movement).
func (k Base) VerticalNav() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom}
}

// BasicNav returns minimal navigation bindings.
func (k Base) BasicNav() []key.Binding {
	return []key.Binding{k.Up, k.Down}
}

// FullNav returns all navigation bindings including horizontal.
func (k Base) FullNav() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Top, k.Bottom}
}

// FoldNav returns all fold operation bindings.
func (k Base) FoldNav() []key.Binding {
	return []key.Binding{k.FoldOpen, k.FoldClose, k.FoldToggle, k.FoldOpenAll, k.FoldCloseAll}
}

// SelectNav returns selection bindings.
func (k Base) SelectNav() []key.Binding {
	return []key.Binding{k.Select, k.SelectAll, k.SelectNone}
}

// SystemNav returns system bindings (help and quit).
func (k Base) SystemNav() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns a slice of all key bindings for the full help view.
// New keymaps should prefer implementing Sections() instead.
func (k Base) FullHelp() [][]key.Binding {
	sections := k.Sections()
	result := make([][]key.Binding, len(sections))
	for i, s := range sections {
		header := key.NewBinding(key.WithKeys(""), key.WithHelp("", s.Name))
		result[i] = append([]key.Binding{header}, s.Bindings...)
	}
	return result
}

// DefaultKeyMap is the default keymap instance.
var DefaultKeyMap = NewBase()
