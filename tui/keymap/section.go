package keymap

import "github.com/charmbracelet/bubbles/key"

// Standard section names - use these for consistency across all panels.
// Using these constants keeps help displays uniform.
const (
	SectionNavigation = "Navigation"
	SectionActions    = "Actions"
	SectionSearch     = "Search"
	SectionSelection  = "Selection"
	SectionView       = "View"
	SectionFold       = "Fold"
	SectionFilter     = "Filter"
	SectionSystem     = "System"
)

// Section represents a logical grouping of keybindings for structured help
// display.
type Section struct {
	Name     string
	Icon     string
	Bindings []key.Binding
}

// SectionedKeyMap is an interface for keymaps that organize their bindings
// into sections. Panels implementing this interface get section-based help
// rendering instead of the legacy FullHelp() approach.
type SectionedKeyMap interface {
	Sections() []Section
}

// --- Section Builder Functions ---
// Use these to create sections with standard names, selecting only the
// bindings your panel actually implements.
//
// Example usage in a panel's Sections() method:
//
//	func (k PanelKeyMap) Sections() []keymap.Section {
//	    return []keymap.Section{
//	        keymap.NavigationSection(k.Up, k.Down, k.PageUp, k.PageDown),
//	        keymap.ActionsSection(k.Edit, k.Delete),
//	        keymap.NewSection("Gallery", k.NextFolder, k.PrevFolder),
//	        keymap.SystemSection(k.Help, k.Quit),
//	    }
//	}

// NewSection creates a section with a custom name.
func NewSection(name string, bindings ...key.Binding) Section {
	return Section{Name: name, Bindings: bindings}
}

// NavigationSection creates a Navigation section with the specified bindings.
func NavigationSection(bindings ...key.Binding) Section {
	return Section{Name: SectionNavigation, Bindings: bindings}
}

// ActionsSection creates an Actions section with the specified bindings.
func ActionsSection(bindings ...key.Binding) Section {
	return Section{Name: SectionActions, Bindings: bindings}
}

// SearchSection creates a Search section with the specified bindings.
func SearchSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSearch, Bindings: bindings}
}

// SelectionSection creates a Selection section with the specified bindings.
func SelectionSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSelection, Bindings: bindings}
}

// ViewSection creates a View section with the specified bindings.
func ViewSection(bindings ...key.Binding) Section {
	return Section{Name: SectionView, Bindings: bindings}
}

// FoldSection creates a Fold section with the specified bindings.
func FoldSection(bindings ...key.Binding) Section {
	return Section{Name: SectionFold, Bindings: bindings}
}

// FilterSection creates a Filter section with the specified bindings.
func FilterSection(bindings ...key.Binding) Section {
	return Section{Name: SectionFilter, Bindings: bindings}
}

// SystemSection creates a System section with the specified bindings.
func SystemSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSystem, Bindings: bindings}
}

// --- Section Methods ---

// FilterEnabled returns a new slice containing only enabled bindings.
func (s Section) FilterEnabled() []key.Binding {
	var result []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			result = append(result, b)
		}
	}
	return result
}

// IsEmpty returns true if the section has no enabled bindings.
func (s Section) IsEmpty() bool {
	for _, b := range s.Bindings {
		if b.Enabled() {
			return false
		}
	}
	return true
}

// With returns a new section with additional bindings appended.
func (s Section) With(bindings ...key.Binding) Section {
	combined := make([]key.Binding, len(s.Bindings), len(s.Bindings)+len(bindings))
	copy(combined, s.Bindings)
	combined = append(combined, bindings...)
	return Section{Name: s.Name, Icon: s.Icon, Bindings: combined}
}
