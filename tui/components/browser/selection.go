package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/easeltools/easel/errors"
	"github.com/easeltools/easel/logging"
	"github.com/easeltools/easel/pkg/models"
)

// toggleSelectAtCursor flips the checked state of the highlighted item.
// Toggling a selected item off again leaves the selection empty, never
// negative. Folder rows are not selectable.
func (m *Model) toggleSelectAtCursor() {
	row, ok := m.CurrentRow()
	if !ok || row.Kind != RowItem {
		return
	}
	id := row.Item.Id
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
	} else {
		m.selected[id] = struct{}{}
	}
}

// selectAllVisible checks every item that survives the active filters.
func (m *Model) selectAllVisible() {
	for _, item := range m.visible {
		m.selected[item.Id] = struct{}{}
	}
}

// clearSelection unchecks everything.
func (m *Model) clearSelection() {
	m.selected = make(map[string]struct{})
}

// pruneSelection drops checked ids that no longer exist in the item list.
// Ids merely hidden by the active filter stay checked.
func (m *Model) pruneSelection() {
	known := make(map[string]struct{}, len(m.items))
	for _, item := range m.items {
		known[item.Id] = struct{}{}
	}
	for id := range m.selected {
		if _, ok := known[id]; !ok {
			delete(m.selected, id)
		}
	}
}

// IsSelected reports whether the item with the given id is checked.
func (m Model) IsSelected(id string) bool {
	_, ok := m.selected[id]
	return ok
}

// SelectedCount returns the number of checked items.
func (m Model) SelectedCount() int {
	return len(m.selected)
}

// SelectedItems returns the checked items that are currently visible, in
// visible order. Checked items hidden by the filter are excluded: what you
// see is what you commit.
func (m Model) SelectedItems() []models.Item {
	var out []models.Item
	for _, item := range m.visible {
		if _, ok := m.selected[item.Id]; ok {
			out = append(out, item)
		}
	}
	return out
}

// commitSelection resolves Enter. In multi-select mode the checked visible
// items are committed as a snapshot; with nothing checked, and in
// single-select mode, the highlighted item is committed. On a folder row the
// fold is toggled instead.
func (m *Model) commitSelection() tea.Cmd {
	row, ok := m.CurrentRow()
	if ok && row.Kind == RowFolder {
		return m.toggleFoldAtCursor()
	}

	var items []models.Item
	if m.multiSelect {
		items = m.SelectedItems()
		m.warnHiddenSelected(items)
	}
	if len(items) == 0 && ok {
		items = []models.Item{row.Item}
	}
	if len(items) == 0 {
		return nil
	}

	if m.OnSelect != nil {
		return m.OnSelect(items)
	}
	committed := items
	return func() tea.Msg {
		return SelectionCommittedMsg{Items: committed}
	}
}

// warnHiddenSelected logs every checked id the active filter kept out of the
// committed snapshot. The skip is logged, never raised.
func (m *Model) warnHiddenSelected(committed []models.Item) {
	if len(m.selected) <= len(committed) {
		return
	}
	inSnapshot := make(map[string]struct{}, len(committed))
	for _, item := range committed {
		inSnapshot[item.Id] = struct{}{}
	}
	log := logging.NewLogger("browser")
	for id := range m.selected {
		if _, ok := inSnapshot[id]; !ok {
			log.WithError(errors.ItemNotVisible(id)).Warn("checked item not in the filtered list, skipped")
		}
	}
}
