package browser

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/easeltools/easel/pkg/models"
)

// ItemsLoadedMsg is sent when a new list of items has been fetched.
// The parent application owns loading; the browser only consumes.
type ItemsLoadedMsg struct {
	Items []models.Item
}

// ItemsLoadErrorMsg is sent when the items loader fails. The embedding panel
// turns it into its status line; the browser keeps the previous rows.
type ItemsLoadErrorMsg struct {
	Err error
}

// SelectionCommittedMsg is emitted through OnSelect when the user confirms
// the current selection.
type SelectionCommittedMsg struct {
	Items []models.Item
}

// rowsBatchMsg carries one materialized batch of display rows. Generation
// guards against stale batches arriving after the list changed again.
type rowsBatchMsg struct {
	generation int
	rows       []Row
	done       bool
}

// tickMsg is sent periodically to trigger a refresh
type tickMsg time.Time

// tick returns a command that sends a tick message after the configured RefreshInterval
func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.RefreshInterval)*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// RefreshItemsCmd returns a command that uses the model's ItemsLoader to
// fetch updated items.
func (m *Model) RefreshItemsCmd() tea.Cmd {
	if m.ItemsLoader == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := m.ItemsLoader()
		if err != nil {
			return ItemsLoadErrorMsg{Err: err}
		}
		return ItemsLoadedMsg{Items: items}
	}
}
