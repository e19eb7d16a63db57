package gallery

import (
	"fmt"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeltools/easel/state"
	"github.com/easeltools/easel/tui/components/browser"
)

func chtmp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestFolderPersistedAndRestored(t *testing.T) {
	chtmp(t)

	m := New(Options{})
	require.Empty(t, m.Folder())

	m.setFolder("renders/2026-08")
	assert.Equal(t, "renders/2026-08", m.Folder())

	saved, err := state.GetString("gallery.folder")
	require.NoError(t, err)
	assert.Equal(t, "renders/2026-08", saved)

	// A fresh panel restores the persisted folder.
	m2 := New(Options{})
	assert.Equal(t, "renders/2026-08", m2.Folder())
}

func TestFolderCycling(t *testing.T) {
	chtmp(t)

	m := New(Options{})
	m.folders = []string{"portraits", "renders"}

	key := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	// "" -> portraits -> renders -> "" forward
	_, _ = m.handleCustomKey(m.browser, key("]"))
	assert.Equal(t, "portraits", m.Folder())
	_, _ = m.handleCustomKey(m.browser, key("]"))
	assert.Equal(t, "renders", m.Folder())
	_, _ = m.handleCustomKey(m.browser, key("]"))
	assert.Equal(t, "", m.Folder())

	// and backwards wraps to the last folder
	_, _ = m.handleCustomKey(m.browser, key("["))
	assert.Equal(t, "renders", m.Folder())
}

func TestLoadErrorShownInStatus(t *testing.T) {
	chtmp(t)

	m := New(Options{})
	_, _ = m.Update(browser.ItemsLoadErrorMsg{Err: fmt.Errorf("host down")})
	assert.Contains(t, m.View(), "host down")
}

func TestFolderChangeCancelsNavigation(t *testing.T) {
	chtmp(t)

	m := New(Options{})
	before := m.navCtx

	m.setFolder("renders")
	assert.Error(t, before.Err(), "previous navigation context canceled")
	assert.NoError(t, m.navCtx.Err())
}
