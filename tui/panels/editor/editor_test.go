package editor

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeltools/easel/config"
	"github.com/easeltools/easel/errors"
)

func chtmp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestValidateOversize(t *testing.T) {
	chtmp(t)
	cfg := config.Default()
	cfg.Editor.MaxFileSize = 10
	m := New(Options{Config: cfg, Path: "workflows/big.txt"})

	err := m.validate([]byte("this is more than ten bytes"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileTooLarge))

	assert.NoError(t, m.validate([]byte("short")))
}

func TestValidateJSON(t *testing.T) {
	chtmp(t)
	m := New(Options{Config: config.Default(), Path: "workflows/graph.json"})

	err := m.validate([]byte(`{"nodes": [}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidJSON))

	assert.NoError(t, m.validate([]byte(`{"nodes": []}`)))

	// Non-JSON files skip the JSON check.
	m2 := New(Options{Config: config.Default(), Path: "notes.txt"})
	assert.NoError(t, m2.validate([]byte("not json at all {")))
}

func TestSaveRejectedBeforeWrite(t *testing.T) {
	chtmp(t)
	cfg := config.Default()
	cfg.Editor.MaxFileSize = 5
	// No client: a validation failure must short-circuit before any
	// network call, so this cannot panic.
	m := New(Options{Config: cfg, Path: "a.json"})
	m.textarea.SetValue("way past the size limit")

	cmd := m.saveFile()
	require.NotNil(t, cmd)
	saved, ok := cmd().(fileSavedMsg)
	require.True(t, ok)
	assert.True(t, errors.Is(saved.err, errors.ErrCodeFileTooLarge))
}

func TestStatusFromError(t *testing.T) {
	assert.Contains(t, statusFromError(errors.FileTooLarge("a", 10, 5)), "rejected")
	assert.Contains(t, statusFromError(errors.HostUnreachable("http://x", nil)), "host unreachable")
	assert.Contains(t, statusFromError(errors.BadStatus("GET", "/files/a", 500)), "500")
}

func TestDirtyTracking(t *testing.T) {
	chtmp(t)
	m := New(Options{Config: config.Default(), Path: "a.txt"})
	m.textarea.Focus()
	require.False(t, m.Dirty())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = next.(*Model)
	assert.True(t, m.Dirty())
}

func TestStatusMentionsPath(t *testing.T) {
	chtmp(t)
	m := New(Options{Config: config.Default(), Path: "workflows/graph.json"})
	next, _ := m.Update(fileLoadedMsg{data: []byte(`{}`)})
	m = next.(*Model)
	assert.True(t, strings.Contains(m.status, "workflows/graph.json"))
	assert.False(t, m.Dirty())
}
