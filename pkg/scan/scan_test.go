package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeltools/easel/pkg/bus"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestScanDiscoversFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "checkpoints", "sd15", "model_a.ckpt"))
	writeFile(t, filepath.Join(root, "checkpoints", "model_b.ckpt"))
	writeFile(t, filepath.Join(root, ".hidden"))

	s, err := NewScanner([]string{root}, nil)
	require.NoError(t, err)

	items, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, items, 2, "dotfiles are skipped")

	paths := []string{items[0].Path, items[1].Path}
	assert.Contains(t, paths, "checkpoints/sd15/model_a.ckpt")
	assert.Contains(t, paths, "checkpoints/model_b.ckpt")
	assert.NotEqual(t, items[0].Id, items[1].Id)
}

func TestScanIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "checkpoints", "keep.ckpt"))
	writeFile(t, filepath.Join(root, "tmp", "scratch.ckpt"))

	s, err := NewScanner([]string{root}, []string{"tmp"})
	require.NoError(t, err)

	items, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "checkpoints/keep.ckpt", items[0].Path)
}

func TestScanStableIds(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "checkpoints", "a.ckpt"))

	s, err := NewScanner([]string{root}, nil)
	require.NoError(t, err)

	first, err := s.Scan()
	require.NoError(t, err)
	second, err := s.Scan()
	require.NoError(t, err)
	assert.Equal(t, first[0].Id, second[0].Id)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	root := t.TempDir()
	b := bus.New()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	w, err := NewWatcher([]string{root}, b, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(root, "burst"+string(rune('a'+i))+".ckpt"))
	}

	select {
	case ev := <-ch:
		assert.Equal(t, bus.EventItemsRefreshed, ev.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("no refresh event after changes")
	}

	// The burst should have been collapsed; allow at most one trailing event.
	time.Sleep(300 * time.Millisecond)
	assert.LessOrEqual(t, len(ch), 1, "burst must be debounced into at most one pending event")
}
