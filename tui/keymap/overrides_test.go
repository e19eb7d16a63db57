package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

type browserKeyMap struct {
	Base
	ToggleView  key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
}

func TestApplyOverrides(t *testing.T) {
	km := browserKeyMap{
		Base: DefaultVim(),
		ToggleView: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle view"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "expand all"),
		),
	}

	ApplyOverrides(&km, SectionConfig{
		"toggle_view": {"T", "ctrl+t"},
		"up":          {"w"},
	})

	if keys := km.ToggleView.Keys(); len(keys) != 2 || keys[0] != "T" {
		t.Errorf("Expected ToggleView override [T ctrl+t], got %v", keys)
	}
	if desc := km.ToggleView.Help().Desc; desc != "toggle view" {
		t.Errorf("Expected help desc preserved, got %q", desc)
	}

	// Embedded Base fields are reachable too
	if keys := km.Up.Keys(); len(keys) != 1 || keys[0] != "w" {
		t.Errorf("Expected embedded Up override 'w', got %v", keys)
	}

	// Untouched bindings keep their defaults
	if keys := km.ExpandAll.Keys(); len(keys) != 1 || keys[0] != "E" {
		t.Errorf("Expected ExpandAll unchanged, got %v", keys)
	}
}

func TestApplyOverridesNilSafe(t *testing.T) {
	km := DefaultVim()
	ApplyOverrides(&km, nil)
	ApplyOverrides(km, SectionConfig{"up": {"w"}}) // non-pointer is a no-op

	if keys := km.Up.Keys(); keys[0] != "k" {
		t.Errorf("Expected defaults preserved, got %v", keys)
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"Up":          "up",
		"ToggleView":  "toggle_view",
		"FoldOpenAll": "fold_open_all",
		"GoToTop":     "go_to_top",
	}
	for in, want := range cases {
		if got := camelToSnake(in); got != want {
			t.Errorf("camelToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
