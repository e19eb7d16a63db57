package keymap

import (
	"testing"

	"github.com/easeltools/easel/config"
)

func TestDefaultVim(t *testing.T) {
	km := DefaultVim()

	if keys := km.Up.Keys(); len(keys) < 1 || keys[0] != "k" {
		t.Errorf("Expected Up to have 'k' as first key, got %v", keys)
	}
	if keys := km.Down.Keys(); len(keys) < 1 || keys[0] != "j" {
		t.Errorf("Expected Down to have 'j' as first key, got %v", keys)
	}

	if keys := km.FoldOpen.Keys(); len(keys) < 1 || keys[0] != "zo" {
		t.Errorf("Expected FoldOpen to have 'zo' as key, got %v", keys)
	}
	if keys := km.FoldClose.Keys(); len(keys) < 1 || keys[0] != "zc" {
		t.Errorf("Expected FoldClose to have 'zc' as key, got %v", keys)
	}

	if keys := km.Top.Keys(); len(keys) < 1 || keys[0] != "gg" {
		t.Errorf("Expected Top to have 'gg' as key, got %v", keys)
	}
	if keys := km.Delete.Keys(); len(keys) < 1 || keys[0] != "dd" {
		t.Errorf("Expected Delete to have 'dd' as key, got %v", keys)
	}
}

func TestDefaultEmacs(t *testing.T) {
	km := DefaultEmacs()

	if keys := km.Up.Keys(); len(keys) < 1 || keys[0] != "ctrl+p" {
		t.Errorf("Expected Up to have 'ctrl+p' as first key, got %v", keys)
	}
	if keys := km.Down.Keys(); len(keys) < 1 || keys[0] != "ctrl+n" {
		t.Errorf("Expected Down to have 'ctrl+n' as first key, got %v", keys)
	}
	if keys := km.Search.Keys(); len(keys) < 1 || keys[0] != "ctrl+s" {
		t.Errorf("Expected Search to have 'ctrl+s' as first key, got %v", keys)
	}
}

func TestDefaultArrows(t *testing.T) {
	km := DefaultArrows()

	if keys := km.Up.Keys(); len(keys) < 1 || keys[0] != "up" {
		t.Errorf("Expected Up to have 'up' as first key, got %v", keys)
	}
	if keys := km.Delete.Keys(); len(keys) < 1 || keys[0] != "delete" {
		t.Errorf("Expected Delete to have 'delete' as first key, got %v", keys)
	}
}

func TestLoad_NilConfig(t *testing.T) {
	km := Load(nil, "")

	if keys := km.Up.Keys(); len(keys) < 1 || keys[0] != "k" {
		t.Errorf("Expected vim-style Up key, got %v", keys)
	}
}

func TestLoad_PresetSelection(t *testing.T) {
	tests := []struct {
		preset  string
		wantKey string
	}{
		{"vim", "k"},
		{"emacs", "ctrl+p"},
		{"arrows", "up"},
		{"", "k"},
		{"unknown", "k"},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg := &config.Config{
				Extensions: map[string]interface{}{
					"keybindings": map[string]interface{}{
						"preset": tt.preset,
					},
				},
			}
			km := Load(cfg, "")
			if keys := km.Up.Keys(); len(keys) < 1 || keys[0] != tt.wantKey {
				t.Errorf("preset %q: expected Up first key %q, got %v", tt.preset, tt.wantKey, keys)
			}
		})
	}
}

func TestLoad_SectionOverrides(t *testing.T) {
	cfg := &config.Config{
		Extensions: map[string]interface{}{
			"keybindings": map[string]interface{}{
				"navigation": map[string]interface{}{
					"up":   []interface{}{"w"},
					"down": []interface{}{"s"},
				},
				"system": map[string]interface{}{
					"quit": []interface{}{"Q"},
				},
			},
		},
	}

	km := Load(cfg, "")

	if keys := km.Up.Keys(); len(keys) != 1 || keys[0] != "w" {
		t.Errorf("Expected Up override 'w', got %v", keys)
	}
	if keys := km.Down.Keys(); len(keys) != 1 || keys[0] != "s" {
		t.Errorf("Expected Down override 's', got %v", keys)
	}
	if keys := km.Quit.Keys(); len(keys) != 1 || keys[0] != "Q" {
		t.Errorf("Expected Quit override 'Q', got %v", keys)
	}
	// Help descriptions survive overrides
	if desc := km.Up.Help().Desc; desc != "up" {
		t.Errorf("Expected Up help desc 'up', got %q", desc)
	}
}

func TestLoad_PanelOverrides(t *testing.T) {
	cfg := &config.Config{
		Extensions: map[string]interface{}{
			"keybindings": map[string]interface{}{
				"navigation": map[string]interface{}{
					"up": []interface{}{"w"},
				},
				"overrides": map[string]interface{}{
					"browser": map[string]interface{}{
						"up": []interface{}{"i"},
					},
				},
			},
		},
	}

	// Panel-specific override wins over the global one
	km := Load(cfg, "browser")
	if keys := km.Up.Keys(); len(keys) != 1 || keys[0] != "i" {
		t.Errorf("Expected browser Up override 'i', got %v", keys)
	}

	// Other panels only see the global override
	km = Load(cfg, "gallery")
	if keys := km.Up.Keys(); len(keys) != 1 || keys[0] != "w" {
		t.Errorf("Expected gallery Up override 'w', got %v", keys)
	}
}

func TestSections(t *testing.T) {
	km := DefaultVim()
	sections := km.Sections()

	if len(sections) != 7 {
		t.Fatalf("Expected 7 sections, got %d", len(sections))
	}

	names := make(map[string]bool)
	for _, s := range sections {
		names[s.Name] = true
		if s.IsEmpty() {
			t.Errorf("Section %q should not be empty", s.Name)
		}
	}
	for _, want := range []string{SectionNavigation, SectionActions, SectionSearch, SectionSelection, SectionView, SectionFold, SectionSystem} {
		if !names[want] {
			t.Errorf("Missing section %q", want)
		}
	}
}

func TestSectionWith(t *testing.T) {
	km := DefaultVim()
	s := km.NavigationSection()
	extended := s.With(km.Select)

	if len(extended.Bindings) != len(s.Bindings)+1 {
		t.Errorf("With() did not append: %d vs %d", len(extended.Bindings), len(s.Bindings))
	}
	if extended.Name != s.Name {
		t.Errorf("With() changed section name: %q", extended.Name)
	}
}
