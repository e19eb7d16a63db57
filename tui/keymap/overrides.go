package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

// ApplyOverrides applies keybinding overrides from config to any KeyMap struct.
// It uses reflection to map config keys (snake_case) to struct fields
// (CamelCase). Only fields of type key.Binding are processed. Embedded structs
// are recursively processed.
//
// Example:
//
//	km := KeyMap{ToggleView: key.NewBinding(...), ...}
//	ApplyOverrides(&km, overrides) // overrides["toggle_view"] -> km.ToggleView
func ApplyOverrides(km interface{}, overrides SectionConfig) {
	if overrides == nil {
		return
	}

	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	applyOverridesRecursive(v, overrides)
}

// applySectionOverrides applies a flat override map to a Base keymap in place.
func applySectionOverrides(base *Base, overrides SectionConfig) {
	ApplyOverrides(base, overrides)
}

func applyOverridesRecursive(v reflect.Value, overrides SectionConfig) {
	t := v.Type()
	bindingType := reflect.TypeOf(key.Binding{})

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if fieldType.Anonymous && field.Kind() == reflect.Struct {
			applyOverridesRecursive(field, overrides)
			continue
		}

		if fieldType.Type != bindingType {
			continue
		}

		configKey := camelToSnake(fieldType.Name)

		if keys, ok := overrides[configKey]; ok && len(keys) > 0 {
			// Preserve the help description from the current binding.
			currentBinding := field.Interface().(key.Binding)
			helpDesc := currentBinding.Help().Desc

			newBinding := key.NewBinding(
				key.WithKeys(keys...),
				key.WithHelp(keys[0], helpDesc),
			)
			field.Set(reflect.ValueOf(newBinding))
		}
	}
}

// camelToSnake converts a CamelCase string to snake_case.
// Examples: ToggleView -> toggle_view, GoToTop -> go_to_top
func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
