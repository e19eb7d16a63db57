package models

import (
	"path"
	"strings"
)

// DisplayName derives the label shown for an item. The version name wins,
// then the model name, then the plain name, then the filename. Sorting by
// name must use this same derivation or the order won't match the labels.
func (it Item) DisplayName() string {
	info, err := it.DecodeInfo()
	if err == nil {
		switch {
		case info.VersionName != "":
			return info.VersionName
		case info.ModelName != "":
			return info.ModelName
		case info.Name != "":
			return info.Name
		}
	}
	p := strings.ReplaceAll(it.Path, "\\", "/")
	return path.Base(p)
}
